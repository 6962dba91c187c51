package server

import (
	"crypto/subtle"
	"strings"
)

// authenticatePlayer resolves a player by id and checks the bearer token
// issued at join time.
func (s *Server) authenticatePlayer(game *Game, playerID int, authToken string) (*Player, error) {
	if game == nil {
		return nil, notFoundErr("game not found")
	}
	if playerID <= 0 {
		return nil, validationErr("player_id is required")
	}
	player, ok := s.store.FindPlayer(game, playerID)
	if !ok {
		return nil, notFoundErr("player not found")
	}
	expected := game.PlayerAuthTokens[playerID]
	provided := strings.TrimSpace(authToken)
	if expected == "" || provided == "" {
		return nil, validationErr("authentication required")
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return nil, validationErr("invalid player authentication")
	}
	return player, nil
}

// authenticateVIP additionally requires the first-joiner VIP.
func (s *Server) authenticateVIP(game *Game, playerID int, authToken string) (*Player, error) {
	player, err := s.authenticatePlayer(game, playerID, authToken)
	if err != nil {
		return nil, err
	}
	if game.VIPID == 0 || player.ID != game.VIPID {
		return nil, preconditionErr("only the VIP can perform this action")
	}
	return player, nil
}
