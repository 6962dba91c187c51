package server

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the authoritative room registry. Every mutation runs inside the
// store mutex, so each UpdateGame closure is one serialized transaction per
// room: threshold transitions and battle resolution cannot interleave or
// double-fire.
type Store struct {
	mu           sync.Mutex
	nextID       int
	nextPlayerID int
	games        map[string]*Game
}

func NewStore() *Store {
	return &Store{
		nextID:       1,
		nextPlayerID: 1,
		games:        make(map[string]*Game),
	}
}

// CreateGame registers a new room. A room-code collision fails the call;
// the caller retries, there is no retry loop here.
func (s *Store) CreateGame(maxRounds int) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := newRoomCode()
	for _, existing := range s.games {
		if existing.RoomCode == code {
			return nil, conflictErr("room code collision, try again")
		}
	}

	id := fmt.Sprintf("game-%d", s.nextID)
	s.nextID++
	game := &Game{
		ID:               id,
		RoomCode:         code,
		Status:           statusLobby,
		CurrentRound:     1,
		MaxRounds:        maxRounds,
		PlayerAuthTokens: make(map[int]string),
		NextPromptID:     1,
		NextSubmissionID: 1,
	}
	s.games[id] = game
	return game, nil
}

func (s *Store) GetGame(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	return game, ok
}

func (s *Store) FindGameByRoomCode(code string) (*Game, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, game := range s.games {
		if game.RoomCode == code {
			return game, true
		}
	}
	return nil, false
}

// UpdateGame applies one atomic mutation to a room.
func (s *Store) UpdateGame(id string, update func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil, notFoundErr("game not found")
	}
	if err := update(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Store) UpdateGameID(game *Game, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID == newID {
		return
	}
	delete(s.games, game.ID)
	game.ID = newID
	s.games[newID] = game
}

// AddPlayer joins a player to a room by room code. The first joiner
// becomes the VIP.
func (s *Store) AddPlayer(roomCode, name string) (*Game, *Player, string, error) {
	code := strings.ToUpper(strings.TrimSpace(roomCode))
	s.mu.Lock()
	defer s.mu.Unlock()

	var game *Game
	for _, candidate := range s.games {
		if candidate.RoomCode == code {
			game = candidate
			break
		}
	}
	if game == nil {
		return nil, nil, "", notFoundErr("room not found")
	}
	if game.Status != statusLobby {
		return nil, nil, "", preconditionErr("game already started")
	}
	for i := range game.Players {
		if strings.EqualFold(game.Players[i].Name, name) {
			return nil, nil, "", conflictErr("name already taken")
		}
	}

	player := Player{
		ID:    s.nextPlayerID,
		Name:  name,
		IsVIP: len(game.Players) == 0,
		HP:    startingHP,
		Role:  roleFighter,
	}
	s.nextPlayerID++
	game.Players = append(game.Players, player)
	if player.IsVIP {
		game.VIPID = player.ID
	}
	token := uuid.NewString()
	game.PlayerAuthTokens[player.ID] = token
	return game, &game.Players[len(game.Players)-1], token, nil
}

// ListGameSummaries returns a shallow view of every room.
func (s *Store) ListGameSummaries() []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.games))
	for _, game := range s.games {
		list = append(list, GameSummary{
			ID:       game.ID,
			RoomCode: game.RoomCode,
			Status:   game.Status,
			Players:  len(game.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) FindPlayer(game *Game, playerID int) (*Player, bool) {
	player := findPlayer(game, playerID)
	return player, player != nil
}

func timeNowUTC() time.Time {
	return time.Now().UTC()
}
