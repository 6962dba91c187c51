package server

import (
	"log"
	"net/http"
)

type joinRequest struct {
	RoomCode string `json:"room_code"`
	Name     string `json:"name"`
}

type actionRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
}

type answerRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
	PromptID  int    `json:"prompt_id"`
	Text      string `json:"text"`
}

type voteRequest struct {
	PlayerID     int    `json:"player_id"`
	AuthToken    string `json:"auth_token"`
	PromptID     int    `json:"prompt_id"`
	SubmissionID int    `json:"submission_id"`
}

type messageRequest struct {
	PlayerID  int    `json:"player_id"`
	AuthToken string `json:"auth_token"`
	Text      string `json:"text"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	summaries := s.store.ListGameSummaries()
	games := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		games = append(games, map[string]any{
			"game_id":   summary.ID,
			"room_code": summary.RoomCode,
			"status":    summary.Status,
			"players":   summary.Players,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := s.store.CreateGame(s.cfg.MaxRounds)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.persistGame(game); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	s.recordEvent(game, eventGameCreated, EventPayload{GameID: game.ID, RoomCode: game.RoomCode})
	log.Printf("game created game_id=%s room_code=%s", game.ID, game.RoomCode)
	writeJSON(w, http.StatusCreated, map[string]string{
		"game_id":   game.ID,
		"room_code": game.RoomCode,
	})
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	game, player, token, err := s.store.AddPlayer(req.RoomCode, name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistPlayer(game, player)
	s.recordEvent(game, eventPlayerJoined, EventPayload{PlayerName: player.Name, PlayerID: player.ID})
	log.Printf("player joined game_id=%s player_id=%d name=%s vip=%t", game.ID, player.ID, player.Name, player.IsVIP)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, map[string]any{
		"game_id":    game.ID,
		"player_id":  player.ID,
		"auth_token": token,
		"vip":        player.IsVIP,
	})
}

func (s *Server) handleRoomLookup(w http.ResponseWriter, r *http.Request) {
	code, ok := parseRoomPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	game, found := s.store.FindGameByRoomCode(code)
	if !found {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	gameID, action, ok := parseGamePath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		switch action {
		case "":
			s.handleGetGame(w, r, gameID)
		case "events":
			s.handleEvents(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	case http.MethodPost:
		switch action {
		case "start":
			s.handleStartGame(w, r, gameID)
		case "answers":
			s.handleSubmitAnswer(w, r, gameID)
		case "votes":
			s.handleSubmitVote(w, r, gameID)
		case "next-battle":
			s.handleNextBattle(w, r, gameID)
		case "next-round":
			s.handleNextRound(w, r, gameID)
		case "messages":
			s.handleSendMessage(w, r, gameID)
		default:
			http.NotFound(w, r)
		}
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, gameID string) {
	game, ok := s.store.GetGame(gameID)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, gameID string) {
	if _, ok := s.store.GetGame(gameID); !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": s.eventsFor(gameID)})
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, gameID string) {
	var req actionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if _, err := s.authenticateVIP(game, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		if game.Status != statusLobby {
			return preconditionErr("game already started")
		}
		if len(game.Players) < s.cfg.MinPlayers {
			return preconditionErr("need at least %d players", s.cfg.MinPlayers)
		}
		return s.startRound(game)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistPrompts(game, currentRoundPrompts(game))
	s.persistGameState(game)
	s.recordEvent(game, eventGameStarted, EventPayload{GameID: game.ID, Count: len(game.Players)})
	s.recordEvent(game, eventRoundStarted, EventPayload{RoundNumber: game.CurrentRound})
	s.recordEvent(game, eventPromptsAssigned, EventPayload{RoundNumber: game.CurrentRound, Count: len(currentRoundPrompts(game))})
	log.Printf("game started game_id=%s players=%d", game.ID, len(game.Players))
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request, gameID string) {
	var req answerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := validateAnswer(req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var entry *SubmissionEntry
	votingOpened := false
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		player, err := s.authenticatePlayer(game, req.PlayerID, req.AuthToken)
		if err != nil {
			return err
		}
		if game.Status != statusPrompts {
			return preconditionErr("answers are closed")
		}
		prompt := promptByID(game, req.PromptID)
		if prompt == nil || prompt.RoundNumber != game.CurrentRound {
			return notFoundErr("prompt not found")
		}
		if !isBattler(prompt, player.ID) {
			return conflictErr("you are not assigned to this prompt")
		}
		for _, existing := range submissionsForPrompt(game, prompt.ID) {
			if existing.PlayerID == player.ID {
				return conflictErr("answer already submitted")
			}
		}
		game.Submissions = append(game.Submissions, SubmissionEntry{
			ID:          game.NextSubmissionID,
			PromptID:    prompt.ID,
			PlayerID:    player.ID,
			Text:        text,
			SubmittedAt: timeNowUTC(),
		})
		game.NextSubmissionID++
		entry = &game.Submissions[len(game.Submissions)-1]
		if submissionsComplete(game) {
			beginVoting(game)
			votingOpened = true
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistSubmission(game, entry)
	s.recordEvent(game, eventAnswerSubmitted, EventPayload{PlayerID: req.PlayerID, PromptID: req.PromptID})
	if votingOpened {
		s.persistGameState(game)
		log.Printf("all answers received game_id=%s round=%d", game.ID, game.CurrentRound)
	}
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id": entry.ID,
		"status":        game.Status,
	})
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request, gameID string) {
	var req voteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var entry *VoteEntry
	var result battleResult
	revealed := false
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		player, err := s.authenticatePlayer(game, req.PlayerID, req.AuthToken)
		if err != nil {
			return err
		}
		if game.Status != statusVoting || game.RoundStatus != roundStatusVoting {
			return preconditionErr("voting is closed")
		}
		if req.PromptID != game.CurrentPromptID {
			return preconditionErr("this battle is not open for voting")
		}
		prompt := promptByID(game, req.PromptID)
		if prompt == nil {
			return notFoundErr("prompt not found")
		}
		if isBattler(prompt, player.ID) {
			return conflictErr("you are in this battle, you cannot vote")
		}
		for _, existing := range votesForPrompt(game, prompt.ID) {
			if existing.PlayerID == player.ID {
				return conflictErr("already voted")
			}
		}
		validSubmission := false
		for _, sub := range submissionsForPrompt(game, prompt.ID) {
			if sub.ID == req.SubmissionID {
				validSubmission = true
				break
			}
		}
		if !validSubmission {
			return notFoundErr("submission not found")
		}
		game.Votes = append(game.Votes, VoteEntry{
			PromptID:     prompt.ID,
			PlayerID:     player.ID,
			SubmissionID: req.SubmissionID,
		})
		entry = &game.Votes[len(game.Votes)-1]
		if len(votesForPrompt(game, prompt.ID)) >= expectedVotes(game) {
			// Resolve inside the same critical section that flips to
			// REVEAL so the transition cannot double-fire.
			result = resolveBattle(game, prompt)
			game.RoundStatus = roundStatusReveal
			revealed = true
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistVote(game, entry)
	s.recordEvent(game, eventVoteRecorded, EventPayload{
		PlayerID:     req.PlayerID,
		PromptID:     req.PromptID,
		SubmissionID: req.SubmissionID,
	})
	if revealed {
		s.finishReveal(game, result)
	}
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       game.Status,
		"round_status": game.RoundStatus,
	})
}

// finishReveal mirrors and announces a resolved battle.
func (s *Server) finishReveal(game *Game, result battleResult) {
	if prompt := promptByID(game, result.PromptID); prompt != nil {
		for _, playerID := range prompt.Battlers {
			if player := findPlayer(game, playerID); player != nil {
				s.persistPlayerState(game, player)
			}
		}
	}
	s.persistGameState(game)
	s.recordEvent(game, eventBattleResolved, EventPayload{
		PromptID:   result.PromptID,
		WinnerID:   result.WinnerID,
		LoserID:    result.LoserID,
		Damage:     result.Damage,
		TotalVotes: result.TotalVotes,
		Tie:        result.Tie,
	})
	for _, playerID := range result.KnockedOut {
		s.recordEvent(game, eventPlayerKnockedOut, EventPayload{PlayerID: playerID, PromptID: result.PromptID})
	}
	for playerID, captainID := range result.CornerMen {
		s.recordEvent(game, eventCornerManAssigned, EventPayload{PlayerID: playerID, CaptainID: captainID})
	}
}

func (s *Server) handleNextBattle(w http.ResponseWriter, r *http.Request, gameID string) {
	var req actionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var advance advanceResult
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if _, err := s.authenticateVIP(game, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		var err error
		advance, err = s.advanceBattle(game)
		return err
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	for i := range game.Players {
		s.persistPlayerState(game, &game.Players[i])
	}
	s.persistGameState(game)
	switch {
	case advance.GameComplete:
		s.recordEvent(game, eventGameCompleted, EventPayload{GameID: game.ID, RoundNumber: game.CurrentRound})
		log.Printf("game complete game_id=%s", game.ID)
	case advance.RoundComplete:
		s.recordEvent(game, eventRoundCompleted, EventPayload{RoundNumber: game.CurrentRound})
		log.Printf("round complete game_id=%s round=%d", game.ID, game.CurrentRound)
	}
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleNextRound(w http.ResponseWriter, r *http.Request, gameID string) {
	var req actionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if _, err := s.authenticateVIP(game, req.PlayerID, req.AuthToken); err != nil {
			return err
		}
		return s.advanceRound(game)
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistPrompts(game, currentRoundPrompts(game))
	s.persistGameState(game)
	s.recordEvent(game, eventRoundStarted, EventPayload{RoundNumber: game.CurrentRound})
	s.recordEvent(game, eventPromptsAssigned, EventPayload{RoundNumber: game.CurrentRound, Count: len(currentRoundPrompts(game))})
	log.Printf("round started game_id=%s round=%d", game.ID, game.CurrentRound)
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, snapshot(game))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, gameID string) {
	var req messageRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text, err := validateMessage(req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var message MessageEntry
	game, err := s.store.UpdateGame(gameID, func(game *Game) error {
		player, err := s.authenticatePlayer(game, req.PlayerID, req.AuthToken)
		if err != nil {
			return err
		}
		message = MessageEntry{PlayerID: player.ID, Text: text, SentAt: timeNowUTC()}
		game.Messages = append(game.Messages, message)
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.persistMessage(game, message)
	s.recordEvent(game, eventChatMessage, EventPayload{PlayerID: req.PlayerID, Text: text})
	s.broadcastGameUpdate(game)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
