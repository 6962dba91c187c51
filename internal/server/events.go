package server

import "time"

// Domain events double as the observability surface: a test harness or
// telemetry sink asserts on these instead of scraping logs.
const (
	eventGameCreated       = "game_created"
	eventPlayerJoined      = "player_joined"
	eventGameStarted       = "game_started"
	eventRoundStarted      = "round_started"
	eventPromptsAssigned   = "prompts_assigned"
	eventAnswerSubmitted   = "answer_submitted"
	eventVoteRecorded      = "vote_recorded"
	eventBattleResolved    = "battle_resolved"
	eventPlayerKnockedOut  = "player_knocked_out"
	eventCornerManAssigned = "corner_man_assigned"
	eventRoundCompleted    = "round_completed"
	eventGameCompleted     = "game_completed"
	eventChatMessage       = "chat_message"
)

type EventPayload struct {
	GameID       string `json:"game_id,omitempty"`
	RoomCode     string `json:"room_code,omitempty"`
	PlayerName   string `json:"player,omitempty"`
	PlayerID     int    `json:"player_id,omitempty"`
	RoundNumber  int    `json:"round_number,omitempty"`
	Status       string `json:"status,omitempty"`
	PromptID     int    `json:"prompt_id,omitempty"`
	SubmissionID int    `json:"submission_id,omitempty"`
	WinnerID     int    `json:"winner_id,omitempty"`
	LoserID      int    `json:"loser_id,omitempty"`
	CaptainID    int    `json:"captain_id,omitempty"`
	Damage       int    `json:"damage,omitempty"`
	TotalVotes   int    `json:"total_votes,omitempty"`
	Tie          bool   `json:"tie,omitempty"`
	Count        int    `json:"count,omitempty"`
	Text         string `json:"text,omitempty"`
}

type EventRecord struct {
	Type        string       `json:"type"`
	RoundNumber int          `json:"round_number,omitempty"`
	Payload     EventPayload `json:"payload"`
	At          time.Time    `json:"at"`
}

// recordEvent appends to the in-memory ledger and mirrors the row to the
// database when one is attached.
func (s *Server) recordEvent(game *Game, eventType string, payload EventPayload) {
	record := EventRecord{
		Type:        eventType,
		RoundNumber: game.CurrentRound,
		Payload:     payload,
		At:          timeNowUTC(),
	}
	s.eventsMu.Lock()
	s.events[game.ID] = append(s.events[game.ID], record)
	s.eventsMu.Unlock()
	s.persistEvent(game, record)
}

func (s *Server) eventsFor(gameID string) []EventRecord {
	s.eventsMu.Lock()
	defer s.eventsMu.Unlock()
	records := make([]EventRecord, len(s.events[gameID]))
	copy(records, s.events[gameID])
	return records
}
