package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"smacktalk/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// The in-memory store is authoritative; the database is a write-behind
// mirror for durability and the event ledger. Every helper tolerates a nil
// connection so the server (and the tests) can run storeless.

func (s *Server) persistGame(game *Game) error {
	if s.db == nil {
		return nil
	}
	record := db.Game{
		RoomCode:     game.RoomCode,
		Status:       game.Status,
		CurrentRound: game.CurrentRound,
		MaxRounds:    game.MaxRounds,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	game.DBID = record.ID
	newID := fmt.Sprintf("game-%d", record.ID)
	if game.ID != newID {
		s.store.UpdateGameID(game, newID)
	}
	return nil
}

func (s *Server) ensureGameDBID(game *Game) error {
	if s.db == nil || game.DBID != 0 {
		return nil
	}
	var record db.Game
	if err := s.db.Where("room_code = ?", game.RoomCode).First(&record).Error; err != nil {
		return err
	}
	if record.ID == 0 {
		return errors.New("game not found")
	}
	game.DBID = record.ID
	return nil
}

func (s *Server) persistPlayer(game *Game, player *Player) {
	if s.db == nil || player.DBID != 0 {
		return
	}
	if err := s.ensureGameDBID(game); err != nil {
		log.Printf("persist player failed game_id=%s error=%v", game.ID, err)
		return
	}
	record := db.Player{
		GameID:   game.DBID,
		Name:     player.Name,
		IsVIP:    player.IsVIP,
		HP:       player.HP,
		Role:     player.Role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("persist player failed game_id=%s player=%s error=%v", game.ID, player.Name, err)
		return
	}
	player.DBID = record.ID
}

// persistPlayerState mirrors battle outcomes: hit points, knockout, role,
// team, streaks and score.
func (s *Server) persistPlayerState(game *Game, player *Player) {
	if s.db == nil || player.DBID == 0 {
		return
	}
	var teamDBID uint
	if player.TeamID != 0 {
		if captain := findPlayer(game, player.TeamID); captain != nil {
			teamDBID = captain.DBID
		}
	}
	updates := map[string]any{
		"score":            player.Score,
		"hp":               player.HP,
		"knocked_out":      player.KnockedOut,
		"role":             player.Role,
		"team_id":          teamDBID,
		"win_streak":       player.WinStreak,
		"loss_streak":      player.LossStreak,
		"combo":            player.Combo,
		"corner_man_round": player.CornerManRound,
	}
	if err := s.db.Model(&db.Player{}).Where("id = ?", player.DBID).Updates(updates).Error; err != nil {
		log.Printf("persist player state failed game_id=%s player_id=%d error=%v", game.ID, player.ID, err)
	}
}

func (s *Server) persistGameState(game *Game) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	usedIdx, err := json.Marshal(game.UsedPromptIdx)
	if err != nil {
		usedIdx = []byte("[]")
	}
	var currentPromptDBID uint
	if prompt := promptByID(game, game.CurrentPromptID); prompt != nil {
		currentPromptDBID = prompt.DBID
	}
	updates := map[string]any{
		"status":            game.Status,
		"round_status":      game.RoundStatus,
		"current_round":     game.CurrentRound,
		"current_prompt_id": currentPromptDBID,
		"used_prompt_idx":   datatypes.JSON(usedIdx),
	}
	if err := s.db.Model(&db.Game{}).Where("id = ?", game.DBID).Updates(updates).Error; err != nil {
		log.Printf("persist game state failed game_id=%s error=%v", game.ID, err)
	}
}

func (s *Server) persistPrompts(game *Game, entries []*PromptEntry) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	for _, entry := range entries {
		if entry.DBID != 0 {
			continue
		}
		var firstDBID, secondDBID uint
		if player := findPlayer(game, entry.Battlers[0]); player != nil {
			firstDBID = player.DBID
		}
		if player := findPlayer(game, entry.Battlers[1]); player != nil {
			secondDBID = player.DBID
		}
		record := db.Prompt{
			GameID:         game.DBID,
			RoundNumber:    entry.RoundNumber,
			Text:           entry.Text,
			CorpusIndex:    entry.CorpusIndex,
			FirstPlayerID:  firstDBID,
			SecondPlayerID: secondDBID,
		}
		if err := s.db.Create(&record).Error; err != nil {
			log.Printf("persist prompt failed game_id=%s prompt_id=%d error=%v", game.ID, entry.ID, err)
			continue
		}
		entry.DBID = record.ID
	}
}

func (s *Server) persistSubmission(game *Game, sub *SubmissionEntry) {
	if s.db == nil || sub.DBID != 0 {
		return
	}
	prompt := promptByID(game, sub.PromptID)
	player := findPlayer(game, sub.PlayerID)
	if prompt == nil || player == nil || prompt.DBID == 0 || player.DBID == 0 {
		return
	}
	record := db.Submission{
		PromptID: prompt.DBID,
		PlayerID: player.DBID,
		Text:     sub.Text,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("persist submission failed game_id=%s prompt_id=%d error=%v", game.ID, sub.PromptID, err)
		return
	}
	sub.DBID = record.ID
}

func (s *Server) persistVote(game *Game, vote *VoteEntry) {
	if s.db == nil || vote.DBID != 0 {
		return
	}
	prompt := promptByID(game, vote.PromptID)
	player := findPlayer(game, vote.PlayerID)
	if prompt == nil || player == nil || prompt.DBID == 0 || player.DBID == 0 {
		return
	}
	var subDBID uint
	for _, sub := range submissionsForPrompt(game, vote.PromptID) {
		if sub.ID == vote.SubmissionID {
			subDBID = sub.DBID
			break
		}
	}
	record := db.Vote{
		PromptID:     prompt.DBID,
		PlayerID:     player.DBID,
		SubmissionID: subDBID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("persist vote failed game_id=%s prompt_id=%d error=%v", game.ID, vote.PromptID, err)
		return
	}
	vote.DBID = record.ID
}

func (s *Server) persistMessage(game *Game, message MessageEntry) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	var playerDBID uint
	if player := findPlayer(game, message.PlayerID); player != nil {
		playerDBID = player.DBID
	}
	record := db.Message{
		GameID:   game.DBID,
		PlayerID: playerDBID,
		Text:     message.Text,
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("persist message failed game_id=%s error=%v", game.ID, err)
	}
}

func (s *Server) persistEvent(game *Game, record EventRecord) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return
	}
	round := record.RoundNumber
	row := db.Event{
		GameID:      game.DBID,
		RoundNumber: &round,
		Type:        record.Type,
		Payload:     datatypes.JSON(payload),
	}
	if record.Payload.PlayerID != 0 {
		if player := findPlayer(game, record.Payload.PlayerID); player != nil && player.DBID != 0 {
			dbID := player.DBID
			row.PlayerID = &dbID
		}
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("persist event failed game_id=%s type=%s error=%v", game.ID, record.Type, err)
	}
}
