package server

// snapshot is the full room state pushed to clients over the websocket and
// returned from state queries. Vote tallies stay hidden until the reveal.
func snapshot(game *Game) map[string]any {
	players := make([]map[string]any, 0, len(game.Players))
	for i := range game.Players {
		player := &game.Players[i]
		players = append(players, map[string]any{
			"id":               player.ID,
			"name":             player.Name,
			"score":            player.Score,
			"vip":              player.IsVIP,
			"hp":               player.HP,
			"knocked_out":      player.KnockedOut,
			"role":             player.Role,
			"team_id":          player.TeamID,
			"win_streak":       player.WinStreak,
			"loss_streak":      player.LossStreak,
			"combo":            player.Combo,
			"corner_man_round": player.CornerManRound,
		})
	}

	prompts := make([]map[string]any, 0)
	for _, prompt := range currentRoundPrompts(game) {
		answered := make([]int, 0, battlersPerBout)
		for _, sub := range submissionsForPrompt(game, prompt.ID) {
			answered = append(answered, sub.PlayerID)
		}
		prompts = append(prompts, map[string]any{
			"id":       prompt.ID,
			"text":     prompt.Text,
			"battlers": prompt.Battlers,
			"answered": answered,
		})
	}

	messages := make([]map[string]any, 0, len(game.Messages))
	for _, message := range game.Messages {
		messages = append(messages, map[string]any{
			"player_id": message.PlayerID,
			"text":      message.Text,
			"sent_at":   message.SentAt,
		})
	}

	payload := map[string]any{
		"game_id":       game.ID,
		"room_code":     game.RoomCode,
		"status":        game.Status,
		"round_status":  game.RoundStatus,
		"current_round": game.CurrentRound,
		"max_rounds":    game.MaxRounds,
		"players":       players,
		"prompts":       prompts,
		"messages":      messages,
	}
	if battle := buildBattle(game); battle != nil {
		payload["current_battle"] = battle
	}
	return payload
}

func buildBattle(game *Game) map[string]any {
	if game.Status != statusVoting || game.CurrentPromptID == 0 {
		return nil
	}
	prompt := promptByID(game, game.CurrentPromptID)
	if prompt == nil {
		return nil
	}
	revealed := game.RoundStatus == roundStatusReveal

	subs := make([]map[string]any, 0, battlersPerBout)
	for _, sub := range submissionsForPrompt(game, prompt.ID) {
		entry := map[string]any{
			"id":        sub.ID,
			"player_id": sub.PlayerID,
			"text":      sub.Text,
		}
		if revealed {
			tally := 0
			for _, vote := range votesForPrompt(game, prompt.ID) {
				if vote.SubmissionID == sub.ID {
					tally++
				}
			}
			entry["votes"] = tally
		}
		subs = append(subs, entry)
	}

	return map[string]any{
		"prompt_id":      prompt.ID,
		"text":           prompt.Text,
		"battlers":       prompt.Battlers,
		"submissions":    subs,
		"votes_cast":     len(votesForPrompt(game, prompt.ID)),
		"expected_votes": expectedVotes(game),
	}
}
