package server

// Phase machine: LOBBY -> PROMPTS -> VOTING -> ROUND_RESULTS -> RESULTS,
// with a VOTING/REVEAL sub-state per battle. PROMPTS->VOTING and
// VOTING->REVEAL fire automatically when completion thresholds are reached;
// everything else is an explicit VIP action. All transitions run inside a
// Store.UpdateGame closure, so a threshold is checked and applied in the
// same critical section and can never fire twice.

func (s *Server) startRound(game *Game) error {
	if err := s.assignPrompts(game); err != nil {
		return err
	}
	game.Status = statusPrompts
	game.CurrentPromptID = 0
	game.RoundStatus = ""
	return nil
}

// submissionsComplete reports whether every battler on every prompt of the
// current round has answered.
func submissionsComplete(game *Game) bool {
	prompts := currentRoundPrompts(game)
	if len(prompts) == 0 {
		return false
	}
	received := 0
	for _, prompt := range prompts {
		received += len(submissionsForPrompt(game, prompt.ID))
	}
	return received >= battlersPerBout*len(prompts)
}

// expectedVotes is the vote count that closes a battle: every non-battler.
func expectedVotes(game *Game) int {
	expected := len(game.Players) - battlersPerBout
	if expected < 1 {
		expected = 1
	}
	return expected
}

// beginVoting flips the round into its first battle.
func beginVoting(game *Game) {
	prompts := currentRoundPrompts(game)
	if len(prompts) == 0 {
		return
	}
	game.Status = statusVoting
	game.CurrentPromptID = prompts[0].ID
	game.RoundStatus = roundStatusVoting
}

type advanceResult struct {
	NextPromptID  int
	RoundComplete bool
	GameComplete  bool
}

// advanceBattle moves past a revealed battle: scores are banked, then the
// next prompt opens for voting, or the round (or game) ends.
func (s *Server) advanceBattle(game *Game) (advanceResult, error) {
	if game.Status != statusVoting || game.RoundStatus != roundStatusReveal {
		return advanceResult{}, preconditionErr("no revealed battle to advance")
	}
	prompt := promptByID(game, game.CurrentPromptID)
	if prompt == nil {
		return advanceResult{}, notFoundErr("active prompt not found")
	}
	awardScores(game, prompt)

	prompts := currentRoundPrompts(game)
	position := -1
	for i, candidate := range prompts {
		if candidate.ID == prompt.ID {
			position = i
			break
		}
	}
	if position >= 0 && position < len(prompts)-1 {
		next := prompts[position+1]
		game.CurrentPromptID = next.ID
		game.RoundStatus = roundStatusVoting
		return advanceResult{NextPromptID: next.ID}, nil
	}

	game.CurrentPromptID = 0
	game.RoundStatus = ""
	if game.CurrentRound < game.MaxRounds {
		game.Status = statusRoundResults
		return advanceResult{RoundComplete: true}, nil
	}
	game.Status = statusResults
	return advanceResult{GameComplete: true}, nil
}

func (s *Server) advanceRound(game *Game) error {
	if game.Status != statusRoundResults {
		return preconditionErr("round is not complete")
	}
	game.CurrentRound++
	return s.startRound(game)
}

// awardScores banks 100 points per vote received on the battle just shown.
func awardScores(game *Game, prompt *PromptEntry) {
	for _, vote := range votesForPrompt(game, prompt.ID) {
		for _, sub := range submissionsForPrompt(game, prompt.ID) {
			if sub.ID != vote.SubmissionID {
				continue
			}
			if player := findPlayer(game, sub.PlayerID); player != nil {
				player.Score += pointsPerVote
			}
		}
	}
}
