package server

import (
	"log"
	"math/rand"
)

// assignPrompts deals one battle per player for the current round. Player i
// is paired with player (i+1) mod N, so everyone fights exactly twice per
// round: once as the first battler, once as the second. Prompt texts are
// drawn without replacement from the corpus indices not yet used by this
// game; an exhausted pool resets the history rather than failing.
func (s *Server) assignPrompts(game *Game) error {
	total := len(game.Players)
	if total < 2 {
		return preconditionErr("need at least 2 players for pairing")
	}
	corpus := s.promptSrc
	if corpus == nil || corpus.Len() == 0 {
		return preconditionErr("prompt corpus is empty")
	}

	used := make(map[int]struct{}, len(game.UsedPromptIdx))
	for _, idx := range game.UsedPromptIdx {
		used[idx] = struct{}{}
	}
	available := make([]int, 0, corpus.Len())
	for i := 0; i < corpus.Len(); i++ {
		if _, ok := used[i]; !ok {
			available = append(available, i)
		}
	}
	if len(available) < total {
		log.Printf("prompt pool exhausted game_id=%s, resetting usage history", game.ID)
		game.UsedPromptIdx = nil
		available = available[:0]
		for i := 0; i < corpus.Len(); i++ {
			available = append(available, i)
		}
	}
	if len(available) < total {
		return preconditionErr("not enough prompts for %d players", total)
	}

	for i := 0; i < total; i++ {
		first := game.Players[i]
		second := game.Players[(i+1)%total]

		pick := rand.Intn(len(available))
		corpusIndex := available[pick]
		available = append(available[:pick], available[pick+1:]...)
		game.UsedPromptIdx = append(game.UsedPromptIdx, corpusIndex)

		game.Prompts = append(game.Prompts, PromptEntry{
			ID:          game.NextPromptID,
			RoundNumber: game.CurrentRound,
			CorpusIndex: corpusIndex,
			Text:        corpus.Text(corpusIndex),
			Battlers:    [2]int{first.ID, second.ID},
		})
		game.NextPromptID++
	}
	log.Printf("prompts assigned game_id=%s round=%d count=%d", game.ID, game.CurrentRound, total)
	return nil
}
