package server

import (
	"log"
	"math"
)

const (
	damageCap       = 35.0
	winStreakBonus  = 15.0
	autoKOStreak    = 3
	tieDamageFactor = 0.5
)

// roundMultiplier scales damage per round. Round 2 squeezes survivors,
// round 4 is sudden death.
func roundMultiplier(round int) float64 {
	switch round {
	case 1:
		return 1.0
	case 2:
		return 1.3
	case 3:
		return 1.0
	case 4:
		return 1.5
	default:
		return 1.0
	}
}

// sanitizeHP clamps a hit-point value into [0, maxHP]. It runs on every
// write path so corrupt state degrades instead of failing a mutation.
func sanitizeHP(hp int) int {
	if hp < 0 {
		log.Printf("invalid hp detected hp=%d clamping=0", hp)
		return 0
	}
	if hp > maxHP {
		log.Printf("invalid hp detected hp=%d clamping=%d", hp, maxHP)
		return maxHP
	}
	return hp
}

type battlerState struct {
	player   *Player
	sub      *SubmissionEntry
	votesFor int
}

type battleResult struct {
	PromptID   int
	TotalVotes int
	Tie        bool
	WinnerID   int
	LoserID    int
	Damage     int
	KnockedOut []int
	CornerMen  map[int]int // knocked-out player -> captain
}

// resolveBattle converts one prompt's votes into damage, knockouts, streak
// and combo updates, and corner-man assignment. It mutates the battlers'
// player records in place and reports what happened for event emission.
// Missing or malformed state is normalized and logged, never fatal.
func resolveBattle(game *Game, prompt *PromptEntry) battleResult {
	result := battleResult{PromptID: prompt.ID, CornerMen: make(map[int]int)}

	subs := submissionsForPrompt(game, prompt.ID)
	votes := votesForPrompt(game, prompt.ID)
	result.TotalVotes = len(votes)

	if len(subs) != battlersPerBout {
		log.Printf("battle skipped game_id=%s prompt_id=%d submissions=%d", game.ID, prompt.ID, len(subs))
		for _, sub := range subs {
			if player := findPlayer(game, sub.PlayerID); player != nil {
				player.HP = sanitizeHP(player.HP)
				player.KnockedOut = player.HP == 0
			}
		}
		return result
	}

	battlers := make([]battlerState, 0, battlersPerBout)
	for _, sub := range subs {
		player := findPlayer(game, sub.PlayerID)
		if player == nil {
			log.Printf("battler missing game_id=%s prompt_id=%d player_id=%d", game.ID, prompt.ID, sub.PlayerID)
			return result
		}
		votesFor := 0
		for _, vote := range votes {
			if vote.SubmissionID == sub.ID {
				votesFor++
			}
		}
		battlers = append(battlers, battlerState{player: player, sub: sub, votesFor: votesFor})
	}

	if result.TotalVotes == 0 {
		// Nobody voted: no damage, but normalize state and break momentum.
		log.Printf("no votes cast game_id=%s prompt_id=%d", game.ID, prompt.ID)
		for _, b := range battlers {
			b.player.HP = sanitizeHP(b.player.HP)
			b.player.KnockedOut = b.player.HP == 0
			b.player.WinStreak = 0
			b.player.LossStreak = 0
			b.player.Combo = 0
		}
		return result
	}

	multiplier := roundMultiplier(game.CurrentRound)
	if battlers[0].votesFor == battlers[1].votesFor {
		resolveTie(game, battlers, multiplier, &result)
	} else {
		resolveDecisive(game, battlers, multiplier, &result)
	}
	return result
}

func resolveDecisive(game *Game, battlers []battlerState, multiplier float64, result *battleResult) {
	loser, winner := battlers[0], battlers[1]
	if loser.votesFor > winner.votesFor {
		loser, winner = winner, loser
	}

	votesAgainst := result.TotalVotes - loser.votesFor
	base := float64(votesAgainst) / float64(result.TotalVotes) * damageCap * multiplier
	damage := base

	// Momentum layers stack on top of the base vote-proportional damage.
	newWinStreak := winner.player.WinStreak + 1
	if newWinStreak == 2 {
		damage += winStreakBonus
	}
	newCombo := winner.player.Combo + winner.votesFor
	if tableSize := len(game.Players); tableSize > 0 {
		damage += base * float64(newCombo) / float64(tableSize)
	}

	loserHP := sanitizeHP(loser.player.HP)
	newHP := int(math.Floor(float64(loserHP) - damage))
	if newHP < 0 {
		newHP = 0
	}
	if newWinStreak >= autoKOStreak {
		// Three straight wins finishes the fight outright.
		log.Printf("streak knockout game_id=%s winner=%d streak=%d", game.ID, winner.player.ID, newWinStreak)
		newHP = 0
	}
	knockedOut := newHP == 0

	loser.player.HP = newHP
	loser.player.KnockedOut = knockedOut
	loser.player.LossStreak++
	loser.player.WinStreak = 0
	if loser.votesFor == 0 {
		loser.player.Combo = 0
	} else {
		loser.player.Combo += loser.votesFor
	}

	winner.player.HP = sanitizeHP(winner.player.HP)
	winner.player.KnockedOut = winner.player.HP == 0
	winner.player.WinStreak = newWinStreak
	winner.player.LossStreak = 0
	winner.player.Combo = newCombo

	result.WinnerID = winner.player.ID
	result.LoserID = loser.player.ID
	result.Damage = int(math.Floor(damage))
	if knockedOut {
		result.KnockedOut = append(result.KnockedOut, loser.player.ID)
		assignCornerMan(game, loser.player, winner.player, result)
	}
	log.Printf("battle resolved game_id=%s winner=%d loser=%d damage=%d hp=%d ko=%t",
		game.ID, winner.player.ID, loser.player.ID, result.Damage, newHP, knockedOut)
}

func resolveTie(game *Game, battlers []battlerState, multiplier float64, result *battleResult) {
	result.Tie = true
	damage := tieDamageFactor * damageCap * multiplier
	result.Damage = int(math.Floor(damage))

	type tieOutcome struct {
		b       battlerState
		hp      int
		newHP   int
		wouldKO bool
	}
	outcomes := make([]tieOutcome, 0, battlersPerBout)
	for _, b := range battlers {
		hp := sanitizeHP(b.player.HP)
		newHP := int(math.Floor(float64(hp) - damage))
		if newHP < 0 {
			newHP = 0
		}
		outcomes = append(outcomes, tieOutcome{b: b, hp: hp, newHP: newHP, wouldKO: newHP == 0})
	}

	// A tie continues or resets combos the same way a loss does.
	for _, o := range outcomes {
		if o.b.votesFor == 0 {
			o.b.player.Combo = 0
		} else {
			o.b.player.Combo += o.b.votesFor
		}
	}

	first, second := outcomes[0], outcomes[1]
	switch {
	case first.wouldKO && second.wouldKO:
		// Double KO: one battler survives on a deterministic tiebreak,
		// shorter answer first, then earlier submission.
		survivor, eliminated := first, second
		len1, len2 := len(first.b.sub.Text), len(second.b.sub.Text)
		switch {
		case len1 != len2:
			if len2 < len1 {
				survivor, eliminated = second, first
			}
			log.Printf("double ko tiebreak game_id=%s winner=%d by=length", game.ID, survivor.b.player.ID)
		case !first.b.sub.SubmittedAt.Equal(second.b.sub.SubmittedAt):
			if second.b.sub.SubmittedAt.Before(first.b.sub.SubmittedAt) {
				survivor, eliminated = second, first
			}
			log.Printf("double ko tiebreak game_id=%s winner=%d by=timestamp", game.ID, survivor.b.player.ID)
		default:
			// Identical length and timestamp: submission order decides.
			if second.b.sub.ID < first.b.sub.ID {
				survivor, eliminated = second, first
			}
			log.Printf("double ko tiebreak game_id=%s winner=%d by=order", game.ID, survivor.b.player.ID)
		}

		// Marginal win: the survivor keeps 1 HP, not their prior total.
		survivor.b.player.HP = 1
		survivor.b.player.KnockedOut = false
		survivor.b.player.WinStreak++
		survivor.b.player.LossStreak = 0

		eliminated.b.player.HP = 0
		eliminated.b.player.KnockedOut = true
		eliminated.b.player.LossStreak++
		eliminated.b.player.WinStreak = 0

		result.WinnerID = survivor.b.player.ID
		result.LoserID = eliminated.b.player.ID
		result.KnockedOut = append(result.KnockedOut, eliminated.b.player.ID)
		assignCornerMan(game, eliminated.b.player, survivor.b.player, result)

	case first.wouldKO || second.wouldKO:
		eliminated, survivor := first, second
		if second.wouldKO {
			eliminated, survivor = second, first
		}

		survivor.b.player.HP = survivor.newHP
		survivor.b.player.KnockedOut = false
		survivor.b.player.WinStreak++
		survivor.b.player.LossStreak = 0

		eliminated.b.player.HP = 0
		eliminated.b.player.KnockedOut = true
		eliminated.b.player.LossStreak++
		eliminated.b.player.WinStreak = 0

		result.WinnerID = survivor.b.player.ID
		result.LoserID = eliminated.b.player.ID
		result.KnockedOut = append(result.KnockedOut, eliminated.b.player.ID)
		assignCornerMan(game, eliminated.b.player, survivor.b.player, result)

	default:
		// Neither drops: both take the hit and both streaks break.
		for _, o := range outcomes {
			o.b.player.HP = o.newHP
			o.b.player.KnockedOut = false
			o.b.player.WinStreak = 0
			o.b.player.LossStreak++
		}
	}
	log.Printf("tie resolved game_id=%s prompt_id=%d damage=%d", game.ID, result.PromptID, result.Damage)
}

// assignCornerMan reassigns a knocked-out loser to the winner's corner in
// rounds 1 and 2. From round 3 on a knockout is just a knockout.
func assignCornerMan(game *Game, loser, winner *Player, result *battleResult) {
	if game.CurrentRound > 2 {
		return
	}
	if existing := cornerManFor(game, winner.ID); existing != nil {
		// At most one corner man per captain is expected from the bracket;
		// log the violation and assign anyway rather than reject.
		log.Printf("captain already has corner man game_id=%s captain=%d existing=%d",
			game.ID, winner.ID, existing.ID)
	}
	loser.Role = roleCornerMan
	loser.TeamID = winner.ID
	loser.CornerManRound = game.CurrentRound
	result.CornerMen[loser.ID] = winner.ID
	log.Printf("corner man assigned game_id=%s player=%d captain=%d round=%d",
		game.ID, loser.ID, winner.ID, game.CurrentRound)
}
