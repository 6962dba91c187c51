package server

import (
	"testing"
	"time"
)

func battleGame(round, playerCount int) *Game {
	game := &Game{
		ID:           "game-1",
		Status:       statusVoting,
		RoundStatus:  roundStatusVoting,
		CurrentRound: round,
		MaxRounds:    3,
	}
	for i := 1; i <= playerCount; i++ {
		game.Players = append(game.Players, Player{ID: i, HP: startingHP, Role: roleFighter})
	}
	return game
}

// stageBattle sets up one prompt with players 1 and 2 as battlers and a
// submission from each. Player 1 owns submission 1, player 2 submission 2.
func stageBattle(game *Game, textA, textB string) *PromptEntry {
	game.Prompts = append(game.Prompts, PromptEntry{
		ID:          1,
		RoundNumber: game.CurrentRound,
		Text:        "test prompt",
		Battlers:    [2]int{1, 2},
	})
	base := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	game.Submissions = append(game.Submissions,
		SubmissionEntry{ID: 1, PromptID: 1, PlayerID: 1, Text: textA, SubmittedAt: base},
		SubmissionEntry{ID: 2, PromptID: 1, PlayerID: 2, Text: textB, SubmittedAt: base.Add(time.Second)},
	)
	return &game.Prompts[0]
}

func castVotes(game *Game, forA, forB int) {
	voterID := 100
	for i := 0; i < forA; i++ {
		game.Votes = append(game.Votes, VoteEntry{PromptID: 1, PlayerID: voterID, SubmissionID: 1})
		voterID++
	}
	for i := 0; i < forB; i++ {
		game.Votes = append(game.Votes, VoteEntry{PromptID: 1, PlayerID: voterID, SubmissionID: 2})
		voterID++
	}
}

func TestRoundMultiplier(t *testing.T) {
	cases := map[int]float64{1: 1.0, 2: 1.3, 3: 1.0, 4: 1.5, 5: 1.0, 0: 1.0}
	for round, want := range cases {
		if got := roundMultiplier(round); got != want {
			t.Errorf("roundMultiplier(%d) = %v, want %v", round, got, want)
		}
	}
}

func TestSanitizeHP(t *testing.T) {
	cases := map[int]int{-5: 0, 0: 0, 50: 50, 100: 100, 150: 100}
	for hp, want := range cases {
		if got := sanitizeHP(hp); got != want {
			t.Errorf("sanitizeHP(%d) = %d, want %d", hp, got, want)
		}
	}
}

func TestResolveBattleShutout(t *testing.T) {
	game := battleGame(1, 4)
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 2, 0)

	result := resolveBattle(game, prompt)

	if result.Tie {
		t.Fatal("expected decisive result, got tie")
	}
	if result.WinnerID != 1 || result.LoserID != 2 {
		t.Fatalf("expected winner=1 loser=2, got winner=%d loser=%d", result.WinnerID, result.LoserID)
	}
	// base 35, combo bonus 35*2/4 = 17.5, total 52.5.
	if result.Damage != 52 {
		t.Errorf("expected damage 52, got %d", result.Damage)
	}
	loser := findPlayer(game, 2)
	if loser.HP != 47 {
		t.Errorf("expected loser hp 47, got %d", loser.HP)
	}
	if loser.KnockedOut {
		t.Error("loser should not be knocked out")
	}
	if loser.LossStreak != 1 || loser.WinStreak != 0 {
		t.Errorf("expected loser streaks 1/0, got %d/%d", loser.LossStreak, loser.WinStreak)
	}
	if loser.Combo != 0 {
		t.Errorf("shutout loser combo should reset, got %d", loser.Combo)
	}
	winner := findPlayer(game, 1)
	if winner.HP != startingHP {
		t.Errorf("winner hp should be untouched, got %d", winner.HP)
	}
	if winner.WinStreak != 1 || winner.Combo != 2 {
		t.Errorf("expected winner streak 1 combo 2, got %d/%d", winner.WinStreak, winner.Combo)
	}
}

func TestResolveBattleSplitVote(t *testing.T) {
	game := battleGame(1, 5)
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 2, 1)

	result := resolveBattle(game, prompt)

	// base 2/3*35 = 23.33, combo bonus 23.33*2/5 = 9.33, total 32.67.
	if result.Damage != 32 {
		t.Errorf("expected damage 32, got %d", result.Damage)
	}
	loser := findPlayer(game, 2)
	if loser.HP != 67 {
		t.Errorf("expected loser hp 67, got %d", loser.HP)
	}
	// One vote keeps the loser's combo alive.
	if loser.Combo != 1 {
		t.Errorf("expected loser combo 1, got %d", loser.Combo)
	}
}

func TestResolveBattleRoundTwoMultiplier(t *testing.T) {
	game := battleGame(2, 4)
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 2, 0)

	result := resolveBattle(game, prompt)

	// base 35*1.3 = 45.5, combo bonus 45.5*2/4 = 22.75, total 68.25.
	if result.Damage != 68 {
		t.Errorf("expected damage 68, got %d", result.Damage)
	}
	if hp := findPlayer(game, 2).HP; hp != 31 {
		t.Errorf("expected loser hp 31, got %d", hp)
	}
}

func TestResolveBattleWinStreakBonus(t *testing.T) {
	game := battleGame(1, 4)
	findPlayer(game, 1).WinStreak = 1
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 2, 0)

	result := resolveBattle(game, prompt)

	// base 35, +15 flat on the second straight win, combo bonus 17.5.
	if result.Damage != 67 {
		t.Errorf("expected damage 67, got %d", result.Damage)
	}
	if hp := findPlayer(game, 2).HP; hp != 32 {
		t.Errorf("expected loser hp 32, got %d", hp)
	}
	if streak := findPlayer(game, 1).WinStreak; streak != 2 {
		t.Errorf("expected winner streak 2, got %d", streak)
	}
}

func TestResolveBattleStreakKnockout(t *testing.T) {
	game := battleGame(1, 4)
	findPlayer(game, 1).WinStreak = 2
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 0)

	result := resolveBattle(game, prompt)

	loser := findPlayer(game, 2)
	if !loser.KnockedOut || loser.HP != 0 {
		t.Fatalf("three straight wins should knock out, hp=%d ko=%t", loser.HP, loser.KnockedOut)
	}
	if len(result.KnockedOut) != 1 || result.KnockedOut[0] != 2 {
		t.Errorf("expected knockout of player 2, got %v", result.KnockedOut)
	}
	if captain, ok := result.CornerMen[2]; !ok || captain != 1 {
		t.Errorf("expected player 2 in player 1's corner, got %v", result.CornerMen)
	}
	if loser.Role != roleCornerMan || loser.TeamID != 1 || loser.CornerManRound != 1 {
		t.Errorf("corner man fields not set: role=%s team=%d round=%d", loser.Role, loser.TeamID, loser.CornerManRound)
	}
	if streak := findPlayer(game, 1).WinStreak; streak != 3 {
		t.Errorf("expected winner streak 3, got %d", streak)
	}
}

func TestResolveBattleNoVotes(t *testing.T) {
	game := battleGame(1, 4)
	findPlayer(game, 1).WinStreak = 2
	findPlayer(game, 1).Combo = 3
	findPlayer(game, 2).LossStreak = 1
	prompt := stageBattle(game, "answer a", "answer b")

	result := resolveBattle(game, prompt)

	if result.TotalVotes != 0 || result.WinnerID != 0 {
		t.Fatalf("expected neutral result, got %+v", result)
	}
	for _, id := range []int{1, 2} {
		p := findPlayer(game, id)
		if p.HP != startingHP {
			t.Errorf("player %d hp should be untouched, got %d", id, p.HP)
		}
		if p.WinStreak != 0 || p.LossStreak != 0 || p.Combo != 0 {
			t.Errorf("player %d momentum should reset, got %d/%d/%d", id, p.WinStreak, p.LossStreak, p.Combo)
		}
	}
}

func TestResolveBattleMissingSubmission(t *testing.T) {
	game := battleGame(1, 4)
	game.Prompts = append(game.Prompts, PromptEntry{ID: 1, RoundNumber: 1, Battlers: [2]int{1, 2}})
	game.Submissions = append(game.Submissions, SubmissionEntry{ID: 1, PromptID: 1, PlayerID: 1, Text: "only one"})
	findPlayer(game, 1).HP = -3

	result := resolveBattle(game, &game.Prompts[0])

	if result.WinnerID != 0 || result.Damage != 0 {
		t.Fatalf("incomplete battle should not deal damage, got %+v", result)
	}
	p := findPlayer(game, 1)
	if p.HP != 0 || !p.KnockedOut {
		t.Errorf("corrupt hp should clamp to 0 and mark knockout, hp=%d ko=%t", p.HP, p.KnockedOut)
	}
}

func TestResolveTieNoKnockout(t *testing.T) {
	game := battleGame(1, 4)
	findPlayer(game, 1).WinStreak = 1
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 1)

	result := resolveBattle(game, prompt)

	if !result.Tie {
		t.Fatal("expected tie")
	}
	// 50% of the round-adjusted cap: 0.5*35 = 17.5.
	if result.Damage != 17 {
		t.Errorf("expected damage 17, got %d", result.Damage)
	}
	if result.WinnerID != 0 || len(result.KnockedOut) != 0 {
		t.Errorf("nobody should win or drop: %+v", result)
	}
	for _, id := range []int{1, 2} {
		p := findPlayer(game, id)
		if p.HP != 82 {
			t.Errorf("player %d expected hp 82, got %d", id, p.HP)
		}
		if p.WinStreak != 0 || p.LossStreak != 1 {
			t.Errorf("player %d streaks should be 0/1, got %d/%d", id, p.WinStreak, p.LossStreak)
		}
		if p.Combo != 1 {
			t.Errorf("player %d combo should carry their vote, got %d", id, p.Combo)
		}
	}
}

func TestResolveTieRoundTwoDamage(t *testing.T) {
	game := battleGame(2, 4)
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 1)

	result := resolveBattle(game, prompt)

	// 0.5*35*1.3 = 22.75.
	if result.Damage != 22 {
		t.Errorf("expected damage 22, got %d", result.Damage)
	}
	if hp := findPlayer(game, 1).HP; hp != 77 {
		t.Errorf("expected hp 77, got %d", hp)
	}
}

func TestResolveTieSingleKnockout(t *testing.T) {
	game := battleGame(1, 4)
	findPlayer(game, 1).HP = 10
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 1)

	result := resolveBattle(game, prompt)

	if result.WinnerID != 2 || result.LoserID != 1 {
		t.Fatalf("expected survivor 2 over 1, got %d/%d", result.WinnerID, result.LoserID)
	}
	eliminated := findPlayer(game, 1)
	if eliminated.HP != 0 || !eliminated.KnockedOut {
		t.Errorf("player 1 should be knocked out, hp=%d", eliminated.HP)
	}
	survivor := findPlayer(game, 2)
	if survivor.HP != 82 || survivor.WinStreak != 1 {
		t.Errorf("survivor should keep hp 82 with streak 1, got hp=%d streak=%d", survivor.HP, survivor.WinStreak)
	}
	if eliminated.Role != roleCornerMan || eliminated.TeamID != 2 {
		t.Errorf("loser should join winner's corner, role=%s team=%d", eliminated.Role, eliminated.TeamID)
	}
}

func TestResolveTieDoubleKnockout(t *testing.T) {
	sameTime := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		textA, textB string
		timeA, timeB time.Time
		wantSurvivor int
	}{
		{"shorter text wins", "a much longer answer", "short", sameTime, sameTime.Add(time.Second), 2},
		{"shorter text wins reversed", "short", "a much longer answer", sameTime.Add(time.Second), sameTime, 1},
		{"earlier timestamp wins", "same1", "same2", sameTime.Add(time.Second), sameTime, 2},
		{"earlier timestamp wins reversed", "same1", "same2", sameTime, sameTime.Add(time.Second), 1},
		{"submission order wins", "same1", "same2", sameTime, sameTime, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			game := battleGame(1, 4)
			findPlayer(game, 1).HP = 10
			findPlayer(game, 2).HP = 10
			prompt := stageBattle(game, tc.textA, tc.textB)
			game.Submissions[0].SubmittedAt = tc.timeA
			game.Submissions[1].SubmittedAt = tc.timeB
			castVotes(game, 1, 1)

			result := resolveBattle(game, prompt)

			if result.WinnerID != tc.wantSurvivor {
				t.Fatalf("expected survivor %d, got %d", tc.wantSurvivor, result.WinnerID)
			}
			survivor := findPlayer(game, tc.wantSurvivor)
			if survivor.HP != 1 || survivor.KnockedOut {
				t.Errorf("survivor should stand at 1 hp, got hp=%d ko=%t", survivor.HP, survivor.KnockedOut)
			}
			if survivor.WinStreak != 1 {
				t.Errorf("survivor streak should be 1, got %d", survivor.WinStreak)
			}
			eliminated := findPlayer(game, result.LoserID)
			if eliminated.HP != 0 || !eliminated.KnockedOut {
				t.Errorf("eliminated battler should be at 0 hp, got %d", eliminated.HP)
			}
			if eliminated.TeamID != survivor.ID {
				t.Errorf("eliminated battler should corner for %d, got team %d", survivor.ID, eliminated.TeamID)
			}
		})
	}
}

func TestNoCornerManAfterRoundTwo(t *testing.T) {
	game := battleGame(3, 4)
	findPlayer(game, 2).HP = 5
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 0)

	result := resolveBattle(game, prompt)

	loser := findPlayer(game, 2)
	if !loser.KnockedOut {
		t.Fatal("expected knockout")
	}
	if len(result.CornerMen) != 0 {
		t.Errorf("no corner-man assignment from round 3 on, got %v", result.CornerMen)
	}
	if loser.Role != roleFighter {
		t.Errorf("knocked-out fighter should keep role, got %s", loser.Role)
	}
}

func TestCornerManAssignedOverExistingCaptain(t *testing.T) {
	game := battleGame(2, 4)
	// Player 3 already corners for player 1 from round 1.
	findPlayer(game, 3).Role = roleCornerMan
	findPlayer(game, 3).TeamID = 1
	findPlayer(game, 3).CornerManRound = 1
	findPlayer(game, 2).HP = 5
	prompt := stageBattle(game, "answer a", "answer b")
	castVotes(game, 1, 0)

	result := resolveBattle(game, prompt)

	if captain, ok := result.CornerMen[2]; !ok || captain != 1 {
		t.Fatalf("assignment should proceed despite existing corner man, got %v", result.CornerMen)
	}
	loser := findPlayer(game, 2)
	if loser.Role != roleCornerMan || loser.TeamID != 1 || loser.CornerManRound != 2 {
		t.Errorf("corner man fields not set: role=%s team=%d round=%d", loser.Role, loser.TeamID, loser.CornerManRound)
	}
}
