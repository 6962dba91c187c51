package server

import "time"

const (
	statusLobby        = "LOBBY"
	statusPrompts      = "PROMPTS"
	statusVoting       = "VOTING"
	statusRoundResults = "ROUND_RESULTS"
	statusResults      = "RESULTS"
)

const (
	roundStatusVoting = "VOTING"
	roundStatusReveal = "REVEAL"
)

const (
	roleFighter   = "FIGHTER"
	roleCornerMan = "CORNER_MAN"
)

const (
	startingHP      = 100
	maxHP           = 100
	pointsPerVote   = 100
	battlersPerBout = 2
)

type GameSummary struct {
	ID       string
	RoomCode string
	Status   string
	Players  int
}

type Game struct {
	ID               string
	DBID             uint
	RoomCode         string
	Status           string
	RoundStatus      string
	CurrentRound     int
	MaxRounds        int
	CurrentPromptID  int
	UsedPromptIdx    []int
	VIPID            int
	PlayerAuthTokens map[int]string
	Players          []Player
	Prompts          []PromptEntry
	Submissions      []SubmissionEntry
	Votes            []VoteEntry
	Messages         []MessageEntry
	NextPromptID     int
	NextSubmissionID int
}

type Player struct {
	ID             int
	DBID           uint
	Name           string
	Score          int
	IsVIP          bool
	HP             int
	KnockedOut     bool
	Role           string
	TeamID         int
	WinStreak      int
	LossStreak     int
	Combo          int
	CornerManRound int
}

// PromptEntry is one battle instance: a corpus prompt assigned to exactly
// two battlers for a given round. History is kept across rounds; the
// current round's prompts are a filter on RoundNumber.
type PromptEntry struct {
	ID          int
	DBID        uint
	RoundNumber int
	CorpusIndex int
	Text        string
	Battlers    [2]int
}

type SubmissionEntry struct {
	ID          int
	DBID        uint
	PromptID    int
	PlayerID    int
	Text        string
	SubmittedAt time.Time
}

type VoteEntry struct {
	DBID         uint
	PromptID     int
	PlayerID     int
	SubmissionID int
}

type MessageEntry struct {
	PlayerID int
	Text     string
	SentAt   time.Time
}

func findPlayer(game *Game, playerID int) *Player {
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			return &game.Players[i]
		}
	}
	return nil
}

func promptByID(game *Game, promptID int) *PromptEntry {
	for i := range game.Prompts {
		if game.Prompts[i].ID == promptID {
			return &game.Prompts[i]
		}
	}
	return nil
}

// currentRoundPrompts returns the active round's battles in creation order.
func currentRoundPrompts(game *Game) []*PromptEntry {
	var prompts []*PromptEntry
	for i := range game.Prompts {
		if game.Prompts[i].RoundNumber == game.CurrentRound {
			prompts = append(prompts, &game.Prompts[i])
		}
	}
	return prompts
}

func submissionsForPrompt(game *Game, promptID int) []*SubmissionEntry {
	var subs []*SubmissionEntry
	for i := range game.Submissions {
		if game.Submissions[i].PromptID == promptID {
			subs = append(subs, &game.Submissions[i])
		}
	}
	return subs
}

func votesForPrompt(game *Game, promptID int) []*VoteEntry {
	var votes []*VoteEntry
	for i := range game.Votes {
		if game.Votes[i].PromptID == promptID {
			votes = append(votes, &game.Votes[i])
		}
	}
	return votes
}

func isBattler(prompt *PromptEntry, playerID int) bool {
	return prompt.Battlers[0] == playerID || prompt.Battlers[1] == playerID
}

func cornerManFor(game *Game, captainID int) *Player {
	for i := range game.Players {
		if game.Players[i].Role == roleCornerMan && game.Players[i].TeamID == captainID {
			return &game.Players[i]
		}
	}
	return nil
}
