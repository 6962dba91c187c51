package db

import "time"

type Player struct {
	ID             uint      `gorm:"primaryKey"`
	GameID         uint      `gorm:"index;not null;uniqueIndex:idx_players_game_name"`
	Name           string    `gorm:"size:64;not null;uniqueIndex:idx_players_game_name"`
	Score          int       `gorm:"not null;default:0"`
	IsVIP          bool      `gorm:"not null;default:false"`
	HP             int       `gorm:"not null;default:100"`
	KnockedOut     bool      `gorm:"not null;default:false"`
	Role           string    `gorm:"size:32;not null;default:'FIGHTER'"`
	TeamID         uint      `gorm:"not null;default:0"`
	WinStreak      int       `gorm:"not null;default:0"`
	LossStreak     int       `gorm:"not null;default:0"`
	Combo          int       `gorm:"not null;default:0"`
	CornerManRound int       `gorm:"not null;default:0"`
	JoinedAt       time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Submissions    []Submission
	Votes          []Vote
	Messages       []Message
}
