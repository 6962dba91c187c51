package db

import "time"

type Prompt struct {
	ID             uint      `gorm:"primaryKey"`
	GameID         uint      `gorm:"index;not null"`
	RoundNumber    int       `gorm:"not null"`
	Text           string    `gorm:"size:280;not null"`
	CorpusIndex    int       `gorm:"not null;default:-1"`
	FirstPlayerID  uint      `gorm:"not null"`
	SecondPlayerID uint      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Submissions    []Submission
	Votes          []Vote
}
