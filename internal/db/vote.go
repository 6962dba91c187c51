package db

import "time"

type Vote struct {
	ID           uint      `gorm:"primaryKey"`
	PromptID     uint      `gorm:"index;not null;uniqueIndex:idx_votes_prompt_player"`
	PlayerID     uint      `gorm:"index;not null;uniqueIndex:idx_votes_prompt_player"`
	SubmissionID uint      `gorm:"index;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}
