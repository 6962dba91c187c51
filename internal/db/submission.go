package db

import "time"

type Submission struct {
	ID        uint      `gorm:"primaryKey"`
	PromptID  uint      `gorm:"index;not null;uniqueIndex:idx_submissions_prompt_player"`
	PlayerID  uint      `gorm:"index;not null;uniqueIndex:idx_submissions_prompt_player"`
	Text      string    `gorm:"size:280;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
