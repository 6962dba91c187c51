package db

import "time"

// PromptLibrary holds the writing-prompt corpus. CorpusIndex preserves the
// position in the embedded list so used-index history survives reloads.
type PromptLibrary struct {
	ID          uint      `gorm:"primaryKey"`
	CorpusIndex int       `gorm:"uniqueIndex;not null"`
	Text        string    `gorm:"size:280;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}
