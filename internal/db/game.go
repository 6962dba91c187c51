package db

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	ID              uint           `gorm:"primaryKey"`
	RoomCode        string         `gorm:"size:8;uniqueIndex;not null"`
	Status          string         `gorm:"size:32;not null"`
	RoundStatus     string         `gorm:"size:32;not null;default:''"`
	CurrentRound    int            `gorm:"not null;default:1"`
	MaxRounds       int            `gorm:"not null;default:3"`
	CurrentPromptID uint           `gorm:"not null;default:0"`
	UsedPromptIdx   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null"`
	Players         []Player
	Prompts         []Prompt
	Messages        []Message
	Events          []Event
}
