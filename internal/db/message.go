package db

import "time"

type Message struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    uint      `gorm:"index;not null"`
	PlayerID  uint      `gorm:"index;not null"`
	Text      string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
