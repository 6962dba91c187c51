// Package prompts provides the writing-prompt corpus behind a small
// indexable interface so the dispenser can be driven by a fake in tests.
package prompts

import (
	"smacktalk/internal/db"

	"gorm.io/gorm"
)

type Source interface {
	Len() int
	Text(i int) string
}

type Static []string

func (s Static) Len() int { return len(s) }

func (s Static) Text(i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	return s[i]
}

// FromDB loads the corpus from the prompt_libraries table, ordered by
// corpus index so used-index history stays stable across restarts. Falls
// back to the embedded corpus when the table is empty or the DB is absent.
func FromDB(conn *gorm.DB) Source {
	if conn == nil {
		return Default()
	}
	var records []db.PromptLibrary
	if err := conn.Order("corpus_index").Find(&records).Error; err != nil {
		return Default()
	}
	if len(records) == 0 {
		return Default()
	}
	texts := make(Static, 0, len(records))
	for _, record := range records {
		texts = append(texts, record.Text)
	}
	return texts
}
