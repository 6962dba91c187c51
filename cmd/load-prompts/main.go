package main

import (
	"log"

	"smacktalk/internal/config"
	"smacktalk/internal/db"
	"smacktalk/internal/prompts"
)

// Seeds the prompt corpus into the prompt_libraries table so the server
// reads its prompts from the database instead of the embedded fallback.
func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	corpus := prompts.Default()
	inserted := 0
	for i := 0; i < corpus.Len(); i++ {
		entry := db.PromptLibrary{
			CorpusIndex: i,
			Text:        corpus.Text(i),
		}
		if err := conn.FirstOrCreate(&entry, db.PromptLibrary{CorpusIndex: i}).Error; err != nil {
			log.Fatalf("failed to upsert prompt: %v", err)
		}
		inserted++
	}
	log.Printf("loaded %d prompts", inserted)
}
