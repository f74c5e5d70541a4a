// Normalizes skill progress values across all saved analyses.
//
// Progress is clamped on every write path, but rows imported from older
// exports can carry out-of-range values. Run this once after an import.
//
// Usage: go run scripts/normalize_history.go

package main

import (
	"log"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"
	"careercoach_backend/pkg/database"
	"careercoach_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var entries []model.AnalyzedJob
	if err := db.Find(&entries).Error; err != nil {
		log.Fatalf("failed to load history: %v", err)
	}

	fixed := 0
	for i := range entries {
		changed := false
		for j := range entries[i].Skills {
			clamped := util.ClampProgress(entries[i].Skills[j].Progress)
			if clamped != entries[i].Skills[j].Progress {
				entries[i].Skills[j].Progress = clamped
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := db.Model(&entries[i]).Update("skills", entries[i].Skills).Error; err != nil {
			log.Printf("failed to update entry %q: %v", entries[i].Title, err)
			continue
		}
		fixed++
	}

	log.Printf("normalized %d of %d history entries", fixed, len(entries))
}
