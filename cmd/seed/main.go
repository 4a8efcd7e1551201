// Command main runs the database seeder for Chirp.
package main

import (
	"flag"
	"log"

	"chirp/internal/config"
	"chirp/internal/database"
	"chirp/internal/repository"
	"chirp/internal/seed"
	"chirp/internal/service"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numTweets := flag.Int("tweets", 100, "Number of tweets to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Path to a YAML preset of fixed users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userService := service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		cfg.APIKeyPepper,
	)
	s := seed.New(db, userService.DigestAPIKey)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *preset != "" {
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("Failed to load preset: %v", err)
		}
		if err := s.ApplyPreset(p); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{NumUsers: *numUsers, NumTweets: *numTweets}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("All done. The demo user authenticates with api-key %q.", seed.DemoAPIKey)
}
