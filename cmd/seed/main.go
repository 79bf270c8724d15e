// Command seed fills the database with demo users, showcases and engagement.
package main

import (
	"context"
	"flag"
	"log"

	"creativeapp/internal/config"
	"creativeapp/internal/database"
	"creativeapp/internal/observability"
	"creativeapp/internal/seed"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	perUser := flag.Int("showcases", defaults.ShowcasesPerUser, "Showcases per user")
	comments := flag.Int("comments", defaults.CommentsPerPost, "Comments per showcase")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	skillsOnly := flag.Bool("skills-only", false, "Only upsert the skill catalog")
	shouldClean := flag.Bool("clean", false, "Remove all data before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.ConfigureLogger(cfg.Env, cfg.LogFormat, cfg.LogLevel)
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s, err := seed.NewSeeder(db, *randSeed)
	if err != nil {
		log.Fatalf("Failed to create seeder: %v", err)
	}

	ctx := context.Background()
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *skillsOnly {
		if _, err := s.SeedSkills(ctx); err != nil {
			log.Fatalf("Skill seeding failed: %v", err)
		}
		return
	}

	opts := defaults
	opts.Users = *numUsers
	opts.ShowcasesPerUser = *perUser
	opts.CommentsPerPost = *comments
	summary, err := s.SeedCommunity(ctx, opts)
	if err != nil {
		log.Fatalf("Community seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d showcases, %d comments, %d replies, %d follows, %d votes",
		summary.Users, summary.Showcases, summary.Comments, summary.Replies, summary.Follows, summary.Votes)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
