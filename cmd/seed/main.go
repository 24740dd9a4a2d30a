// Command seed populates the database with demo users, artworks, and
// a social mesh of follows, likes, saves, and comments.
package main

import (
	"flag"
	"log"

	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "Number of users to create")
	flag.IntVar(&opts.ArtworksPerUser, "artworks", opts.ArtworksPerUser, "Artworks per user")
	flag.IntVar(&opts.MaxDays, "days", opts.MaxDays, "Spread created_at over this many past days")
	flag.StringVar(&opts.Password, "password", opts.Password, "Password shared by all seeded users")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Printf("Seeding %d users with %d artworks each...", opts.Users, opts.ArtworksPerUser)
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done. All seeded users share the password %q.", opts.Password)
}
