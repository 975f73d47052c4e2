// Command main runs the database seeder for FanVault.
package main

import (
	"flag"
	"log"

	"fanvault/internal/config"
	"fanvault/internal/database"
	"fanvault/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of member accounts to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	creatorEmail := flag.String("creator", "", "Email for the seeded creator account (defaults to creator@fanvault.dev)")
	flag.Parse()

	log.Println("FanVault Database Seeder")
	log.Printf("Target: %d members, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:     *numUsers,
		NumPosts:     *numPosts,
		ShouldClean:  *shouldClean,
		CreatorEmail: *creatorEmail,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
