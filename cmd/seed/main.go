// Command seed fills the development database with demo users, posts,
// comments, and likes.
package main

import (
	"flag"
	"log"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	if err := seed.Seed(db, hasher, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
