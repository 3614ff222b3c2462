// Command seed populates the development database with sample users, blogs,
// comments, likes and follows.
package main

import (
	"flag"
	"log"

	"bloggy/internal/config"
	"bloggy/internal/database"
	"bloggy/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	numUsers := flag.Int("users", 20, "number of users to create")
	numBlogs := flag.Int("blogs", 60, "number of blogs to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	fast := flag.Bool("fast", false, "skip bcrypt hashing for faster seeding")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumBlogs:    *numBlogs,
		ShouldClean: *clean,
		SkipBcrypt:  *fast,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
