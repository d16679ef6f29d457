// Command main runs the database seeder for the Cookbook API.
package main

import (
	"flag"
	"log"

	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numRecipes := flag.Int("recipes", 200, "Number of recipes to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	numLikes := flag.Int("likes", 800, "Number of likes to spread across recipes")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext marker passwords (dev only, much faster)")
	fixtures := flag.String("fixtures", "", "Apply a YAML fixture file instead of generating random data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *fixtures != "" {
		log.Printf("Applying fixtures from %s (ignoring count flags)\n", *fixtures)
		loaded, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		if err := loaded.Apply(db); err != nil {
			log.Fatalf("Failed to apply fixtures: %v", err)
		}
		log.Println("🎉 Fixtures applied successfully!")
		return
	}

	log.Printf("Target: %d users, %d recipes, %d comments, %d likes, clean=%v\n",
		*numUsers, *numRecipes, *numComments, *numLikes, *shouldClean)

	err = seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumRecipes:  *numRecipes,
		NumComments: *numComments,
		NumLikes:    *numLikes,
		ShouldClean: *shouldClean,
		SkipBcrypt:  *skipBcrypt,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
