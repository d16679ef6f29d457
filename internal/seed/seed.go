// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"cookbook/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	NumComments int
	NumLikes    int
	ShouldClean bool
	// MaxDays bounds how far back generated created_at timestamps spread.
	MaxDays int
	// DryRun builds entities without writing to the database.
	DryRun bool
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Much faster for large user counts; dev only.
	SkipBcrypt bool
}

// Distribution describes how generated recipes split across difficulty labels.
type Distribution struct {
	Easy   int // percent
	Medium int
	Hard   int
}

var defaultDistribution = Distribution{Easy: 50, Medium: 30, Hard: 20}

// computeCounts splits total across the distribution, giving remainder to easy.
func computeCounts(total int, d Distribution) (easy, medium, hard int) {
	medium = total * d.Medium / 100
	hard = total * d.Hard / 100
	easy = total - medium - hard
	return easy, medium, hard
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, opts)

	categories, err := Categories(db)
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	log.Printf("✓ %d categories available", len(categories))

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	recipes, err := createRecipes(factory, users, categories, opts.NumRecipes)
	if err != nil {
		return fmt.Errorf("failed to create recipes: %w", err)
	}
	log.Printf("✓ %d recipes created", len(recipes))

	if len(recipes) > 0 {
		if err := createComments(factory, users, recipes, opts.NumComments); err != nil {
			return fmt.Errorf("failed to create comments: %w", err)
		}
		log.Printf("✓ %d comments created", opts.NumComments)

		liked, err := createLikes(factory, users, recipes, opts.NumLikes)
		if err != nil {
			return fmt.Errorf("failed to create likes: %w", err)
		}
		log.Printf("✓ %d likes created", liked)
	}

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, comments, recipe_categories, recipes, categories, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few fixed accounts so the demo login is predictable.
	if count >= 3 {
		for _, name := range []string{"alice", "bob", "test"} {
			user, err := f.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
			})
			if err != nil {
				continue
			}
			users = append(users, user)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

func createRecipes(f *Factory, users []*models.User, categories []models.Category, count int) ([]*models.Recipe, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	easy, medium, hard := computeCounts(count, defaultDistribution)
	difficulties := make([]string, 0, count)
	for i := 0; i < easy; i++ {
		difficulties = append(difficulties, "easy")
	}
	for i := 0; i < medium; i++ {
		difficulties = append(difficulties, "medium")
	}
	for i := 0; i < hard; i++ {
		difficulties = append(difficulties, "hard")
	}
	r.Shuffle(len(difficulties), func(i, j int) {
		difficulties[i], difficulties[j] = difficulties[j], difficulties[i]
	})

	recipes := make([]*models.Recipe, 0, count)
	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		recipe := f.BuildRecipe(user, difficulties[i])
		recipes = append(recipes, recipe)
	}

	if err := f.CreateRecipesBatch(recipes); err != nil {
		return nil, err
	}

	// Tag roughly two thirds of the recipes with 1-2 categories.
	if len(categories) > 0 && !f.opts.DryRun {
		for _, recipe := range recipes {
			if r.Float32() > 0.66 {
				continue
			}
			picks := []models.Category{categories[r.Intn(len(categories))]}
			if r.Float32() < 0.3 {
				picks = append(picks, categories[r.Intn(len(categories))])
			}
			if err := f.db.Model(recipe).Association("Categories").Append(&picks); err != nil {
				return nil, err
			}
		}
	}

	return recipes, nil
}

func createComments(f *Factory, users []*models.User, recipes []*models.Recipe, count int) error {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		recipe := recipes[r.Intn(len(recipes))]
		if _, err := f.CreateComment(user, recipe); err != nil {
			return err
		}
	}
	return nil
}

// createLikes spreads likes across user/recipe pairs. The unique pair
// constraint means collisions are skipped, so the created count can fall
// short of the requested one.
func createLikes(f *Factory, users []*models.User, recipes []*models.Recipe, count int) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0
	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		recipe := recipes[r.Intn(len(recipes))]
		if err := f.CreateLike(user, recipe); err != nil {
			continue
		}
		created++
	}
	return created, nil
}
