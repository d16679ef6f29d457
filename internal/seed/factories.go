package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"cookbook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		IsActive: true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// dishName picks a plausible dish for the given difficulty.
func dishName(difficulty string) string {
	switch difficulty {
	case "easy":
		options := []func() string{gofakeit.Breakfast, gofakeit.Snack, gofakeit.Fruit}
		return options[gofakeit.Number(0, len(options)-1)]()
	case "hard":
		return gofakeit.Dinner()
	default:
		options := []func() string{gofakeit.Lunch, gofakeit.Dinner, gofakeit.Dessert}
		return options[gofakeit.Number(0, len(options)-1)]()
	}
}

// BuildRecipe constructs a recipe struct without persisting it.
// Useful for batching.
func (f *Factory) BuildRecipe(user *models.User, difficulty string, overrides ...func(*models.Recipe)) *models.Recipe {
	ingredientCount := gofakeit.Number(3, 10)
	ingredients := make([]string, 0, ingredientCount)
	for i := 0; i < ingredientCount; i++ {
		quantity := gofakeit.Number(1, 500)
		unit := []string{"g", "ml", "tbsp", "tsp", "cups", "pieces"}[gofakeit.Number(0, 5)]
		ingredients = append(ingredients, fmt.Sprintf("%d %s %s", quantity, unit, strings.ToLower(gofakeit.Vegetable())))
	}

	stepCount := gofakeit.Number(3, 8)
	steps := make([]string, 0, stepCount)
	for i := 0; i < stepCount; i++ {
		steps = append(steps, gofakeit.Sentence(gofakeit.Number(6, 14)))
	}

	prepTime := gofakeit.Number(5, 45)
	cookTime := gofakeit.Number(10, 120)
	servings := gofakeit.Number(1, 12)

	recipe := &models.Recipe{
		Title:       dishName(difficulty),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Ingredients: models.EncodeStringList(ingredients),
		Steps:       models.EncodeStringList(steps),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		PrepTime:    &prepTime,
		CookTime:    &cookTime,
		Servings:    &servings,
		Difficulty:  difficulty,
		AuthorID:    user.ID,
	}

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(recipe)
	}
	return recipe
}

// CreateRecipe constructs and persists a sample `models.Recipe` for the given user.
func (f *Factory) CreateRecipe(user *models.User, difficulty string, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := f.BuildRecipe(user, difficulty, overrides...)

	if f.opts.DryRun {
		f.nextID++
		recipe.ID = f.nextID
		log.Printf("[dry-run] CreateRecipe: author=%d title=%q", recipe.AuthorID, recipe.Title)
		return recipe, nil
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateRecipesBatch persists multiple recipes in a single DB call when possible.
func (f *Factory) CreateRecipesBatch(recipes []*models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, recipe := range recipes {
			f.nextID++
			recipe.ID = f.nextID
		}
		log.Printf("[dry-run] CreateRecipesBatch: %d recipes (no DB write)", len(recipes))
		return nil
	}
	return f.db.Create(&recipes).Error
}

// CreateComment constructs and persists a sample `models.Comment` on the
// provided recipe authored by the provided user.
func (f *Factory) CreateComment(user *models.User, recipe *models.Recipe, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(gofakeit.Number(5, 15)),
		AuthorID: user.ID,
		RecipeID: recipe.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from `user` on `recipe`.
func (f *Factory) CreateLike(user *models.User, recipe *models.Recipe) error {
	if f.opts.DryRun {
		return nil
	}
	like := &models.Like{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	return f.db.Create(like).Error
}
