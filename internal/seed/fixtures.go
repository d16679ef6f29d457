package seed

import (
	"fmt"
	"os"

	"cookbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixtures is a declarative seed file. Unlike the random generator it gives
// deterministic content, which suits demos and acceptance environments.
type Fixtures struct {
	Users      []FixtureUser     `yaml:"users"`
	Categories []FixtureCategory `yaml:"categories"`
	Recipes    []FixtureRecipe   `yaml:"recipes"`
}

// FixtureUser declares a user account. Password defaults to "password123".
type FixtureUser struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// FixtureCategory declares a recipe category.
type FixtureCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// FixtureRecipe declares a recipe. Author refers to a fixture user by
// username; Categories refer to fixture (or built-in) categories by name.
type FixtureRecipe struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Description string   `yaml:"description"`
	Ingredients []string `yaml:"ingredients"`
	Steps       []string `yaml:"steps"`
	Difficulty  string   `yaml:"difficulty"`
	PrepTime    *int     `yaml:"prep_time"`
	CookTime    *int     `yaml:"cook_time"`
	Servings    *int     `yaml:"servings"`
	Categories  []string `yaml:"categories"`
}

// LoadFixtures reads and parses a YAML fixture file.
func LoadFixtures(path string) (*Fixtures, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures Fixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &fixtures, nil
}

// Apply writes the fixture content to the database. Users and categories
// upsert by their natural keys so re-applying a file is safe; recipes are
// matched by title and author and skipped when already present.
func (f *Fixtures) Apply(db *gorm.DB) error {
	usersByName := make(map[string]*models.User, len(f.Users))
	for _, fu := range f.Users {
		password := fu.Password
		if password == "" {
			password = "password123"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := &models.User{
			Username: fu.Username,
			Email:    fu.Email,
			Password: string(hashed),
			IsActive: true,
		}
		err = db.Where(models.User{Username: fu.Username}).
			Attrs(models.User{Email: user.Email, Password: user.Password, IsActive: true}).
			FirstOrCreate(user).Error
		if err != nil {
			return fmt.Errorf("fixture user %s: %w", fu.Username, err)
		}
		usersByName[fu.Username] = user
	}

	categoriesByName := make(map[string]*models.Category, len(f.Categories))
	for _, fc := range f.Categories {
		category := &models.Category{Name: fc.Name, Description: fc.Description}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description"}),
		}).Create(category).Error
		if err != nil {
			return fmt.Errorf("fixture category %s: %w", fc.Name, err)
		}
		if category.ID == 0 {
			if err := db.Where("name = ?", fc.Name).First(category).Error; err != nil {
				return err
			}
		}
		categoriesByName[fc.Name] = category
	}

	for _, fr := range f.Recipes {
		author, ok := usersByName[fr.Author]
		if !ok {
			return fmt.Errorf("fixture recipe %q references unknown author %q", fr.Title, fr.Author)
		}

		var existing int64
		err := db.Model(&models.Recipe{}).
			Where("title = ? AND author_id = ?", fr.Title, author.ID).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			continue
		}

		recipe := &models.Recipe{
			Title:       fr.Title,
			Description: fr.Description,
			Ingredients: models.EncodeStringList(fr.Ingredients),
			Steps:       models.EncodeStringList(fr.Steps),
			Difficulty:  fr.Difficulty,
			PrepTime:    fr.PrepTime,
			CookTime:    fr.CookTime,
			Servings:    fr.Servings,
			AuthorID:    author.ID,
		}
		if err := db.Create(recipe).Error; err != nil {
			return fmt.Errorf("fixture recipe %q: %w", fr.Title, err)
		}

		for _, name := range fr.Categories {
			category, ok := categoriesByName[name]
			if !ok {
				category = &models.Category{}
				if err := db.Where("name = ?", name).First(category).Error; err != nil {
					return fmt.Errorf("fixture recipe %q references unknown category %q", fr.Title, name)
				}
				categoriesByName[name] = category
			}
			if err := db.Model(recipe).Association("Categories").Append(category); err != nil {
				return err
			}
		}
	}

	return nil
}
