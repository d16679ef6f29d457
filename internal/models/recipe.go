package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipe represents a published recipe.
//
// Ingredients and Steps are persisted as JSON-encoded text columns and exposed
// as decoded string slices; LikesCount, CommentsCount and Liked are computed at
// query time and never stored.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"index;not null" json:"title"`
	Description string `json:"description,omitempty"`
	// Raw JSON-encoded lists as stored; see IngredientList/StepList for the
	// decoded view.
	Ingredients string `gorm:"type:text;not null" json:"-"`
	Steps       string `gorm:"type:text;not null" json:"-"`
	ImageURL    string `json:"image_url,omitempty"`
	PrepTime    *int   `json:"prep_time,omitempty"` // minutes
	CookTime    *int   `json:"cook_time,omitempty"` // minutes
	Servings    *int   `json:"servings,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"` // easy, medium, hard (not enforced)
	AuthorID    uint   `gorm:"not null" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID" json:"author"`

	IngredientList []string `gorm:"-" json:"ingredients"`
	StepList       []string `gorm:"-" json:"steps"`

	Categories []Category `gorm:"many2many:recipe_categories" json:"categories"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Liked indicates whether the current requesting user liked this recipe (computed)
	Liked bool `gorm:"->;-:migration" json:"liked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AfterFind decodes the stored ingredient/step text into the list fields.
// Malformed stored text yields empty lists rather than failing the read.
func (r *Recipe) AfterFind(_ *gorm.DB) error {
	r.IngredientList = DecodeStringList(r.Ingredients)
	r.StepList = DecodeStringList(r.Steps)
	if r.Categories == nil {
		r.Categories = []Category{}
	}
	return nil
}
