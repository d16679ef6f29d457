package models

// Category is a tag grouping recipes (breakfast, dessert, ...).
// Recipes and categories are many-to-many via the recipe_categories join table.
type Category struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"unique;not null" json:"name"`
	Description string   `json:"description,omitempty"`
	Recipes     []Recipe `gorm:"many2many:recipe_categories" json:"-"`
}
