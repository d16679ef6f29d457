package seed

import (
	"fmt"

	"cookbook/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInCategory is a permanent category every environment gets.
type BuiltInCategory struct {
	Name        string
	Description string
}

// BuiltInCategories defines the permanent recipe categories.
var BuiltInCategories = []BuiltInCategory{
	{Name: "breakfast", Description: "Morning meals and brunch."},
	{Name: "lunch", Description: "Midday meals, salads, and sandwiches."},
	{Name: "dinner", Description: "Main courses and evening meals."},
	{Name: "dessert", Description: "Sweets, cakes, and pastries."},
	{Name: "appetizer", Description: "Starters and small plates."},
	{Name: "soup", Description: "Soups, stews, and broths."},
	{Name: "salad", Description: "Leafy and grain salads."},
	{Name: "baking", Description: "Breads, doughs, and baked goods."},
	{Name: "vegetarian", Description: "Meat-free dishes."},
	{Name: "vegan", Description: "Fully plant-based dishes."},
	{Name: "gluten-free", Description: "Dishes without gluten."},
	{Name: "drinks", Description: "Smoothies, cocktails, and hot drinks."},
}

// Categories upserts the built-in categories and returns the full set.
// Safe to run repeatedly; descriptions follow the current definitions.
func Categories(db *gorm.DB) ([]models.Category, error) {
	for _, item := range BuiltInCategories {
		category := models.Category{
			Name:        item.Name,
			Description: item.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description"}),
		}).Create(&category).Error
		if err != nil {
			return nil, fmt.Errorf("seed built-in category %s: %w", item.Name, err)
		}
	}

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
