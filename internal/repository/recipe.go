// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"cookbook/internal/cache"
	"cookbook/internal/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows recipe listings.
type RecipeFilter struct {
	CategoryID uint   // 0 means no category filter
	Search     string // matches against title when non-empty
	AuthorID   uint   // 0 means any author
}

// RecipeRepository defines the interface for recipe data operations
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe, categories []models.Category) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe, categories []models.Category) error
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, recipeID uint) (bool, error)
	Like(ctx context.Context, userID, recipeID uint) error
	Unlike(ctx context.Context, userID, recipeID uint) error
	CountLikes(ctx context.Context, recipeID uint) (int64, error)
}

// recipeRepository implements RecipeRepository
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, categories []models.Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Create(recipe).Error; err != nil {
			return err
		}
		if len(categories) > 0 {
			return tx.Model(recipe).Association("Categories").Replace(categories)
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	key := cache.RecipeKey(id)

	var err error
	if currentUserID == 0 {
		// Anonymous view is shared; serve it cache-aside.
		err = cache.CacheAside(ctx, key, &recipe, cache.RecipeTTL, func() error {
			return r.applyRecipeDetails(r.db.WithContext(ctx), 0).
				Preload("Author").
				Preload("Categories").
				First(&recipe, id).Error
		})
	} else {
		err = r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
			Preload("Author").
			Preload("Categories").
			First(&recipe, id).Error
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}

	// DB reads decode the stored lists in the AfterFind hook; cache hits carry
	// them in the payload already. Only normalize nil slices here.
	if recipe.IngredientList == nil {
		recipe.IngredientList = []string{}
	}
	if recipe.StepList == nil {
		recipe.StepList = []string{}
	}
	if recipe.Categories == nil {
		recipe.Categories = []models.Category{}
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	q := r.applyRecipeDetails(r.db.WithContext(ctx), currentUserID).
		Preload("Author").
		Preload("Categories")

	if filter.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		q = q.Joins("JOIN recipe_categories rc ON rc.recipe_id = recipes.id").
			Where("rc.category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		// Case-sensitive substring match on the title.
		q = q.Where("recipes.title LIKE ?", "%"+filter.Search+"%")
	}

	// Creation order; id breaks ties for rows sharing a timestamp so
	// pagination stays stable.
	err := q.Order("recipes.created_at, recipes.id").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

// applyRecipeDetails adds subqueries to fetch counts and liked status in a single query.
func (r *recipeRepository) applyRecipeDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "recipes.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.recipe_id = recipes.id) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.recipe_id = recipes.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.recipe_id = recipes.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, categories []models.Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories", "Author").Save(recipe).Error; err != nil {
			return err
		}
		if categories != nil {
			return tx.Model(recipe).Association("Categories").Replace(categories)
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

// Delete removes the recipe and its dependents (likes, comments, category
// links) in one transaction.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_categories WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

func (r *recipeRepository) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the like row atomically. ON CONFLICT DO NOTHING makes
// concurrent requests race-safe; a zero rows-affected result means the like
// already existed and is reported as a conflict.
func (r *recipeRepository) Like(ctx context.Context, userID, recipeID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, recipe_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		userID, recipeID,
	)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return models.NewConflictError("Recipe already liked")
		}
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewConflictError("Recipe already liked")
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

// Unlike removes the like if present. Removing an absent like is not an error.
func (r *recipeRepository) Unlike(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipeID)
	return nil
}

func (r *recipeRepository) CountLikes(ctx context.Context, recipeID uint) (int64, error) {
	var count int64
	err := cache.CacheAside(ctx, cache.LikeCountKey(recipeID), &count, cache.LikeCountTTL, func() error {
		return r.db.WithContext(ctx).
			Model(&models.Like{}).
			Where("recipe_id = ?", recipeID).
			Count(&count).Error
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
