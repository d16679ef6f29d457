package service

import (
	"context"

	"cookbook/internal/models"
	"cookbook/internal/observability"
	"cookbook/internal/repository"
	"cookbook/internal/validation"
)

type RecipeService struct {
	recipeRepo   repository.RecipeRepository
	categoryRepo repository.CategoryRepository
}

type CreateRecipeInput struct {
	UserID      uint
	Title       string
	Description string
	Ingredients []string
	Steps       []string
	ImageURL    string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	Difficulty  string
	CategoryIDs []uint
}

// UpdateRecipeInput carries a partial update; nil fields are left unchanged.
// A non-nil empty CategoryIDs slice clears the recipe's categories.
type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Title       *string
	Description *string
	Ingredients []string
	Steps       []string
	ImageURL    *string
	PrepTime    *int
	CookTime    *int
	Servings    *int
	Difficulty  *string
	CategoryIDs []uint
}

type ListRecipesInput struct {
	Filter        repository.RecipeFilter
	Limit         int
	Offset        int
	CurrentUserID uint
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	categoryRepo repository.CategoryRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if err := validation.ValidateRecipeTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateDifficulty(in.Difficulty); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validateDurations(in.PrepTime, in.CookTime, in.Servings); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:       in.Title,
		Description: in.Description,
		Ingredients: models.EncodeStringList(in.Ingredients),
		Steps:       models.EncodeStringList(in.Steps),
		ImageURL:    in.ImageURL,
		PrepTime:    in.PrepTime,
		CookTime:    in.CookTime,
		Servings:    in.Servings,
		Difficulty:  in.Difficulty,
		AuthorID:    in.UserID,
	}
	if err := s.recipeRepo.Create(ctx, recipe, categories); err != nil {
		return nil, err
	}
	observability.RecipesCreatedTotal.Inc()

	return s.recipeRepo.GetByID(ctx, recipe.ID, in.UserID)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint, currentUserID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id, currentUserID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.Recipe, error) {
	return s.recipeRepo.List(ctx, in.Filter, in.Limit, in.Offset, in.CurrentUserID)
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own recipes")
	}

	if in.Title != nil {
		if err := validation.ValidateRecipeTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		recipe.Title = *in.Title
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.Ingredients != nil {
		recipe.Ingredients = models.EncodeStringList(in.Ingredients)
	}
	if in.Steps != nil {
		recipe.Steps = models.EncodeStringList(in.Steps)
	}
	if in.ImageURL != nil {
		recipe.ImageURL = *in.ImageURL
	}
	if in.PrepTime != nil {
		recipe.PrepTime = in.PrepTime
	}
	if in.CookTime != nil {
		recipe.CookTime = in.CookTime
	}
	if in.Servings != nil {
		recipe.Servings = in.Servings
	}
	if in.Difficulty != nil {
		if err := validation.ValidateDifficulty(*in.Difficulty); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		recipe.Difficulty = *in.Difficulty
	}
	if err := validateDurations(recipe.PrepTime, recipe.CookTime, recipe.Servings); err != nil {
		return nil, err
	}

	var categories []models.Category
	if in.CategoryIDs != nil {
		categories, err = s.categoryRepo.GetByIDs(ctx, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Update(ctx, recipe, categories); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByID(ctx, in.RecipeID, in.UserID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.GetByID(ctx, recipeID, userID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own recipes")
	}
	return s.recipeRepo.Delete(ctx, recipeID)
}

// LikeRecipe records a like. Liking an already-liked recipe is a conflict.
func (s *RecipeService) LikeRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}
	if err := s.recipeRepo.Like(ctx, userID, recipeID); err != nil {
		return err
	}
	observability.LikesTotal.WithLabelValues("like").Inc()
	return nil
}

// UnlikeRecipe removes a like. Unliking a recipe that was never liked succeeds.
func (s *RecipeService) UnlikeRecipe(ctx context.Context, userID, recipeID uint) error {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return err
	}
	if err := s.recipeRepo.Unlike(ctx, userID, recipeID); err != nil {
		return err
	}
	observability.LikesTotal.WithLabelValues("unlike").Inc()
	return nil
}

func (s *RecipeService) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return false, err
	}
	return s.recipeRepo.IsLiked(ctx, userID, recipeID)
}

func (s *RecipeService) CountLikes(ctx context.Context, recipeID uint) (int64, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID, 0); err != nil {
		return 0, err
	}
	return s.recipeRepo.CountLikes(ctx, recipeID)
}

func validateDurations(prepTime, cookTime, servings *int) error {
	if prepTime != nil && *prepTime < 0 {
		return models.NewValidationError("prep_time must not be negative")
	}
	if cookTime != nil && *cookTime < 0 {
		return models.NewValidationError("cook_time must not be negative")
	}
	if servings != nil && *servings <= 0 {
		return models.NewValidationError("servings must be positive")
	}
	return nil
}
