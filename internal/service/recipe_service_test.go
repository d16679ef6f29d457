package service

import (
	"context"
	"strings"
	"testing"

	"cookbook/internal/models"
	"cookbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recipeRepoStub is a stub for repository.RecipeRepository.
type recipeRepoStub struct {
	createFn     func(context.Context, *models.Recipe, []models.Category) error
	getByIDFn    func(context.Context, uint, uint) (*models.Recipe, error)
	listFn       func(context.Context, repository.RecipeFilter, int, int, uint) ([]*models.Recipe, error)
	updateFn     func(context.Context, *models.Recipe, []models.Category) error
	deleteFn     func(context.Context, uint) error
	isLikedFn    func(context.Context, uint, uint) (bool, error)
	likeFn       func(context.Context, uint, uint) error
	unlikeFn     func(context.Context, uint, uint) error
	countLikesFn func(context.Context, uint) (int64, error)
}

func (s *recipeRepoStub) Create(ctx context.Context, recipe *models.Recipe, categories []models.Category) error {
	return s.createFn(ctx, recipe, categories)
}
func (s *recipeRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Recipe, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *recipeRepoStub) List(ctx context.Context, filter repository.RecipeFilter, limit, offset int, currentUserID uint) ([]*models.Recipe, error) {
	return s.listFn(ctx, filter, limit, offset, currentUserID)
}
func (s *recipeRepoStub) Update(ctx context.Context, recipe *models.Recipe, categories []models.Category) error {
	return s.updateFn(ctx, recipe, categories)
}
func (s *recipeRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *recipeRepoStub) IsLiked(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Like(ctx context.Context, userID, recipeID uint) error {
	return s.likeFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) Unlike(ctx context.Context, userID, recipeID uint) error {
	return s.unlikeFn(ctx, userID, recipeID)
}
func (s *recipeRepoStub) CountLikes(ctx context.Context, recipeID uint) (int64, error) {
	return s.countLikesFn(ctx, recipeID)
}

func noopRecipeRepo() *recipeRepoStub {
	return &recipeRepoStub{
		createFn: func(_ context.Context, _ *models.Recipe, _ []models.Category) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, AuthorID: 1}, nil
		},
		listFn: func(_ context.Context, _ repository.RecipeFilter, _, _ int, _ uint) ([]*models.Recipe, error) {
			return nil, nil
		},
		updateFn:     func(_ context.Context, _ *models.Recipe, _ []models.Category) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
		isLikedFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:       func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:     func(_ context.Context, _, _ uint) error { return nil },
		countLikesFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getByIDsFn  func(context.Context, []uint) ([]models.Category, error)
	getByNameFn func(context.Context, string) (*models.Category, error)
	listFn      func(context.Context, int, int) ([]models.Category, error)
	updateFn    func(context.Context, *models.Category) error
	deleteFn    func(context.Context, uint) error
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *categoryRepoStub) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getByNameFn(ctx, name)
}
func (s *categoryRepoStub) List(ctx context.Context, limit, offset int) ([]models.Category, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn:  func(_ context.Context, _ *models.Category) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) { return &models.Category{ID: id}, nil },
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Category, error) {
			categories := make([]models.Category, len(ids))
			for i, id := range ids {
				categories[i] = models.Category{ID: id}
			}
			return categories, nil
		},
		getByNameFn: func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		listFn:      func(_ context.Context, _, _ int) ([]models.Category, error) { return nil, nil },
		updateFn:    func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func TestRecipeService_CreateRecipe_Validation(t *testing.T) {
	t.Parallel()

	svc := NewRecipeService(noopRecipeRepo(), noopCategoryRepo())
	ctx := context.Background()

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateRecipe(ctx, CreateRecipeInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("custom difficulty label accepted", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateRecipe(ctx, CreateRecipeInput{UserID: 1, Title: "Pasta", Difficulty: "expert"})
		assert.NoError(t, err)
	})

	t.Run("overlong difficulty", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateRecipe(ctx, CreateRecipeInput{UserID: 1, Title: "Pasta", Difficulty: strings.Repeat("x", 51)})
		assertValidationError(t, err)
	})

	t.Run("negative prep time", func(t *testing.T) {
		t.Parallel()
		prep := -5
		_, err := svc.CreateRecipe(ctx, CreateRecipeInput{UserID: 1, Title: "Pasta", PrepTime: &prep})
		assertValidationError(t, err)
	})

	t.Run("zero servings", func(t *testing.T) {
		t.Parallel()
		servings := 0
		_, err := svc.CreateRecipe(ctx, CreateRecipeInput{UserID: 1, Title: "Pasta", Servings: &servings})
		assertValidationError(t, err)
	})
}

func TestRecipeService_CreateRecipe_Success(t *testing.T) {
	t.Parallel()

	var created *models.Recipe
	var attachedCategories []models.Category
	recipeRepo := noopRecipeRepo()
	recipeRepo.createFn = func(_ context.Context, r *models.Recipe, categories []models.Category) error {
		r.ID = 7
		created = r
		attachedCategories = categories
		return nil
	}
	recipeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
		return &models.Recipe{ID: id, Title: "Pasta", AuthorID: 1}, nil
	}

	svc := NewRecipeService(recipeRepo, noopCategoryRepo())
	recipe, err := svc.CreateRecipe(context.Background(), CreateRecipeInput{
		UserID:      1,
		Title:       "Pasta",
		Ingredients: []string{"pasta", "salt"},
		Steps:       []string{"boil", "drain"},
		CategoryIDs: []uint{3, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), recipe.ID)
	assert.Equal(t, uint(1), created.AuthorID)
	assert.JSONEq(t, `["pasta","salt"]`, created.Ingredients)
	assert.JSONEq(t, `["boil","drain"]`, created.Steps)
	assert.Len(t, attachedCategories, 2)
}

func TestRecipeService_CreateRecipe_UnknownCategory(t *testing.T) {
	t.Parallel()

	categoryRepo := noopCategoryRepo()
	categoryRepo.getByIDsFn = func(_ context.Context, _ []uint) ([]models.Category, error) {
		return nil, models.NewNotFoundError("Category", 99)
	}

	svc := NewRecipeService(noopRecipeRepo(), categoryRepo)
	_, err := svc.CreateRecipe(context.Background(), CreateRecipeInput{
		UserID:      1,
		Title:       "Pasta",
		CategoryIDs: []uint{99},
	})
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestRecipeService_UpdateRecipe_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-owner cannot update", func(t *testing.T) {
		t.Parallel()
		recipeRepo := noopRecipeRepo()
		recipeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, AuthorID: 10}, nil
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		title := "Stolen"
		_, err := svc.UpdateRecipe(context.Background(), UpdateRecipeInput{UserID: 1, RecipeID: 5, Title: &title})
		assertForbiddenError(t, err)
	})

	t.Run("owner applies partial update", func(t *testing.T) {
		t.Parallel()
		var saved *models.Recipe
		recipeRepo := noopRecipeRepo()
		recipeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, AuthorID: 1, Title: "Old", Description: "keep me"}, nil
		}
		recipeRepo.updateFn = func(_ context.Context, r *models.Recipe, _ []models.Category) error {
			saved = r
			return nil
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		title := "New"
		_, err := svc.UpdateRecipe(context.Background(), UpdateRecipeInput{UserID: 1, RecipeID: 5, Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "New", saved.Title)
		assert.Equal(t, "keep me", saved.Description)
	})

	t.Run("nil category ids leave categories untouched", func(t *testing.T) {
		t.Parallel()
		var replaced []models.Category
		touched := false
		recipeRepo := noopRecipeRepo()
		recipeRepo.updateFn = func(_ context.Context, _ *models.Recipe, categories []models.Category) error {
			replaced = categories
			touched = true
			return nil
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		_, err := svc.UpdateRecipe(context.Background(), UpdateRecipeInput{UserID: 1, RecipeID: 5})
		require.NoError(t, err)
		assert.True(t, touched)
		assert.Nil(t, replaced)
	})
}

func TestRecipeService_DeleteRecipe_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		deleted := uint(0)
		recipeRepo := noopRecipeRepo()
		recipeRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		require.NoError(t, svc.DeleteRecipe(context.Background(), 1, 5))
		assert.Equal(t, uint(5), deleted)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		t.Parallel()
		recipeRepo := noopRecipeRepo()
		recipeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return &models.Recipe{ID: id, AuthorID: 10}, nil
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		err := svc.DeleteRecipe(context.Background(), 1, 5)
		assertForbiddenError(t, err)
	})
}

func TestRecipeService_LikeRecipe(t *testing.T) {
	t.Parallel()

	t.Run("missing recipe", func(t *testing.T) {
		t.Parallel()
		recipeRepo := noopRecipeRepo()
		recipeRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Recipe, error) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		err := svc.LikeRecipe(context.Background(), 1, 404)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("duplicate like conflicts", func(t *testing.T) {
		t.Parallel()
		recipeRepo := noopRecipeRepo()
		recipeRepo.likeFn = func(_ context.Context, _, _ uint) error {
			return models.NewConflictError("Recipe already liked")
		}
		svc := NewRecipeService(recipeRepo, noopCategoryRepo())
		err := svc.LikeRecipe(context.Background(), 1, 5)
		assertAppErrorCode(t, err, "CONFLICT")
	})

	t.Run("unlike is idempotent", func(t *testing.T) {
		t.Parallel()
		svc := NewRecipeService(noopRecipeRepo(), noopCategoryRepo())
		assert.NoError(t, svc.UnlikeRecipe(context.Background(), 1, 5))
	})
}
