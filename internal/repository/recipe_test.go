package repository

import (
	"context"
	"testing"

	"cookbook/internal/cache"
	"cookbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeRepository_CreateWithCategories(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	breakfast := createTestCategory(t, db, "breakfast")
	quick := createTestCategory(t, db, "quick")

	recipe := &models.Recipe{
		Title:       "Omelette",
		Ingredients: models.EncodeStringList([]string{"eggs", "butter"}),
		Steps:       models.EncodeStringList([]string{"whisk", "fry"}),
		AuthorID:    author.ID,
	}
	require.NoError(t, repo.Create(ctx, recipe, []models.Category{*breakfast, *quick}))
	require.NotZero(t, recipe.ID)

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", got.Title)
	assert.Equal(t, []string{"eggs", "butter"}, got.IngredientList)
	assert.Equal(t, []string{"whisk", "fry"}, got.StepList)
	assert.Len(t, got.Categories, 2)
	assert.Equal(t, author.ID, got.Author.ID)
}

func TestRecipeRepository_GetByID_CountsAndLiked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "bob")
	fan := createTestUser(t, db, "carol")
	recipe := createTestRecipe(t, db, author.ID, "Ramen")

	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "great", AuthorID: fan.ID, RecipeID: recipe.ID}).Error)

	t.Run("as the liker", func(t *testing.T) {
		got, err := repo.GetByID(ctx, recipe.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.Equal(t, 1, got.CommentsCount)
		assert.True(t, got.Liked)
	})

	t.Run("as another user", func(t *testing.T) {
		got, err := repo.GetByID(ctx, recipe.ID, author.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.False(t, got.Liked)
	})

	t.Run("anonymous", func(t *testing.T) {
		got, err := repo.GetByID(ctx, recipe.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, got.LikesCount)
		assert.False(t, got.Liked)
	})
}

// The anonymous view is served cache-aside; a cache hit must return the same
// decoded ingredient/step lists as the database read that populated it.
func TestRecipeRepository_GetByID_CacheHitKeepsLists(t *testing.T) {
	db := setupTestDB(t)
	mr := setupTestRedis(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	recipe := createTestRecipe(t, db, author.ID, "Bread")

	first, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	require.Equal(t, []string{"flour", "water"}, first.IngredientList)
	require.True(t, mr.Exists(cache.RecipeKey(recipe.ID)))

	second, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"flour", "water"}, second.IngredientList)
	assert.Equal(t, []string{"mix", "bake"}, second.StepList)
	assert.Equal(t, first.Author.Username, second.Author.Username)
}

func TestRecipeRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)

	_, err := repo.GetByID(context.Background(), 404, 0)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestRecipeRepository_List_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	dessert := createTestCategory(t, db, "dessert")

	cake := createTestRecipe(t, db, alice.ID, "Chocolate Cake")
	createTestRecipe(t, db, alice.ID, "Beef Stew")
	createTestRecipe(t, db, bob.ID, "Carrot Cake")
	require.NoError(t, db.Model(cake).Association("Categories").Append(dessert))

	t.Run("no filter, creation order", func(t *testing.T) {
		recipes, err := repo.List(ctx, RecipeFilter{}, 100, 0, 0)
		require.NoError(t, err)
		require.Len(t, recipes, 3)
		assert.Equal(t, "Chocolate Cake", recipes[0].Title)
		assert.Equal(t, "Beef Stew", recipes[1].Title)
		assert.Equal(t, "Carrot Cake", recipes[2].Title)
	})

	t.Run("by author", func(t *testing.T) {
		recipes, err := repo.List(ctx, RecipeFilter{AuthorID: alice.ID}, 100, 0, 0)
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})

	t.Run("by category", func(t *testing.T) {
		recipes, err := repo.List(ctx, RecipeFilter{CategoryID: dessert.ID}, 100, 0, 0)
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, cake.ID, recipes[0].ID)
	})

	t.Run("by title search", func(t *testing.T) {
		recipes, err := repo.List(ctx, RecipeFilter{Search: "Cake"}, 100, 0, 0)
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})

	t.Run("search matches case-sensitively", func(t *testing.T) {
		recipes, err := repo.List(ctx, RecipeFilter{Search: "cake"}, 100, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(ctx, RecipeFilter{}, 2, 0, 0)
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := repo.List(ctx, RecipeFilter{}, 2, 2, 0)
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})
}

func TestRecipeRepository_LikeUnlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	recipe := createTestRecipe(t, db, author.ID, "Tacos")

	require.NoError(t, repo.Like(ctx, fan.ID, recipe.ID))

	liked, err := repo.IsLiked(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := repo.CountLikes(ctx, recipe.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	t.Run("second like conflicts", func(t *testing.T) {
		err := repo.Like(ctx, fan.ID, recipe.ID)
		require.Error(t, err)

		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("unlike", func(t *testing.T) {
		require.NoError(t, repo.Unlike(ctx, fan.ID, recipe.ID))

		liked, err := repo.IsLiked(ctx, fan.ID, recipe.ID)
		require.NoError(t, err)
		assert.False(t, liked)
	})

	t.Run("unlike when not liked is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Unlike(ctx, fan.ID, recipe.ID))
	})
}

func TestRecipeRepository_Update_ReplacesCategories(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	old := createTestCategory(t, db, "old")
	newer := createTestCategory(t, db, "new")
	recipe := createTestRecipe(t, db, author.ID, "Soup")
	require.NoError(t, db.Model(recipe).Association("Categories").Append(old))

	recipe.Title = "Hot Soup"
	require.NoError(t, repo.Update(ctx, recipe, []models.Category{*newer}))

	got, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Hot Soup", got.Title)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "new", got.Categories[0].Name)
}

func TestRecipeRepository_Delete_CascadesDependents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "alice")
	fan := createTestUser(t, db, "bob")
	category := createTestCategory(t, db, "dinner")
	recipe := createTestRecipe(t, db, author.ID, "Curry")
	require.NoError(t, db.Model(recipe).Association("Categories").Append(category))
	require.NoError(t, db.Create(&models.Comment{Content: "spicy", AuthorID: fan.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: fan.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, repo.Delete(ctx, recipe.ID))

	var recipeCount, commentCount, likeCount, joinCount int64
	db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&recipeCount)
	db.Model(&models.Comment{}).Where("recipe_id = ?", recipe.ID).Count(&commentCount)
	db.Model(&models.Like{}).Where("recipe_id = ?", recipe.ID).Count(&likeCount)
	db.Table("recipe_categories").Where("recipe_id = ?", recipe.ID).Count(&joinCount)

	assert.Zero(t, recipeCount)
	assert.Zero(t, commentCount)
	assert.Zero(t, likeCount)
	assert.Zero(t, joinCount)

	// The category itself must survive.
	var cat models.Category
	require.NoError(t, db.First(&cat, category.ID).Error)
}
