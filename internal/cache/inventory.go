package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	RecipeKeyPrefix = "recipe:%d"
	CategoryListKey = "categories"
	LikeCountPrefix = "recipe:%d:likes"
)

const (
	UserTTL      = 5 * time.Minute
	RecipeTTL    = 5 * time.Minute
	CategoryTTL  = 10 * time.Minute
	LikeCountTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func LikeCountKey(recipeID uint) string {
	return fmt.Sprintf(LikeCountPrefix, recipeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateRecipe drops the cached recipe view and its like counter.
func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
	Invalidate(ctx, LikeCountKey(recipeID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoryListKey)
}
