package repository

import (
	"testing"

	"cookbook/internal/cache"
	"cookbook/internal/database"
	"cookbook/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// sqlite's LIKE is ASCII-case-insensitive by default; postgres is not.
	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

// setupTestRedis points the cache package at a throwaway miniredis instance.
func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hashed-password",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:       title,
		Description: "test recipe",
		Ingredients: models.EncodeStringList([]string{"flour", "water"}),
		Steps:       models.EncodeStringList([]string{"mix", "bake"}),
		AuthorID:    authorID,
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}
