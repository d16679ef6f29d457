package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"cookbook/internal/config"
	"cookbook/internal/database"
	"cookbook/internal/models"
	"cookbook/internal/repository"
	"cookbook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server against an in-memory sqlite database and a
// Fiber app with the full route table. Prometheus middleware stays nil so
// repeated setups within one test binary do not re-register collectors.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// sqlite's LIKE is ASCII-case-insensitive by default; postgres is not.
	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTExpireMinutes: 60,
		UploadDir:        t.TempDir(),
		MaxUploadBytes:   10 << 20,
	}

	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		recipeRepo:   recipeRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
	}
	s.recipeService = service.NewRecipeService(recipeRepo, categoryRepo)
	s.commentService = service.NewCommentService(commentRepo, recipeRepo)
	s.categoryService = service.NewCategoryService(categoryRepo)
	s.userService = service.NewUserService(userRepo)
	s.imageService = service.NewImageService(cfg)

	app := fiber.New(fiber.Config{BodyLimit: cfg.MaxUploadBytes})
	s.SetupRoutes(app)

	return s, app
}

func createAccount(t *testing.T, s *Server, username string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: string(hashed),
		IsActive: true,
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func bearerToken(t *testing.T, s *Server, user *models.User) string {
	t.Helper()
	token, err := s.generateToken(user.ID, user.Username)
	require.NoError(t, err)
	return "Bearer " + token
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out), "body: %s", string(body))
}
