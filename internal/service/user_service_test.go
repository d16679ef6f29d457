package service

import (
	"context"
	"testing"

	"cookbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("invalid username", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		username := "_nope"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		assertValidationError(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		email := "not-an-email"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Email: &email})
		assertValidationError(t, err)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(userRepo)
		username := "bob"
		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		require.NoError(t, err)
		assert.Equal(t, "bob", user.Username)
		assert.Equal(t, "alice@example.com", saved.Email)
	})

	t.Run("duplicate username propagates", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.updateFn = func(_ context.Context, _ *models.User) error {
			return models.NewConflictError("User already exists")
		}
		svc := NewUserService(userRepo)
		username := "taken"
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: &username})
		assertAppErrorCode(t, err, "CONFLICT")
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("missing user propagates", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}
		svc := NewUserService(userRepo)
		err := svc.DeleteAccount(context.Background(), 404)
		assertAppErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("deletes the account", func(t *testing.T) {
		t.Parallel()
		deleted := uint(0)
		userRepo := noopUserRepo()
		userRepo.deleteFn = func(_ context.Context, id uint) error {
			deleted = id
			return nil
		}
		svc := NewUserService(userRepo)
		require.NoError(t, svc.DeleteAccount(context.Background(), 7))
		assert.Equal(t, uint(7), deleted)
	})
}
