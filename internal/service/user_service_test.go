package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Signup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var saved *models.User
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		}
		userRepo.createFn = func(_ context.Context, user *models.User) error {
			user.ID = 1
			saved = user
			return nil
		}

		svc := NewUserService(userRepo)
		user, err := svc.Signup(context.Background(), SignupInput{
			Username: " leo ",
			Email:    "Leo@Example.com",
			Password: "Sup3rSecret",
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "leo", user.Username)
		assert.Equal(t, "leo@example.com", user.Email)
		assert.NotEqual(t, "Sup3rSecret", saved.Password, "password must be stored hashed")
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Sup3rSecret")))
	})

	t.Run("Field errors", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("create must not run on invalid input")
			return nil
		}

		svc := NewUserService(userRepo)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "x",
			Email:    "not-an-email",
			Password: "weak",
		})

		require.Error(t, err)
		appErr, ok := models.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "username")
		assert.Contains(t, appErr.Fields, "email")
		assert.Contains(t, appErr.Fields, "password")
	})

	t.Run("Duplicate username", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 2, Username: username}, nil
		}

		svc := NewUserService(userRepo)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "taken",
			Email:    "new@example.com",
			Password: "Sup3rSecret",
		})

		appErr, ok := models.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "username")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", username)
		}
		userRepo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 2, Email: email}, nil
		}

		svc := NewUserService(userRepo)
		_, err := svc.Signup(context.Background(), SignupInput{
			Username: "fresh",
			Email:    "taken@example.com",
			Password: "Sup3rSecret",
		})

		appErr, ok := models.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "email")
	})
}

func TestUserService_Authenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := noopUserRepo()
	userRepo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username != "leo" {
			return nil, models.NewNotFoundError("User", username)
		}
		return &models.User{ID: 1, Username: "leo", Password: string(hashed)}, nil
	}
	svc := NewUserService(userRepo)

	t.Run("Success", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "leo", "Sup3rSecret")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "leo", "nope")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	})

	t.Run("Unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, models.ErrCodeUnauthorized, appErr.Code)
	})
}
