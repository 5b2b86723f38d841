package usersrv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/iam/user"
	"github.com/Abraxas-365/sift/pkg/iam/user/usersrv"
	"github.com/Abraxas-365/sift/pkg/kernel"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func newService(repo *MockUserRepo) *usersrv.Service {
	tokens := auth.NewJWTTokenService("test-secret", "sift", time.Hour)
	return usersrv.NewService(repo, auth.NewBcryptPasswordService(), tokens, time.Hour)
}

func TestRegister(t *testing.T) {
	t.Run("creates an active account with a hashed password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, kernel.Email("jane@example.com")).Return(nil, user.ErrUserNotFound())
		repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

		u, err := newService(repo).Register(context.Background(), user.RegisterRequest{
			Email:    "  Jane@Example.com ",
			Name:     "Jane Doe",
			Password: "hunter2222",
		})
		require.NoError(t, err)

		assert.Equal(t, kernel.Email("jane@example.com"), u.Email)
		assert.Equal(t, user.UserStatusActive, u.Status)
		assert.NotEqual(t, "hunter2222", u.PasswordHash)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, kernel.Email("jane@example.com")).
			Return(&user.User{ID: "existing"}, nil)

		_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "hunter2222",
		})
		assert.ErrorIs(t, err, user.ErrEmailTaken())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			Password: "short",
		})
		assert.ErrorIs(t, err, user.ErrInvalidUserData())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		repo := new(MockUserRepo)
		_, err := newService(repo).Register(context.Background(), user.RegisterRequest{
			Password: "hunter2222",
		})
		assert.ErrorIs(t, err, user.ErrInvalidUserData())
	})
}

func TestLogin(t *testing.T) {
	passwords := auth.NewBcryptPasswordService()
	hash, err := passwords.Hash("hunter2222")
	require.NoError(t, err)

	account := func() *user.User {
		return &user.User{
			ID:           kernel.NewUserID("user-1"),
			Email:        "jane@example.com",
			Name:         "Jane Doe",
			PasswordHash: hash,
			Status:       user.UserStatusActive,
		}
	}

	t.Run("valid credentials yield a session", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, kernel.Email("jane@example.com")).Return(account(), nil)

		session, err := newService(repo).Login(context.Background(), user.LoginRequest{
			Email:    "Jane@Example.com",
			Password: "hunter2222",
		})
		require.NoError(t, err)

		assert.Equal(t, kernel.NewUserID("user-1"), session.UserID)
		assert.NotEmpty(t, session.AccessToken)
		assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, time.Minute)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, kernel.Email("jane@example.com")).Return(account(), nil)
		repo.On("GetByEmail", mock.Anything, kernel.Email("ghost@example.com")).Return(nil, user.ErrUserNotFound())

		svc := newService(repo)

		_, wrongPass := svc.Login(context.Background(), user.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong-password",
		})
		_, unknownEmail := svc.Login(context.Background(), user.LoginRequest{
			Email:    "ghost@example.com",
			Password: "hunter2222",
		})

		assert.ErrorIs(t, wrongPass, user.ErrInvalidCredentials())
		assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials())
	})

	t.Run("disabled accounts cannot log in", func(t *testing.T) {
		disabled := account()
		disabled.Status = user.UserStatusDisabled

		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, kernel.Email("jane@example.com")).Return(disabled, nil)

		_, err := newService(repo).Login(context.Background(), user.LoginRequest{
			Email:    "jane@example.com",
			Password: "hunter2222",
		})
		assert.ErrorIs(t, err, user.ErrUserDisabled())
	})
}
