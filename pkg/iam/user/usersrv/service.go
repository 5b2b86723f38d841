package usersrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/sift/pkg/iam/auth"
	"github.com/Abraxas-365/sift/pkg/iam/user"
	"github.com/Abraxas-365/sift/pkg/kernel"
	"github.com/Abraxas-365/sift/pkg/logx"
)

type Service struct {
	repo      user.Repository
	passwords auth.PasswordService
	tokens    auth.TokenService
	tokenTTL  time.Duration
}

// NewService creates a new user service
func NewService(repo user.Repository, passwords auth.PasswordService, tokens auth.TokenService, tokenTTL time.Duration) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
	}
}

// Register creates a recruiter account with a hashed password.
func (s *Service) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	email := kernel.Email(strings.ToLower(strings.TrimSpace(req.Email)))
	if email.IsEmpty() || req.Name == "" {
		return nil, user.ErrInvalidUserData().
			WithDetail("reason", "email and name are required")
	}
	if len(req.Password) < 8 {
		return nil, user.ErrInvalidUserData().
			WithDetail("reason", "password must be at least 8 characters")
	}

	if existing, _ := s.repo.GetByEmail(ctx, email); existing != nil {
		return nil, user.ErrEmailTaken().
			WithDetail("email", email.String())
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		ID:           kernel.NewUserID(uuid.New().String()),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Status:       user.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	logx.Infof("Registered recruiter %s", u.ID)
	return u, nil
}

// Login verifies credentials and issues an access token carrying the default
// recruiter scopes. A wrong email and a wrong password are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.Session, error) {
	email := kernel.Email(strings.ToLower(strings.TrimSpace(req.Email)))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, user.ErrInvalidCredentials()
	}
	if !u.IsActive() {
		return nil, user.ErrUserDisabled().
			WithDetail("user_id", u.ID.String())
	}
	if err := s.passwords.Verify(req.Password, u.PasswordHash); err != nil {
		return nil, user.ErrInvalidCredentials()
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Email, auth.DefaultRecruiterScopes)
	if err != nil {
		return nil, err
	}

	return &user.Session{
		UserID:      u.ID,
		Email:       u.Email,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenTTL),
	}, nil
}

// GetUser returns one account by ID.
func (s *Service) GetUser(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}
