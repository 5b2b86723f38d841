package user

import (
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

// RegisterRequest - create a recruiter account
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest - exchange credentials for an access token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session - an issued access token and its owner
type Session struct {
	UserID      kernel.UserID `json:"user_id"`
	Email       kernel.Email  `json:"email"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
}
