package user

import (
	"time"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusDisabled UserStatus = "DISABLED"
)

// User is a recruiter account. Passwords are stored hashed, never exposed
// through the API.
type User struct {
	ID           kernel.UserID `json:"id" db:"id"`
	Email        kernel.Email  `json:"email" db:"email"`
	Name         string        `json:"name" db:"name"`
	PasswordHash string        `json:"-" db:"password_hash"`
	Status       UserStatus    `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
