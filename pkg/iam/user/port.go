package user

import (
	"context"

	"github.com/Abraxas-365/sift/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)
	Update(ctx context.Context, u *User) error
}
