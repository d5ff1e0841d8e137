package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/hospital/hospital/internal/platform/auth"
)

// Repository is the persistence interface for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByRole(ctx context.Context, role auth.Role, limit, offset int) ([]*User, int, error)
}
