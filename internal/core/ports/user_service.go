package ports

import (
	"context"

	"github.com/goodsru/user-panel/internal/core/domain"
)

// CreateUserInput carries the fields of a registration. Role may be empty,
// in which case the non-privileged employee role is assigned.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Password  string
	Role      string
}

// UpdateProfileInput carries a profile edit. The password is never part of a
// profile update.
type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Username  string
	Role      string
	Status    string
}

// UserService owns the credential-store rules: validation, uniqueness,
// hashing. Every failure is a domain error; no raw store error escapes.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) error
	ChangePassword(ctx context.Context, id int64, newPassword string) error
	ChangeUsername(ctx context.Context, id int64, newUsername string) error
	VerifyPassword(plaintext, storedHash string) bool
}
