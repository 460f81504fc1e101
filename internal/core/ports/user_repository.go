package ports

import (
	"context"

	"github.com/goodsru/user-panel/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Implementations
// must translate store-level uniqueness violations into domain.ErrUsernameTaken
// and missing rows into domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateUsername(ctx context.Context, id int64, username string) error
}
