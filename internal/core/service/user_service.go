package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/goodsru/user-panel/internal/core/domain"
	"github.com/goodsru/user-panel/internal/core/ports"
)

// UserService implements the credential-store rules on top of a repository.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create validates and persists a new account with a freshly salted hash and
// Active status. The FindByUsername pre-check is a fast path for the common
// duplicate case; the store's unique constraint remains the source of truth
// when two concurrent creates race for the same username.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, domain.ErrEmptyName
	}
	if !domain.ValidUsername(in.Username) {
		return nil, domain.ErrInvalidUsername
	}
	if in.Password == "" {
		return nil, domain.ErrEmptyPassword
	}

	role := domain.RoleEmployee
	if in.Role != "" {
		parsed, err := domain.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		Status:       domain.StatusActive,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrUsernameTaken) {
			s.log.Error().Err(err).Str("username", in.Username).Msg("failed to create user")
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// List returns every account ordered by username ascending.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// UpdateProfile overwrites names, username, role, and status. The password
// hash is never part of a profile update.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, in ports.UpdateProfileInput) error {
	if in.FirstName == "" || in.LastName == "" {
		return domain.ErrEmptyName
	}
	if !domain.ValidUsername(in.Username) {
		return domain.ErrInvalidUsername
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return err
	}
	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return err
	}

	// Timestamps are the repository's concern.
	user := &domain.User{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Role:      role,
		Status:    status,
	}
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrUsernameTaken) {
			s.log.Error().Err(err).Int64("user_id", id).Msg("failed to update profile")
		}
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("profile updated")
	return nil
}

// ChangePassword recomputes the hash with a fresh salt and overwrites it.
func (s *UserService) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	if newPassword == "" {
		return domain.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("change password: hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Err(err).Int64("user_id", id).Msg("failed to change password")
		}
		return err
	}

	s.log.Info().Int64("user_id", id).Msg("password changed")
	return nil
}

// ChangeUsername validates the pattern and re-checks uniqueness before
// overwriting the username.
func (s *UserService) ChangeUsername(ctx context.Context, id int64, newUsername string) error {
	if !domain.ValidUsername(newUsername) {
		return domain.ErrInvalidUsername
	}

	if existing, err := s.repo.FindByUsername(ctx, newUsername); err == nil {
		if existing.ID == id {
			return nil // renaming to the current name is a no-op
		}
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("change username: %w", err)
	}

	if err := s.repo.UpdateUsername(ctx, id, newUsername); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrUsernameTaken) {
			s.log.Error().Err(err).Int64("user_id", id).Msg("failed to change username")
		}
		return err
	}

	s.log.Info().Int64("user_id", id).Str("username", newUsername).Msg("username changed")
	return nil
}

// VerifyPassword compares a plaintext candidate against a stored bcrypt hash.
func (s *UserService) VerifyPassword(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}
