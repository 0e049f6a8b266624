package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/store"
)

// UserService provides the user record operations.
type UserService interface {
	// HasUsers reports whether at least one user exists.
	HasUsers(ctx context.Context) (bool, error)

	// CreateUser validates the input and stores a new user.
	CreateUser(ctx context.Context, in domain.UserInput) (domain.User, error)

	// ListUsers returns all users in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, id int) (domain.User, error)

	// PatchUser overwrites only the non-empty input fields.
	PatchUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error)

	// ReplaceUser requires every mandatory field and overwrites all of them.
	ReplaceUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error)

	// DeleteUser removes a user by id.
	DeleteUser(ctx context.Context, id int) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

// HasUsers implements UserService.
func (s *UserServiceImpl) HasUsers(ctx context.Context) (bool, error) {
	exists, err := s.userStore.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check users: %w", err)
	}
	return exists, nil
}

// CreateUser implements UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, in domain.UserInput) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}

	user, err := s.userStore.Create(ctx, func(id int) domain.User {
		return domain.NewUser(id, in)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("user created", "user_id", user.ID)
	return user, nil
}

// ListUsers implements UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser implements UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id int) (domain.User, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// PatchUser implements UserService.
func (s *UserServiceImpl) PatchUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error) {
	user, err := s.userStore.Update(ctx, id, func(u domain.User) domain.User {
		return u.Patch(in)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user patched", "user_id", id)
	return user, nil
}

// ReplaceUser implements UserService.
func (s *UserServiceImpl) ReplaceUser(ctx context.Context, id int, in domain.UserInput) (domain.User, error) {
	if err := in.Validate(); err != nil {
		return domain.User{}, err
	}

	user, err := s.userStore.Update(ctx, id, func(u domain.User) domain.User {
		return u.Replace(in)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user replaced", "user_id", id)
	return user, nil
}

// DeleteUser implements UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debug("user deleted", "user_id", id)
	return nil
}
