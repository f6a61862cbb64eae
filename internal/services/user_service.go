package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
	"outlay/internal/store"
)

// UserService is the thin user surface needed by the ownership guard and the
// report orchestrator. No authentication lives here.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) CreateUser(ctx context.Context, email, firstName, lastName string) (core.User, error) {
	now := time.Now().UTC()
	user := core.User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return core.User{}, fmt.Errorf("validate user: %w", err)
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]core.User, error) {
	users, err := s.users.FindAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
