package users

import (
	"context"
	"errors"
)

var (
	UserNotFoundErr  = errors.New("user not found")
	DuplicateUserErr = errors.New("email or username already in use")
	InvalidIDErr     = errors.New("invalid user id")
	InvalidRoleErr   = errors.New("invalid role")
)

// UserRepo persists identities. Implementations return UserNotFoundErr, DuplicateUserErr
// and InvalidIDErr so callers can classify failures without knowing the backend.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
}
