package user

import (
	"context"

	userEntity "yatube/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository stores and looks up users.
type UserRepository interface {
	Create(ctx context.Context, u *userEntity.User) (*userEntity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error)
	FindByUsername(ctx context.Context, username string) (*userEntity.User, error)
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
