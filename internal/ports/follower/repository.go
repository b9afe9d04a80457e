package follower

import (
	"context"

	followerEntity "yatube/internal/core/follower"

	"github.com/gofrs/uuid"
)

// FollowRepository stores follow edges.
type FollowRepository interface {
	// Create inserts the edge unless it already exists.
	Create(ctx context.Context, f *followerEntity.Follow) error
	Delete(ctx context.Context, userID, authorID uuid.UUID) error
	Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	FindFollowers(ctx context.Context, authorID uuid.UUID) ([]followerEntity.Follow, error)
	FindFollowing(ctx context.Context, userID uuid.UUID) ([]followerEntity.Follow, error)
}

type FollowerDTO struct {
	ID       string `json:"id"`
	AuthorID string `json:"authorId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}
