package post

import (
	"context"

	postEntity "yatube/internal/core/post"

	"github.com/gofrs/uuid"
)

// PostRepository stores posts. Every list is ordered newest first with
// Author and Group loaded.
type PostRepository interface {
	Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*postEntity.Post, error)
	FindAll(ctx context.Context) ([]postEntity.Post, error)
	FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]postEntity.Post, error)
	FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]postEntity.Post, error)
	FindByFollower(ctx context.Context, followerID uuid.UUID) ([]postEntity.Post, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateFields) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateFields are the only columns an edit may touch.
type UpdateFields struct {
	Text    string
	GroupID *uuid.UUID
	Image   string
}

type CreatePostRequest struct {
	AuthorID  uuid.UUID `validate:"required"`
	Text      string    `validate:"required"`
	GroupSlug string
	Image     string
}

type UpdatePostRequest struct {
	Text      string `validate:"required"`
	GroupSlug string
	// Image replaces the current attachment when non-empty.
	Image string
	// ClearImage drops the current attachment. Ignored when Image is set.
	ClearImage bool
}
