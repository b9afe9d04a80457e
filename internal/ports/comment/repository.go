package comment

import (
	"context"

	commentEntity "yatube/internal/core/comment"

	"github.com/gofrs/uuid"
)

type CommentRepository interface {
	Create(ctx context.Context, c *commentEntity.Comment) (*commentEntity.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]commentEntity.Comment, error)
	CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error)
}
