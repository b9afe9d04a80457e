package commentapp

import (
	"context"
	"fmt"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	commentEntity "yatube/internal/core/comment"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type AddCommentRequest struct {
	PostID   uuid.UUID `validate:"required"`
	AuthorID uuid.UUID `validate:"required"`
	Text     string    `validate:"required"`
}

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	validate          *validator.Validate
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		validate:          validator.New(),
	}
}

// AddComment attaches a comment to an existing post. A missing post is
// apperr.ErrNotFound; empty text is apperr.ErrInvalidRequest.
func (s *CommentService) AddComment(ctx context.Context, req AddCommentRequest) (*commentEntity.Comment, error) {
	if _, err := s.PostRepository.FindByID(ctx, req.PostID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, err)
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Text:     req.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	config.Logger.Info("Comment added", zap.String("postID", req.PostID.String()), zap.String("authorID", req.AuthorID.String()))
	return c, nil
}

func (s *CommentService) ListForPost(ctx context.Context, postID uuid.UUID) ([]commentEntity.Comment, error) {
	comments, err := s.CommentRepository.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []commentEntity.Comment{}
	}
	return comments, nil
}

func (s *CommentService) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.CommentRepository.CountByPostID(ctx, postID)
}
