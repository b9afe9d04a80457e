package database

import (
	"context"

	"yatube/internal/core/comment"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type CommentRepositoryDatabase struct {
	db *gorm.DB
}

func NewCommentRepositoryDatabase(db *gorm.DB) *CommentRepositoryDatabase {
	return &CommentRepositoryDatabase{db: db}
}

func (repo *CommentRepositoryDatabase) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	if err := repo.db.WithContext(ctx).Omit("Post", "Author").Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// FindByPostID lists the comments of a post, oldest first.
func (repo *CommentRepositoryDatabase) FindByPostID(ctx context.Context, postID uuid.UUID) ([]comment.Comment, error) {
	var comments []comment.Comment
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepositoryDatabase) CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&comment.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
