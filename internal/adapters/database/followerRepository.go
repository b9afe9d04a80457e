package database

import (
	"context"

	"yatube/internal/core/follower"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowerRepositoryDatabase implements FollowRepository with gorm.
type FollowerRepositoryDatabase struct {
	db *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{db: db}
}

// Create relies on the unique (author_id, user_id) index so a repeated
// follow is silently ignored.
func (repo *FollowerRepositoryDatabase) Create(ctx context.Context, f *follower.Follow) error {
	return repo.db.WithContext(ctx).
		Omit("Author", "User").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(f).Error
}

func (repo *FollowerRepositoryDatabase) Delete(ctx context.Context, userID, authorID uuid.UUID) error {
	return repo.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&follower.Follow{}).Error
}

func (repo *FollowerRepositoryDatabase) Exists(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&follower.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) FindFollowers(ctx context.Context, authorID uuid.UUID) ([]follower.Follow, error) {
	var follows []follower.Follow
	if err := repo.db.WithContext(ctx).Preload("User").Where("author_id = ?", authorID).Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

func (repo *FollowerRepositoryDatabase) FindFollowing(ctx context.Context, userID uuid.UUID) ([]follower.Follow, error) {
	var follows []follower.Follow
	if err := repo.db.WithContext(ctx).Preload("Author").Where("user_id = ?", userID).Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
