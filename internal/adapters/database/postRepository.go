package database

import (
	"context"

	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	postPort "yatube/internal/ports/post"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// PostRepositoryDatabase implements PostRepository with gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// listing is the base query for every post list: author and group joined,
// newest first.
func (repo *PostRepositoryDatabase) listing(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC")
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit("Author", "Group").Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, notFound(err, "post "+id.String())
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindAll(ctx context.Context) ([]post.Post, error) {
	var posts []post.Post
	if err := repo.listing(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByGroupID(ctx context.Context, groupID uuid.UUID) ([]post.Post, error) {
	var posts []post.Post
	if err := repo.listing(ctx).Where("group_id = ?", groupID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByAuthorID(ctx context.Context, authorID uuid.UUID) ([]post.Post, error) {
	var posts []post.Post
	if err := repo.listing(ctx).Where("author_id = ?", authorID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByFollower returns the posts of every author followerID follows.
func (repo *PostRepositoryDatabase) FindByFollower(ctx context.Context, followerID uuid.UUID) ([]post.Post, error) {
	authors := repo.db.Model(&follower.Follow{}).Select("author_id").Where("user_id = ?", followerID)

	var posts []post.Post
	if err := repo.listing(ctx).Where("author_id IN (?)", authors).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update writes text, group and image only; pub_date is never touched.
func (repo *PostRepositoryDatabase) Update(ctx context.Context, id uuid.UUID, fields postPort.UpdateFields) error {
	return repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", id).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     fields.Text,
			"group_id": fields.GroupID,
			"image":    fields.Image,
		}).Error
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Where("id = ?", id).Delete(&post.Post{}).Error
}
