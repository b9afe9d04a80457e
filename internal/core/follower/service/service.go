package followerapp

import (
	"context"

	"yatube/internal/config"
	followerEntity "yatube/internal/core/follower"
	postEntity "yatube/internal/core/post"
	followerPort "yatube/internal/ports/follower"
	postPort "yatube/internal/ports/post"
	"yatube/pkg/paginator"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// FollowerService maintains the follow graph. Self-follow, repeated follow
// and unfollowing a stranger are all silent no-ops.
type FollowerService struct {
	FollowerRepository followerPort.FollowRepository
	PostRepository     postPort.PostRepository
	PageSize           int
}

func NewFollowerService(repo followerPort.FollowRepository, postRepo postPort.PostRepository, pageSize int) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		PostRepository:     postRepo,
		PageSize:           pageSize,
	}
}

func (s *FollowerService) Follow(ctx context.Context, followerID, authorID uuid.UUID) error {
	if followerID == authorID {
		config.Logger.Debug("Ignoring self-follow", zap.String("userID", followerID.String()))
		return nil
	}

	return s.FollowerRepository.Create(ctx, &followerEntity.Follow{
		AuthorID: authorID,
		UserID:   followerID,
	})
}

func (s *FollowerService) Unfollow(ctx context.Context, followerID, authorID uuid.UUID) error {
	return s.FollowerRepository.Delete(ctx, followerID, authorID)
}

func (s *FollowerService) IsFollowing(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followerID == authorID {
		return false, nil
	}
	return s.FollowerRepository.Exists(ctx, followerID, authorID)
}

// FeedFor lists posts by every author followerID follows, newest first.
// It always reads the database.
func (s *FollowerService) FeedFor(ctx context.Context, followerID uuid.UUID) ([]postEntity.Post, error) {
	return s.PostRepository.FindByFollower(ctx, followerID)
}

func (s *FollowerService) FeedPage(ctx context.Context, followerID uuid.UUID, page int) (paginator.Page[postEntity.Post], error) {
	posts, err := s.FeedFor(ctx, followerID)
	if err != nil {
		return paginator.Page[postEntity.Post]{}, err
	}
	return paginator.Paginate(posts, s.PageSize, page), nil
}

// GetFollowers lists who follows userID.
func (s *FollowerService) GetFollowers(ctx context.Context, userID uuid.UUID) ([]*followerPort.FollowerDTO, error) {
	follows, err := s.FollowerRepository.FindFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*followerPort.FollowerDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, &followerPort.FollowerDTO{
			ID:       f.ID.String(),
			AuthorID: f.AuthorID.String(),
			UserID:   f.UserID.String(),
			Username: f.User.Username,
		})
	}
	return dtos, nil
}

// GetFollowing lists the authors userID follows.
func (s *FollowerService) GetFollowing(ctx context.Context, userID uuid.UUID) ([]*followerPort.FollowerDTO, error) {
	follows, err := s.FollowerRepository.FindFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*followerPort.FollowerDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, &followerPort.FollowerDTO{
			ID:       f.ID.String(),
			AuthorID: f.AuthorID.String(),
			UserID:   f.UserID.String(),
			Username: f.Author.Username,
		})
	}
	return dtos, nil
}
