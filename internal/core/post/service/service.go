package postapp

import (
	"context"
	"errors"
	"fmt"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/core/listing"
	listingapp "yatube/internal/core/listing/service"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
	"yatube/pkg/paginator"

	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	UserRepository  userPort.UserRepository
	Listings        *listingapp.ListingService
	PageSize        int
	validate        *validator.Validate
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	listings *listingapp.ListingService,
	pageSize int,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		UserRepository:  userRepo,
		Listings:        listings,
		PageSize:        pageSize,
		validate:        validator.New(),
	}
}

// ListAll is the global feed, served from the listing cache.
func (s *PostService) ListAll(ctx context.Context, page int) (paginator.Page[postEntity.Post], error) {
	posts, err := s.Listings.Get(ctx, listing.MainKey, s.PostRepository.FindAll)
	if err != nil {
		return paginator.Page[postEntity.Post]{}, err
	}
	return paginator.Paginate(posts, s.PageSize, page), nil
}

// ListByGroup is the feed of one group. An unknown slug is apperr.ErrNotFound.
func (s *PostService) ListByGroup(ctx context.Context, slug string, page int) (*groupEntity.Group, paginator.Page[postEntity.Post], error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, paginator.Page[postEntity.Post]{}, err
	}

	posts, err := s.Listings.Get(ctx, listing.GroupKey(slug), func(ctx context.Context) ([]postEntity.Post, error) {
		return s.PostRepository.FindByGroupID(ctx, g.ID)
	})
	if err != nil {
		return nil, paginator.Page[postEntity.Post]{}, err
	}
	return g, paginator.Paginate(posts, s.PageSize, page), nil
}

// ListByAuthor is a profile feed. The page's Count is the author's total.
func (s *PostService) ListByAuthor(ctx context.Context, username string, page int) (*userEntity.User, paginator.Page[postEntity.Post], error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, paginator.Page[postEntity.Post]{}, err
	}

	posts, err := s.Listings.Get(ctx, listing.ProfileKey(username), func(ctx context.Context) ([]postEntity.Post, error) {
		return s.PostRepository.FindByAuthorID(ctx, author.ID)
	})
	if err != nil {
		return nil, paginator.Page[postEntity.Post]{}, err
	}
	return author, paginator.Paginate(posts, s.PageSize, page), nil
}

func (s *PostService) GetPost(ctx context.Context, id uuid.UUID) (*postEntity.Post, error) {
	return s.PostRepository.FindByID(ctx, id)
}

// CreatePost stores a new post. The listing cache is left alone.
func (s *PostService) CreatePost(ctx context.Context, req postPort.CreatePostRequest) (*postEntity.Post, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, err)
	}

	groupID, err := s.resolveGroup(ctx, req.GroupSlug)
	if err != nil {
		return nil, err
	}

	p, err := s.PostRepository.Create(ctx, &postEntity.Post{
		Text:     req.Text,
		AuthorID: req.AuthorID,
		GroupID:  groupID,
		Image:    req.Image,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	config.Logger.Info("Post created", zap.String("postID", p.ID.String()), zap.String("authorID", p.AuthorID.String()))
	return p, nil
}

// UpdatePost rewrites text and group, and replaces or clears the image. Callers must have
// checked postEntity.CanMutate first.
func (s *PostService) UpdatePost(ctx context.Context, id uuid.UUID, req postPort.UpdatePostRequest) (*postEntity.Post, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, err)
	}

	current, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	groupID, err := s.resolveGroup(ctx, req.GroupSlug)
	if err != nil {
		return nil, err
	}

	image := current.Image
	switch {
	case req.Image != "":
		image = req.Image
	case req.ClearImage:
		image = ""
	}

	if err := s.PostRepository.Update(ctx, id, postPort.UpdateFields{
		Text:    req.Text,
		GroupID: groupID,
		Image:   image,
	}); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	config.Logger.Info("Post updated", zap.String("postID", id.String()))
	return s.PostRepository.FindByID(ctx, id)
}

// DeletePost removes the post and, through the schema, its comments.
func (s *PostService) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.PostRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	config.Logger.Info("Post deleted", zap.String("postID", id.String()))
	return nil
}

func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown group %q", apperr.ErrInvalidRequest, slug)
	}
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}
