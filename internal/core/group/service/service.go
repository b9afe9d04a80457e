package groupapp

import (
	"context"
	"fmt"
	"regexp"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	groupEntity "yatube/internal/core/group"
	groupPort "yatube/internal/ports/group"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
	validate        *validator.Validate
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	v := validator.New()
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("groupapp: register slug validation: %v", err))
	}
	return &GroupService{
		GroupRepository: repo,
		validate:        v,
	}
}

// CreateGroup is an administrative operation; the HTTP API does not expose it.
func (s *GroupService) CreateGroup(ctx context.Context, req groupPort.CreateGroupRequest) (*groupEntity.Group, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, err)
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	config.Logger.Info("Group created", zap.String("slug", g.Slug))
	return g, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupEntity.Group, error) {
	return s.GroupRepository.FindBySlug(ctx, slug)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]groupEntity.Group, error) {
	return s.GroupRepository.List(ctx)
}
