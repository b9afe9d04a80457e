package group

import (
	"context"

	groupEntity "yatube/internal/core/group"
)

type GroupRepository interface {
	Create(ctx context.Context, g *groupEntity.Group) (*groupEntity.Group, error)
	FindBySlug(ctx context.Context, slug string) (*groupEntity.Group, error)
	List(ctx context.Context) ([]groupEntity.Group, error)
}

type CreateGroupRequest struct {
	Title       string `validate:"required,max=200"`
	Slug        string `validate:"required,max=50,slug"`
	Description string `validate:"required"`
}
