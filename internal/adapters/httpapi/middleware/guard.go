package middleware

import (
	"context"
	"errors"
	"net/http"

	"yatube/internal/core/apperr"
	postEntity "yatube/internal/core/post"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const postKey = "post"

type PostFinder interface {
	GetPost(ctx context.Context, id uuid.UUID) (*postEntity.Post, error)
}

// PostAuthorOnly guards edit and delete routes. It must run after
// JWTAuthMiddleware. A user who is not the author is redirected to the
// read-only detail page; the wrapped handler never runs.
func PostAuthorOnly(posts PostFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.FromString(c.Param("post_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}

		p, err := posts.GetPost(c.Request.Context(), id)
		if errors.Is(err, apperr.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not load post"})
			return
		}

		userID, _ := UserID(c)
		if !postEntity.CanMutate(p, userID) {
			c.Redirect(http.StatusFound, "/posts/"+p.ID.String())
			c.Abort()
			return
		}

		c.Set(postKey, p)
		c.Next()
	}
}

// GuardedPost returns the post PostAuthorOnly loaded.
func GuardedPost(c *gin.Context) *postEntity.Post {
	v, ok := c.Get(postKey)
	if !ok {
		return nil
	}
	p, _ := v.(*postEntity.Post)
	return p
}
