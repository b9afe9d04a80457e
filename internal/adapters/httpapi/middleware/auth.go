package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/config"
	"yatube/internal/core/apperr"
	userEntity "yatube/internal/core/user"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	userIDKey = "userID"
	// LoginPath is where anonymous clients are sent.
	LoginPath = "/auth/login"
)

// TokenParser resolves a bearer token to the user it was issued for. The
// user is looked up again so tokens of deleted accounts stop working.
type TokenParser interface {
	ParseToken(token string) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, tokens TokenParser) bool {
	token := bearerToken(c)
	if token == "" {
		return false
	}
	id, err := tokens.ParseToken(token)
	if err != nil {
		return false
	}
	if _, err := tokens.GetByID(c.Request.Context(), id); err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			config.Logger.Warn("Could not load token user", zap.String("userID", id.String()), zap.Error(err))
		}
		return false
	}
	c.Set(userIDKey, id)
	return true
}

// JWTAuthMiddleware lets only authenticated requests through. Anonymous
// clients are redirected to the login page with a "next" parameter.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens) {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth records the user when a valid token is present and never blocks.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authenticate(c, tokens)
		c.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
