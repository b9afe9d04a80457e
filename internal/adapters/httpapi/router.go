package httpapi

import (
	"context"
	"mime/multipart"

	"yatube/internal/adapters/httpapi/middleware"
	commentEntity "yatube/internal/core/comment"
	commentapp "yatube/internal/core/comment/service"
	groupEntity "yatube/internal/core/group"
	postEntity "yatube/internal/core/post"
	userEntity "yatube/internal/core/user"
	followerPort "yatube/internal/ports/follower"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
	"yatube/pkg/paginator"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// Inbound ports: the use cases controllers depend on.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, username, password string) (*userPort.UserDTO, error)
	GetByUsername(ctx context.Context, username string) (*userEntity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error)
	ParseToken(token string) (uuid.UUID, error)
}

type GroupUseCase interface {
	ListGroups(ctx context.Context) ([]groupEntity.Group, error)
}

type PostUseCase interface {
	ListAll(ctx context.Context, page int) (paginator.Page[postEntity.Post], error)
	ListByGroup(ctx context.Context, slug string, page int) (*groupEntity.Group, paginator.Page[postEntity.Post], error)
	ListByAuthor(ctx context.Context, username string, page int) (*userEntity.User, paginator.Page[postEntity.Post], error)
	GetPost(ctx context.Context, id uuid.UUID) (*postEntity.Post, error)
	CreatePost(ctx context.Context, req postPort.CreatePostRequest) (*postEntity.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req postPort.UpdatePostRequest) (*postEntity.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
}

type CommentUseCase interface {
	AddComment(ctx context.Context, req commentapp.AddCommentRequest) (*commentEntity.Comment, error)
	ListForPost(ctx context.Context, postID uuid.UUID) ([]commentEntity.Comment, error)
}

type FollowerUseCase interface {
	Follow(ctx context.Context, followerID, authorID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, authorID uuid.UUID) error
	IsFollowing(ctx context.Context, followerID, authorID uuid.UUID) (bool, error)
	FeedPage(ctx context.Context, followerID uuid.UUID, page int) (paginator.Page[postEntity.Post], error)
	GetFollowers(ctx context.Context, userID uuid.UUID) ([]*followerPort.FollowerDTO, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]*followerPort.FollowerDTO, error)
}

type ImageSaver interface {
	Save(fh *multipart.FileHeader) (string, error)
}

// RenderSettings are the display constants passed through to every page.
type RenderSettings struct {
	CountWords int
	CountChars int
}

// Dependencies is everything SetupRoutes wires together.
type Dependencies struct {
	Users     UserUseCase
	Groups    GroupUseCase
	Posts     PostUseCase
	Comments  CommentUseCase
	Followers FollowerUseCase
	Images    ImageSaver
	Render    RenderSettings
}

// SetupRoutes only routes; every use case is injected.
func SetupRoutes(d Dependencies) *gin.Engine {
	r := gin.Default()

	uc := NewUserController(d.Users)
	pc := NewPostController(d.Posts, d.Comments, d.Groups, d.Followers, d.Users, d.Images, d.Render)
	fc := NewFollowerController(d.Followers, d.Users, d.Render)

	auth := middleware.JWTAuthMiddleware(d.Users)
	optional := middleware.OptionalAuth(d.Users)
	authorOnly := middleware.PostAuthorOnly(d.Posts)

	r.POST("/auth/signup", uc.RegisterUser)
	r.GET("/auth/login", uc.LoginPage)
	r.POST("/auth/login", uc.LoginUser)

	r.GET("/", pc.Index)
	r.GET("/group/:slug", pc.GroupPosts)
	r.GET("/profile/:username", optional, pc.Profile)
	r.GET("/posts/:post_id", optional, pc.PostDetail)

	r.GET("/create", auth, pc.CreateForm)
	r.POST("/create", auth, pc.CreatePost)
	r.GET("/posts/:post_id/edit", auth, authorOnly, pc.EditForm)
	r.POST("/posts/:post_id/edit", auth, authorOnly, pc.EditPost)
	r.POST("/posts/:post_id/delete", auth, authorOnly, pc.DeletePost)
	r.POST("/posts/:post_id/comment", auth, pc.AddComment)

	r.GET("/follow", auth, fc.FollowIndex)
	r.POST("/profile/:username/follow", auth, fc.ProfileFollow)
	r.POST("/profile/:username/unfollow", auth, fc.ProfileUnfollow)
	r.GET("/followers", auth, fc.GetFollowers)
	r.GET("/following", auth, fc.GetFollowing)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "page not found", "path": c.Request.URL.Path})
	})
	return r
}
