package main

import (
	"context"
	"errors"
	"fmt"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/adapters/httpapi"
	"yatube/internal/adapters/media"
	"yatube/internal/adapters/memory"
	redisadapter "yatube/internal/adapters/redis"
	"yatube/internal/config"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	listingapp "yatube/internal/core/listing/service"
	postapp "yatube/internal/core/post/service"
	userEntity "yatube/internal/core/user"
	userapp "yatube/internal/core/user/service"
	groupPort "yatube/internal/ports/group"
	listingPort "yatube/internal/ports/listing"
	postPort "yatube/internal/ports/post"
	"yatube/internal/workers"

	"go.uber.org/zap"
)

func main() {
	config.InitLogger()
	config.Init()

	config.InitDB()
	if err := dbadapter.AutoMigrate(config.DB); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store listingPort.Store
	switch config.Cfg.CacheBackend {
	case "redis":
		config.InitRedis(ctx)
		store = redisadapter.NewListingStoreRedis(config.RedisClient)
	case "memory":
		mem, err := memory.NewListingStore(config.Cfg.CacheSize)
		if err != nil {
			config.Logger.Fatal("Error creating listing cache", zap.Error(err))
		}
		store = mem
		janitor := workers.NewCacheJanitor(mem, config.Cfg.CacheJanitorInterval, config.Logger)
		go janitor.Run(ctx)
	default:
		config.Logger.Fatal("Unsupported CACHE_BACKEND", zap.String("backend", config.Cfg.CacheBackend))
	}

	defer closeResources(config.Logger)

	userRepo := dbadapter.NewUserRepositoryDatabase(config.DB)
	groupRepo := dbadapter.NewGroupRepositoryDatabase(config.DB)
	postRepo := dbadapter.NewPostRepositoryDatabase(config.DB)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(config.DB)
	followerRepo := dbadapter.NewFollowerRepositoryDatabase(config.DB)

	listings := listingapp.NewListingService(store, config.Cfg.CacheTTL)
	userSvc := userapp.NewUserService(userRepo, []byte(config.Cfg.JWTSecret))
	groupSvc := groupapp.NewGroupService(groupRepo)
	postSvc := postapp.NewPostService(postRepo, groupRepo, userRepo, listings, config.Cfg.PageSize)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo)
	followerSvc := followerapp.NewFollowerService(followerRepo, postRepo, config.Cfg.PageSize)

	if config.Cfg.SeedDemo {
		seedDemoData(ctx, config.Logger, userSvc, groupSvc, postSvc, commentSvc, followerSvc)
	}

	r := httpapi.SetupRoutes(httpapi.Dependencies{
		Users:     userSvc,
		Groups:    groupSvc,
		Posts:     postSvc,
		Comments:  commentSvc,
		Followers: followerSvc,
		Images:    media.NewImageStore(config.Cfg.MediaRoot),
		Render: httpapi.RenderSettings{
			CountWords: config.Cfg.CountWordsPost,
			CountChars: config.Cfg.CountCharPostTitle,
		},
	})

	config.Logger.Info("App is running...", zap.String("port", config.Cfg.AppPort))
	if err := r.Run(":" + config.Cfg.AppPort); err != nil {
		config.Logger.Fatal("Server failed to start", zap.Error(err))
	}
}

func closeResources(logger *zap.Logger) {
	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}

// seedDemoData fills an empty database with a few authors who follow each
// other, one group, posts and comments. Existing users are left alone.
func seedDemoData(
	ctx context.Context,
	logger *zap.Logger,
	userSvc *userapp.UserService,
	groupSvc *groupapp.GroupService,
	postSvc *postapp.PostService,
	commentSvc *commentapp.CommentService,
	followerSvc *followerapp.FollowerService,
) {
	const postsPerUser = 12
	names := []string{"leo", "tolstoy", "chekhov"}

	logger.Info("Seeding demo data...")

	slug := "demo"
	if _, err := groupSvc.GetBySlug(ctx, slug); err != nil {
		_, err = groupSvc.CreateGroup(ctx, groupPort.CreateGroupRequest{
			Title:       "Demo group",
			Slug:        slug,
			Description: "Posts created by the demo seeder",
		})
		if err != nil {
			logger.Error("Error creating demo group", zap.Error(err))
			return
		}
	}

	var users []*userEntity.User
	for _, name := range names {
		_, err := userSvc.RegisterUser(ctx, name, "password")
		if errors.Is(err, userapp.ErrUsernameTaken) {
			logger.Info("Demo data already present, skipping")
			return
		}
		if err != nil {
			logger.Error("Error creating demo user", zap.String("username", name), zap.Error(err))
			return
		}
		u, err := userSvc.GetByUsername(ctx, name)
		if err != nil {
			logger.Error("Error loading demo user", zap.String("username", name), zap.Error(err))
			return
		}
		users = append(users, u)
	}

	follows := 0
	for _, follower := range users {
		for _, author := range users {
			// self-follows are ignored by the service
			if err := followerSvc.Follow(ctx, follower.ID, author.ID); err != nil {
				logger.Error("Error creating follow", zap.String("user", follower.Username), zap.String("author", author.Username), zap.Error(err))
				continue
			}
			follows++
		}
	}

	postCount := 0
	for _, u := range users {
		for i := 1; i <= postsPerUser; i++ {
			groupSlug := ""
			if i%2 == 0 {
				groupSlug = slug
			}
			p, err := postSvc.CreatePost(ctx, postPort.CreatePostRequest{
				AuthorID:  u.ID,
				Text:      fmt.Sprintf("Post %d by %s", i, u.Username),
				GroupSlug: groupSlug,
			})
			if err != nil {
				logger.Error("Error creating post", zap.String("username", u.Username), zap.Error(err))
				continue
			}
			postCount++

			if i == 1 {
				_, err = commentSvc.AddComment(ctx, commentapp.AddCommentRequest{
					PostID:   p.ID,
					AuthorID: users[0].ID,
					Text:     "First!",
				})
				if err != nil {
					logger.Warn("Could not add demo comment", zap.Error(err))
				}
			}
		}
	}

	logger.Info("Demo data created", zap.Int("users", len(users)), zap.Int("follows", follows), zap.Int("posts", postCount))
}
