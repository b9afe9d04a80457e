package httpapi

import (
	"net/http"

	"yatube/internal/adapters/httpapi/middleware"

	"github.com/gin-gonic/gin"
)

const followTitle = "Favourite authors"

type FollowerController struct {
	fc     FollowerUseCase
	uc     UserUseCase
	render RenderSettings
}

func NewFollowerController(fc FollowerUseCase, uc UserUseCase, render RenderSettings) *FollowerController {
	return &FollowerController{fc: fc, uc: uc, render: render}
}

// FollowIndex is the live feed of followed authors.
func (ctl *FollowerController) FollowIndex(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	page, err := ctl.fc.FeedPage(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		respondError(c, err, "could not load feed")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       followTitle,
		"page_obj":    page,
		"count_words": ctl.render.CountWords,
	})
}

func (ctl *FollowerController) ProfileFollow(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	username := c.Param("username")

	author, err := ctl.uc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "user")
		return
	}
	if err := ctl.fc.Follow(c.Request.Context(), userID, author.ID); err != nil {
		respondError(c, err, "could not follow user")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

func (ctl *FollowerController) ProfileUnfollow(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	username := c.Param("username")

	author, err := ctl.uc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		respondError(c, err, "user")
		return
	}
	if err := ctl.fc.Unfollow(c.Request.Context(), userID, author.ID); err != nil {
		respondError(c, err, "could not unfollow user")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

func (ctl *FollowerController) GetFollowers(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	followers, err := ctl.fc.GetFollowers(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "could not get followers")
		return
	}
	c.JSON(http.StatusOK, followers)
}

func (ctl *FollowerController) GetFollowing(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	following, err := ctl.fc.GetFollowing(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "could not get following")
		return
	}
	c.JSON(http.StatusOK, following)
}
