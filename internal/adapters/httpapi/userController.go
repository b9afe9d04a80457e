package httpapi

import (
	"errors"
	"net/http"
	"time"

	userapp "yatube/internal/core/user/service"

	"github.com/gin-gonic/gin"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

// LoginPage is where anonymous clients land; it only echoes "next".
func (ctl *UserController) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": "Log in", "next": c.Query("next")})
}

func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" form:"username" binding:"required"`
		Password string `json:"password" form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	maxAge := int(time.Until(time.Unix(res.ExpiresAt, 0)).Seconds())
	c.SetCookie("token", res.Token, maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" form:"username" binding:"required,max=150"`
		Password string `json:"password" form:"password" binding:"required,min=3"`
	}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, userapp.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		return
	}
	if err != nil {
		respondError(c, err, "could not register user")
		return
	}
	c.JSON(http.StatusCreated, u)
}
