package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"yatube/internal/adapters/httpapi/middleware"
	"yatube/internal/core/apperr"
	commentapp "yatube/internal/core/comment/service"
	postEntity "yatube/internal/core/post"
	postPort "yatube/internal/ports/post"
	"yatube/pkg/paginator"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const (
	indexTitle  = "This is the main page of the Yatube project"
	groupTitle  = "Posts of the Yatube project groups"
	createTitle = "Create a new post"
	editTitle   = "Edit post"
)

type PostController struct {
	pc     PostUseCase
	cc     CommentUseCase
	gc     GroupUseCase
	fc     FollowerUseCase
	uc     UserUseCase
	images ImageSaver
	render RenderSettings
}

func NewPostController(pc PostUseCase, cc CommentUseCase, gc GroupUseCase, fc FollowerUseCase, uc UserUseCase, images ImageSaver, render RenderSettings) *PostController {
	return &PostController{pc: pc, cc: cc, gc: gc, fc: fc, uc: uc, images: images, render: render}
}

func pageParam(c *gin.Context) int {
	return paginator.ParsePage(c.Query("page"))
}

func postIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (ctl *PostController) Index(c *gin.Context) {
	page, err := ctl.pc.ListAll(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err, "could not list posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       indexTitle,
		"page_obj":    page,
		"count_words": ctl.render.CountWords,
	})
}

func (ctl *PostController) GroupPosts(c *gin.Context) {
	group, page, err := ctl.pc.ListByGroup(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err, "group")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"title":       groupTitle,
		"group":       group,
		"page_obj":    page,
		"count_words": ctl.render.CountWords,
	})
}

func (ctl *PostController) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	author, page, err := ctl.pc.ListByAuthor(ctx, c.Param("username"), pageParam(c))
	if err != nil {
		respondError(c, err, "profile")
		return
	}

	following := false
	if viewer, ok := middleware.UserID(c); ok {
		following, err = ctl.fc.IsFollowing(ctx, viewer, author.ID)
		if err != nil {
			respondError(c, err, "could not check follow status")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"author":      author,
		"count_posts": page.Count,
		"page_obj":    page,
		"count_words": ctl.render.CountWords,
		"following":   following,
	})
}

func (ctl *PostController) PostDetail(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	p, err := ctl.pc.GetPost(ctx, id)
	if err != nil {
		respondError(c, err, "post")
		return
	}
	comments, err := ctl.cc.ListForPost(ctx, id)
	if err != nil {
		respondError(c, err, "could not list comments")
		return
	}

	viewer, _ := middleware.UserID(c)
	c.JSON(http.StatusOK, gin.H{
		"post":          p,
		"count_chars":   ctl.render.CountChars,
		"is_read":       postEntity.CanMutate(p, viewer),
		"form":          gin.H{"text": ""},
		"comments_list": comments,
	})
}

// postForm describes the create/edit form for the client.
func (ctl *PostController) postForm(c *gin.Context, initial gin.H, formErr error) (gin.H, error) {
	groups, err := ctl.gc.ListGroups(c.Request.Context())
	if err != nil {
		return nil, err
	}
	form := gin.H{
		"fields":  []string{"text", "group", "image", "image-clear"},
		"groups":  groups,
		"initial": initial,
	}
	if formErr != nil {
		form["errors"] = formErr.Error()
	}
	return form, nil
}

func (ctl *PostController) renderForm(c *gin.Context, status int, title, button string, initial gin.H, formErr error) {
	form, err := ctl.postForm(c, initial, formErr)
	if err != nil {
		respondError(c, err, "could not build form")
		return
	}
	c.JSON(status, gin.H{
		"title":       title,
		"button_name": button,
		"form":        form,
	})
}

// saveImage stores the optional "image" upload. No file is not an error.
func (ctl *PostController) saveImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// http.ErrMissingFile, or a body that is not multipart at all
		return "", nil
	}
	return ctl.images.Save(fh)
}

// checkbox reads an HTML checkbox value; browsers send "on".
func checkbox(v string) bool {
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	ctl.renderForm(c, http.StatusOK, createTitle, "Add", gin.H{}, nil)
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	ctx := c.Request.Context()

	initial := gin.H{"text": c.PostForm("text"), "group": c.PostForm("group")}

	image, err := ctl.saveImage(c)
	if err != nil {
		ctl.renderForm(c, http.StatusBadRequest, createTitle, "Add", initial, err)
		return
	}

	_, err = ctl.pc.CreatePost(ctx, postPort.CreatePostRequest{
		AuthorID:  userID,
		Text:      c.PostForm("text"),
		GroupSlug: c.PostForm("group"),
		Image:     image,
	})
	if errors.Is(err, apperr.ErrInvalidRequest) {
		ctl.renderForm(c, http.StatusBadRequest, createTitle, "Add", initial, err)
		return
	}
	if err != nil {
		respondError(c, err, "could not create post")
		return
	}

	author, err := ctl.uc.GetByID(ctx, userID)
	if err != nil {
		respondError(c, err, "author")
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+author.Username)
}

func (ctl *PostController) EditForm(c *gin.Context) {
	p := middleware.GuardedPost(c)
	initial := gin.H{"text": p.Text, "image": p.Image}
	if p.Group != nil {
		initial["group"] = p.Group.Slug
	}
	ctl.renderForm(c, http.StatusOK, editTitle, "Save", initial, nil)
}

func (ctl *PostController) EditPost(c *gin.Context) {
	p := middleware.GuardedPost(c)
	initial := gin.H{"text": c.PostForm("text"), "group": c.PostForm("group")}

	image, err := ctl.saveImage(c)
	if err != nil {
		ctl.renderForm(c, http.StatusBadRequest, editTitle, "Save", initial, err)
		return
	}

	_, err = ctl.pc.UpdatePost(c.Request.Context(), p.ID, postPort.UpdatePostRequest{
		Text:       c.PostForm("text"),
		GroupSlug:  c.PostForm("group"),
		Image:      image,
		ClearImage: checkbox(c.PostForm("image-clear")),
	})
	if errors.Is(err, apperr.ErrInvalidRequest) {
		ctl.renderForm(c, http.StatusBadRequest, editTitle, "Save", initial, err)
		return
	}
	if err != nil {
		respondError(c, err, "could not update post")
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+p.ID.String())
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	p := middleware.GuardedPost(c)
	if err := ctl.pc.DeletePost(c.Request.Context(), p.ID); err != nil {
		respondError(c, err, "could not delete post")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// AddComment always lands back on the post; an empty comment is dropped.
func (ctl *PostController) AddComment(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	userID, _ := middleware.UserID(c)

	_, err := ctl.cc.AddComment(c.Request.Context(), commentapp.AddCommentRequest{
		PostID:   id,
		AuthorID: userID,
		Text:     c.PostForm("text"),
	})
	if err != nil && !errors.Is(err, apperr.ErrInvalidRequest) {
		respondError(c, err, "post")
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+id.String())
}
