package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"yatube/internal/adapters/database"
	"yatube/internal/adapters/database/dbtest"
	"yatube/internal/adapters/media"
	"yatube/internal/adapters/memory"
	commentapp "yatube/internal/core/comment/service"
	followerapp "yatube/internal/core/follower/service"
	groupapp "yatube/internal/core/group/service"
	listingapp "yatube/internal/core/listing/service"
	postEntity "yatube/internal/core/post"
	postapp "yatube/internal/core/post/service"
	userEntity "yatube/internal/core/user"
	userapp "yatube/internal/core/user/service"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type app struct {
	db       *gorm.DB
	engine   *gin.Engine
	users    *userapp.UserService
	groups   *groupapp.GroupService
	posts    *postapp.PostService
	comments *commentapp.CommentService
	follows  *followerapp.FollowerService
	listings *listingapp.ListingService
}

func newApp(t *testing.T) *app {
	t.Helper()
	db := dbtest.Open(t)

	store, err := memory.NewListingStore(32)
	require.NoError(t, err)
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return frozen })

	userRepo := database.NewUserRepositoryDatabase(db)
	groupRepo := database.NewGroupRepositoryDatabase(db)
	postRepo := database.NewPostRepositoryDatabase(db)

	a := &app{db: db, listings: listingapp.NewListingService(store, 20*time.Second)}
	a.users = userapp.NewUserService(userRepo, []byte("test-secret"))
	a.groups = groupapp.NewGroupService(groupRepo)
	a.posts = postapp.NewPostService(postRepo, groupRepo, userRepo, a.listings, 10)
	a.comments = commentapp.NewCommentService(database.NewCommentRepositoryDatabase(db), postRepo)
	a.follows = followerapp.NewFollowerService(database.NewFollowerRepositoryDatabase(db), postRepo, 10)

	a.engine = SetupRoutes(Dependencies{
		Users:     a.users,
		Groups:    a.groups,
		Posts:     a.posts,
		Comments:  a.comments,
		Followers: a.follows,
		Images:    media.NewImageStore(t.TempDir()),
		Render:    RenderSettings{CountWords: 30, CountChars: 30},
	})
	return a
}

// signup registers a user and returns it with a valid token.
func (a *app) signup(t *testing.T, username string) (*userEntity.User, string) {
	t.Helper()
	ctx := context.Background()
	_, err := a.users.RegisterUser(ctx, username, "secret")
	require.NoError(t, err)
	res, err := a.users.LoginUser(ctx, username, "secret")
	require.NoError(t, err)
	u, err := a.users.GetByUsername(ctx, username)
	require.NoError(t, err)
	return u, res.Token
}

func (a *app) post(t *testing.T, author *userEntity.User, text, groupSlug string) *postEntity.Post {
	t.Helper()
	p, err := a.posts.CreatePost(context.Background(), postPort.CreatePostRequest{
		AuthorID:  author.ID,
		Text:      text,
		GroupSlug: groupSlug,
	})
	require.NoError(t, err)
	return p
}

func (a *app) do(method, target, token string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

type pageBody struct {
	Title     string `json:"title"`
	Following bool   `json:"following"`
	PageObj   struct {
		Items    []postEntity.Post `json:"object_list"`
		Number   int               `json:"number"`
		NumPages int               `json:"num_pages"`
		Count    int               `json:"count"`
	} `json:"page_obj"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body pageBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestNonAuthorEditIsRedirectedToDetail(t *testing.T) {
	a := newApp(t)
	owner, _ := a.signup(t, "owner")
	_, intruderToken := a.signup(t, "intruder")
	p := a.post(t, owner, "original", "")

	w := a.do(http.MethodPost, "/posts/"+p.ID.String()+"/edit", intruderToken, url.Values{"text": {"hijacked"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID.String(), w.Header().Get("Location"))

	w = a.do(http.MethodPost, "/posts/"+p.ID.String()+"/delete", intruderToken, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID.String(), w.Header().Get("Location"))

	got, err := a.posts.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Text)
}

func TestAuthorEditAndCreateRedirects(t *testing.T) {
	a := newApp(t)
	owner, token := a.signup(t, "owner")
	p := a.post(t, owner, "original", "")

	w := a.do(http.MethodGet, "/posts/"+p.ID.String()+"/edit", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"button_name":"Save"`)

	w = a.do(http.MethodPost, "/posts/"+p.ID.String()+"/edit", token, url.Values{"text": {"edited"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/"+p.ID.String(), w.Header().Get("Location"))

	got, err := a.posts.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	w = a.do(http.MethodPost, "/create", token, url.Values{"text": {"brand new"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/owner", w.Header().Get("Location"))

	w = a.do(http.MethodPost, "/create", token, url.Values{"text": {""}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/create", token, url.Values{"text": {"x"}, "group": {"missing"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditClearsImage(t *testing.T) {
	a := newApp(t)
	owner, token := a.signup(t, "owner")
	p, err := a.posts.CreatePost(context.Background(), postPort.CreatePostRequest{
		AuthorID: owner.ID,
		Text:     "with picture",
		Image:    "posts/a.gif",
	})
	require.NoError(t, err)

	w := a.do(http.MethodPost, "/posts/"+p.ID.String()+"/edit", token, url.Values{"text": {"with picture"}})
	require.Equal(t, http.StatusFound, w.Code)
	got, err := a.posts.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "posts/a.gif", got.Image)

	w = a.do(http.MethodPost, "/posts/"+p.ID.String()+"/edit", token, url.Values{"text": {"no picture"}, "image-clear": {"on"}})
	require.Equal(t, http.StatusFound, w.Code)
	got, err = a.posts.GetPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Image)
}

func TestTokenOfDeletedUserIsAnonymous(t *testing.T) {
	a := newApp(t)
	gone, token := a.signup(t, "gone")
	require.NoError(t, a.db.Delete(&userEntity.User{}, "id = ?", gone.ID).Error)

	w := a.do(http.MethodPost, "/create", token, url.Values{"text": {"orphan"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fcreate", w.Header().Get("Location"))

	w = a.do(http.MethodPost, "/profile/gone/follow", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login?next="))
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	a := newApp(t)
	owner, _ := a.signup(t, "owner")
	p := a.post(t, owner, "text", "")

	w := a.do(http.MethodPost, "/posts/"+p.ID.String()+"/comment", "", url.Values{"text": {"hi"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login?next="))

	n, err := a.comments.CountForPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	w = a.do(http.MethodGet, "/create", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fcreate", w.Header().Get("Location"))
}

func TestAddComment(t *testing.T) {
	a := newApp(t)
	owner, token := a.signup(t, "owner")
	p := a.post(t, owner, "text", "")
	detail := "/posts/" + p.ID.String()

	w := a.do(http.MethodPost, detail+"/comment", token, url.Values{"text": {"nice"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	// empty comments are dropped but still land on the post
	w = a.do(http.MethodPost, detail+"/comment", token, url.Values{"text": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detail, w.Header().Get("Location"))

	n, err := a.comments.CountForPost(context.Background(), p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	w = a.do(http.MethodGet, detail, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_read":false`)
	assert.Contains(t, w.Body.String(), `"nice"`)

	w = a.do(http.MethodGet, detail, token, nil)
	assert.Contains(t, w.Body.String(), `"is_read":true`)

	w = a.do(http.MethodPost, "/posts/00000000-0000-4000-8000-000000000000/comment", token, url.Values{"text": {"x"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIndexServesCachedListingUntilFlush(t *testing.T) {
	a := newApp(t)
	owner, token := a.signup(t, "owner")
	p := a.post(t, owner, "soon deleted", "")

	before := a.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, before.Code)

	w := a.do(http.MethodPost, "/posts/"+p.ID.String()+"/delete", token, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	after := a.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, before.Body.Bytes(), after.Body.Bytes())

	require.NoError(t, a.listings.InvalidateAll(context.Background()))
	body := decodePage(t, a.do(http.MethodGet, "/", "", nil))
	assert.Empty(t, body.PageObj.Items)
	assert.Equal(t, "This is the main page of the Yatube project", body.Title)
}

func TestListingPages(t *testing.T) {
	a := newApp(t)
	owner, _ := a.signup(t, "owner")
	_, err := a.groups.CreateGroup(context.Background(), groupPort.CreateGroupRequest{
		Title: "Group", Slug: "group", Description: "d",
	})
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		a.post(t, owner, "post", "group")
	}

	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantItems int
	}{
		{"first page", "/", 1, 10},
		{"second page", "/?page=2", 2, 2},
		{"past the end clamps", "/?page=99", 2, 2},
		{"garbage is page one", "/?page=abc", 1, 10},
		{"group feed", "/group/group?page=2", 2, 2},
		{"profile feed", "/profile/owner", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := decodePage(t, a.do(http.MethodGet, tt.target, "", nil))
			assert.Equal(t, tt.wantPage, body.PageObj.Number)
			assert.Len(t, body.PageObj.Items, tt.wantItems)
			assert.Equal(t, 12, body.PageObj.Count)
			assert.Equal(t, 2, body.PageObj.NumPages)
		})
	}

	w := a.do(http.MethodGet, "/group/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodGet, "/profile/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodGet, "/posts/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowAndUnfollow(t *testing.T) {
	a := newApp(t)
	reader, token := a.signup(t, "reader")
	author, _ := a.signup(t, "author")
	a.post(t, author, "followed post", "")

	w := a.do(http.MethodPost, "/profile/author/follow", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	// a second follow is a no-op
	w = a.do(http.MethodPost, "/profile/author/follow", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	ok, err := a.follows.IsFollowing(context.Background(), reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, decodePage(t, a.do(http.MethodGet, "/profile/author", token, nil)).Following)
	assert.False(t, decodePage(t, a.do(http.MethodGet, "/profile/author", "", nil)).Following)

	feed := decodePage(t, a.do(http.MethodGet, "/follow", token, nil))
	assert.Equal(t, "Favourite authors", feed.Title)
	require.Len(t, feed.PageObj.Items, 1)
	assert.Equal(t, "followed post", feed.PageObj.Items[0].Text)

	w = a.do(http.MethodGet, "/following", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"author"`)

	w = a.do(http.MethodPost, "/profile/reader/follow", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)

	w = a.do(http.MethodPost, "/profile/author/unfollow", token, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	ok, err = a.follows.IsFollowing(context.Background(), reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	w = a.do(http.MethodPost, "/profile/ghost/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignupAndLogin(t *testing.T) {
	a := newApp(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"new","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"new","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"new","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	a.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"new","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
