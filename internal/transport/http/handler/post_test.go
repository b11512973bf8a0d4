package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/middleware"
)

type stubPostStore struct {
	nextID uint
	posts  map[uint]*model.Post
}

func newStubPostStore() *stubPostStore {
	return &stubPostStore{nextID: 1, posts: make(map[uint]*model.Post)}
}

func (s *stubPostStore) Create(post *model.Post) error {
	post.ID = s.nextID
	s.nextID++
	stored := *post
	s.posts[post.ID] = &stored
	return nil
}

func (s *stubPostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (s *stubPostStore) List(string, repository.SortKey) ([]model.Post, error) {
	var posts []model.Post
	for _, post := range s.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

func (s *stubPostStore) ListByAccountID(accountID uint) ([]model.Post, error) {
	var posts []model.Post
	for _, post := range s.posts {
		if post.AccountID == accountID {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (s *stubPostStore) UpdateContent(id uint, title, content string) error {
	if post, ok := s.posts[id]; ok {
		post.Title = title
		post.Content = content
	}
	return nil
}

func (s *stubPostStore) Delete(id uint) error {
	delete(s.posts, id)
	return nil
}

// asAccount injects session identity the way the session middleware does.
func asAccount(accountID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextAccountIDKey, accountID)
		c.Set(middleware.ContextUsernameKey, username)
	}
}

func newPostTestRouter(store *stubPostStore, accountID uint, username string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := app.NewPostService(store, nil, nil)
	h := NewPostHandler(svc)

	router := gin.New()
	router.GET("/", h.List)
	router.GET("/post/:id", h.Get)
	session := router.Group("", asAccount(accountID, username))
	session.POST("/create", h.Create)
	session.GET("/edit/:id", h.EditForm)
	session.POST("/edit/:id", h.Edit)
	session.POST("/delete/:id", h.Delete)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(rec, req)
	return rec
}

func seedPost(t *testing.T, store *stubPostStore, accountID uint, username, title string) *model.Post {
	t.Helper()
	post := &model.Post{Title: title, Content: "content", Author: username, AccountID: accountID}
	require.NoError(t, store.Create(post))
	return post
}

func TestListUnknownSortKeyIsAccepted(t *testing.T) {
	router := newPostTestRouter(newStubPostStore(), 1, "alice")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?search=&sort_by=garbage", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"posts":[]`)
}

func TestGetPostNotFound(t *testing.T) {
	router := newPostTestRouter(newStubPostStore(), 1, "alice")

	for _, path := range []string{"/post/999", "/post/abc", "/post/0"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %s", path)
	}
}

func TestCreateRedirectsHome(t *testing.T) {
	store := newStubPostStore()
	router := newPostTestRouter(store, 1, "alice")

	rec := postForm(router, "/create", url.Values{
		"title":   {"Hello"},
		"content": {"first post"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Len(t, store.posts, 1)
	assert.Equal(t, "alice", store.posts[1].Author)
}

func TestEditByNonOwnerIsForbidden(t *testing.T) {
	store := newStubPostStore()
	seedPost(t, store, 1, "alice", "Hello")
	router := newPostTestRouter(store, 2, "bob")

	rec := postForm(router, "/edit/1", url.Values{
		"title":   {"Hijack"},
		"content": {"nope"},
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Hello", store.posts[1].Title)
}

func TestEditByOwnerRedirectsToPost(t *testing.T) {
	store := newStubPostStore()
	seedPost(t, store, 1, "alice", "Hello")
	router := newPostTestRouter(store, 1, "alice")

	rec := postForm(router, "/edit/1", url.Values{
		"title":   {"Hello again"},
		"content": {"updated"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/post/1", rec.Header().Get("Location"))
	assert.Equal(t, "Hello again", store.posts[1].Title)
}

func TestDeleteByNonOwnerIsForbidden(t *testing.T) {
	store := newStubPostStore()
	seedPost(t, store, 1, "alice", "Hello")
	router := newPostTestRouter(store, 2, "bob")

	rec := postForm(router, "/delete/1", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Len(t, store.posts, 1)
}

func TestDeleteMissingPostIs404(t *testing.T) {
	router := newPostTestRouter(newStubPostStore(), 1, "alice")

	rec := postForm(router, "/delete/42", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
