package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/repository"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type PostHandler struct {
	postService *app.PostService
}

func NewPostHandler(postService *app.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List serves the home listing. Both query parameters are optional; an
// unrecognized sort_by falls back to newest-first.
func (h *PostHandler) List(c *gin.Context) {
	query := app.ListQuery{
		Search: c.Query("search"),
		Sort:   repository.ParseSortKey(c.Query("sort_by")),
	}

	posts, err := h.postService.List(query)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list posts failed")
		return
	}
	response.OK(c, gin.H{"posts": posts})
}

func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.Get(postID)
	if err != nil {
		if errors.Is(err, app.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	accountID, username, ok := currentSession(c)
	if !ok {
		return
	}

	_, err := h.postService.Create(app.CreatePostInput{
		AccountID: accountID,
		Username:  username,
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "title and content are required")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create post failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// EditForm returns the post for the edit page, refusing non-owners before
// any editable content is exposed.
func (h *PostHandler) EditForm(c *gin.Context) {
	accountID, _, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.GetOwned(accountID, postID)
	if err != nil {
		h.renderLifecycleError(c, err, "fetch post failed")
		return
	}
	response.OK(c, post)
}

func (h *PostHandler) Edit(c *gin.Context) {
	accountID, _, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	post, err := h.postService.Edit(app.EditPostInput{
		AccountID: accountID,
		PostID:    postID,
		Title:     c.PostForm("title"),
		Content:   c.PostForm("content"),
	})
	if err != nil {
		h.renderLifecycleError(c, err, "edit post failed")
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", post.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	accountID, _, ok := currentSession(c)
	if !ok {
		return
	}
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	if err := h.postService.Delete(accountID, postID); err != nil {
		h.renderLifecycleError(c, err, "delete post failed")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PostHandler) renderLifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrPostNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
	case errors.Is(err, app.ErrForbidden):
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "you are not the owner of this post")
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "title and content are required")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}

func postIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "post not found")
		return 0, false
	}
	return uint(parsed), true
}

func currentSession(c *gin.Context) (uint, string, bool) {
	idAny, exists := c.Get(middleware.ContextAccountIDKey)
	if !exists {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "login required")
		return 0, "", false
	}
	accountID, ok := idAny.(uint)
	if !ok || accountID == 0 {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid session")
		return 0, "", false
	}
	username := c.GetString(middleware.ContextUsernameKey)
	return accountID, username, true
}
