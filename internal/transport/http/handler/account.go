package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/response"
)

// ActivityLister narrows the activity repository to what the account page
// reads.
type ActivityLister interface {
	ListRecentByAccountID(accountID uint, limit int) ([]model.Activity, error)
}

type AccountHandler struct {
	authService *app.AuthService
	postService *app.PostService
	activities  ActivityLister
}

func NewAccountHandler(authService *app.AuthService, postService *app.PostService, activities ActivityLister) *AccountHandler {
	return &AccountHandler{
		authService: authService,
		postService: postService,
		activities:  activities,
	}
}

// Show renders the signed-in account's profile: its posts and recent
// activity.
func (h *AccountHandler) Show(c *gin.Context) {
	accountID, _, ok := currentSession(c)
	if !ok {
		return
	}

	account, err := h.authService.GetAccountByID(accountID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch account failed")
		return
	}
	if account == nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "account no longer exists")
		return
	}

	posts, err := h.postService.ListByAccount(accountID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list account posts failed")
		return
	}

	activities := []model.Activity{}
	if h.activities != nil {
		recent, err := h.activities.ListRecentByAccountID(accountID, 20)
		if err == nil && recent != nil {
			activities = recent
		}
	}

	response.OK(c, gin.H{
		"account":    account,
		"posts":      posts,
		"activities": activities,
	})
}
