package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService *app.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// Register creates an account from the submitted form. Weak passwords and
// duplicate usernames come back as form errors on a 200, the way the
// register page re-renders; nothing is persisted in either case.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.authService.Register(app.RegisterInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrWeakPassword):
			response.Error(c, http.StatusOK, response.CodeWeakPassword, err.Error())
		case errors.Is(err, app.ErrDuplicateUsername):
			response.Error(c, http.StatusOK, response.CodeDuplicateUsername, "username already exists, please choose a different one")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register failed")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/login")
}

// Login verifies credentials, sets the session cookie and redirects home.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	result, err := h.authService.Login(app.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusOK, response.CodeUserNotFound, "user not found")
		case errors.Is(err, app.ErrPasswordIncorrect):
			response.Error(c, http.StatusOK, response.CodePasswordIncorrect, "password incorrect")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	c.SetCookie(
		middleware.SessionCookieName,
		result.Token,
		int(h.sessionTTL.Seconds()),
		"/",
		"",
		false,
		true,
	)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
