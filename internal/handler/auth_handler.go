package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elores-client/internal/middleware"
	"github.com/noah-isme/elores-client/internal/models"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context)
	CurrentUser() (*models.User, error)
}

type tokenIssuer interface {
	Issue(user models.User) (string, time.Time, error)
}

// AuthHandler wires login and logout to the session.
type AuthHandler struct {
	service authService
	tokens  tokenIssuer
	welcome func() string
}

// NewAuthHandler creates a new handler. welcome, when set, supplies the
// server greeting returned with a login.
func NewAuthHandler(svc authService, tokens tokenIssuer, welcome func() string) *AuthHandler {
	return &AuthHandler{service: svc, tokens: tokens, welcome: welcome}
}

// Login godoc
// @Summary Log in to the scheduling server
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(*user)
	if err != nil {
		response.Error(c, err)
		return
	}

	res := models.LoginResponse{AccessToken: token, ExpiresAt: expiresAt, User: *user}
	if h.welcome != nil {
		res.Welcome = h.welcome()
	}
	response.OK(c, res)
}

// Logout godoc
// @Summary Log out and close the server connection
// @Tags Authentication
// @Success 204
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	response.NoContent(c)
}

// Me godoc
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser()
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if claims, ok := middleware.ClaimsFromContext(c); ok && claims.ExpiresAt != nil {
		meta = map[string]interface{}{"token_expires_at": claims.ExpiresAt.Time}
	}
	response.JSON(c, http.StatusOK, user, meta)
}
