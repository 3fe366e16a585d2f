package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/service"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/response"
)

type profileService interface {
	Get(ctx context.Context, userID int) (*models.Profile, error)
	Update(ctx context.Context, req service.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, req service.ChangePasswordRequest) error
}

type avatarFetcher interface {
	Fetch(ctx context.Context, rawURL string) service.Avatar
}

// ProfileHandler serves the current user's profile and picture.
type ProfileHandler struct {
	profiles profileService
	avatars  avatarFetcher
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(profiles profileService, avatars avatarFetcher) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, avatars: avatars}
}

// Get godoc
// @Summary Current user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// Update godoc
// @Summary Update contact details
// @Tags Profile
// @Accept json
// @Param payload body service.UpdateProfileRequest true "Changed fields"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	if err := h.profiles.Update(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ChangePassword godoc
// @Summary Change password
// @Tags Profile
// @Accept json
// @Param payload body service.ChangePasswordRequest true "New password"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /profile/password [put]
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid password payload"))
		return
	}
	if err := h.profiles.ChangePassword(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Avatar godoc
// @Summary Current user's picture
// @Description Falls back to a placeholder image when the picture is unavailable.
// @Tags Profile
// @Produce image/png
// @Produce image/svg+xml
// @Success 200 {file} file
// @Router /profile/avatar [get]
func (h *ProfileHandler) Avatar(c *gin.Context) {
	url := ""
	if profile, err := h.profiles.Get(c.Request.Context(), 0); err == nil {
		url = profile.AvatarURL
	}
	avatar := h.avatars.Fetch(c.Request.Context(), url)
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, avatar.ContentType, avatar.Body)
}
