package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elores-client/internal/dto"
	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/service"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/response"
)

type meetingReader interface {
	GetMeetings(ctx context.Context, teacherID int) ([]models.Meeting, error)
}

type meetingService interface {
	Create(ctx context.Context, req service.CreateMeetingRequest) (bool, error)
	CreateInSlot(ctx context.Context, req service.CreateMeetingInSlotRequest) (bool, time.Time, error)
	UpdateStatus(ctx context.Context, meetingID int, status string) (bool, error)
	Delete(ctx context.Context, meetingID int) (bool, error)
}

// MeetingHandler manages the current teacher's meetings.
type MeetingHandler struct {
	reader   meetingReader
	meetings meetingService
}

// NewMeetingHandler constructs a MeetingHandler.
func NewMeetingHandler(reader meetingReader, meetings meetingService) *MeetingHandler {
	return &MeetingHandler{reader: reader, meetings: meetings}
}

// List godoc
// @Summary Meetings of a teacher
// @Tags Meetings
// @Produce json
// @Param teacherId query int false "Teacher, current user when omitted"
// @Success 200 {object} response.Envelope
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	teacherID, ok := bindTeacher(c)
	if !ok {
		return
	}
	meetings, err := h.reader.GetMeetings(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		tier := schedule.MeetingTier(m)
		out = append(out, dto.MeetingResponse{Meeting: m, Tier: tier.String(), Color: tier.Color().Hex()})
	}
	response.OK(c, out)
}

// Create godoc
// @Summary Create a meeting
// @Description Either scheduledAt or day and period must be given.
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body dto.CreateMeetingRequest true "Meeting"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid meeting payload"))
		return
	}

	if req.UsesSlot() {
		slotReq, ok := req.SlotRequest()
		if !ok {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown day: "+req.Day))
			return
		}
		created, at, err := h.meetings.CreateInSlot(c.Request.Context(), slotReq)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, dto.CreateMeetingResponse{Created: created, ScheduledAt: at})
		return
	}

	at, ok := parseScheduledAt(req.ScheduledAt)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "scheduledAt must be a date-time"))
		return
	}
	created, err := h.meetings.Create(c.Request.Context(), req.DateRequest(at))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreateMeetingResponse{Created: created, ScheduledAt: at})
}

// UpdateStatus godoc
// @Summary Change a meeting status
// @Tags Meetings
// @Accept json
// @Param id path int true "Meeting ID"
// @Param payload body dto.UpdateMeetingStatusRequest true "Status"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /meetings/{id}/status [patch]
func (h *MeetingHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateMeetingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}
	if _, err := h.meetings.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a meeting
// @Tags Meetings
// @Param id path int true "Meeting ID"
// @Success 204
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.meetings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}

// parseScheduledAt accepts RFC 3339 or a local date-time.
func parseScheduledAt(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local(), true
	}
	return protocol.ParseLocalDateTime(raw)
}
