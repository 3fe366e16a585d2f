package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/elores-client/internal/dto"
	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/service"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
	"github.com/noah-isme/elores-client/pkg/response"
)

type scheduleService interface {
	GetSchedule(ctx context.Context, teacherID int) ([]models.TimetableEntry, error)
	GetMeetings(ctx context.Context, teacherID int) ([]models.Meeting, error)
	ListTeachers(ctx context.Context) ([]models.User, error)
	ComposeWeek(ctx context.Context, teacherID int) (*schedule.Grid, error)
}

type gridExporter interface {
	Render(grid *schedule.Grid, format service.ExportFormat, title string) ([]byte, error)
	Filename(title string, format service.ExportFormat) string
}

// ScheduleHandler serves timetables, the teacher directory and the weekly grid.
type ScheduleHandler struct {
	schedule scheduleService
	exporter gridExporter
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(schedule scheduleService, exporter gridExporter) *ScheduleHandler {
	return &ScheduleHandler{schedule: schedule, exporter: exporter}
}

func bindTeacher(c *gin.Context) (int, bool) {
	var q dto.TeacherQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacherId"))
		return 0, false
	}
	return q.TeacherID, true
}

// Teachers godoc
// @Summary List teachers
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers [get]
func (h *ScheduleHandler) Teachers(c *gin.Context) {
	teachers, err := h.schedule.ListTeachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teachers)
}

// Entries godoc
// @Summary Timetable entries of a teacher
// @Tags Schedule
// @Produce json
// @Param teacherId query int false "Teacher, current user when omitted"
// @Success 200 {object} response.Envelope
// @Router /schedule [get]
func (h *ScheduleHandler) Entries(c *gin.Context) {
	teacherID, ok := bindTeacher(c)
	if !ok {
		return
	}
	entries, err := h.schedule.GetSchedule(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Grid godoc
// @Summary Composed weekly grid
// @Tags Schedule
// @Produce json
// @Param teacherId query int false "Teacher, current user when omitted"
// @Success 200 {object} response.Envelope
// @Router /schedule/grid [get]
func (h *ScheduleHandler) Grid(c *gin.Context) {
	teacherID, ok := bindTeacher(c)
	if !ok {
		return
	}
	grid, err := h.schedule.ComposeWeek(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewGridResponse(teacherID, grid))
}

// Export godoc
// @Summary Download the weekly grid
// @Tags Schedule
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param teacherId query int false "Teacher, current user when omitted"
// @Success 200 {file} file
// @Router /schedule/grid/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var q dto.ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	format, err := service.ParseExportFormat(q.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	grid, err := h.schedule.ComposeWeek(c.Request.Context(), q.TeacherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	title := "schedule"
	if q.TeacherID > 0 {
		title = fmt.Sprintf("schedule_%d", q.TeacherID)
	}
	payload, err := h.exporter.Render(grid, format, title)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, h.exporter.Filename(title, format), format.ContentType(), payload)
}
