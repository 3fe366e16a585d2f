package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// wireDateTime is the ISO local date-time layout the server expects.
const wireDateTime = "2006-01-02T15:04:05"

// CreateMeetingRequest describes a meeting at an explicit date.
type CreateMeetingRequest struct {
	StudentID   int       `json:"studentId" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,max=200"`
	Subject     string    `json:"subject" validate:"max=500"`
	Room        string    `json:"room" validate:"max=50"`
	ScheduledAt time.Time `json:"scheduledAt" validate:"required"`
}

// CreateMeetingInSlotRequest describes a meeting at the next occurrence of a
// grid slot.
type CreateMeetingInSlotRequest struct {
	StudentID int            `json:"studentId" validate:"required,gt=0"`
	Title     string         `json:"title" validate:"required,max=200"`
	Subject   string         `json:"subject" validate:"max=500"`
	Room      string         `json:"room" validate:"max=50"`
	Day       models.Weekday `json:"day" validate:"required,min=1,max=5"`
	Period    int            `json:"period" validate:"required,min=1,max=6"`
}

// MeetingService creates, updates and deletes the current teacher's meetings.
type MeetingService struct {
	exchanger session.Exchanger
	identity  *session.Identity
	periods   models.Periods
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewMeetingService constructs a MeetingService.
func NewMeetingService(exchanger session.Exchanger, identity *session.Identity, periods models.Periods, validate *validator.Validate, logger *zap.Logger) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MeetingService{
		exchanger: exchanger,
		identity:  identity,
		periods:   periods,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Create asks the server to create a meeting with the current teacher.
func (s *MeetingService) Create(ctx context.Context, req CreateMeetingRequest) (bool, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return false, err
	}
	if err := s.validator.Struct(req); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}

	_, err = exchange(ctx, s.exchanger, protocol.CommandCreateMeeting, protocol.Payload{
		"profesorId": user.ID,
		"alumnoId":   req.StudentID,
		"titulo":     req.Title,
		"asunto":     req.Subject,
		"aula":       req.Room,
		"fecha":      req.ScheduledAt.Format(wireDateTime),
	}, "failed to create meeting")
	if err != nil {
		return false, err
	}

	s.logger.Info("meeting created", zap.Int("teacher_id", user.ID), zap.Int("student_id", req.StudentID), zap.Time("scheduled_at", req.ScheduledAt))
	return true, nil
}

// CreateInSlot creates a meeting on the first date strictly after today that
// falls on the slot's day, at the slot's period hour.
func (s *MeetingService) CreateInSlot(ctx context.Context, req CreateMeetingInSlotRequest) (bool, time.Time, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, time.Time{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meeting payload")
	}

	at := s.periods.NextOccurrence(s.now(), models.Slot{Day: req.Day, Period: req.Period})
	ok, err := s.Create(ctx, CreateMeetingRequest{
		StudentID:   req.StudentID,
		Title:       req.Title,
		Subject:     req.Subject,
		Room:        req.Room,
		ScheduledAt: at,
	})
	return ok, at, err
}

// UpdateStatus changes the state of a meeting. Only pending, accepted,
// denied and cancelled may be requested, in any known spelling.
func (s *MeetingService) UpdateStatus(ctx context.Context, meetingID int, status string) (bool, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return false, err
	}
	if meetingID <= 0 {
		return false, appErrors.Clone(appErrors.ErrValidation, "meeting id is required")
	}

	canonical, ok := models.NormalizeStatus(status)
	if !ok || !canonical.Settable() {
		return false, appErrors.Clone(appErrors.ErrValidation, "unsupported meeting status: "+status)
	}

	_, err = exchange(ctx, s.exchanger, protocol.CommandUpdateMeeting, protocol.Payload{
		"reunionId":  meetingID,
		"estado":     canonical.WireName(),
		"profesorId": user.ID,
	}, "failed to update meeting")
	if err != nil {
		return false, err
	}

	s.logger.Info("meeting status updated", zap.Int("meeting_id", meetingID), zap.String("status", string(canonical)))
	return true, nil
}

// Delete removes a meeting.
func (s *MeetingService) Delete(ctx context.Context, meetingID int) (bool, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return false, err
	}
	if meetingID <= 0 {
		return false, appErrors.Clone(appErrors.ErrValidation, "meeting id is required")
	}

	_, err = exchange(ctx, s.exchanger, protocol.CommandDeleteMeeting, protocol.Payload{
		"reunionId":  meetingID,
		"profesorId": user.ID,
	}, "failed to delete meeting")
	if err != nil {
		return false, err
	}

	s.logger.Info("meeting deleted", zap.Int("meeting_id", meetingID))
	return true, nil
}
