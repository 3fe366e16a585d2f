package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// ScheduleService reads timetables, meetings and the teacher directory and
// composes the weekly grid.
type ScheduleService struct {
	exchanger session.Exchanger
	identity  *session.Identity
	composer  *schedule.Composer
	periods   models.Periods
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(exchanger session.Exchanger, identity *session.Identity, composer *schedule.Composer, periods models.Periods, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if composer == nil {
		composer = schedule.NewComposer(logger)
	}
	return &ScheduleService{exchanger: exchanger, identity: identity, composer: composer, periods: periods, logger: logger}
}

// resolveTeacher returns teacherID, or the current user's ID when it is zero.
func (s *ScheduleService) resolveTeacher(teacherID int) (int, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return 0, err
	}
	if teacherID > 0 {
		return teacherID, nil
	}
	return user.ID, nil
}

// GetSchedule returns the timetable of teacherID, the current user when zero.
func (s *ScheduleService) GetSchedule(ctx context.Context, teacherID int) ([]models.TimetableEntry, error) {
	teacherID, err := s.resolveTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetSchedule, protocol.Payload{"profesorId": teacherID}, "failed to load schedule")
	if err != nil {
		return nil, err
	}

	records, err := resp.Data.Records()
	if err != nil {
		return nil, parseFailure(err, "failed to read schedule data")
	}

	entries := make([]models.TimetableEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, timetableEntryFromRecord(rec))
	}
	return entries, nil
}

// GetMeetings returns the meetings of teacherID, the current user when zero.
// Meetings are secondary data: any failure after the precondition checks is
// logged and yields an empty list.
func (s *ScheduleService) GetMeetings(ctx context.Context, teacherID int) ([]models.Meeting, error) {
	teacherID, err := s.resolveTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetMeetings, protocol.Payload{"profesorId": teacherID}, "failed to load meetings")
	if err != nil {
		s.logger.Warn("meetings unavailable", zap.Int("teacher_id", teacherID), zap.Error(err))
		return []models.Meeting{}, nil
	}

	records, err := resp.Data.Records()
	if err != nil {
		s.logger.Warn("meetings unreadable", zap.Int("teacher_id", teacherID), zap.Error(err))
		return []models.Meeting{}, nil
	}

	meetings := make([]models.Meeting, 0, len(records))
	for _, rec := range records {
		meetings = append(meetings, meetingFromRecord(rec, s.periods))
	}
	return meetings, nil
}

// ListTeachers returns the teacher directory.
func (s *ScheduleService) ListTeachers(ctx context.Context) ([]models.User, error) {
	if _, err := requireUser(s.identity); err != nil {
		return nil, err
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetTeachers, nil, "unknown error")
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrServer.Code {
			return nil, appErrors.Clone(appErr, "failed to list teachers: "+appErr.Message)
		}
		return nil, err
	}

	records, err := resp.Data.Records()
	if err != nil {
		return nil, parseFailure(err, "failed to read teacher list")
	}

	teachers := make([]models.User, 0, len(records))
	for _, rec := range records {
		teachers = append(teachers, userFromRecord(rec))
	}
	return teachers, nil
}

// ComposeWeek loads both streams for teacherID and composes the grid. A
// timetable failure is returned; a meeting failure leaves the grid without
// meetings.
func (s *ScheduleService) ComposeWeek(ctx context.Context, teacherID int) (*schedule.Grid, error) {
	entries, err := s.GetSchedule(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	meetings, err := s.GetMeetings(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	return s.composer.Compose(entries, meetings), nil
}
