package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// StudentService lists the current teacher's students.
type StudentService struct {
	exchanger session.Exchanger
	identity  *session.Identity
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(exchanger session.Exchanger, identity *session.Identity, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{exchanger: exchanger, identity: identity, logger: logger}
}

// List returns the students of the current teacher. No data is an empty list.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	user, err := requireUser(s.identity)
	if err != nil {
		return nil, err
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetStudents, protocol.Payload{"profesorId": user.ID}, "failed to load students")
	if err != nil {
		return nil, err
	}

	records, err := resp.Data.Records()
	if err != nil {
		return nil, parseFailure(err, "failed to read student data")
	}

	students := make([]models.Student, 0, len(records))
	for _, rec := range records {
		students = append(students, studentFromRecord(rec))
	}
	return students, nil
}

// Get returns one student with all details.
func (s *StudentService) Get(ctx context.Context, studentID int) (*models.Student, error) {
	if _, err := requireUser(s.identity); err != nil {
		return nil, err
	}
	if studentID <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}

	resp, err := exchange(ctx, s.exchanger, protocol.CommandGetStudents, protocol.Payload{"alumnoId": studentID}, "failed to load student")
	if err != nil {
		return nil, err
	}

	rec, ok, err := resp.Data.Record()
	if err != nil {
		return nil, parseFailure(err, "failed to read student data")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	student := studentFromRecord(rec)
	return &student, nil
}
