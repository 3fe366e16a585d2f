package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/schedule"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

const timetableReply = `{"status":{"code":200,"description":"OK"},"message":"ok","data":"[` +
	`{\"id\":1,\"dia\":\"LUNES\",\"hora\":1,\"profe_id\":7,\"modulo_nombre\":\"Programación\",\"aula\":\"A-101\",\"curso\":\"2\",\"ciclo_nombre\":\"DAM\"},` +
	`{\"id\":2,\"dia\":\"MARTES\",\"hora\":3,\"profe_id\":7,\"modulo_nombre\":\"Tutoría\"}` +
	`]"}`

func newScheduleService(link *fakeLink, identity *session.Identity) *ScheduleService {
	return NewScheduleService(link, identity, nil, models.DefaultPeriods, nil)
}

func TestScheduleServiceGetScheduleDefaultsToCurrentUser(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetSchedule, timetableReply)
	svc := newScheduleService(link, loggedIn(7))

	entries, err := svc.GetSchedule(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.Monday, entries[0].Day)
	assert.Equal(t, "Programación\n2º DAM\nA-101", entries[0].Label())
	assert.Equal(t, models.KindTutoring, entries[1].Kind())
	assert.EqualValues(t, 7, link.lastPayload(t)["profesorId"])

	_, err = svc.GetSchedule(context.Background(), 12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, link.lastPayload(t)["profesorId"])
}

func TestScheduleServiceEmptyStringArray(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetSchedule, `{"status":{"code":200,"description":"OK"},"message":"ok","data":"[]"}`)
	svc := newScheduleService(link, loggedIn(7))

	entries, err := svc.GetSchedule(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestScheduleServiceRequiresLogin(t *testing.T) {
	link := newFakeLink()
	svc := newScheduleService(link, session.NewIdentity())

	_, err := svc.GetSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = svc.GetMeetings(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = svc.ListTeachers(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	assert.Empty(t, link.sent())
}

func TestScheduleServiceNotConnected(t *testing.T) {
	link := newFakeLink()
	link.connected = false
	svc := newScheduleService(link, loggedIn(7))

	_, err := svc.GetSchedule(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrNotConnected)
	assert.Empty(t, link.sent())
}

func TestScheduleServiceMeetingFailureDegrades(t *testing.T) {
	link := newFakeLink().
		reply(protocol.CommandGetSchedule, timetableReply).
		fail(protocol.CommandGetMeetings, appErrors.Clone(appErrors.ErrCommunication, ""))
	svc := newScheduleService(link, loggedIn(7))

	meetings, err := svc.GetMeetings(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, meetings)
	assert.Empty(t, meetings)

	grid, err := svc.ComposeWeek(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, schedule.TierClass, grid.At(models.Monday, 1).Tier)
	assert.Equal(t, schedule.TierTutoring, grid.At(models.Tuesday, 3).Tier)
}

func TestScheduleServiceComposeWeekOverlaysMeetings(t *testing.T) {
	link := newFakeLink().
		reply(protocol.CommandGetSchedule, timetableReply).
		reply(protocol.CommandGetMeetings, `{"status":{"code":200},"message":"ok","data":[`+
			`{"id_reunion":4,"estado":"aceptada","titulo":"Evaluación","fecha":"2024-03-11T09:00:00"}]}`)
	svc := NewScheduleService(link, loggedIn(7), nil, models.Periods{FirstHour: 9}, nil)

	grid, err := svc.ComposeWeek(context.Background(), 0)
	require.NoError(t, err)

	cell := grid.At(models.Monday, 1)
	assert.Equal(t, schedule.TierAccepted, cell.Tier)
	assert.Equal(t, "Programación\n2º DAM\nA-101", cell.Label)
	assert.Equal(t, "Meeting: Evaluación", cell.MeetingTitle)
}

func TestScheduleServiceTimetableFailureIsFatal(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetSchedule, `{"status":{"code":500,"description":"Error"},"message":"db down"}`)
	svc := newScheduleService(link, loggedIn(7))

	_, err := svc.ComposeWeek(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrServer)
	assert.Equal(t, "db down", appErrors.FromError(err).Message)
}

func TestScheduleServiceListTeachers(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetTeachers, `{"status":{"code":200},"message":"ok","data":"[`+
		`{\"id\":1,\"nombre\":\"Jon\",\"apellido\":\"Agirre\"},{\"id\":2,\"nombre\":\"Miren\",\"apellidos\":\"Lasa\",\"apellido\":\"X\"}]"}`)
	svc := newScheduleService(link, loggedIn(7))

	teachers, err := svc.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "Jon Agirre", teachers[0].FullName())
	assert.Equal(t, "Miren Lasa", teachers[1].FullName())
}

func TestScheduleServiceListTeachersFailureMessage(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetTeachers, `{"status":{"code":500},"message":"boom"}`)
	svc := newScheduleService(link, loggedIn(7))

	_, err := svc.ListTeachers(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrServer)
	assert.Equal(t, "failed to list teachers: boom", appErrors.FromError(err).Message)
}
