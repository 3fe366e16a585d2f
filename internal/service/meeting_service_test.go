package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
	"github.com/noah-isme/elores-client/internal/session"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

func TestMeetingServiceCreate(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)

	at := time.Date(2024, 3, 12, 10, 0, 0, 0, time.Local)
	ok, err := svc.Create(context.Background(), CreateMeetingRequest{StudentID: 21, Title: "Seguimiento", Room: "B-2", ScheduledAt: at})
	require.NoError(t, err)
	assert.True(t, ok)

	payload := link.lastPayload(t)
	assert.EqualValues(t, 7, payload["profesorId"])
	assert.EqualValues(t, 21, payload["alumnoId"])
	assert.Equal(t, "Seguimiento", payload["titulo"])
	assert.Equal(t, "2024-03-12T10:00:00", payload["fecha"])
}

func TestMeetingServiceCreateInSlot(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, loggedIn(7), models.Periods{FirstHour: 8}, nil, nil)
	// Wednesday.
	svc.now = func() time.Time { return time.Date(2024, 3, 13, 15, 30, 0, 0, time.Local) }

	ok, at, err := svc.CreateInSlot(context.Background(), CreateMeetingInSlotRequest{
		StudentID: 21, Title: "Tutoría", Day: models.Wednesday, Period: 2,
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 20, 9, 0, 0, 0, time.Local), at)
	assert.Equal(t, "2024-03-20T09:00:00", link.lastPayload(t)["fecha"])
}

func TestMeetingServiceCreateRejected(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandCreateMeeting, `{"status":{"code":409,"description":"Conflict"},"message":"slot taken"}`)
	svc := NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)

	ok, err := svc.Create(context.Background(), CreateMeetingRequest{StudentID: 21, Title: "x", ScheduledAt: time.Now()})
	assert.False(t, ok)
	assert.ErrorIs(t, err, appErrors.ErrServer)
	assert.Equal(t, "slot taken", appErrors.FromError(err).Message)
}

func TestMeetingServicePreconditions(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, session.NewIdentity(), models.DefaultPeriods, nil, nil)

	_, err := svc.Create(context.Background(), CreateMeetingRequest{StudentID: 1, Title: "x", ScheduledAt: time.Now()})
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = svc.UpdateStatus(context.Background(), 1, "accepted")
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)

	svc = NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)
	_, err = svc.Create(context.Background(), CreateMeetingRequest{Title: "x", ScheduledAt: time.Now()})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.Delete(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	assert.Empty(t, link.sent())
}

func TestMeetingServiceUpdateStatusUsesWireValue(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)

	cases := map[string]string{
		"accepted":  "aceptada",
		"ONARTUTA":  "aceptada",
		"denegada":  "denegada",
		"cancelled": "cancelada",
		"pending":   "pendiente",
	}
	for input, wire := range cases {
		ok, err := svc.UpdateStatus(context.Background(), 4, input)
		require.NoError(t, err, input)
		assert.True(t, ok)
		payload := link.lastPayload(t)
		assert.Equal(t, wire, payload["estado"], input)
		assert.EqualValues(t, 4, payload["reunionId"])
		assert.EqualValues(t, 7, payload["profesorId"])
	}
}

func TestMeetingServiceUpdateStatusRejectsConflictAndUnknown(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 4, "conflicto")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.UpdateStatus(context.Background(), 4, "maybe")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, link.sent())
}

func TestMeetingServiceDelete(t *testing.T) {
	link := newFakeLink()
	svc := NewMeetingService(link, loggedIn(7), models.DefaultPeriods, nil, nil)

	ok, err := svc.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, protocol.CommandDeleteMeeting, link.sent()[0].Action)
	assert.EqualValues(t, 9, link.lastPayload(t)["reunionId"])
}
