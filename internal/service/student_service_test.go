package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/elores-client/internal/protocol"
	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

func TestStudentServiceList(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200},"message":"ok","data":"[`+
		`{\"id\":21,\"nombre\":\"Iker\",\"apellidos\":\"Mendizabal\",\"curso\":2,\"ciclo\":\"DAM\"},null]"}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	students, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, 21, students[0].ID)
	assert.Equal(t, "Iker Mendizabal", students[0].FullName())
	assert.Equal(t, "2", students[0].Year)
	assert.EqualValues(t, 7, link.lastPayload(t)["profesorId"])
}

func TestStudentServiceListWithoutData(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200},"message":"ok"}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	students, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStudentServiceListEmptyStringArray(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200,"description":"OK"},"data":"[]"}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	students, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}

func TestStudentServiceListMalformedData(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200},"message":"ok","data":"[{oops"}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrParse)
}

func TestStudentServiceGet(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200},"message":"ok","data":{"id":21,"nombre":"Iker","dni":"12345678Z"}}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	student, err := svc.Get(context.Background(), 21)
	require.NoError(t, err)
	assert.Equal(t, "12345678Z", student.DNI)
	assert.EqualValues(t, 21, link.lastPayload(t)["alumnoId"])
}

func TestStudentServiceGetNotFound(t *testing.T) {
	link := newFakeLink().reply(protocol.CommandGetStudents, `{"status":{"code":200},"message":"ok","data":null}`)
	svc := NewStudentService(link, loggedIn(7), nil)

	_, err := svc.Get(context.Background(), 21)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
