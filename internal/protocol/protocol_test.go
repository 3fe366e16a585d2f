package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

func TestCommandRoundTrip(t *testing.T) {
	for _, cmd := range Commands() {
		encoded, err := json.Marshal(cmd)
		require.NoError(t, err)

		var decoded Command
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, cmd, decoded)
	}
}

func TestUnknownCommandDecodesToOther(t *testing.T) {
	for _, raw := range []string{`"REBOOT"`, `""`, `42`, `null`, `{"a":1}`} {
		var decoded Command
		require.NoError(t, json.Unmarshal([]byte(raw), &decoded), raw)
		assert.Equal(t, CommandOther, decoded, raw)
	}
	assert.Equal(t, CommandPing, ParseCommand(" ping "))
	assert.Equal(t, CommandOther, ParseCommand("get_everything"))
}

func TestRequestEncodeEmbedsPayloadAsString(t *testing.T) {
	req, err := NewRequest(CommandLogin, Payload{"email": "ana@elorrieta.eus", "password": "secret"})
	require.NoError(t, err)

	line, err := req.Encode()
	require.NoError(t, err)
	assert.True(t, bytes.HasSuffix(line, []byte("\n")))
	assert.Equal(t, 1, bytes.Count(line, []byte("\n")))

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(line, &wire))
	assert.Equal(t, "LOGIN", wire["action"])
	assert.Nil(t, wire["sessionToken"])

	payload, ok := wire["payload"].(string)
	require.True(t, ok)
	var inner map[string]string
	require.NoError(t, json.Unmarshal([]byte(payload), &inner))
	assert.Equal(t, "ana@elorrieta.eus", inner["email"])

	decoded, err := DecodeRequest(line)
	require.NoError(t, err)
	assert.Equal(t, CommandLogin, decoded.Action)
	assert.JSONEq(t, string(req.Payload), string(decoded.Payload))
}

func TestNewRequestPayloadForms(t *testing.T) {
	req, err := NewRequest(CommandPing, nil)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(req.Payload))

	req, err = NewRequest(CommandGetSchedule, `{ "profesorId": 7 }`)
	require.NoError(t, err)
	assert.Equal(t, `{"profesorId":7}`, string(req.Payload))

	for _, bad := range []interface{}{`[1,2]`, `"text"`, `{broken`, 12} {
		_, err = NewRequest(CommandGetSchedule, bad)
		assert.True(t, errors.Is(err, appErrors.ErrInvalidPayload), "%v", bad)
	}
}

func TestDecodeRequestAcceptsInlineObject(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"action":"GET_ALUMNOS","sessionToken":"tok","payload":{"profesorId":3}}`))
	require.NoError(t, err)
	assert.Equal(t, CommandGetStudents, req.Action)
	assert.Equal(t, "tok", req.SessionToken)

	var p struct {
		ProfesorID int `json:"profesorId"`
	}
	require.NoError(t, req.DecodePayload(&p))
	assert.Equal(t, 3, p.ProfesorID)
}

func TestIsSuccessOnlyFor200(t *testing.T) {
	for _, desc := range []string{"OK", "", "anything"} {
		resp := &Response{Status: Status{Code: 200, Description: desc}}
		assert.True(t, resp.IsSuccess())
	}
	for _, code := range []int{0, -1, -200, 201, 204, 400, 401, 500} {
		resp := &Response{Status: Status{Code: code, Description: "OK"}}
		assert.False(t, resp.IsSuccess(), code)
	}
	var missing *Response
	assert.False(t, missing.IsSuccess())
}

func TestDecodeResponseKeepsDataLateBound(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"status":{"code":401,"description":"Unauthorized"},"message":"bad credentials"}`))
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, "bad credentials", resp.ErrorMessage("fallback"))
	assert.True(t, resp.Data.IsEmpty())

	resp, err = DecodeResponse([]byte(`{"data":{"a":1}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Status.Code)
	assert.Equal(t, "fallback", resp.ErrorMessage("fallback"))

	_, err = DecodeResponse([]byte(`{"status":`))
	assert.True(t, errors.Is(err, appErrors.ErrParse))
}

func TestDataShapes(t *testing.T) {
	cases := map[string]int{
		``:                    0,
		`null`:                0,
		`""`:                  0,
		`"[]"`:                0,
		`[]`:                  0,
		`{"id":1}`:            1,
		`"{\"id\":1}"`:        1,
		`[{"id":1},{"id":2}]`: 2,
		`[{"id":1},null]`:     1,
		`"[{\"id\":1}]"`:      1,
	}
	for raw, want := range cases {
		records, err := Data(raw).Records()
		require.NoError(t, err, raw)
		assert.Len(t, records, want, raw)
	}
}

func TestMalformedDataIsParseError(t *testing.T) {
	for _, raw := range []string{`"not json"`, `42`, `[1,2]`, `"{broken"`} {
		_, err := Data(raw).Records()
		assert.True(t, errors.Is(err, appErrors.ErrParse), raw)
	}
}

func TestResponseWithMalformedDataStillDecodes(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"status":{"code":200,"description":"OK"},"data":"oops"}`))
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	_, err = resp.Data.Records()
	assert.True(t, errors.Is(err, appErrors.ErrParse))
}

func TestRecordTolerantLookup(t *testing.T) {
	rec := Record{
		"profeId":      json.RawMessage(`"12"`),
		"modulo_id":    json.RawMessage(`null`),
		"moduloId":     json.RawMessage(`4`),
		"hora":         json.RawMessage(`2.0`),
		"curso":        json.RawMessage(`1`),
		"fecha":        json.RawMessage(`"2024-03-04T10:00:00"`),
		"creado":       json.RawMessage(`1700000000000`),
		"moduloNombre": json.RawMessage(`"Programación"`),
	}

	id, ok := rec.Int(Keys("profe_id", "profeId", "profesorId"))
	require.True(t, ok)
	assert.Equal(t, 12, id)

	subject, ok := rec.Int(Keys("modulo_id", "moduloId"))
	require.True(t, ok)
	assert.Equal(t, 4, subject)

	assert.Equal(t, 2, rec.IntOr(Keys("hora"), 0))
	assert.Equal(t, "1", rec.String(Keys("curso")))
	assert.Equal(t, "Programación", rec.String(Keys("modulo_nombre", "moduloNombre", "modulo")))
	assert.Equal(t, -1, rec.IntOr(Keys("missing"), -1))

	at, ok := rec.Time(Keys("fecha"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.Local), at)

	created, ok := rec.Time(Keys("creado"))
	require.True(t, ok)
	assert.Equal(t, int64(1700000000000), created.UnixMilli())
}
