package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// StatusOK is the only success code of the protocol.
const StatusOK = http.StatusOK

// emptyPayload is sent when a command carries no arguments.
var emptyPayload = json.RawMessage(`{}`)

// Request is one client message. Payload always holds the JSON text of an
// object.
type Request struct {
	Action       Command
	SessionToken string
	Payload      json.RawMessage
}

// Payload is the argument object of a request.
type Payload map[string]interface{}

// NewRequest builds a request for action. payload may be nil, a JSON string,
// raw JSON bytes, or any value that marshals to a JSON object.
func NewRequest(action Command, payload interface{}) (*Request, error) {
	raw, err := payloadJSON(payload)
	if err != nil {
		return nil, err
	}
	return &Request{Action: action, Payload: raw}, nil
}

func payloadJSON(payload interface{}) (json.RawMessage, error) {
	var raw []byte
	switch p := payload.(type) {
	case nil:
		return emptyPayload, nil
	case string:
		raw = []byte(p)
	case []byte:
		raw = p
	case json.RawMessage:
		raw = p
	default:
		encoded, err := json.Marshal(p)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidPayload.Code, appErrors.ErrInvalidPayload.Status, "encode payload")
		}
		raw = encoded
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return emptyPayload, nil
	}
	if !isJSONObject(raw) {
		return nil, appErrors.Clone(appErrors.ErrInvalidPayload, "")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidPayload.Code, appErrors.ErrInvalidPayload.Status, appErrors.ErrInvalidPayload.Message)
	}
	return compact.Bytes(), nil
}

func isJSONObject(raw []byte) bool {
	return len(raw) > 0 && raw[0] == '{' && json.Valid(raw)
}

type wireRequest struct {
	Action       Command         `json:"action"`
	SessionToken *string         `json:"sessionToken"`
	Payload      json.RawMessage `json:"payload"`
}

// Encode renders r as a single newline terminated line. The payload object
// travels as an embedded JSON string.
func (r *Request) Encode() ([]byte, error) {
	payload := r.Payload
	if len(payload) == 0 {
		payload = emptyPayload
	}
	embedded, err := json.Marshal(string(payload))
	if err != nil {
		return nil, err
	}

	wire := wireRequest{Action: r.Action, Payload: embedded}
	if r.SessionToken != "" {
		token := r.SessionToken
		wire.SessionToken = &token
	}

	line, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}

// DecodeRequest parses a request line. The payload may be an embedded
// string or an inline object.
func DecodeRequest(line []byte) (*Request, error) {
	var wire wireRequest
	if err := json.Unmarshal(bytes.TrimSpace(line), &wire); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "malformed request line")
	}

	req := &Request{Action: wire.Action}
	if wire.SessionToken != nil {
		req.SessionToken = *wire.SessionToken
	}

	payload := bytes.TrimSpace(wire.Payload)
	if len(payload) > 0 && payload[0] == '"' {
		var text string
		if err := json.Unmarshal(payload, &text); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "malformed payload")
		}
		payload = []byte(text)
	}
	if bytes.Equal(payload, []byte("null")) {
		payload = nil
	}

	raw, err := payloadJSON([]byte(payload))
	if err != nil {
		return nil, err
	}
	req.Payload = raw
	return req, nil
}

// DecodePayload unmarshals the payload object into v.
func (r *Request) DecodePayload(v interface{}) error {
	payload := r.Payload
	if len(payload) == 0 {
		payload = emptyPayload
	}
	return json.Unmarshal(payload, v)
}

// Status is the outcome header of a response.
type Status struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Description)
}

// Response is one server message. Data is left undecoded until a caller
// knows which shape to expect.
type Response struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Data    Data   `json:"data,omitempty"`
}

// IsSuccess reports whether the server answered 200.
func (r *Response) IsSuccess() bool {
	return r != nil && r.Status.Code == StatusOK
}

// ErrorMessage returns the server message, or fallback when there is none.
func (r *Response) ErrorMessage(fallback string) string {
	if r != nil && r.Message != "" {
		return r.Message
	}
	return fallback
}

type wireResponse struct {
	Status  *Status         `json:"status"`
	Message *string         `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeResponse parses one reply line. A missing status decodes as code 0,
// which is never a success.
func DecodeResponse(line []byte) (*Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(bytes.TrimSpace(line), &wire); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, "malformed server reply")
	}

	resp := &Response{Data: Data(wire.Data)}
	if wire.Status != nil {
		resp.Status = *wire.Status
	}
	if wire.Message != nil {
		resp.Message = *wire.Message
	}
	return resp, nil
}

// Encode renders r as a single line. Used by test servers.
func (r *Response) Encode() ([]byte, error) {
	wire := wireResponse{Status: &r.Status, Data: json.RawMessage(r.Data)}
	if r.Message != "" {
		msg := r.Message
		wire.Message = &msg
	}
	if len(wire.Data) == 0 {
		wire.Data = json.RawMessage("null")
	}
	line, err := json.Marshal(wire)
	if err != nil {
		return nil, err
	}
	return append(line, '\n'), nil
}
