package protocol

import (
	"bytes"
	"encoding/json"

	appErrors "github.com/noah-isme/elores-client/pkg/errors"
)

// Data is the late-bound data field of a response. The server may send
// nothing, null, an object, an array, or any of those embedded in a string.
type Data json.RawMessage

// MarshalJSON emits the raw value, or null when empty.
func (d Data) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(d)) == 0 {
		return []byte("null"), nil
	}
	return []byte(d), nil
}

// UnmarshalJSON keeps the raw value.
func (d *Data) UnmarshalJSON(raw []byte) error {
	*d = append((*d)[:0], raw...)
	return nil
}

// Raw returns the JSON value with one level of string embedding removed, or
// nil when there is no data.
func (d Data) Raw() (json.RawMessage, error) {
	raw := bytes.TrimSpace(d)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, parseError(err, "data is not valid JSON")
		}
		inner := bytes.TrimSpace([]byte(text))
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			return nil, nil
		}
		if !json.Valid(inner) {
			return nil, appErrors.Clone(appErrors.ErrParse, "data string does not hold JSON")
		}
		return inner, nil
	}

	if !json.Valid(raw) {
		return nil, appErrors.Clone(appErrors.ErrParse, "data is not valid JSON")
	}
	return json.RawMessage(raw), nil
}

// IsEmpty reports whether the response carries no data.
func (d Data) IsEmpty() bool {
	raw, err := d.Raw()
	return err == nil && raw == nil
}

// Records reads data as a collection of objects. An object becomes a one
// element collection and no data becomes an empty one. Null elements are
// skipped.
func (d Data) Records() ([]Record, error) {
	raw, err := d.Raw()
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []Record{}, nil
	}

	switch raw[0] {
	case '{':
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, parseError(err, "data array is malformed")
		}
		records := make([]Record, 0, len(items))
		for _, item := range items {
			item = bytes.TrimSpace(item)
			if bytes.Equal(item, []byte("null")) {
				continue
			}
			rec, err := decodeRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrParse, "data is neither an object nor an array")
	}
}

// Record reads data as a single object. An array yields its first element.
// ok is false when there is no data.
func (d Data) Record() (rec Record, ok bool, err error) {
	records, err := d.Records()
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

func decodeRecord(raw []byte) (Record, error) {
	if len(raw) == 0 || raw[0] != '{' {
		return nil, appErrors.Clone(appErrors.ErrParse, "data element is not an object")
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, parseError(err, "data element is malformed")
	}
	return rec, nil
}

func parseError(err error, message string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrParse.Code, appErrors.ErrParse.Status, message)
}
