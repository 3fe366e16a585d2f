package protocol

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is one decoded data object with its values still raw.
type Record map[string]json.RawMessage

// Field lists the candidate keys of one logical field in lookup order. The
// server spells keys in snake_case or camelCase depending on its layer.
type Field []string

// Keys builds a Field.
func Keys(keys ...string) Field { return Field(keys) }

// LocalDateTimeLayouts are accepted for date-time fields, most specific first.
var LocalDateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	"2006-01-02",
}

// Lookup returns the raw value of the first candidate key present with a
// non-null value.
func (r Record) Lookup(f Field) (json.RawMessage, bool) {
	for _, key := range f {
		raw, ok := r[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		return raw, true
	}
	return nil, false
}

// String returns the field as text. Numbers and booleans are rendered as
// written on the wire.
func (r Record) String(f Field) string {
	s, _ := r.StringOK(f)
	return s
}

// StringOK is String reporting whether any candidate key matched.
func (r Record) StringOK(f Field) (string, bool) {
	raw, ok := r.Lookup(f)
	if !ok {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	if raw[0] == '{' || raw[0] == '[' {
		return "", false
	}
	return string(raw), true
}

// Int64 returns the field as an integer. Quoted numbers are accepted.
func (r Record) Int64(f Field) (int64, bool) {
	for _, key := range f {
		if v, ok := r.int64(key); ok {
			return v, true
		}
	}
	return 0, false
}

func (r Record) int64(key string) (int64, bool) {
	raw, ok := r.Lookup(Field{key})
	if !ok {
		return 0, false
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
	}
	text = strings.TrimSpace(text)
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil && v == float64(int64(v)) {
		return int64(v), true
	}
	return 0, false
}

// Int returns the field as an int.
func (r Record) Int(f Field) (int, bool) {
	v, ok := r.Int64(f)
	return int(v), ok
}

// IntOr returns the field as an int, or fallback when absent.
func (r Record) IntOr(f Field, fallback int) int {
	if v, ok := r.Int(f); ok {
		return v
	}
	return fallback
}

// Time parses the field as a local date-time. Epoch milliseconds are also
// accepted.
func (r Record) Time(f Field) (time.Time, bool) {
	for _, key := range f {
		raw, ok := r.Lookup(Field{key})
		if !ok {
			continue
		}
		if raw[0] != '"' {
			if ms, ok := r.int64(key); ok {
				return time.UnixMilli(ms), true
			}
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			continue
		}
		if t, ok := ParseLocalDateTime(text); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseLocalDateTime parses text with LocalDateTimeLayouts in the local zone.
func ParseLocalDateTime(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range LocalDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
