package models

import (
	"strings"
	"time"
)

// MeetingStatus is the canonical state of a meeting.
type MeetingStatus string

const (
	StatusPending   MeetingStatus = "pending"
	StatusAccepted  MeetingStatus = "accepted"
	StatusDenied    MeetingStatus = "denied"
	StatusConflict  MeetingStatus = "conflict"
	StatusCancelled MeetingStatus = "cancelled"
)

// statusAliases maps lower-cased Spanish, Basque and English spellings onto
// the canonical states.
var statusAliases = map[string]MeetingStatus{
	"pending":   StatusPending,
	"pendiente": StatusPending,
	"onartzeke": StatusPending,

	"accepted": StatusAccepted,
	"aceptada": StatusAccepted,
	"aceptado": StatusAccepted,
	"onartuta": StatusAccepted,

	"denied":     StatusDenied,
	"denegada":   StatusDenied,
	"denegado":   StatusDenied,
	"ezeztatuta": StatusDenied,

	"conflict":  StatusConflict,
	"conflicto": StatusConflict,
	"gatazka":   StatusConflict,

	"cancelled": StatusCancelled,
	"canceled":  StatusCancelled,
	"cancelada": StatusCancelled,
	"cancelado": StatusCancelled,
}

var statusWireNames = map[MeetingStatus]string{
	StatusPending:   "pendiente",
	StatusAccepted:  "aceptada",
	StatusDenied:    "denegada",
	StatusConflict:  "conflicto",
	StatusCancelled: "cancelada",
}

// NormalizeStatus maps any known alias onto its canonical status, ignoring
// case and surrounding space.
func NormalizeStatus(raw string) (MeetingStatus, bool) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// WireName is the value sent to the server for s.
func (s MeetingStatus) WireName() string { return statusWireNames[s] }

// Settable reports whether a client may request s. Conflict is assigned by
// the server only.
func (s MeetingStatus) Settable() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDenied, StatusCancelled:
		return true
	default:
		return false
	}
}

// Meeting is a teacher/student meeting. Day and period are zero unless the
// server sent them or they were derived from ScheduledAt.
type Meeting struct {
	ID          int       `json:"id"`
	Status      string    `json:"status"`
	StatusEus   string    `json:"statusEus,omitempty"`
	TeacherID   int       `json:"teacherId"`
	StudentID   int       `json:"studentId"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Room        string    `json:"room"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Day         Weekday   `json:"day"`
	Period      int       `json:"period"`
}

// Slot returns the grid cell of the meeting.
func (m Meeting) Slot() Slot {
	return Slot{Day: m.Day, Period: m.Period}
}

// Statuses returns the raw status values carried by the meeting.
func (m Meeting) Statuses() []string {
	statuses := make([]string, 0, 2)
	if m.Status != "" {
		statuses = append(statuses, m.Status)
	}
	if m.StatusEus != "" {
		statuses = append(statuses, m.StatusEus)
	}
	return statuses
}

// Periods maps wall-clock hours onto timetable periods.
type Periods struct {
	// FirstHour is the hour of day at which period 1 starts.
	FirstHour int
}

// DefaultPeriods numbers periods after the hour of day, period 1 at 01:00.
var DefaultPeriods = Periods{FirstHour: 1}

func (p Periods) firstHour() int {
	if p.FirstHour <= 0 {
		return 1
	}
	return p.FirstHour
}

// SlotOf derives the grid cell of t. ok is false outside school days and
// periods.
func (p Periods) SlotOf(t time.Time) (Slot, bool) {
	if t.IsZero() {
		return Slot{}, false
	}
	day, ok := WeekdayFromTime(t)
	if !ok {
		return Slot{}, false
	}
	slot := Slot{Day: day, Period: t.Hour() - p.firstHour() + 1}
	return slot, slot.Valid()
}

// HourOf is the inverse of SlotOf for the period.
func (p Periods) HourOf(period int) int {
	return p.firstHour() + period - 1
}

// NextOccurrence returns the first date strictly after now that falls on the
// slot's day, at the slot's period hour.
func (p Periods) NextOccurrence(now time.Time, slot Slot) time.Time {
	days := int(slot.Day.TimeWeekday()) - int(now.Weekday())
	if days <= 0 {
		days += 7
	}
	date := now.AddDate(0, 0, days)
	return time.Date(date.Year(), date.Month(), date.Day(), p.HourOf(slot.Period), 0, 0, 0, now.Location())
}
