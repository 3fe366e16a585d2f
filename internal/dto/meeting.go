package dto

import (
	"time"

	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/service"
)

// CreateMeetingRequest creates a meeting either at an explicit date
// (scheduledAt) or at the next occurrence of a grid slot (day and period).
type CreateMeetingRequest struct {
	StudentID   int    `json:"studentId" binding:"required,gt=0"`
	Title       string `json:"title" binding:"required"`
	Subject     string `json:"subject"`
	Room        string `json:"room"`
	ScheduledAt string `json:"scheduledAt"`
	Day         string `json:"day"`
	Period      int    `json:"period"`
}

// UsesSlot reports whether the request names a grid slot instead of a date.
func (r CreateMeetingRequest) UsesSlot() bool {
	return r.ScheduledAt == "" && (r.Day != "" || r.Period != 0)
}

// SlotRequest converts to the service slot request. ok is false when the day
// is unknown.
func (r CreateMeetingRequest) SlotRequest() (service.CreateMeetingInSlotRequest, bool) {
	day, ok := models.ParseWeekday(r.Day)
	return service.CreateMeetingInSlotRequest{
		StudentID: r.StudentID,
		Title:     r.Title,
		Subject:   r.Subject,
		Room:      r.Room,
		Day:       day,
		Period:    r.Period,
	}, ok
}

// DateRequest converts to the service date request using at.
func (r CreateMeetingRequest) DateRequest(at time.Time) service.CreateMeetingRequest {
	return service.CreateMeetingRequest{
		StudentID:   r.StudentID,
		Title:       r.Title,
		Subject:     r.Subject,
		Room:        r.Room,
		ScheduledAt: at,
	}
}

// CreateMeetingResponse reports the created meeting date.
type CreateMeetingResponse struct {
	Created     bool      `json:"created"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// UpdateMeetingStatusRequest changes a meeting's status.
type UpdateMeetingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// MeetingResponse is a meeting as listed to the UI.
type MeetingResponse struct {
	models.Meeting
	Tier  string `json:"tier"`
	Color string `json:"color"`
}
