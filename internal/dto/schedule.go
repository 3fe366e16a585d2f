package dto

import (
	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/schedule"
)

// GridCell is one composed slot as served to the UI.
type GridCell struct {
	Day          models.Weekday `json:"day"`
	Period       int            `json:"period"`
	Label        string         `json:"label"`
	Tier         schedule.Tier  `json:"tier"`
	Color        string         `json:"color"`
	MeetingTitle string         `json:"meetingTitle,omitempty"`
	EntryID      int            `json:"entryId,omitempty"`
	MeetingID    int            `json:"meetingId,omitempty"`
}

// GridResponse is the weekly grid, one row per period.
type GridResponse struct {
	TeacherID int          `json:"teacherId"`
	Days      []string     `json:"days"`
	Rows      [][]GridCell `json:"rows"`
}

// NewGridResponse flattens a composed grid.
func NewGridResponse(teacherID int, grid *schedule.Grid) GridResponse {
	days := make([]string, 0, len(models.Weekdays))
	for _, day := range models.Weekdays {
		days = append(days, day.String())
	}

	rows := grid.Rows()
	out := GridResponse{TeacherID: teacherID, Days: days, Rows: make([][]GridCell, 0, len(rows))}
	for _, cells := range rows {
		row := make([]GridCell, 0, len(cells))
		for _, cell := range cells {
			item := GridCell{
				Day:          cell.Slot.Day,
				Period:       cell.Slot.Period,
				Label:        cell.Label,
				Tier:         cell.Tier,
				Color:        cell.Tier.Color().Hex(),
				MeetingTitle: cell.MeetingTitle,
			}
			if cell.Entry != nil {
				item.EntryID = cell.Entry.ID
			}
			if cell.Meeting != nil {
				item.MeetingID = cell.Meeting.ID
			}
			row = append(row, item)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// TeacherQuery selects whose schedule to read. Zero means the current user.
type TeacherQuery struct {
	TeacherID int `form:"teacherId" binding:"omitempty,min=0"`
}

// ExportQuery selects the export format.
type ExportQuery struct {
	TeacherQuery
	Format string `form:"format"`
}
