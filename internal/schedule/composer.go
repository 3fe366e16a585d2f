package schedule

import (
	"go.uber.org/zap"

	"github.com/noah-isme/elores-client/internal/models"
)

const untitledMeeting = "Untitled"

// Cell is the content of one grid slot.
type Cell struct {
	Slot  models.Slot `json:"slot"`
	Label string      `json:"label"`
	Tier  Tier        `json:"tier"`
	// MeetingTitle is set when a meeting is overlaid on a timetable entry.
	MeetingTitle string                 `json:"meetingTitle,omitempty"`
	Entry        *models.TimetableEntry `json:"entry,omitempty"`
	Meeting      *models.Meeting        `json:"meeting,omitempty"`
}

// Empty reports whether nothing was placed in the cell.
func (c Cell) Empty() bool {
	return c.Entry == nil && c.Meeting == nil
}

// Overlaid reports whether a meeting sits on top of a timetable entry.
func (c Cell) Overlaid() bool {
	return c.Entry != nil && c.Meeting != nil
}

// Text is the full text shown in the cell. An overlaid meeting title goes
// below the timetable label.
func (c Cell) Text() string {
	if c.MeetingTitle == "" {
		return c.Label
	}
	return c.Label + "\n" + c.MeetingTitle
}

// Grid is the composed 5x6 week. It is read-only once built.
type Grid struct {
	cells map[models.Slot]Cell
}

// Cell returns the content of slot. Unknown slots are empty.
func (g *Grid) Cell(slot models.Slot) Cell {
	if c, ok := g.cells[slot]; ok {
		return c
	}
	return Cell{Slot: slot, Tier: TierEmpty}
}

// At is Cell for a day and period.
func (g *Grid) At(day models.Weekday, period int) Cell {
	return g.Cell(models.Slot{Day: day, Period: period})
}

// Rows returns the cells period by period, each row Monday to Friday.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, 0, models.PeriodsPerDay)
	for period := 1; period <= models.PeriodsPerDay; period++ {
		row := make([]Cell, 0, len(models.Weekdays))
		for _, day := range models.Weekdays {
			row = append(row, g.At(day, period))
		}
		rows = append(rows, row)
	}
	return rows
}

// Composer lays timetable entries and meetings onto a weekly grid.
type Composer struct {
	logger *zap.Logger
}

// NewComposer constructs a Composer.
func NewComposer(logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{logger: logger}
}

// Compose builds the grid. Entries are placed first, later entries replacing
// earlier ones in the same slot. Meetings follow: on an entry they keep the
// entry label and add their title and tier; on an empty slot they become
// the content. Between meetings in one slot the last one wins. Items without
// a valid slot are dropped.
func (c *Composer) Compose(entries []models.TimetableEntry, meetings []models.Meeting) *Grid {
	grid := &Grid{cells: make(map[models.Slot]Cell, len(models.Weekdays)*models.PeriodsPerDay)}
	for _, day := range models.Weekdays {
		for period := 1; period <= models.PeriodsPerDay; period++ {
			slot := models.Slot{Day: day, Period: period}
			grid.cells[slot] = Cell{Slot: slot, Tier: TierEmpty}
		}
	}

	dropped := 0
	for i := range entries {
		entry := entries[i]
		slot := entry.Slot()
		if !slot.Valid() {
			dropped++
			continue
		}
		grid.cells[slot] = Cell{
			Slot:  slot,
			Label: entry.Label(),
			Tier:  EntryTier(entry.Kind()),
			Entry: &entry,
		}
	}

	for i := range meetings {
		meeting := meetings[i]
		slot := meeting.Slot()
		if !slot.Valid() {
			dropped++
			continue
		}

		title := meeting.Title
		if title == "" {
			title = untitledMeeting
		}

		cell := grid.cells[slot]
		cell.Meeting = &meeting
		cell.Tier = MeetingTier(meeting)
		if cell.Entry != nil {
			cell.MeetingTitle = "Meeting: " + title
		} else {
			cell.Label = "Meeting:\n" + title
		}
		grid.cells[slot] = cell
	}

	if dropped > 0 {
		c.logger.Debug("items without a grid slot dropped", zap.Int("count", dropped))
	}
	return grid
}
