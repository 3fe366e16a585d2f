package models

import (
	"strings"
)

// EntryKind classifies a timetable entry by its subject.
type EntryKind string

const (
	KindClass    EntryKind = "CLASS"
	KindTutoring EntryKind = "TUTORING"
	KindDuty     EntryKind = "DUTY"
)

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

// TimetableEntry is one fixed weekly timetable slot. Entries are read-only
// and reloaded with every schedule request.
type TimetableEntry struct {
	ID          int     `json:"id"`
	Day         Weekday `json:"day"`
	Period      int     `json:"period"`
	TeacherID   int     `json:"teacherId"`
	SubjectID   int     `json:"subjectId"`
	SubjectName string  `json:"subjectName"`
	Room        string  `json:"room"`
	Notes       string  `json:"notes"`
	CycleID     int     `json:"cycleId"`
	Year        string  `json:"year"`
	CycleName   string  `json:"cycleName"`
}

// Kind derives the entry kind from the subject name. Tutoring wins over duty
// when both words appear.
func (e TimetableEntry) Kind() EntryKind {
	name := accentFolder.Replace(strings.ToLower(e.SubjectName))
	switch {
	case strings.Contains(name, "tutoria"), strings.Contains(name, "tutoretza"):
		return KindTutoring
	case strings.Contains(name, "guardia"), strings.Contains(name, "zaintza"):
		return KindDuty
	default:
		return KindClass
	}
}

// Label is the text shown in the grid cell. Tutoring and duty show only the
// kind; a class shows subject, year and cycle, and room, one per line.
func (e TimetableEntry) Label() string {
	kind := e.Kind()
	if kind != KindClass {
		return string(kind)
	}

	var sb strings.Builder
	sb.WriteString(e.SubjectName)
	if e.Year != "" && e.CycleName != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Year)
		sb.WriteString("º ")
		sb.WriteString(e.CycleName)
	}
	if e.Room != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Room)
	}
	return sb.String()
}

// Slot returns the grid cell of the entry.
func (e TimetableEntry) Slot() Slot {
	return Slot{Day: e.Day, Period: e.Period}
}
