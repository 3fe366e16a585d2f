package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is a school day. The zero value is not a valid day.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
)

// PeriodsPerDay is the number of timetable periods in a school day.
const PeriodsPerDay = 6

// Weekdays lists the school days in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
}

// wire names are the Spanish ones
var weekdayWireNames = map[Weekday]string{
	Monday:    "LUNES",
	Tuesday:   "MARTES",
	Wednesday: "MIERCOLES",
	Thursday:  "JUEVES",
	Friday:    "VIERNES",
}

var weekdayAliases = map[string]Weekday{
	"LUNES": Monday, "MARTES": Tuesday, "MIERCOLES": Wednesday, "MIÉRCOLES": Wednesday, "JUEVES": Thursday, "VIERNES": Friday,
	"MONDAY": Monday, "TUESDAY": Tuesday, "WEDNESDAY": Wednesday, "THURSDAY": Thursday, "FRIDAY": Friday,
	"MON": Monday, "TUE": Tuesday, "WED": Wednesday, "THU": Thursday, "FRI": Friday,
	"ASTELEHENA": Monday, "ASTEARTEA": Tuesday, "ASTEAZKENA": Wednesday, "OSTEGUNA": Thursday, "OSTIRALA": Friday,
	"1": Monday, "2": Tuesday, "3": Wednesday, "4": Thursday, "5": Friday,
}

// ParseWeekday accepts Spanish, English and Basque day names in any case,
// and the numbers 1 to 5.
func ParseWeekday(raw string) (Weekday, bool) {
	d, ok := weekdayAliases[strings.ToUpper(strings.TrimSpace(raw))]
	return d, ok
}

// WeekdayFromTime maps a date onto a school day. Weekends are not school days.
func WeekdayFromTime(t time.Time) (Weekday, bool) {
	switch t.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	default:
		return 0, false
	}
}

// Valid reports whether d is a school day.
func (d Weekday) Valid() bool { return d >= Monday && d <= Friday }

// TimeWeekday converts d to the standard library weekday.
func (d Weekday) TimeWeekday() time.Weekday { return time.Weekday(d) }

// WireName is the name the server uses.
func (d Weekday) WireName() string { return weekdayWireNames[d] }

func (d Weekday) String() string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(d))
}

// MarshalJSON encodes the English name.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any name ParseWeekday does.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid weekday %s", string(data))
		}
		raw = fmt.Sprint(n)
	}
	if raw == "" {
		*d = 0
		return nil
	}
	day, ok := ParseWeekday(raw)
	if !ok {
		return fmt.Errorf("invalid weekday %q", raw)
	}
	*d = day
	return nil
}

// Slot is a (day, period) cell of the weekly grid.
type Slot struct {
	Day    Weekday `json:"day"`
	Period int     `json:"period"`
}

// Valid reports whether s addresses one of the 5x6 grid cells.
func (s Slot) Valid() bool {
	return s.Day.Valid() && s.Period >= 1 && s.Period <= PeriodsPerDay
}

func (s Slot) String() string {
	return fmt.Sprintf("%s/%d", s.Day, s.Period)
}
