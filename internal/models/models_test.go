package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKindAndLabel(t *testing.T) {
	duty := TimetableEntry{Day: Monday, Period: 2, SubjectName: "Guardia de pasillo", Room: "A12", Year: "2", CycleName: "DAM"}
	assert.Equal(t, KindDuty, duty.Kind())
	assert.Equal(t, "DUTY", duty.Label())

	tutoring := TimetableEntry{SubjectName: "Tutoría 2ºDAM"}
	assert.Equal(t, KindTutoring, tutoring.Kind())
	assert.Equal(t, "TUTORING", tutoring.Label())

	assert.Equal(t, KindDuty, TimetableEntry{SubjectName: "ZAINTZA"}.Kind())
	assert.Equal(t, KindTutoring, TimetableEntry{SubjectName: "Tutoretza"}.Kind())
	assert.Equal(t, KindClass, TimetableEntry{}.Kind())

	class := TimetableEntry{SubjectName: "Programación", Year: "1", CycleName: "DAM", Room: "B2"}
	assert.Equal(t, KindClass, class.Kind())
	assert.Equal(t, "Programación\n1º DAM\nB2", class.Label())

	partial := TimetableEntry{SubjectName: "Bases de datos", Year: "1"}
	assert.Equal(t, "Bases de datos", partial.Label())
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]MeetingStatus{
		"ONARTUTA":   StatusAccepted,
		"Aceptada":   StatusAccepted,
		"pendiente":  StatusPending,
		"ONARTZEKE":  StatusPending,
		"ezeztatuta": StatusDenied,
		"GATAZKA":    StatusConflict,
		" cancelado": StatusCancelled,
	}
	for raw, want := range cases {
		got, ok := NormalizeStatus(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := NormalizeStatus("postponed")
	assert.False(t, ok)
	assert.False(t, StatusConflict.Settable())
	assert.Equal(t, "aceptada", StatusAccepted.WireName())
}

func TestParseWeekday(t *testing.T) {
	for raw, want := range map[string]Weekday{
		"LUNES": Monday, "miércoles": Wednesday, "Friday": Friday, "osteguna": Thursday, "2": Tuesday,
	} {
		got, ok := ParseWeekday(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseWeekday("SABADO")
	assert.False(t, ok)

	var d Weekday
	require.NoError(t, json.Unmarshal([]byte(`"MARTES"`), &d))
	assert.Equal(t, Tuesday, d)
	encoded, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"Tuesday"`, string(encoded))
	assert.Equal(t, "Tuesday", d.String())

	var back Weekday
	require.NoError(t, json.Unmarshal(encoded, &back))
	assert.Equal(t, Tuesday, back)
}

func TestPeriodsSlotOf(t *testing.T) {
	// 2024-03-04 is a Monday
	slot, ok := DefaultPeriods.SlotOf(time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Slot{Day: Monday, Period: 3}, slot)

	_, ok = DefaultPeriods.SlotOf(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	_, ok = DefaultPeriods.SlotOf(time.Date(2024, 3, 9, 2, 0, 0, 0, time.UTC))
	assert.False(t, ok)

	school := Periods{FirstHour: 8}
	slot, ok = school.SlotOf(time.Date(2024, 3, 8, 13, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Slot{Day: Friday, Period: 6}, slot)
}

func TestNextOccurrenceIsStrictlyAfterToday(t *testing.T) {
	monday := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	next := DefaultPeriods.NextOccurrence(monday, Slot{Day: Monday, Period: 2})
	assert.Equal(t, time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC), next)

	next = DefaultPeriods.NextOccurrence(monday, Slot{Day: Wednesday, Period: 6})
	assert.Equal(t, time.Date(2024, 3, 6, 6, 0, 0, 0, time.UTC), next)

	saturday := time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)
	next = Periods{FirstHour: 8}.NextOccurrence(saturday, Slot{Day: Monday, Period: 1})
	assert.Equal(t, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC), next)

	slot, ok := DefaultPeriods.SlotOf(next.Add(-7 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, Slot{Day: Monday, Period: 1}, slot)
}

func TestUserIsTeacher(t *testing.T) {
	assert.True(t, User{TypeID: TeacherTypeID}.IsTeacher())
	assert.True(t, User{TypeName: "Profesor"}.IsTeacher())
	assert.True(t, User{TypeID: 4, TypeName: "irakaslea"}.IsTeacher())
	assert.False(t, User{TypeID: 4, TypeName: "alumno"}.IsTeacher())
	assert.False(t, User{TypeID: TeacherTypeID, TypeName: "alumno"}.IsTeacher())
	assert.False(t, User{TypeID: 4}.IsTeacher())
	assert.False(t, User{}.IsTeacher())
}

func TestWeekdayDisplayNames(t *testing.T) {
	names := make([]string, 0, len(Weekdays))
	for _, day := range Weekdays {
		names = append(names, day.String())
		parsed, ok := ParseWeekday(day.String())
		require.True(t, ok)
		assert.Equal(t, day, parsed)
	}
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, names)
	assert.Equal(t, "MIERCOLES", Wednesday.WireName())
}
