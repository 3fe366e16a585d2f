package service

import (
	"github.com/noah-isme/elores-client/internal/models"
	"github.com/noah-isme/elores-client/internal/protocol"
)

var k = protocol.Keys

// Candidate keys per field, storage spelling first.
var userFields = struct {
	ID, Email, Username, FirstName, LastName, TypeID, TypeName protocol.Field
	DNI, Address, Phone1, Phone2, AvatarURL                    protocol.Field
}{
	ID:        k("id", "id_usuario", "idUsuario", "userId"),
	Email:     k("email"),
	Username:  k("username"),
	FirstName: k("nombre"),
	LastName:  k("apellidos", "apellido"),
	TypeID:    k("tipo_id", "tipoId"),
	TypeName:  k("tipo_nombre", "tipoNombre"),
	DNI:       k("dni"),
	Address:   k("direccion"),
	Phone1:    k("telefono1"),
	Phone2:    k("telefono2"),
	AvatarURL: k("argazkia_url", "argazkiaUrl"),
}

var studentFields = struct {
	ID, FirstName, LastName, Email, DNI, Phone1, Phone2, Address, AvatarURL, Cycle, Year protocol.Field
}{
	ID:        k("id", "id_alumno", "idAlumno", "alumnoId"),
	FirstName: k("nombre"),
	LastName:  k("apellidos", "apellido"),
	Email:     k("email"),
	DNI:       k("dni"),
	Phone1:    k("telefono1"),
	Phone2:    k("telefono2"),
	Address:   k("direccion"),
	AvatarURL: k("argazkia_url", "argazkiaUrl"),
	Cycle:     k("ciclo", "ciclo_nombre", "cicloNombre"),
	Year:      k("curso"),
}

var timetableFields = struct {
	ID, Day, Period, TeacherID, SubjectID, SubjectName, Room, Notes, CycleID, Year, CycleName protocol.Field
}{
	ID:          k("id"),
	Day:         k("dia", "diaSemana"),
	Period:      k("hora"),
	TeacherID:   k("profe_id", "profeId", "profesorId"),
	SubjectID:   k("modulo_id", "moduloId"),
	SubjectName: k("modulo_nombre", "moduloNombre", "modulo"),
	Room:        k("aula"),
	Notes:       k("observaciones"),
	CycleID:     k("ciclo_id", "cicloId"),
	Year:        k("curso"),
	CycleName:   k("ciclo_nombre", "cicloNombre", "ciclo"),
}

var meetingFields = struct {
	ID, Status, StatusEus, TeacherID, StudentID, Title, Subject, Room, ScheduledAt, Day, Period protocol.Field
}{
	ID:          k("id_reunion", "idReunion", "id"),
	Status:      k("estado"),
	StatusEus:   k("estado_eus", "estadoEus"),
	TeacherID:   k("profesor_id", "profesorId"),
	StudentID:   k("alumno_id", "alumnoId"),
	Title:       k("titulo"),
	Subject:     k("asunto"),
	Room:        k("aula"),
	ScheduledAt: k("fecha"),
	Day:         k("dia", "diaSemana"),
	Period:      k("hora"),
}

func userFromRecord(r protocol.Record) models.User {
	return models.User{
		ID:        r.IntOr(userFields.ID, 0),
		Email:     r.String(userFields.Email),
		Username:  r.String(userFields.Username),
		FirstName: r.String(userFields.FirstName),
		LastName:  r.String(userFields.LastName),
		TypeID:    r.IntOr(userFields.TypeID, 0),
		TypeName:  r.String(userFields.TypeName),
	}
}

func profileFromRecord(r protocol.Record) models.Profile {
	return models.Profile{
		User:      userFromRecord(r),
		DNI:       r.String(userFields.DNI),
		Address:   r.String(userFields.Address),
		Phone1:    r.String(userFields.Phone1),
		Phone2:    r.String(userFields.Phone2),
		AvatarURL: r.String(userFields.AvatarURL),
	}
}

func studentFromRecord(r protocol.Record) models.Student {
	return models.Student{
		ID:        r.IntOr(studentFields.ID, 0),
		FirstName: r.String(studentFields.FirstName),
		LastName:  r.String(studentFields.LastName),
		Email:     r.String(studentFields.Email),
		DNI:       r.String(studentFields.DNI),
		Phone1:    r.String(studentFields.Phone1),
		Phone2:    r.String(studentFields.Phone2),
		Address:   r.String(studentFields.Address),
		AvatarURL: r.String(studentFields.AvatarURL),
		Cycle:     r.String(studentFields.Cycle),
		Year:      r.String(studentFields.Year),
	}
}

func timetableEntryFromRecord(r protocol.Record) models.TimetableEntry {
	entry := models.TimetableEntry{
		ID:          r.IntOr(timetableFields.ID, 0),
		Period:      r.IntOr(timetableFields.Period, 0),
		TeacherID:   r.IntOr(timetableFields.TeacherID, 0),
		SubjectID:   r.IntOr(timetableFields.SubjectID, 0),
		SubjectName: r.String(timetableFields.SubjectName),
		Room:        r.String(timetableFields.Room),
		Notes:       r.String(timetableFields.Notes),
		CycleID:     r.IntOr(timetableFields.CycleID, 0),
		Year:        r.String(timetableFields.Year),
		CycleName:   r.String(timetableFields.CycleName),
	}
	if day, ok := models.ParseWeekday(r.String(timetableFields.Day)); ok {
		entry.Day = day
	}
	return entry
}

// meetingFromRecord fills day and period from the record, or derives both
// from the date when either is missing.
func meetingFromRecord(r protocol.Record, periods models.Periods) models.Meeting {
	m := models.Meeting{
		ID:        r.IntOr(meetingFields.ID, 0),
		Status:    r.String(meetingFields.Status),
		StatusEus: r.String(meetingFields.StatusEus),
		TeacherID: r.IntOr(meetingFields.TeacherID, 0),
		StudentID: r.IntOr(meetingFields.StudentID, 0),
		Title:     r.String(meetingFields.Title),
		Subject:   r.String(meetingFields.Subject),
		Room:      r.String(meetingFields.Room),
		Period:    r.IntOr(meetingFields.Period, 0),
	}
	if at, ok := r.Time(meetingFields.ScheduledAt); ok {
		m.ScheduledAt = at
	}
	if day, ok := models.ParseWeekday(r.String(meetingFields.Day)); ok {
		m.Day = day
	}

	if !m.Slot().Valid() {
		if slot, ok := periods.SlotOf(m.ScheduledAt); ok {
			m.Day, m.Period = slot.Day, slot.Period
		}
	}
	return m
}
