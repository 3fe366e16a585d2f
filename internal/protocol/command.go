package protocol

import (
	"encoding/json"
	"strings"
)

// Command is the action tag of a request. The set is closed; anything the
// client does not know decodes to CommandOther.
type Command string

const (
	CommandLogin         Command = "LOGIN"
	CommandDisconnect    Command = "DISCONNECT"
	CommandGetSchedule   Command = "GET_HORARIO"
	CommandGetMeetings   Command = "GET_REUNIONES"
	CommandCreateMeeting Command = "CREATE_REUNION"
	CommandUpdateMeeting Command = "UPDATE_REUNION"
	CommandDeleteMeeting Command = "DELETE_REUNION"
	CommandGetStudents   Command = "GET_ALUMNOS"
	CommandGetProfile    Command = "GET_PERFIL"
	CommandUpdateProfile Command = "UPDATE_PERFIL"
	CommandGetTeachers   Command = "GET_PROFESORES"
	CommandPing          Command = "PING"
	CommandOther         Command = "OTHER"
)

var knownCommands = map[Command]struct{}{
	CommandLogin:         {},
	CommandDisconnect:    {},
	CommandGetSchedule:   {},
	CommandGetMeetings:   {},
	CommandCreateMeeting: {},
	CommandUpdateMeeting: {},
	CommandDeleteMeeting: {},
	CommandGetStudents:   {},
	CommandGetProfile:    {},
	CommandUpdateProfile: {},
	CommandGetTeachers:   {},
	CommandPing:          {},
	CommandOther:         {},
}

// Commands lists every command in wire order, CommandOther last.
func Commands() []Command {
	return []Command{
		CommandLogin, CommandDisconnect, CommandGetSchedule, CommandGetMeetings,
		CommandCreateMeeting, CommandUpdateMeeting, CommandDeleteMeeting,
		CommandGetStudents, CommandGetProfile, CommandUpdateProfile,
		CommandGetTeachers, CommandPing, CommandOther,
	}
}

// ParseCommand maps a wire value onto a Command. Matching ignores case and
// surrounding space.
func ParseCommand(raw string) Command {
	c := Command(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownCommands[c]; ok {
		return c
	}
	return CommandOther
}

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	_, ok := knownCommands[c]
	return ok
}

func (c Command) String() string { return string(c) }

// MarshalJSON encodes unknown values as OTHER.
func (c Command) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		c = CommandOther
	}
	return json.Marshal(string(c))
}

// UnmarshalJSON never fails on an unknown string.
func (c *Command) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*c = CommandOther
		return nil
	}
	*c = ParseCommand(raw)
	return nil
}
