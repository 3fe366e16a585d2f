package models

import "strings"

// User is an authenticated account or a teacher directory entry.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	TypeID    int    `json:"typeId"`
	TypeName  string `json:"typeName"`
}

// TeacherTypeID is the account type the server assigns to teachers.
const TeacherTypeID = 3

var teacherTypeNames = []string{"profesor", "irakasle", "teacher"}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsTeacher reports whether the account may use the client. The type name
// decides when the server sends one; otherwise the type id does.
func (u User) IsTeacher() bool {
	name := accentFolder.Replace(strings.ToLower(strings.TrimSpace(u.TypeName)))
	if name == "" {
		return u.TypeID == TeacherTypeID
	}
	for _, teacher := range teacherTypeNames {
		if strings.Contains(name, teacher) {
			return true
		}
	}
	return false
}

// Profile extends a user with the contact details shown on the profile page.
type Profile struct {
	User
	DNI       string `json:"dni"`
	Address   string `json:"address"`
	Phone1    string `json:"phone1"`
	Phone2    string `json:"phone2"`
	AvatarURL string `json:"avatarUrl"`
}

// Student is a student assigned to a teacher.
type Student struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	DNI       string `json:"dni"`
	Phone1    string `json:"phone1"`
	Phone2    string `json:"phone2"`
	Address   string `json:"address"`
	AvatarURL string `json:"avatarUrl"`
	Cycle     string `json:"cycle"`
	Year      string `json:"year"`
}

// FullName joins first and last name.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
