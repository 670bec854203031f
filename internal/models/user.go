package models

import "strings"

// Role identifies what a user can do in the workspace.
type Role string

const (
	// RoleStudent submits documents and sees only their own.
	RoleStudent Role = "student"
	// RoleTeacher reviews documents from every student.
	RoleTeacher Role = "teacher"
)

var roleLabels = map[Role]string{
	RoleStudent: "Student",
	RoleTeacher: "Teacher",
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the human readable name of the role.
func (r Role) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ParseRole converts user input into a Role.
func ParseRole(value string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	return role, role.Valid()
}

// User is a registered participant. Users are never renamed or removed.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsStudent reports whether the user submits documents.
func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// IsTeacher reports whether the user reviews documents.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
