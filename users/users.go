package users

import (
	"encoding/json"
	"strings"
)

// Role is the backend's user role. The backend may prefix it with ROLE_.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "ENSEIGNANT"
	RoleStudent Role = "ETUDIANT"
)

const rolePrefix = "ROLE_"

// Roles lists every role the backend knows about
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// NormalizeRole strips the ROLE_ prefix some endpoints still send
func NormalizeRole(r Role) Role {
	return Role(strings.TrimPrefix(strings.TrimSpace(string(r)), rolePrefix))
}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if NormalizeRole(r) == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// DashboardRoute returns the landing route for a role
func DashboardRoute(r Role) string {
	switch NormalizeRole(r) {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleTeacher:
		return "/teacher/dashboard"
	default:
		return "/student/dashboard"
	}
}

type User struct {
	ID              int64           `json:"id"`                        // Backend identifier
	Username        string          `json:"username"`                  // Login name
	Email           string          `json:"email"`                     // Contact and recovery email
	Role            Role            `json:"role"`                      // Normalized once stored in a session
	FirstName       string          `json:"firstName,omitempty"`       // Given name
	LastName        string          `json:"lastName,omitempty"`        // Family name
	Phone           string          `json:"phone,omitempty"`           // Phone number
	Address         string          `json:"address,omitempty"`         // Postal address
	AvatarURL       string          `json:"avatarUrl,omitempty"`       // Uploaded avatar location
	Active          bool            `json:"active"`                    // Disabled accounts cannot log in
	EmailVerified   bool            `json:"emailVerified"`             // Email verification completed
	CreatedAt       string          `json:"createdAt,omitempty"`       // ISO-8601 creation time
	LastLogin       string          `json:"lastLogin,omitempty"`       // ISO-8601 last login time
	AcademicDetails json.RawMessage `json:"academicDetails,omitempty"` // Student or teacher profile, opaque to the client
}

// Clone returns a copy of u that shares no memory with it
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.AcademicDetails != nil {
		c.AcademicDetails = append(json.RawMessage(nil), u.AcademicDetails...)
	}
	return &c
}

// FullName returns "First Last", falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Teacher is the projection returned by users/teachers
type Teacher struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Specialties    string `json:"specialties,omitempty"`
	Office         string `json:"office,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
	CVURL          string `json:"cvUrl,omitempty"`
	HireDate       string `json:"hireDate,omitempty"`
	TeacherCode    string `json:"teacherCode,omitempty"`
}

// PasswordStrength scores a password from 0 to 100 in steps of 25:
// at least 6 characters, at least 10 characters, an uppercase letter, a digit.
func PasswordStrength(password string) int {
	strength := 0
	if len(password) >= 6 {
		strength += 25
	}
	if len(password) >= 10 {
		strength += 25
	}

	var hasUpper, hasDigit bool
	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= '0' && char <= '9':
			hasDigit = true
		}
	}
	if hasUpper {
		strength += 25
	}
	if hasDigit {
		strength += 25
	}
	return strength
}
