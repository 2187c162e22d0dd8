package users

import "encoding/json"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        Role   `json:"role" validate:"required,role"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=M F AUTRE"`
	HireDate    string `json:"hireDate,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	StudentCode string `json:"studentCode,omitempty"`
	TeacherCode string `json:"teacherCode,omitempty"`
}

type ProfileUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// AuthResponse is returned by login, register and refresh
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user"`
}

// MeResponse accepts both the bare user and the {profile, academicDetails} envelope
type MeResponse struct {
	Profile         *User           `json:"profile"`
	AcademicDetails json.RawMessage `json:"academicDetails"`
}
