package users_test

import (
	"testing"

	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
	"github.com/jrsteele09/schoolgest-client/users"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		in   users.Role
		want users.Role
	}{
		{"ROLE_ADMIN", users.RoleAdmin},
		{"ENSEIGNANT", users.RoleTeacher},
		{" ROLE_ETUDIANT ", users.RoleStudent},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			require.Equal(t, tt.want, users.NormalizeRole(tt.in))
		})
	}

	require.True(t, users.Role("ROLE_ADMIN").Valid())
	require.False(t, users.Role("JANITOR").Valid())
}

func TestDashboardRoute(t *testing.T) {
	require.Equal(t, "/admin/dashboard", users.DashboardRoute("ROLE_ADMIN"))
	require.Equal(t, "/teacher/dashboard", users.DashboardRoute(users.RoleTeacher))
	require.Equal(t, "/student/dashboard", users.DashboardRoute(users.RoleStudent))
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 0},
		{"abcdef", 25},
		{"abcdefghij", 50},
		{"Abcdefghij", 75},
		{"Abcdefghi1", 100},
		{"A1", 50},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Equal(t, tt.want, users.PasswordStrength(tt.password))
		})
	}
}

func TestValidate_Register(t *testing.T) {
	valid := users.RegisterRequest{
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Password: "secret1",
		Role:     users.RoleStudent,
	}
	require.NoError(t, users.Validate(valid))

	invalid := valid
	invalid.Username = "jd"
	invalid.Email = "not-an-email"
	invalid.Role = "JANITOR"
	err := users.Validate(invalid)
	require.Error(t, err)
	require.True(t, apperrors.Is(err, apperrors.ErrValidation))
	require.Contains(t, err.Error(), "username")
	require.Contains(t, err.Error(), "email")
	require.Contains(t, err.Error(), "role")
}

func TestValidate_PasswordConfirmation(t *testing.T) {
	req := users.ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
		ConfirmPassword: "other-secret",
	}
	err := users.Validate(req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "confirmPassword")

	req.ConfirmPassword = req.NewPassword
	require.NoError(t, users.Validate(req))
}

func TestValidate_Login(t *testing.T) {
	err := users.Validate(users.LoginRequest{Username: "jdoe"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "password")
}

func TestUser_FullName(t *testing.T) {
	u := &users.User{Username: "jdoe"}
	require.Equal(t, "jdoe", u.FullName())
	u.FirstName, u.LastName = "Jane", "Doe"
	require.Equal(t, "Jane Doe", u.FullName())
}
