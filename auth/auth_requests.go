package auth

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest asks the backend to email a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyEmailRequest confirms an address with the code the backend sent
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}
