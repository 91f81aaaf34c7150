package dto

import (
	"strings"
	"time"
)

const minCredentialLength = 8

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DisplayName     string `json:"displayName"`
}

// Validate checks required fields and lengths.
func (r *SignupRequest) Validate() FieldErrors {
	r.Username = strings.TrimSpace(r.Username)
	r.DisplayName = strings.TrimSpace(r.DisplayName)

	var errs FieldErrors
	errs.requireMin("username", r.Username, minCredentialLength)
	errs.requireMin("password", r.Password, minCredentialLength)
	errs.requireMin("confirmPassword", r.ConfirmPassword, minCredentialLength)
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		errs.add("confirmPassword", "confirmPassword not match")
	}
	errs.requireMin("displayName", r.DisplayName, minCredentialLength)
	return errs
}

// SigninRequest payload for login.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r *SigninRequest) Validate() FieldErrors {
	r.Username = strings.TrimSpace(r.Username)

	var errs FieldErrors
	errs.requireMin("username", r.Username, minCredentialLength)
	errs.requireMin("password", r.Password, minCredentialLength)
	return errs
}

// UpdatePasswordRequest payload for authenticated password changes.
type UpdatePasswordRequest struct {
	Password           string `json:"password"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// Validate checks required fields and confirmation.
func (r *UpdatePasswordRequest) Validate() FieldErrors {
	var errs FieldErrors
	errs.requireMin("password", r.Password, minCredentialLength)
	errs.requireMin("newPassword", r.NewPassword, minCredentialLength)
	errs.requireMin("confirmNewPassword", r.ConfirmNewPassword, minCredentialLength)
	if r.ConfirmNewPassword != "" && r.ConfirmNewPassword != r.NewPassword {
		errs.add("confirmNewPassword", "confirmNewPassword not match")
	}
	return errs
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	UserResponse
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
