package models

import "time"

// Citizen is a registered CityPulse user, identified by phone number.
type Citizen struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Email          string    `json:"email,omitempty"`
	City           string    `json:"city"`
	Area           string    `json:"area"`
	Pincode        string    `json:"pincode"`
	AadharVerified bool      `json:"aadharVerified"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Session is a logged-in citizen. It replaces the browser's persisted
// "city-pulse-user" record: written on login, removed on logout.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has lapsed at t.
func (s *Session) Expired(t time.Time) bool {
	return !s.ExpiresAt.IsZero() && !t.Before(s.ExpiresAt)
}

// OTPRecord is an outstanding one-time password for a phone number.
// Only the bcrypt hash of the code is kept.
type OTPRecord struct {
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"codeHash"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MaxOTPAttempts bounds wrong guesses before an OTP is discarded.
const MaxOTPAttempts = 5

// Defaults applied to citizens created on first login.
const (
	DefaultCitizenName    = "Rahul Sharma"
	DefaultCitizenCity    = "Bangalore"
	DefaultCitizenArea    = "Indiranagar"
	DefaultCitizenPincode = "560038"
)

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=80"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Area    *string `json:"area,omitempty" validate:"omitempty,min=2,max=80"`
	Pincode *string `json:"pincode,omitempty" validate:"omitempty,len=6,numeric"`
}

// OTPRequest is the body of POST /api/auth/otp.
type OTPRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

// LoginRequest is the body of POST /api/auth/otp/verify and POST /api/auth/login.
type LoginRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Citizen  `json:"user"`
}
