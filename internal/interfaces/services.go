// Package interfaces defines service contracts for CityPulse
package interfaces

import (
	"context"

	"github.com/bobmcallan/citypulse/internal/models"
)

// CatalogService exposes the static department and emergency reference data.
type CatalogService interface {
	// Departments returns the catalog in display order
	Departments() []models.Department

	// Get looks up a department by id
	Get(id string) (models.Department, bool)

	// Search matches the query against department name and description
	Search(q string) []models.Department

	EmergencyContacts() []models.EmergencyCategory
	SafetyTips() []models.SafetyTip
}

// ComplaintService serves the complaint snapshot.
type ComplaintService interface {
	// List runs the query pipeline over the current snapshot
	List(ctx context.Context, params models.ComplaintQuery) ([]models.Complaint, error)

	// Get returns a single complaint or models.ErrNotFound
	Get(ctx context.Context, id string) (*models.Complaint, error)

	// Dashboard summarises recent and urgent complaints
	Dashboard(ctx context.Context) (*models.Dashboard, error)

	// UserSummary reports a citizen's own complaints
	UserSummary(ctx context.Context, userID string) (*models.UserSummary, error)

	// File records a new complaint for the citizen and publishes a new snapshot
	File(ctx context.Context, userID, userName string, req models.NewComplaint) (*models.Complaint, error)
}

// AnalyticsService computes analytics over the current snapshot.
type AnalyticsService interface {
	Analytics(ctx context.Context) (*models.AnalyticsData, error)
}

// AuthService handles OTP login and sessions.
type AuthService interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp string) error
	Login(ctx context.Context, phone, otp string) (*models.LoginResult, error)

	// Authenticate validates a bearer token and returns the session's citizen
	Authenticate(ctx context.Context, token string) (*models.Citizen, *models.Session, error)

	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID string) (*models.Citizen, error)
	UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Citizen, error)
}
