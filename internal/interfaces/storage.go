// Package interfaces defines service contracts for CityPulse
package interfaces

import (
	"context"

	"github.com/bobmcallan/citypulse/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	ComplaintStore() ComplaintStore
	UserStore() UserStore
	SessionStore() SessionStore
	OTPStore() OTPStore

	// DataPath returns the base data directory (empty for database backends).
	DataPath() string

	// Lifecycle
	Close() error
}

// ComplaintStore persists the complaint snapshot.
type ComplaintStore interface {
	// List returns every stored complaint ordered by id. An empty store returns an empty slice.
	List(ctx context.Context) ([]models.Complaint, error)
	// SaveAll replaces the stored collection.
	SaveAll(ctx context.Context, complaints []models.Complaint) error
	// Create adds a single complaint. The id must not already exist.
	Create(ctx context.Context, complaint *models.Complaint) error
}

// UserStore manages citizen accounts.
type UserStore interface {
	Get(ctx context.Context, userID string) (*models.Citizen, error)
	GetByPhone(ctx context.Context, phone string) (*models.Citizen, error)
	Save(ctx context.Context, user *models.Citizen) error
}

// SessionStore manages login sessions.
type SessionStore interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// OTPStore holds outstanding one-time passwords keyed by phone.
type OTPStore interface {
	Save(ctx context.Context, record *models.OTPRecord) error
	Get(ctx context.Context, phone string) (*models.OTPRecord, error)
	Delete(ctx context.Context, phone string) error
}
