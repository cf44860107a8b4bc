package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

type sessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore implements interfaces.SessionStore using SurrealDB.
type SessionStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(db *surrealdb.DB, logger *common.Logger) *SessionStore {
	return &SessionStore{db: db, logger: logger}
}

func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	sql := `UPSERT $rid SET session_id = $session_id, user_id = $user_id,
		created_at = $created_at, expires_at = $expires_at`
	vars := map[string]any{
		"rid":        surrealmodels.NewRecordID("session", session.ID),
		"session_id": session.ID,
		"user_id":    session.UserID,
		"created_at": session.CreatedAt,
		"expires_at": session.ExpiresAt,
	}
	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	sql := "SELECT session_id as id, user_id, created_at, expires_at FROM $rid"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("session", sessionID)}

	results, err := surrealdb.Query[[]sessionRecord](ctx, s.db, sql, vars)
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, models.ErrNotFound)
	}

	rec := (*results)[0].Result[0]
	return &models.Session{
		ID:        rec.ID,
		UserID:    rec.UserID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := surrealdb.Delete[sessionRecord](ctx, s.db, surrealmodels.NewRecordID("session", sessionID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

var _ interfaces.SessionStore = (*SessionStore)(nil)
