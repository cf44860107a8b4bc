// Package surrealdb implements the StorageManager on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
)

// tables are defined on connect (SurrealDB v3 errors on querying non-existent tables).
var tables = []string{"complaint", "citizen", "session", "otp"}

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	complaintStore *ComplaintStore
	citizenStore   *CitizenStore
	sessionStore   *SessionStore
	otpStore       *OTPStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	m, err := newManager(ctx, db, logger)
	if err != nil {
		db.Close(ctx)
		return nil, err
	}

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

// newManager defines the tables and wires the stores onto an open connection.
func newManager(ctx context.Context, db *surrealdb.DB, logger *common.Logger) (*Manager, error) {
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	return &Manager{
		db:             db,
		logger:         logger,
		complaintStore: NewComplaintStore(db, logger),
		citizenStore:   NewCitizenStore(db, logger),
		sessionStore:   NewSessionStore(db, logger),
		otpStore:       NewOTPStore(db, logger),
	}, nil
}

func (m *Manager) ComplaintStore() interfaces.ComplaintStore {
	return m.complaintStore
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.citizenStore
}

func (m *Manager) SessionStore() interfaces.SessionStore {
	return m.sessionStore
}

func (m *Manager) OTPStore() interfaces.OTPStore {
	return m.otpStore
}

// DataPath is empty: everything lives in the database.
func (m *Manager) DataPath() string {
	return ""
}

func (m *Manager) Close() error {
	return m.db.Close(context.Background())
}

// isNotFoundError reports whether SurrealDB rejected a query because the record is missing.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "does not exist")
}

// isAlreadyExistsError reports whether a CREATE hit an existing record id.
func isAlreadyExistsError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "already exists")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
