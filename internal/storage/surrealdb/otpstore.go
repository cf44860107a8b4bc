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

type otpRecord struct {
	Phone     string    `json:"phone"`
	CodeHash  string    `json:"code_hash"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OTPStore implements interfaces.OTPStore using SurrealDB. Records are keyed by phone.
type OTPStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewOTPStore creates a new OTPStore.
func NewOTPStore(db *surrealdb.DB, logger *common.Logger) *OTPStore {
	return &OTPStore{db: db, logger: logger}
}

func (s *OTPStore) Save(ctx context.Context, record *models.OTPRecord) error {
	sql := "UPSERT $rid CONTENT $record"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("otp", record.Phone),
		"record": otpRecord{
			Phone:     record.Phone,
			CodeHash:  record.CodeHash,
			Attempts:  record.Attempts,
			CreatedAt: record.CreatedAt,
			ExpiresAt: record.ExpiresAt,
		},
	}
	if _, err := surrealdb.Query[[]otpRecord](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save otp: %w", err)
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, phone string) (*models.OTPRecord, error) {
	rec, err := surrealdb.Select[otpRecord](ctx, s.db, surrealmodels.NewRecordID("otp", phone))
	if err != nil {
		if isNotFoundError(err) {
			return nil, fmt.Errorf("otp for %s: %w", phone, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to select otp: %w", err)
	}
	if rec == nil || rec.Phone == "" {
		return nil, fmt.Errorf("otp for %s: %w", phone, models.ErrNotFound)
	}
	return &models.OTPRecord{
		Phone:     rec.Phone,
		CodeHash:  rec.CodeHash,
		Attempts:  rec.Attempts,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

func (s *OTPStore) Delete(ctx context.Context, phone string) error {
	_, err := surrealdb.Delete[otpRecord](ctx, s.db, surrealmodels.NewRecordID("otp", phone))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}

var _ interfaces.OTPStore = (*OTPStore)(nil)
