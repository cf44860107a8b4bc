package surrealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

// complaintRecord is the stored shape of a complaint. The complaint itself is
// kept as a JSON document so nested comments and escalations round-trip exactly.
type complaintRecord struct {
	ComplaintID string    `json:"complaint_id"`
	Department  string    `json:"department"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Data        string    `json:"data"`
}

// ComplaintStore implements interfaces.ComplaintStore using SurrealDB.
type ComplaintStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewComplaintStore creates a new ComplaintStore.
func NewComplaintStore(db *surrealdb.DB, logger *common.Logger) *ComplaintStore {
	return &ComplaintStore{db: db, logger: logger}
}

func toComplaintRecord(c *models.Complaint) (complaintRecord, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return complaintRecord{}, fmt.Errorf("failed to marshal complaint %s: %w", c.ID, err)
	}
	return complaintRecord{
		ComplaintID: c.ID,
		Department:  c.Department.ID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		Data:        string(data),
	}, nil
}

func (s *ComplaintStore) List(ctx context.Context) ([]models.Complaint, error) {
	sql := "SELECT complaint_id, department, status, created_at, data FROM complaint ORDER BY complaint_id ASC"
	results, err := surrealdb.Query[[]complaintRecord](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}

	out := []models.Complaint{}
	if results == nil || len(*results) == 0 {
		return out, nil
	}
	for _, rec := range (*results)[0].Result {
		var c models.Complaint
		if err := json.Unmarshal([]byte(rec.Data), &c); err != nil {
			return nil, fmt.Errorf("failed to decode complaint %s: %w", rec.ComplaintID, err)
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *ComplaintStore) SaveAll(ctx context.Context, complaints []models.Complaint) error {
	if _, err := surrealdb.Query[any](ctx, s.db, "DELETE complaint", nil); err != nil {
		return fmt.Errorf("failed to clear complaints: %w", err)
	}

	sql := "UPSERT $rid CONTENT $record"
	for i := range complaints {
		rec, err := toComplaintRecord(&complaints[i])
		if err != nil {
			return err
		}
		vars := map[string]any{
			"rid":    surrealmodels.NewRecordID("complaint", rec.ComplaintID),
			"record": rec,
		}

		var lastErr error
		for attempt := 1; attempt <= 3; attempt++ {
			if _, lastErr = surrealdb.Query[[]complaintRecord](ctx, s.db, sql, vars); lastErr == nil {
				break
			}
		}
		if lastErr != nil {
			return fmt.Errorf("failed to save complaint %s after retries: %w", rec.ComplaintID, lastErr)
		}
	}

	s.logger.Debug().Int("count", len(complaints)).Msg("Complaints saved")
	return nil
}

func (s *ComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	if complaint.ID == "" {
		return fmt.Errorf("complaint id is required: %w", models.ErrInvalidInput)
	}
	rec, err := toComplaintRecord(complaint)
	if err != nil {
		return err
	}

	// CREATE fails when the record id is already taken
	sql := "CREATE $rid CONTENT $record"
	vars := map[string]any{
		"rid":    surrealmodels.NewRecordID("complaint", rec.ComplaintID),
		"record": rec,
	}
	if _, err := surrealdb.Query[[]complaintRecord](ctx, s.db, sql, vars); err != nil {
		if isAlreadyExistsError(err) {
			return fmt.Errorf("complaint %s already exists: %w", complaint.ID, models.ErrInvalidInput)
		}
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

var _ interfaces.ComplaintStore = (*ComplaintStore)(nil)
