package analytics

import (
	"context"
	"time"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/models"
)

// SnapshotSource yields the current complaint collection.
type SnapshotSource interface {
	Snapshot() []models.Complaint
}

// Departments yields the department catalog in display order.
type Departments interface {
	Departments() []models.Department
}

// Service implements AnalyticsService over a live snapshot.
type Service struct {
	source  SnapshotSource
	catalog Departments
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewService creates a new analytics service.
func NewService(source SnapshotSource, catalog Departments, logger *common.Logger) *Service {
	return &Service{
		source:  source,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// Analytics computes the summary for the current snapshot as of now.
func (s *Service) Analytics(ctx context.Context) (*models.AnalyticsData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := ComputeWithCatalog(s.source.Snapshot(), s.catalog.Departments(), s.now())

	s.logger.Debug().
		Int("complaints", data.TotalComplaints).
		Int("resolved", data.ResolvedComplaints).
		Msg("Analytics computed")
	return &data, nil
}
