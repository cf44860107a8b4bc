// Package complaint serves the complaint snapshot: listing, dashboards and filing
package complaint

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/analytics"
	"github.com/bobmcallan/citypulse/internal/services/query"
)

const (
	idPrefix = "CP-2023-"

	recentLimit         = 5
	urgentLimit         = 3
	topDepartmentsLimit = 5
	topAreasLimit       = 5
	userRecentLimit     = 5
)

// Service implements ComplaintService over an immutable snapshot.
// Filing a complaint publishes a new snapshot; slices handed out earlier are never modified.
type Service struct {
	store    interfaces.ComplaintStore
	catalog  interfaces.CatalogService
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
	snapshot atomic.Pointer[[]models.Complaint]
	fileMu   sync.Mutex
}

// NewService creates a complaint service holding initial as its first snapshot.
func NewService(store interfaces.ComplaintStore, catalog interfaces.CatalogService, initial []models.Complaint, logger *common.Logger) *Service {
	s := &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
	snap := slices.Clone(initial)
	if snap == nil {
		snap = []models.Complaint{}
	}
	s.snapshot.Store(&snap)
	return s
}

// Snapshot returns the current complaint collection. Callers must treat it as read-only.
func (s *Service) Snapshot() []models.Complaint {
	return *s.snapshot.Load()
}

// List runs the query pipeline over the current snapshot.
func (s *Service) List(ctx context.Context, params models.ComplaintQuery) ([]models.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return query.Query(s.Snapshot(), params), nil
}

// Get returns the complaint with the given id.
func (s *Service) Get(ctx context.Context, id string) (*models.Complaint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, c := range s.Snapshot() {
		if strings.EqualFold(c.ID, id) {
			out := c.Clone()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("complaint %s: %w", id, models.ErrNotFound)
}

// Dashboard summarises the snapshot for the landing page.
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.Snapshot()

	recent := query.Query(snap, models.ComplaintQuery{SortBy: models.SortNewest})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	// urgent keeps snapshot order
	urgent := []models.Complaint{}
	for _, c := range snap {
		if len(urgent) == urgentLimit {
			break
		}
		if c.Priority == models.ComplaintPriorityUrgent && !c.IsResolved() {
			urgent = append(urgent, c)
		}
	}

	areas := analytics.AreaStats(snap)
	if len(areas) > topAreasLimit {
		areas = areas[:topAreasLimit]
	}

	resolved := 0
	for i := range snap {
		if snap[i].IsResolved() {
			resolved++
		}
	}

	return &models.Dashboard{
		Recent:          recent,
		Urgent:          urgent,
		TopDepartments:  s.topDepartments(snap),
		TopAreas:        areas,
		TotalComplaints: len(snap),
		Resolved:        resolved,
		Pending:         len(snap) - resolved,
	}, nil
}

// topDepartments ranks catalog departments by complaint count. Ties keep catalog order.
func (s *Service) topDepartments(snap []models.Complaint) []models.DepartmentSummary {
	counts := map[string]int{}
	for i := range snap {
		counts[snap[i].Department.ID]++
	}

	out := []models.DepartmentSummary{}
	for _, d := range s.catalog.Departments() {
		if n := counts[d.ID]; n > 0 {
			out = append(out, models.DepartmentSummary{DepartmentID: d.ID, Name: d.Name, Complaints: n})
		}
	}
	slices.SortStableFunc(out, func(a, b models.DepartmentSummary) int {
		return cmp.Compare(b.Complaints, a.Complaints)
	})
	if len(out) > topDepartmentsLimit {
		out = out[:topDepartmentsLimit]
	}
	return out
}

// UserSummary reports a citizen's own complaints, newest first.
func (s *Service) UserSummary(ctx context.Context, userID string) (*models.UserSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mine := []models.Complaint{}
	for _, c := range s.Snapshot() {
		if c.UserID == userID {
			mine = append(mine, c)
		}
	}

	sum := &models.UserSummary{Total: len(mine)}
	for i := range mine {
		if mine[i].IsResolved() {
			sum.Resolved++
		}
		sum.TotalUpvotes += mine[i].Upvotes
	}
	sum.Pending = sum.Total - sum.Resolved

	sum.Complaints = query.Query(mine, models.ComplaintQuery{SortBy: models.SortNewest})
	if len(sum.Complaints) > userRecentLimit {
		sum.Complaints = sum.Complaints[:userRecentLimit]
	}
	return sum, nil
}

// File records a new complaint for the citizen and publishes a new snapshot.
func (s *Service) File(ctx context.Context, userID, userName string, req models.NewComplaint) (*models.Complaint, error) {
	if userID == "" {
		return nil, models.ErrUnauthorized
	}

	dept, ok := s.catalog.Get(req.DepartmentID)
	if !ok {
		return nil, fmt.Errorf("unknown department %q: %w", req.DepartmentID, models.ErrInvalidInput)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.ComplaintPriorityMedium
	}
	if !models.ValidComplaintPriorities[priority] {
		return nil, fmt.Errorf("unknown priority %q: %w", priority, models.ErrInvalidInput)
	}

	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	current := s.Snapshot()
	now := s.now().UTC()

	c := models.Complaint{
		ID:          NextID(current),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Department:  dept,
		Location: models.Location{
			Area:        strings.TrimSpace(req.Area),
			Pincode:     req.Pincode,
			Coordinates: req.Coordinates,
		},
		Status:    models.ComplaintStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		UserName:  userName,
		Images:    append([]string{}, req.Images...),
		Priority:  priority,
		Comments:  []models.Comment{},
	}

	if err := s.store.Create(ctx, &c); err != nil {
		return nil, fmt.Errorf("failed to persist complaint: %w", err)
	}

	next := make([]models.Complaint, len(current), len(current)+1)
	copy(next, current)
	next = append(next, c)
	s.snapshot.Store(&next)

	s.logger.Info().
		Str("id", c.ID).
		Str("department", dept.ID).
		Str("user_id", userID).
		Msg("Complaint filed")

	out := c.Clone()
	return &out, nil
}

// NextID returns the identifier following the highest sequence number in complaints.
func NextID(complaints []models.Complaint) string {
	highest := 0
	for i := range complaints {
		suffix, ok := strings.CutPrefix(complaints[i].ID, idPrefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%04d", idPrefix, highest+1)
}

var _ interfaces.ComplaintService = (*Service)(nil)
