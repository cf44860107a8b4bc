package complaint

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/catalog"
	"github.com/bobmcallan/citypulse/internal/services/generator"
)

// --- Mocks ---

type mockComplaintStore struct {
	mu        sync.Mutex
	items     []models.Complaint
	saveCalls int
	createErr error
}

func (m *mockComplaintStore) List(_ context.Context) ([]models.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Complaint{}, m.items...), nil
}

func (m *mockComplaintStore) SaveAll(_ context.Context, cs []models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	m.items = append([]models.Complaint{}, cs...)
	return nil
}

func (m *mockComplaintStore) Create(_ context.Context, c *models.Complaint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.items = append(m.items, *c)
	return nil
}

var fixedNow = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func testLogger() *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{Level: "disabled"})
}

func newTestService(initial []models.Complaint) (*Service, *mockComplaintStore) {
	store := &mockComplaintStore{items: initial}
	svc := NewService(store, catalog.NewService(), initial, testLogger())
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func mk(id, dept, area, status, priority string, created time.Time, userID string, upvotes int) models.Complaint {
	return models.Complaint{
		ID:         id,
		Title:      "issue " + id,
		Department: models.Department{ID: dept},
		Location:   models.Location{Area: area},
		Status:     status,
		Priority:   priority,
		CreatedAt:  created,
		UpdatedAt:  created,
		UserID:     userID,
		Upvotes:    upvotes,
	}
}

func validRequest() models.NewComplaint {
	return models.NewComplaint{
		DepartmentID: "streetlights",
		Title:        "Streetlight out on 12th Main",
		Description:  "The light near the bus stop has been off for a week.",
		Area:         "Indiranagar",
		Pincode:      "560038",
	}
}

// --- Tests ---

func TestList_DelegatesToQuery(t *testing.T) {
	svc, _ := newTestService([]models.Complaint{
		mk("CP-2023-0001", "water", "A", models.ComplaintStatusResolved, "low", fixedNow.AddDate(0, 0, -2), "u", 0),
		mk("CP-2023-0002", "water", "A", models.ComplaintStatusClosed, "low", fixedNow.AddDate(0, 0, -1), "u", 0),
	})

	got, err := svc.List(context.Background(), models.ComplaintQuery{StatusFilter: "resolved"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CP-2023-0001", got[0].ID)
}

func TestGet(t *testing.T) {
	svc, _ := newTestService([]models.Complaint{
		mk("CP-2023-0001", "water", "A", models.ComplaintStatusPending, "low", fixedNow, "u", 0),
	})

	got, err := svc.Get(context.Background(), "cp-2023-0001")
	require.NoError(t, err)
	assert.Equal(t, "CP-2023-0001", got.ID)

	_, err = svc.Get(context.Background(), "CP-2023-9999")
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestDashboard(t *testing.T) {
	var cs []models.Complaint
	// 8 complaints, ids ascending with creation time
	specs := []struct {
		dept, area, status, priority string
	}{
		{"water", "Indiranagar", models.ComplaintStatusPending, models.ComplaintPriorityUrgent},
		{"roads", "Koramangala", models.ComplaintStatusResolved, models.ComplaintPriorityUrgent},
		{"roads", "Koramangala", models.ComplaintStatusAssigned, models.ComplaintPriorityLow},
		{"parks", "Whitefield", models.ComplaintStatusInProgress, models.ComplaintPriorityUrgent},
		{"water", "Indiranagar", models.ComplaintStatusClosed, models.ComplaintPriorityHigh},
		{"sewage", "Jayanagar", models.ComplaintStatusPending, models.ComplaintPriorityUrgent},
		{"garbage", "JP Nagar", models.ComplaintStatusPending, models.ComplaintPriorityUrgent},
		{"drainage", "HSR Layout", models.ComplaintStatusPending, models.ComplaintPriorityMedium},
	}
	for i, sp := range specs {
		cs = append(cs, mk(NextID(cs), sp.dept, sp.area, sp.status, sp.priority, fixedNow.Add(time.Duration(i)*time.Hour), "u", 0))
	}
	svc, _ := newTestService(cs)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, d.Recent, 5)
	assert.Equal(t, "CP-2023-0008", d.Recent[0].ID)
	assert.Equal(t, "CP-2023-0004", d.Recent[4].ID)

	// first three urgent and unresolved in snapshot order; 0002 is resolved
	require.Len(t, d.Urgent, 3)
	assert.Equal(t, []string{"CP-2023-0001", "CP-2023-0004", "CP-2023-0006"},
		[]string{d.Urgent[0].ID, d.Urgent[1].ID, d.Urgent[2].ID})

	// water 2, roads 2, then singles in catalog order
	require.Len(t, d.TopDepartments, 5)
	assert.Equal(t, "water", d.TopDepartments[0].DepartmentID)
	assert.Equal(t, "roads", d.TopDepartments[1].DepartmentID)
	assert.Equal(t, "garbage", d.TopDepartments[2].DepartmentID)
	assert.Equal(t, "drainage", d.TopDepartments[3].DepartmentID)
	assert.Equal(t, "sewage", d.TopDepartments[4].DepartmentID)
	assert.Equal(t, "Water Supply", d.TopDepartments[0].Name)

	require.Len(t, d.TopAreas, 5)
	assert.Equal(t, "Indiranagar", d.TopAreas[0].Area)
	assert.Equal(t, 8, d.TotalComplaints)
	assert.Equal(t, 2, d.Resolved)
	assert.Equal(t, 6, d.Pending)
}

func TestUserSummary(t *testing.T) {
	svc, _ := newTestService([]models.Complaint{
		mk("CP-2023-0001", "water", "A", models.ComplaintStatusResolved, "low", fixedNow.AddDate(0, 0, -3), "user-123", 4),
		mk("CP-2023-0002", "water", "A", models.ComplaintStatusPending, "low", fixedNow.AddDate(0, 0, -1), "user-123", 6),
		mk("CP-2023-0003", "water", "A", models.ComplaintStatusClosed, "low", fixedNow.AddDate(0, 0, -2), "someone-else", 50),
	})

	sum, err := svc.UserSummary(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Resolved)
	assert.Equal(t, 1, sum.Pending)
	assert.Equal(t, 10, sum.TotalUpvotes)
	require.Len(t, sum.Complaints, 2)
	assert.Equal(t, "CP-2023-0002", sum.Complaints[0].ID)

	empty, err := svc.UserSummary(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Complaints)
}

func TestFile_PublishesNewSnapshot(t *testing.T) {
	initial := generator.Generate(catalog.NewService().Departments(), rand.New(rand.NewSource(9)), fixedNow)
	svc, store := newTestService(initial)

	before := svc.Snapshot()
	c, err := svc.File(context.Background(), "user-123", "Rahul Sharma", validRequest())
	require.NoError(t, err)

	assert.Equal(t, "CP-2023-0051", c.ID)
	assert.Equal(t, models.ComplaintStatusPending, c.Status)
	assert.Equal(t, models.ComplaintPriorityMedium, c.Priority)
	assert.Equal(t, "Street Lights", c.Department.Name)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	assert.NotNil(t, c.Comments)

	assert.Len(t, before, 50, "earlier snapshot is untouched")
	assert.Len(t, svc.Snapshot(), 51)
	assert.Len(t, store.items, 51)

	got, err := svc.Get(context.Background(), "CP-2023-0051")
	require.NoError(t, err)
	assert.Equal(t, "Streetlight out on 12th Main", got.Title)
}

func TestFile_Validation(t *testing.T) {
	svc, store := newTestService(nil)
	ctx := context.Background()

	req := validRequest()
	req.DepartmentID = "police"
	_, err := svc.File(ctx, "user-123", "Rahul", req)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	req = validRequest()
	req.Priority = "critical"
	_, err = svc.File(ctx, "user-123", "Rahul", req)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = svc.File(ctx, "", "", validRequest())
	assert.True(t, errors.Is(err, models.ErrUnauthorized))

	assert.Empty(t, store.items)
	assert.Empty(t, svc.Snapshot())
}

func TestFile_StoreFailureKeepsSnapshot(t *testing.T) {
	svc, store := newTestService(nil)
	store.createErr = errors.New("disk full")

	_, err := svc.File(context.Background(), "user-123", "Rahul", validRequest())
	require.Error(t, err)
	assert.Empty(t, svc.Snapshot())
}

func TestFile_ConcurrentIDsUnique(t *testing.T) {
	svc, _ := newTestService(nil)

	var wg sync.WaitGroup
	ids := make([]string, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := svc.File(context.Background(), "user-123", "Rahul", validRequest())
			if err == nil {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		require.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, svc.Snapshot(), 10)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, "CP-2023-0001", NextID(nil))
	assert.Equal(t, "CP-2023-0013", NextID([]models.Complaint{{ID: "CP-2023-0012"}, {ID: "CP-2023-0003"}, {ID: "other"}}))
}

func TestLoadOrSeed(t *testing.T) {
	ctx := context.Background()
	calls := 0
	seed := func() []models.Complaint {
		calls++
		return []models.Complaint{{ID: "CP-2023-0001"}}
	}

	store := &mockComplaintStore{}
	got, err := LoadOrSeed(ctx, store, seed, testLogger())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.saveCalls)

	// second start loads instead of generating
	got, err = LoadOrSeed(ctx, store, seed, testLogger())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, store.saveCalls)
}
