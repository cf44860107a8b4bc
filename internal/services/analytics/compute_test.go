package analytics

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/catalog"
	"github.com/bobmcallan/citypulse/internal/services/generator"
)

var today = time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func complaint(id, dept, area, status string, created, updated time.Time) models.Complaint {
	return models.Complaint{
		ID:         id,
		Department: models.Department{ID: dept},
		Location:   models.Location{Area: area},
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(nil, today)

	assert.Equal(t, 0, got.TotalComplaints)
	assert.Equal(t, 0.0, got.AvgResolutionTime)
	assert.NotNil(t, got.DepartmentStats)
	assert.Empty(t, got.DepartmentStats)
	assert.NotNil(t, got.AreaStats)
	assert.Empty(t, got.AreaStats)
	require.Len(t, got.TrendsData, 31)
	for _, p := range got.TrendsData {
		assert.Zero(t, p.Complaints)
		assert.Zero(t, p.Resolved)
	}
}

func TestCompute_AvgResolutionTime(t *testing.T) {
	c := complaint("CP-2023-0001", "water", "Indiranagar", models.ComplaintStatusResolved,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))

	got := Compute([]models.Complaint{c}, today)
	assert.Equal(t, 2.0, got.AvgResolutionTime)
	assert.Equal(t, 1, got.ResolvedComplaints)
	assert.Equal(t, 0, got.PendingComplaints)
}

func TestCompute_AvgResolutionRounding(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := []models.Complaint{
		complaint("1", "water", "A", models.ComplaintStatusResolved, base, base.Add(24*time.Hour)),
		complaint("2", "water", "A", models.ComplaintStatusClosed, base, base.Add(36*time.Hour)),
		complaint("3", "water", "A", models.ComplaintStatusClosed, base, base.Add(48*time.Hour)),
		complaint("4", "water", "A", models.ComplaintStatusPending, base, base.Add(240*time.Hour)),
	}
	// (1 + 1.5 + 2) / 3 = 1.5
	got := Compute(cs, today)
	assert.Equal(t, 1.5, got.AvgResolutionTime)
	assert.Equal(t, 3, got.ResolvedComplaints)
	assert.Equal(t, 1, got.PendingComplaints)
}

func TestCompute_DepartmentStatsCatalogOrder(t *testing.T) {
	cs := []models.Complaint{
		complaint("1", "parks", "A", models.ComplaintStatusPending, day(2024, 1, 5), day(2024, 1, 5)),
		complaint("2", "water", "A", models.ComplaintStatusResolved, day(2024, 1, 5), day(2024, 1, 6)),
		complaint("3", "parks", "B", models.ComplaintStatusClosed, day(2024, 1, 5), day(2024, 1, 7)),
	}

	got := Compute(cs, today)
	require.Len(t, got.DepartmentStats, 2)
	assert.Equal(t, models.DepartmentStat{DepartmentID: "water", DepartmentName: "Water Supply", Count: 1, Resolved: 1, Pending: 0}, got.DepartmentStats[0])
	assert.Equal(t, models.DepartmentStat{DepartmentID: "parks", DepartmentName: "Parks & Playgrounds", Count: 2, Resolved: 1, Pending: 1}, got.DepartmentStats[1])
}

func TestCompute_DepartmentOutsideCatalogIgnored(t *testing.T) {
	cs := []models.Complaint{
		complaint("1", "unknown", "A", models.ComplaintStatusPending, day(2024, 1, 5), day(2024, 1, 5)),
	}
	got := Compute(cs, today)
	assert.Equal(t, 1, got.TotalComplaints)
	assert.Empty(t, got.DepartmentStats)
}

func TestAreaStats_SortedWithStableTies(t *testing.T) {
	d := day(2024, 1, 5)
	cs := []models.Complaint{
		complaint("1", "water", "Whitefield", models.ComplaintStatusPending, d, d),
		complaint("2", "water", "Jayanagar", models.ComplaintStatusPending, d, d),
		complaint("3", "water", "Koramangala", models.ComplaintStatusPending, d, d),
		complaint("4", "water", "Koramangala", models.ComplaintStatusPending, d, d),
		complaint("5", "water", "Jayanagar", models.ComplaintStatusPending, d, d),
		complaint("6", "water", "HSR Layout", models.ComplaintStatusPending, d, d),
	}

	got := AreaStats(cs)
	assert.Equal(t, []models.AreaStat{
		{Area: "Jayanagar", Count: 2},
		{Area: "Koramangala", Count: 2},
		{Area: "Whitefield", Count: 1},
		{Area: "HSR Layout", Count: 1},
	}, got)
}

func TestCompute_Trends(t *testing.T) {
	cs := []models.Complaint{
		complaint("1", "water", "A", models.ComplaintStatusResolved, day(2024, 1, 1), day(2024, 1, 3)),
		complaint("2", "water", "A", models.ComplaintStatusPending, day(2024, 1, 3), day(2024, 1, 3)),
		complaint("3", "water", "A", models.ComplaintStatusClosed, day(2024, 1, 31), day(2024, 1, 31)),
		// outside the window
		complaint("4", "water", "A", models.ComplaintStatusPending, day(2023, 12, 31), day(2023, 12, 31)),
	}

	got := Compute(cs, today).TrendsData
	require.Len(t, got, 31)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, "2024-01-31", got[30].Date)

	assert.Equal(t, models.TrendPoint{Date: "2024-01-01", Complaints: 1, Resolved: 0}, got[0])
	assert.Equal(t, models.TrendPoint{Date: "2024-01-03", Complaints: 1, Resolved: 1}, got[2])
	assert.Equal(t, models.TrendPoint{Date: "2024-01-31", Complaints: 1, Resolved: 1}, got[30])
}

func TestCompute_TrendsUseUTCDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 2024-01-31 02:00 IST is 2024-01-30 UTC
	created := time.Date(2024, 1, 31, 2, 0, 0, 0, ist)
	cs := []models.Complaint{complaint("1", "water", "A", models.ComplaintStatusPending, created, created)}

	got := Compute(cs, today.In(ist)).TrendsData
	assert.Equal(t, 1, got[29].Complaints)
	assert.Equal(t, "2024-01-30", got[29].Date)
}

func TestCompute_PropertiesOnGeneratedData(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cs := generator.Generate(catalog.NewService().Departments(), rand.New(rand.NewSource(seed)), today)
		got := Compute(cs, today)

		assert.Equal(t, got.TotalComplaints, got.ResolvedComplaints+got.PendingComplaints)

		deptSum := 0
		for _, d := range got.DepartmentStats {
			assert.Positive(t, d.Count)
			assert.Equal(t, d.Count, d.Resolved+d.Pending)
			deptSum += d.Count
		}
		assert.Equal(t, got.TotalComplaints, deptSum)

		areaSum := 0
		for i, a := range got.AreaStats {
			if i > 0 {
				assert.GreaterOrEqual(t, got.AreaStats[i-1].Count, a.Count)
			}
			areaSum += a.Count
		}
		assert.Equal(t, got.TotalComplaints, areaSum)

		require.Len(t, got.TrendsData, 31)
		for i := 1; i < len(got.TrendsData); i++ {
			assert.Less(t, got.TrendsData[i-1].Date, got.TrendsData[i].Date)
		}
	}
}

type staticSource []models.Complaint

func (s staticSource) Snapshot() []models.Complaint { return s }

func TestService_AnalyticsUsesClock(t *testing.T) {
	logger := common.NewLoggerFromConfig(common.LoggingConfig{Level: "disabled"})
	cs := staticSource{
		complaint("1", "water", "A", models.ComplaintStatusPending, day(2024, 3, 10), day(2024, 3, 10)),
	}
	svc := NewService(cs, catalog.NewService(), logger)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC) }

	got, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", got.TrendsData[30].Date)
	assert.Equal(t, 1, got.TrendsData[30].Complaints)
}

func TestService_AnalyticsCancelled(t *testing.T) {
	logger := common.NewLoggerFromConfig(common.LoggingConfig{Level: "disabled"})
	svc := NewService(staticSource{}, catalog.NewService(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Analytics(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
