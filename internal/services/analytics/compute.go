// Package analytics derives summary statistics from the complaint collection
package analytics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/catalog"
)

// TrendDays is the number of days before today covered by the trend series.
const TrendDays = 30

const dayLayout = "2006-01-02"

var defaultDepartments = catalog.NewService().Departments()

// Compute summarises complaints against the built-in department catalog.
// today anchors the trend window; only its UTC calendar date matters.
func Compute(complaints []models.Complaint, today time.Time) models.AnalyticsData {
	return ComputeWithCatalog(complaints, defaultDepartments, today)
}

// ComputeWithCatalog summarises complaints. Department stats follow the order
// of departments and omit departments without complaints.
func ComputeWithCatalog(complaints []models.Complaint, departments []models.Department, today time.Time) models.AnalyticsData {
	resolved := 0
	var resolutionDays float64
	for i := range complaints {
		if complaints[i].IsResolved() {
			resolved++
			resolutionDays += complaints[i].UpdatedAt.Sub(complaints[i].CreatedAt).Hours() / 24
		}
	}

	avg := 0.0
	if resolved > 0 {
		avg = math.Round(resolutionDays/float64(resolved)*10) / 10
	}

	return models.AnalyticsData{
		TotalComplaints:    len(complaints),
		ResolvedComplaints: resolved,
		PendingComplaints:  len(complaints) - resolved,
		AvgResolutionTime:  avg,
		DepartmentStats:    departmentStats(complaints, departments),
		AreaStats:          AreaStats(complaints),
		TrendsData:         trends(complaints, today),
	}
}

func departmentStats(complaints []models.Complaint, departments []models.Department) []models.DepartmentStat {
	byID := make(map[string]*models.DepartmentStat, len(departments))
	for _, c := range complaints {
		st, ok := byID[c.Department.ID]
		if !ok {
			st = &models.DepartmentStat{DepartmentID: c.Department.ID}
			byID[c.Department.ID] = st
		}
		st.Count++
		if c.IsResolved() {
			st.Resolved++
		} else {
			st.Pending++
		}
	}

	out := []models.DepartmentStat{}
	for _, d := range departments {
		st, ok := byID[d.ID]
		if !ok || st.Count == 0 {
			continue
		}
		st.DepartmentName = d.Name
		out = append(out, *st)
	}
	return out
}

// AreaStats counts complaints per area, most complaints first.
// Areas with equal counts keep the order in which they first appear.
func AreaStats(complaints []models.Complaint) []models.AreaStat {
	out := []models.AreaStat{}
	pos := map[string]int{}
	for _, c := range complaints {
		i, ok := pos[c.Location.Area]
		if !ok {
			i = len(out)
			pos[c.Location.Area] = i
			out = append(out, models.AreaStat{Area: c.Location.Area})
		}
		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b models.AreaStat) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

func trends(complaints []models.Complaint, today time.Time) []models.TrendPoint {
	created := map[string]int{}
	resolved := map[string]int{}
	for i := range complaints {
		c := &complaints[i]
		created[c.CreatedAt.UTC().Format(dayLayout)]++
		if c.IsResolved() {
			resolved[c.UpdatedAt.UTC().Format(dayLayout)]++
		}
	}

	u := today.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]models.TrendPoint, 0, TrendDays+1)
	for i := TrendDays; i >= 0; i-- {
		key := day.AddDate(0, 0, -i).Format(dayLayout)
		out = append(out, models.TrendPoint{
			Date:       key,
			Complaints: created[key],
			Resolved:   resolved[key],
		})
	}
	return out
}
