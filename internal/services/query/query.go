// Package query filters, searches and orders complaint collections
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/bobmcallan/citypulse/internal/models"
)

// Params selects and orders complaints.
type Params = models.ComplaintQuery

// Query returns the complaints matching every filter in p, ordered by p.SortBy.
// The input is never modified and the result is a new, non-nil slice.
// Ties keep their input order.
func Query(complaints []models.Complaint, p Params) []models.Complaint {
	search := strings.ToLower(p.SearchQuery)

	out := make([]models.Complaint, 0, len(complaints))
	for i := range complaints {
		c := &complaints[i]
		if !matchesSearch(c, search) {
			continue
		}
		if !isAll(p.DepartmentFilter) && c.Department.ID != p.DepartmentFilter {
			continue
		}
		if !isAll(p.StatusFilter) && c.Status != p.StatusFilter {
			continue
		}
		out = append(out, *c)
	}

	slices.SortStableFunc(out, comparator(p.SortBy))
	return out
}

func isAll(filter string) bool {
	return filter == "" || filter == models.FilterAll
}

// matchesSearch expects search already lowercased.
func matchesSearch(c *models.Complaint, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range []string{c.Title, c.Description, c.ID, c.Location.Area} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func comparator(sortBy string) func(a, b models.Complaint) int {
	switch sortBy {
	case models.SortOldest:
		return func(a, b models.Complaint) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case models.SortUpvotes:
		return func(a, b models.Complaint) int { return cmp.Compare(b.Upvotes, a.Upvotes) }
	case models.SortComments:
		return func(a, b models.Complaint) int { return cmp.Compare(len(b.Comments), len(a.Comments)) }
	default:
		return func(a, b models.Complaint) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}
