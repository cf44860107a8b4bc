package query

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/citypulse/internal/models"
	"github.com/bobmcallan/citypulse/internal/services/catalog"
	"github.com/bobmcallan/citypulse/internal/services/generator"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func ids(cs []models.Complaint) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func fixture() []models.Complaint {
	return []models.Complaint{
		{
			ID: "CP-2023-0001", Title: "Pothole near school", Description: "Deep pothole",
			Department: models.Department{ID: "roads"}, Location: models.Location{Area: "Koramangala"},
			Status: models.ComplaintStatusResolved, CreatedAt: day0, Upvotes: 5,
			Comments: []models.Comment{{ID: "a"}},
		},
		{
			ID: "CP-2023-0002", Title: "No water since Monday", Description: "Taps dry",
			Department: models.Department{ID: "water"}, Location: models.Location{Area: "Indiranagar"},
			Status: models.ComplaintStatusPending, CreatedAt: day0.AddDate(0, 0, 1), Upvotes: 12,
		},
		{
			ID: "CP-2023-0003", Title: "Streetlight flickering", Description: "Lamp post 14",
			Department: models.Department{ID: "streetlights"}, Location: models.Location{Area: "Whitefield"},
			Status: models.ComplaintStatusClosed, CreatedAt: day0.AddDate(0, 0, 2), Upvotes: 5,
			Comments: []models.Comment{{ID: "b"}, {ID: "c"}, {ID: "d"}},
		},
		{
			ID: "CP-2023-0004", Title: "Burst pipe", Description: "Water flooding the road",
			Department: models.Department{ID: "water"}, Location: models.Location{Area: "Koramangala"},
			Status: models.ComplaintStatusInProgress, CreatedAt: day0.AddDate(0, 0, 3), Upvotes: 30,
			Comments: []models.Comment{{ID: "e"}},
		},
	}
}

func TestQuery_SortOldestNewest(t *testing.T) {
	cs := []models.Complaint{
		{ID: "CP-2023-0001", CreatedAt: day0, Status: models.ComplaintStatusResolved},
		{ID: "CP-2023-0002", CreatedAt: day0.AddDate(0, 0, 1), Status: models.ComplaintStatusPending},
	}

	assert.Equal(t, []string{"CP-2023-0001", "CP-2023-0002"}, ids(Query(cs, Params{SortBy: "oldest"})))
	assert.Equal(t, []string{"CP-2023-0002", "CP-2023-0001"}, ids(Query(cs, Params{SortBy: "newest"})))
}

func TestQuery_DefaultReturnsAllNewestFirst(t *testing.T) {
	cs := fixture()
	got := Query(cs, Params{SearchQuery: "", DepartmentFilter: "all", StatusFilter: "all", SortBy: "newest"})
	assert.Equal(t, []string{"CP-2023-0004", "CP-2023-0003", "CP-2023-0002", "CP-2023-0001"}, ids(got))

	assert.Equal(t, ids(got), ids(Query(cs, Params{})), "zero params behave as defaults")
	assert.Equal(t, ids(got), ids(Query(cs, Params{SortBy: "popular"})), "unknown sort falls back to newest")
}

func TestQuery_Filters(t *testing.T) {
	cs := fixture()

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"search title", Params{SearchQuery: "POTHOLE"}, []string{"CP-2023-0001"}},
		{"search description", Params{SearchQuery: "flooding"}, []string{"CP-2023-0004"}},
		{"search id", Params{SearchQuery: "0003"}, []string{"CP-2023-0003"}},
		{"search area", Params{SearchQuery: "koramangala"}, []string{"CP-2023-0004", "CP-2023-0001"}},
		{"department", Params{DepartmentFilter: "water"}, []string{"CP-2023-0004", "CP-2023-0002"}},
		{"status resolved excludes closed", Params{StatusFilter: "resolved"}, []string{"CP-2023-0001"}},
		{"status closed", Params{StatusFilter: "closed"}, []string{"CP-2023-0003"}},
		{"conjunctive", Params{SearchQuery: "water", DepartmentFilter: "water", StatusFilter: "pending"}, []string{"CP-2023-0002"}},
		{"no match", Params{DepartmentFilter: "parks"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Query(cs, tt.params)))
		})
	}
}

func TestQuery_SortUpvotesStable(t *testing.T) {
	got := Query(fixture(), Params{SortBy: "upvotes"})
	// 0001 and 0003 tie on 5 upvotes and keep input order
	assert.Equal(t, []string{"CP-2023-0004", "CP-2023-0002", "CP-2023-0001", "CP-2023-0003"}, ids(got))
}

func TestQuery_SortComments(t *testing.T) {
	got := Query(fixture(), Params{SortBy: "comments"})
	assert.Equal(t, []string{"CP-2023-0003", "CP-2023-0001", "CP-2023-0004", "CP-2023-0002"}, ids(got))
}

func TestQuery_NoMatchIsEmptyNotNil(t *testing.T) {
	got := Query(nil, Params{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	cs := fixture()
	before := ids(cs)

	_ = Query(cs, Params{SortBy: "upvotes"})
	assert.Equal(t, before, ids(cs))
}

func TestQuery_Idempotent(t *testing.T) {
	cs := generator.Generate(catalog.NewService().Departments(), rand.New(rand.NewSource(3)), day0)
	for _, sortBy := range []string{"newest", "oldest", "upvotes", "comments"} {
		p := Params{SortBy: sortBy, StatusFilter: "pending"}
		first := Query(cs, p)
		second := Query(cs, p)
		require.Equal(t, first, second, sortBy)
		assert.Equal(t, first, Query(first, p), "re-querying the result changes nothing")
	}
}
