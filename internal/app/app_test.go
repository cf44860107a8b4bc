package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/models"
)

func testConfig(t *testing.T) *common.Config {
	t.Helper()
	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	cfg.Data.Seed = 7
	cfg.Data.ComplaintCount = 20
	return cfg
}

func TestNewAppWithConfig_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := NewAppWithConfig(ctx, cfg, common.NewSilentLogger())
	require.NoError(t, err)

	first, err := a.ComplaintService.List(ctx, models.ComplaintQuery{})
	require.NoError(t, err)
	assert.Len(t, first, 20)

	// file a complaint so the reload can be told apart from a regeneration
	c, err := a.ComplaintService.File(ctx, "user-123", "Rahul Sharma", models.NewComplaint{
		DepartmentID: "water",
		Title:        "No water since morning",
		Description:  "The tap supply stopped early in the morning.",
		Area:         "Indiranagar",
		Pincode:      "560038",
	})
	require.NoError(t, err)
	a.Close()

	// a different seed must not matter once the store holds data
	cfg.Data.Seed = 99
	b, err := NewAppWithConfig(ctx, cfg, common.NewSilentLogger())
	require.NoError(t, err)
	defer b.Close()

	second, err := b.ComplaintService.List(ctx, models.ComplaintQuery{})
	require.NoError(t, err)
	assert.Len(t, second, 21)

	got, err := b.ComplaintService.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "No water since morning", got.Title)
}

func TestNewAppWithConfig_Wiring(t *testing.T) {
	a, err := NewAppWithConfig(context.Background(), testConfig(t), common.NewSilentLogger())
	require.NoError(t, err)
	defer a.Close()

	assert.Len(t, a.CatalogService.Departments(), 9)

	data, err := a.AnalyticsService.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, data.TotalComplaints)

	assert.NotNil(t, a.AuthService)
	assert.NotNil(t, a.Validator)
}

func TestNewAppWithConfig_RejectsMissingSettings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth.JWTSecret = ""

	_, err := NewAppWithConfig(context.Background(), cfg, common.NewSilentLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}

func TestNewAppWithConfig_CatalogOverlay(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`departments:
  - id: water
    name: Water Board
    icon: droplet
    description: Piped water
    helpline_number: "1916"
  - id: roads
    name: Roads
    icon: road
    description: Potholes and signals
    helpline_number: "103"
`), 0o644))
	cfg.Data.CatalogPath = path

	a, err := NewAppWithConfig(context.Background(), cfg, common.NewSilentLogger())
	require.NoError(t, err)
	defer a.Close()

	depts := a.CatalogService.Departments()
	require.Len(t, depts, 2)
	assert.Equal(t, "Water Board", depts[0].Name)

	all, err := a.ComplaintService.List(context.Background(), models.ComplaintQuery{})
	require.NoError(t, err)
	for _, c := range all {
		assert.Contains(t, []string{"water", "roads"}, c.Department.ID)
	}
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("CITYPULSE_CONFIG", "")
	assert.Equal(t, "explicit.toml", resolveConfigPath("explicit.toml", t.TempDir()))

	t.Setenv("CITYPULSE_CONFIG", "/etc/citypulse.toml")
	assert.Equal(t, "/etc/citypulse.toml", resolveConfigPath("", t.TempDir()))

	t.Setenv("CITYPULSE_CONFIG", "")
	dir := t.TempDir()
	assert.Equal(t, "config/citypulse.toml", resolveConfigPath("", dir))

	beside := filepath.Join(dir, "citypulse.toml")
	require.NoError(t, os.WriteFile(beside, []byte(""), 0o644))
	assert.Equal(t, beside, resolveConfigPath("", dir))
}
