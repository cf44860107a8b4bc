package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestUserContext_RoundTrip(t *testing.T) {
	uc := &UserContext{UserID: "user-123", SessionID: "sess", Phone: "9876543210"}
	ctx := WithUserContext(context.Background(), uc)

	got := UserContextFromContext(ctx)
	if got != uc {
		t.Fatalf("UserContextFromContext = %+v, want %+v", got, uc)
	}
	if ResolveUserID(ctx) != "user-123" {
		t.Errorf("ResolveUserID = %q, want user-123", ResolveUserID(ctx))
	}
}

func TestUserContext_Anonymous(t *testing.T) {
	ctx := context.Background()
	if UserContextFromContext(ctx) != nil {
		t.Error("expected nil user context")
	}
	if ResolveUserID(ctx) != "" {
		t.Errorf("ResolveUserID = %q, want empty", ResolveUserID(ctx))
	}
}

func TestLoadVersionFrom(t *testing.T) {
	oldVersion, oldBuild, oldCommit := Version, Build, GitCommit
	t.Cleanup(func() { Version, Build, GitCommit = oldVersion, oldBuild, oldCommit })

	Version, Build, GitCommit = "dev", "unknown", "unknown"

	path := filepath.Join(t.TempDir(), ".version")
	content := "# generated\nversion: 1.4.0\nbuild: 2026-01-02\ncommit: abc123\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write version file: %v", err)
	}

	loadVersionFrom(path)

	if Version != "1.4.0" || Build != "2026-01-02" || GitCommit != "abc123" {
		t.Errorf("got %s", GetFullVersion())
	}
}

func TestLoadVersionFrom_KeepsLdflags(t *testing.T) {
	oldVersion := Version
	t.Cleanup(func() { Version = oldVersion })

	Version = "2.0.0"
	path := filepath.Join(t.TempDir(), ".version")
	if err := os.WriteFile(path, []byte("version: 1.0.0\n"), 0644); err != nil {
		t.Fatalf("write version file: %v", err)
	}

	loadVersionFrom(path)

	if Version != "2.0.0" {
		t.Errorf("Version = %q, want ldflags value kept", Version)
	}
}
