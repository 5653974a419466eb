package health

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDatabaseCheckerSQLiteFallback(t *testing.T) {
	cfg := DatabaseConfig{
		// No postgres host: that attempt must be unavailable, not unhealthy.
		SQLitePath: filepath.Join(t.TempDir(), "data", "research.db"),
	}
	rep := NewDatabaseChecker(cfg).Check(context.Background())

	if rep.Status != Healthy {
		t.Fatalf("Expected healthy via sqlite fallback, got %s (detail %v)", rep.Status, rep.Detail)
	}
	pg, ok := rep.Detail["postgresql"].(attempt)
	if !ok {
		t.Fatalf("Expected postgresql sub-attempt in detail, got %v", rep.Detail)
	}
	if pg.Status != Unavailable {
		t.Errorf("Expected postgresql unavailable without a host, got %s", pg.Status)
	}
	lite, ok := rep.Detail["sqlite"].(attempt)
	if !ok {
		t.Fatalf("Expected sqlite sub-attempt in detail, got %v", rep.Detail)
	}
	if lite.Status != Healthy {
		t.Errorf("Expected sqlite healthy, got %s (%s)", lite.Status, lite.Error)
	}
}

func TestDatabaseCheckerNothingConfigured(t *testing.T) {
	rep := NewDatabaseChecker(DatabaseConfig{}).Check(context.Background())
	if rep.Status != Unavailable {
		t.Errorf("Expected unavailable when no backend is configured, got %s", rep.Status)
	}
}

func TestDatabaseCheckerUnreachablePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping connection-timeout test in short mode")
	}
	cfg := DatabaseConfig{
		Host: "127.0.0.1",
		Port: 1, // nothing listens here
		Name: "free_deep_research",
		User: "fdr_user",
	}
	rep := NewDatabaseChecker(cfg).Check(context.Background())
	if rep.Status != Unhealthy {
		t.Errorf("Expected unhealthy when postgres is unreachable and sqlite unconfigured, got %s", rep.Status)
	}
	pg := rep.Detail["postgresql"].(attempt)
	if pg.Status != Unhealthy || pg.Error == "" {
		t.Errorf("Expected failed postgresql attempt with error detail, got %+v", pg)
	}
}
