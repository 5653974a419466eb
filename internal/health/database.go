package health

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const dbConnectTimeout = 5 * time.Second

// DatabaseConfig carries the connection parameters for the two backing
// stores. An empty Host disables the PostgreSQL attempt, an empty SQLitePath
// disables the embedded fallback; a disabled attempt reports unavailable,
// not unhealthy.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string

	SQLitePath string
}

// DatabaseChecker probes the primary relational store and the embedded
// fallback in sequence. The component is healthy if either attempt succeeds.
type DatabaseChecker struct {
	cfg DatabaseConfig
}

func NewDatabaseChecker(cfg DatabaseConfig) *DatabaseChecker {
	return &DatabaseChecker{cfg: cfg}
}

func (d *DatabaseChecker) Name() string { return "database" }

// attempt is one sub-attempt's outcome, reported separately for diagnosis.
type attempt struct {
	Status   Verdict `json:"status"`
	Type     string  `json:"type"`
	Host     string  `json:"host,omitempty"`
	Database string  `json:"database,omitempty"`
	Path     string  `json:"path,omitempty"`
	Size     int64   `json:"size,omitempty"`
	Error    string  `json:"error,omitempty"`
}

func (d *DatabaseChecker) Check(ctx context.Context) Report {
	pg := d.checkPostgres(ctx)
	lite := d.checkSQLite(ctx)

	status := Unhealthy
	switch {
	case pg.Status == Healthy || lite.Status == Healthy:
		status = Healthy
	case pg.Status == Unavailable && lite.Status == Unavailable:
		status = Unavailable
	}

	return newReport(d.Name(), status, map[string]any{
		"postgresql": pg,
		"sqlite":     lite,
	})
}

func (d *DatabaseChecker) checkPostgres(ctx context.Context) attempt {
	if d.cfg.Host == "" {
		return attempt{Status: Unavailable, Type: "postgresql", Error: "no database host configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s connect_timeout=5",
		d.cfg.Host, d.cfg.Port, d.cfg.Name, d.cfg.User, d.cfg.Password)
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return attempt{Status: Unhealthy, Type: "postgresql", Host: d.cfg.Host, Error: err.Error()}
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return attempt{Status: Unhealthy, Type: "postgresql", Host: d.cfg.Host, Error: err.Error()}
	}
	return attempt{Status: Healthy, Type: "postgresql", Host: d.cfg.Host, Database: d.cfg.Name}
}

func (d *DatabaseChecker) checkSQLite(ctx context.Context) attempt {
	if d.cfg.SQLitePath == "" {
		return attempt{Status: Unavailable, Type: "sqlite", Error: "no sqlite path configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, dbConnectTimeout)
	defer cancel()

	if err := os.MkdirAll(filepath.Dir(d.cfg.SQLitePath), 0o755); err != nil {
		return attempt{Status: Unhealthy, Type: "sqlite", Path: d.cfg.SQLitePath, Error: err.Error()}
	}

	db, err := sql.Open("sqlite", d.cfg.SQLitePath)
	if err != nil {
		return attempt{Status: Unhealthy, Type: "sqlite", Path: d.cfg.SQLitePath, Error: err.Error()}
	}
	defer db.Close()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return attempt{Status: Unhealthy, Type: "sqlite", Path: d.cfg.SQLitePath, Error: err.Error()}
	}

	var size int64
	if fi, err := os.Stat(d.cfg.SQLitePath); err == nil {
		size = fi.Size()
	}
	return attempt{Status: Healthy, Type: "sqlite", Path: d.cfg.SQLitePath, Size: size}
}
