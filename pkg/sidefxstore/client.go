// Copyright 2025 Andamio Labs
//
// Database client for the side-effect mock recorder: connection pooling,
// health checks, migration support, and the side_effect_calls table that
// backs cmd/sidefx-mock-server.

package sidefxstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/andamio-labs/txcore/pkg/lintconfig"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Client represents a database client with connection pooling.
type Client struct {
	db     *sql.DB
	config *lintconfig.Config
	logger *log.Logger
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithLogger sets a custom logger for the client.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new database client with connection pooling.
func NewClient(cfg *lintconfig.Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	client := &Client{
		config: cfg,
		logger: log.New(log.Writer(), "[sidefxstore] ", log.LstdFlags),
	}

	for _, opt := range opts {
		opt(client)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxConns)
	db.SetMaxIdleConns(cfg.DatabaseMinConns)
	db.SetConnMaxIdleTime(cfg.DatabaseMaxIdle)

	client.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	client.logger.Printf("connected to database (max_conns=%d, min_conns=%d)",
		cfg.DatabaseMaxConns, cfg.DatabaseMinConns)

	return client, nil
}

// DB returns the underlying *sql.DB for direct access.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Close closes the database connection.
func (c *Client) Close() error {
	if c.db != nil {
		c.logger.Println("closing database connection")
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// HealthStatus represents the health status of the database.
type HealthStatus struct {
	Healthy            bool          `json:"healthy"`
	Error              string        `json:"error,omitempty"`
	Version            string        `json:"version,omitempty"`
	OpenConnections    int           `json:"open_connections"`
	InUse              int           `json:"in_use"`
	Idle               int           `json:"idle"`
	WaitCount          int64         `json:"wait_count"`
	WaitDuration       time.Duration `json:"wait_duration"`
	MaxOpenConnections int           `json:"max_open_connections"`
	CheckedAt          time.Time     `json:"checked_at"`
}

// Health returns database health information.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{CheckedAt: time.Now()}

	if err := c.db.PingContext(ctx); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status, nil
	}

	stats := c.db.Stats()
	status.Healthy = true
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.WaitCount = stats.WaitCount
	status.WaitDuration = stats.WaitDuration
	status.MaxOpenConnections = stats.MaxOpenConnections

	var version string
	if err := c.db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err == nil {
		status.Version = version
	}

	return status, nil
}

// Migration represents a database migration.
type Migration struct {
	Version  string
	Filename string
	SQL      string
}

// MigrateUp runs all pending database migrations.
func (c *Client) MigrateUp(ctx context.Context) error {
	c.logger.Println("running database migrations...")

	migrations, err := c.getMigrations()
	if err != nil {
		return fmt.Errorf("failed to get migrations: %w", err)
	}

	applied, err := c.getAppliedMigrations(ctx)
	if err != nil {
		if !strings.Contains(err.Error(), "does not exist") {
			return fmt.Errorf("failed to get applied migrations: %w", err)
		}
		applied = make(map[string]bool)
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			c.logger.Printf("  skipping %s (already applied)", migration.Version)
			continue
		}

		c.logger.Printf("  applying %s...", migration.Version)
		if err := c.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration.Version, err)
		}
		c.logger.Printf("  applied %s successfully", migration.Version)
	}

	c.logger.Println("migrations complete")
	return nil
}

func (c *Client) getMigrations() ([]Migration, error) {
	var migrations []Migration

	err := fs.WalkDir(migrationsFS, "migrations", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".sql") {
			return nil
		}

		content, err := migrationsFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		filename := d.Name()
		version := strings.TrimSuffix(filename, ".sql")

		migrations = append(migrations, Migration{
			Version:  version,
			Filename: filename,
			SQL:      string(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (c *Client) getAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

func (c *Client) applyMigration(ctx context.Context, migration Migration) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration SQL: %w", err)
	}

	return tx.Commit()
}

// SideEffectCall is one recorded request the mock server received. Def is
// populated only when the caller set the X-Sidefx-Def header; a server has
// no other way to know which definition's side effect it is standing in
// for.
type SideEffectCall struct {
	ID         uuid.UUID
	Method     string
	Path       string
	Def        string
	Headers    map[string]string
	Body       map[string]any
	StatusCode int
	ReceivedAt time.Time
}

// InsertSideEffectCall persists one recorded call, generating its id.
func (c *Client) InsertSideEffectCall(ctx context.Context, call SideEffectCall) (uuid.UUID, error) {
	id := uuid.New()

	var bodyJSON, headersJSON []byte
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("marshal body: %w", err)
		}
		bodyJSON = encoded
	}
	if call.Headers != nil {
		encoded, err := json.Marshal(call.Headers)
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("marshal headers: %w", err)
		}
		headersJSON = encoded
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO side_effect_calls (id, method, path, def, headers, body, status_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, call.Method, call.Path, nullableString(call.Def), headersJSON, bodyJSON, call.StatusCode)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("insert side effect call: %w", err)
	}
	return id, nil
}

// ListSideEffectCalls returns every recorded call, most recent first,
// optionally filtered to a single def.
func (c *Client) ListSideEffectCalls(ctx context.Context, def string) ([]SideEffectCall, error) {
	var rows *sql.Rows
	var err error
	if def == "" {
		rows, err = c.db.QueryContext(ctx, `
			SELECT id, method, path, def, headers, body, status_code, received_at
			FROM side_effect_calls
			ORDER BY received_at DESC
		`)
	} else {
		rows, err = c.db.QueryContext(ctx, `
			SELECT id, method, path, def, headers, body, status_code, received_at
			FROM side_effect_calls
			WHERE def = $1
			ORDER BY received_at DESC
		`, def)
	}
	if err != nil {
		return nil, fmt.Errorf("query side effect calls: %w", err)
	}
	defer rows.Close()

	var out []SideEffectCall
	for rows.Next() {
		var call SideEffectCall
		var bodyJSON, headersJSON []byte
		var defStr sql.NullString
		if err := rows.Scan(&call.ID, &call.Method, &call.Path, &defStr,
			&headersJSON, &bodyJSON, &call.StatusCode, &call.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan side effect call: %w", err)
		}
		if defStr.Valid {
			call.Def = defStr.String
		}
		if len(bodyJSON) > 0 {
			if err := json.Unmarshal(bodyJSON, &call.Body); err != nil {
				return nil, fmt.Errorf("unmarshal body: %w", err)
			}
		}
		if len(headersJSON) > 0 {
			if err := json.Unmarshal(headersJSON, &call.Headers); err != nil {
				return nil, fmt.Errorf("unmarshal headers: %w", err)
			}
		}
		out = append(out, call)
	}
	return out, rows.Err()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
