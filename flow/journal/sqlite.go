package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteJournal is a SQLite implementation of Journal.
//
// It stores navigation records in a single-file database.
// Designed for:
//   - Development and testing with zero setup
//   - Single-process applications needing a durable audit trail
//   - Prototyping before migrating to a shared database
//
// SQLiteJournal uses WAL mode for concurrent reads.
//
// Schema:
//   - flow_events: one row per navigation event
type SQLiteJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteJournal creates a new SQLite-backed journal.
//
// The path parameter specifies the database file location:
//   - "./flow.db" - file in current directory
//   - ":memory:" - in-memory database (data lost on close)
//
// The journal automatically:
//   - Creates the database file if it doesn't exist
//   - Creates the required table
//   - Enables WAL mode for concurrent reads
//   - Configures appropriate timeouts
//
// Example:
//
//	j, err := journal.NewSQLiteJournal("./flow.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer j.Close()
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(1)    // SQLite supports one writer at a time
	db.SetMaxIdleConns(1)    // Keep connection open
	db.SetConnMaxLifetime(0) // No max lifetime for SQLite

	// Enable WAL mode for better concurrency
	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close() // Ignore close error when returning pragma error
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout (wait up to 5 seconds for locks)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close() // Ignore close error when returning pragma error
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	j := &SQLiteJournal{
		db:     db,
		closed: false,
		path:   path,
	}

	if err := j.createTables(ctx); err != nil {
		_ = db.Close() // Ignore close error when returning table creation error
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// createTables creates the required database schema if it doesn't exist.
func (j *SQLiteJournal) createTables(ctx context.Context) error {
	eventsTable := `
		CREATE TABLE IF NOT EXISTS flow_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			flow_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			step TEXT NOT NULL,
			from_step TEXT NOT NULL,
			to_step TEXT NOT NULL,
			msg TEXT NOT NULL,
			at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := j.db.ExecContext(ctx, eventsTable); err != nil {
		return fmt.Errorf("failed to create flow_events table: %w", err)
	}

	if _, err := j.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_events_flow_id ON flow_events(flow_id, id)"); err != nil {
		return fmt.Errorf("failed to create idx_events_flow_id: %w", err)
	}

	return nil
}

// Append persists a navigation record (implements Journal).
func (j *SQLiteJournal) Append(ctx context.Context, rec Record) error {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return fmt.Errorf("journal is closed")
	}
	j.mu.RUnlock()

	query := `
		INSERT INTO flow_events (flow_id, seq, step, from_step, to_step, msg, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := j.db.ExecContext(ctx, query,
		rec.FlowID, rec.Seq, rec.Step, rec.From, rec.To, rec.Msg, rec.At.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	return nil
}

// Tail retrieves the most recent records for a flow ID, newest first
// (implements Journal).
//
// Returns ErrNotFound if the flow ID has no records.
func (j *SQLiteJournal) Tail(ctx context.Context, flowID string, limit int) ([]Record, error) {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return nil, fmt.Errorf("journal is closed")
	}
	j.mu.RUnlock()

	query := `
		SELECT seq, step, from_step, to_step, msg, at
		FROM flow_events
		WHERE flow_id = ?
		ORDER BY id DESC
	`
	args := []interface{}{flowID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		var at string
		if err := rows.Scan(&rec.Seq, &rec.Step, &rec.From, &rec.To, &rec.Msg, &at); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.FlowID = flowID
		if parsed, err := time.Parse(time.RFC3339Nano, at); err == nil {
			rec.At = parsed
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// Close closes the database connection.
//
// After Close, all operations will return an error.
// Calling Close multiple times is safe (subsequent calls are no-ops).
func (j *SQLiteJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil // Double-close is a no-op
	}

	j.closed = true
	return j.db.Close()
}

// Ping verifies the database connection is alive.
//
// Useful for health checks and connection validation.
func (j *SQLiteJournal) Ping(ctx context.Context) error {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return fmt.Errorf("journal is closed")
	}
	j.mu.RUnlock()

	return j.db.PingContext(ctx)
}
