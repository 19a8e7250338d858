package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLJournal is a MySQL/MariaDB implementation of Journal.
//
// It stores navigation records in a relational database.
// Designed for:
//   - Production applications requiring a durable audit trail
//   - Deployments where several processes share one journal
//   - Compliance requirements on navigation history
//
// MySQLJournal uses connection pooling for reliability.
//
// Schema:
//   - flow_events: one row per navigation event
type MySQLJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLJournal creates a new MySQL-backed journal.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...&paramN=valueN]
//
// Example DSNs:
//
//	user:password@tcp(localhost:3306)/flows?parseTime=true
//	user:password@tcp(127.0.0.1:3306)/flows?parseTime=true
//
// The DSN must include parseTime=true so timestamps scan into time.Time.
//
// Security Warning:
//
//	NEVER hardcode credentials in your source code. Use environment variables:
//	    dsn := os.Getenv("MYSQL_DSN")
//	    if dsn == "" {
//	        log.Fatal("MYSQL_DSN environment variable not set")
//	    }
//	    j, err := journal.NewMySQLJournal(dsn)
//
// The journal automatically:
//   - Creates the required table if it doesn't exist
//   - Configures connection pooling
//   - Sets appropriate timeouts
func NewMySQLJournal(dsn string) (*MySQLJournal, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)                  // Maximum open connections
	db.SetMaxIdleConns(5)                   // Keep idle connections for reuse
	db.SetConnMaxLifetime(5 * time.Minute)  // Max connection lifetime (prevent stale connections)
	db.SetConnMaxIdleTime(10 * time.Minute) // Max idle time before closing

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // Ignore close error when returning ping error
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	j := &MySQLJournal{
		db:     db,
		closed: false,
	}

	if err := j.createTables(ctx); err != nil {
		_ = db.Close() // Ignore close error when returning table creation error
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return j, nil
}

// createTables creates the required database schema if it doesn't exist.
func (j *MySQLJournal) createTables(ctx context.Context) error {
	eventsTable := `
		CREATE TABLE IF NOT EXISTS flow_events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			flow_id VARCHAR(255) NOT NULL,
			seq INT NOT NULL,
			step VARCHAR(255) NOT NULL,
			from_step VARCHAR(255) NOT NULL,
			to_step VARCHAR(255) NOT NULL,
			msg VARCHAR(64) NOT NULL,
			at TIMESTAMP(6) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_events_flow_id (flow_id, id)
		)
	`
	if _, err := j.db.ExecContext(ctx, eventsTable); err != nil {
		return fmt.Errorf("failed to create flow_events table: %w", err)
	}

	return nil
}

// Append persists a navigation record (implements Journal).
func (j *MySQLJournal) Append(ctx context.Context, rec Record) error {
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
		rec.FlowID, rec.Seq, rec.Step, rec.From, rec.To, rec.Msg, rec.At)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	return nil
}

// Tail retrieves the most recent records for a flow ID, newest first
// (implements Journal).
//
// Returns ErrNotFound if the flow ID has no records.
func (j *MySQLJournal) Tail(ctx context.Context, flowID string, limit int) ([]Record, error) {
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
		if err := rows.Scan(&rec.Seq, &rec.Step, &rec.From, &rec.To, &rec.Msg, &rec.At); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.FlowID = flowID
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
func (j *MySQLJournal) Close() error {
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
func (j *MySQLJournal) Ping(ctx context.Context) error {
	j.mu.RLock()
	if j.closed {
		j.mu.RUnlock()
		return fmt.Errorf("journal is closed")
	}
	j.mu.RUnlock()

	return j.db.PingContext(ctx)
}
