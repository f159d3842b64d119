package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is an event as stored in the history table.
type Record struct {
	ID      string    `json:"id"`
	Type    Type      `json:"type"`
	Source  string    `json:"source"`
	Time    time.Time `json:"time"`
	Payload Payload   `json:"payload,omitempty"`
}

// Filter controls which event records to return.
type Filter struct {
	Type   Type   // optional: filter by event type
	Source string // optional: filter by source
	Limit  int    // default 50, max 200
	Offset int    // pagination offset
}

// ListResult contains paginated event history results.
type ListResult struct {
	Events []Record `json:"events"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// Repository defines the interface for event history operations.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository persists event history in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates an event history repository, creating the
// events table if it does not exist.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	r := &SQLiteRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) ensureSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			source     TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			payload    TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
		CREATE INDEX IF NOT EXISTS idx_events_occurred_at ON events(occurred_at);
	`)
	if err != nil {
		return fmt.Errorf("creating events schema: %w", err)
	}
	return nil
}

// Create inserts an event record. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = "evt-" + uuid.NewString()[:8]
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	var payloadJSON *string
	if rec.Payload != nil {
		b, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("marshalling event payload: %w", err)
		}
		s := string(b)
		payloadJSON = &s
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, type, source, occurred_at, payload)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Type), rec.Source,
		rec.Time.Format(time.RFC3339Nano), payloadJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// List returns event records matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM events %s", where)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting events: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT id, type, source, occurred_at, payload FROM events %s ORDER BY occurred_at DESC LIMIT ? OFFSET ?",
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var eventType string
		var payloadJSON sql.NullString
		var occurredAt string

		if err := rows.Scan(&rec.ID, &eventType, &rec.Source, &occurredAt, &payloadJSON); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		rec.Type = Type(eventType)

		if payloadJSON.Valid && payloadJSON.String != "" {
			var payload Payload
			if json.Unmarshal([]byte(payloadJSON.String), &payload) == nil {
				rec.Payload = payload
			}
		}

		t, err := time.Parse(time.RFC3339Nano, occurredAt)
		if err != nil {
			return nil, fmt.Errorf("parsing event timestamp %q: %w", occurredAt, err)
		}
		rec.Time = t

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	if records == nil {
		records = []Record{}
	}

	return &ListResult{
		Events: records,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}
