package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sprinkler/internal/models"

	"github.com/google/uuid"
)

// timestampLayout is fixed width so stored values sort and compare as text.
const timestampLayout = "2006-01-02 15:04:05.000000"

const (
	insertEventSQL = `
		INSERT INTO run_events (id, run_id, occurred_at, type, zone, seconds, message, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, run_id, occurred_at, type, zone, seconds, message, meta FROM run_events`
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Ensure implementation of EventRepo interface at compile time.
var _ EventRepo = (*EventSQLite)(nil)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQLite) Append(ctx context.Context, e models.RunEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	// marshal metadata if present
	var metaPtr *string
	if e.Metadata != nil {
		if b, err := json.Marshal(e.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.RunID,
		formatTimestamp(e.OccurredAt),
		strings.ToUpper(strings.TrimSpace(e.Type)),
		e.Zone,
		e.Seconds,
		e.Description,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("append run event: %w", err)
	}
	return nil
}

// List returns events matching q, oldest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.RunEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, formatTimestamp(q.From))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, formatTimestamp(q.To))
	}
	if typ := strings.ToUpper(strings.TrimSpace(q.Type)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if q.Zone != "" {
		conds = append(conds, "zone = ?")
		args = append(args, q.Zone)
	}

	stmt := selectEventsSQL
	if len(conds) > 0 {
		stmt += " WHERE " + strings.Join(conds, " AND ")
	}
	stmt += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.RunEvent, 0, 64)
	for rows.Next() {
		var (
			ev      models.RunEvent
			at      string
			metaStr sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.RunID, &at, &ev.Type, &ev.Zone, &ev.Seconds, &ev.Description, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt, err = time.ParseInLocation(timestampLayout, at, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("event %s: bad timestamp %q: %w", ev.EventID, at, err)
		}

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				ev.Metadata = v
			} else {
				ev.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
