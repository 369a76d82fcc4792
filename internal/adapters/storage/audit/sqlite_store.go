package audit

import (
	"context"
	"database/sql"
	"time"

	"ministry/internal/adapters/storage"
	domain "ministry/internal/domain/audit"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

const selectColumns = `SELECT id, timestamp, category, action, outcome, leader_id, leader_name, target_id, detail, ip_address FROM audit_event`

// SQLiteStore implements Store on the local activity database.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new activity store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists an activity entry.
// PRE: event has a non-empty ID
// POST: Event is persisted
func (s *SQLiteStore) Save(ctx context.Context, event domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_event (id, timestamp, category, action, outcome, leader_id, leader_name, target_id, detail, ip_address)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Timestamp.UTC().Format(dateLayout), string(event.Category), string(event.Action),
		string(event.Outcome), event.LeaderID, event.LeaderName, event.TargetID, event.Detail, event.IPAddress)
	return err
}

// where builds the shared WHERE clause for List and Count.
func where(filter Filter) (string, []any) {
	clause := " WHERE 1=1"
	var args []any
	if filter.Category != nil {
		clause += " AND category = ?"
		args = append(args, string(*filter.Category))
	}
	if filter.LeaderID != nil {
		clause += " AND leader_id = ?"
		args = append(args, *filter.LeaderID)
	}
	if filter.Outcome != nil {
		clause += " AND outcome = ?"
		args = append(args, string(*filter.Outcome))
	}
	return clause, args
}

// List returns one page of entries matching filter.
// PRE: filter.Limit > 0
// POST: Returns entries ordered newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]domain.Event, error) {
	clause, args := where(filter)
	query := selectColumns + clause + " ORDER BY timestamp DESC, id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// Count returns how many entries match filter.
func (s *SQLiteStore) Count(ctx context.Context, filter Filter) (int, error) {
	clause, args := where(filter)
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM audit_event"+clause, args...).Scan(&n)
	return n, err
}

func scanEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		var e domain.Event
		var timestamp string
		err := rows.Scan(&e.ID, &timestamp, &e.Category, &e.Action, &e.Outcome,
			&e.LeaderID, &e.LeaderName, &e.TargetID, &e.Detail, &e.IPAddress)
		if err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(dateLayout, timestamp)
		events = append(events, e)
	}
	return events, rows.Err()
}
