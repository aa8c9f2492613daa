package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-event
// LogEvent writes an entry to the evaluation_log table.
func LogEvent(db *sql.DB, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO evaluation_log (eval_id, event, detail_json, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nullIfEmpty(entry.EvalID),
		entry.Event,
		nullIfEmpty(entry.DetailJSON),
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region recent
// Recent returns up to limit log entries, newest first.
func Recent(db *sql.DB, limit int) ([]Entry, error) {
	return queryEntries(db,
		`SELECT id, eval_id, event, detail_json, reason, created_at
		 FROM evaluation_log ORDER BY id DESC LIMIT ?`, limit)
}

// ForEval returns the entries attached to one evaluation, oldest first.
func ForEval(db *sql.DB, evalID string) ([]Entry, error) {
	return queryEntries(db,
		`SELECT id, eval_id, event, detail_json, reason, created_at
		 FROM evaluation_log WHERE eval_id = ? ORDER BY id ASC`, evalID)
}

func queryEntries(db *sql.DB, query string, args ...interface{}) ([]Entry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var evalID, detail, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&e.ID, &evalID, &e.Event, &detail, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.EvalID = evalID.String
		e.DetailJSON = detail.String
		e.Reason = reason.String
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion recent

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
