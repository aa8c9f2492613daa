package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielpatrickdp/tancalc/internal/tangent"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	eval_id     TEXT PRIMARY KEY,
	input       REAL NOT NULL,
	unit        TEXT NOT NULL,
	method      TEXT NOT NULL,
	undefined   INTEGER NOT NULL,
	result      REAL,
	source      TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS evaluation_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	eval_id     TEXT,
	event       TEXT NOT NULL,
	detail_json TEXT,
	reason      TEXT,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS evaluations_created_at ON evaluations (created_at);
`

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #endregion schema

// #region store-struct
// Store keeps evaluation history in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion close

// #region save
// Save inserts rec, filling EvalID and CreatedAt when they are empty, and
// returns the stored record.
func (s *Store) Save(rec Record) (Record, error) {
	if rec.EvalID == "" {
		rec.EvalID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var result interface{}
	if !rec.Undefined {
		result = rec.Result
	}

	_, err := s.db.Exec(
		`INSERT INTO evaluations (eval_id, input, unit, method, undefined, result, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.EvalID, rec.Input, rec.Unit.String(), rec.Method, boolToInt(rec.Undefined), result,
		rec.Source, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return Record{}, fmt.Errorf("insert evaluation: %w", err)
	}
	return rec, nil
}

// #endregion save

// #region get
// Get retrieves one evaluation by ID.
func (s *Store) Get(id string) (Record, error) {
	row := s.db.QueryRow(
		`SELECT eval_id, input, unit, method, undefined, result, source, created_at
		 FROM evaluations WHERE eval_id = ?`, id,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get evaluation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get evaluation %s: %w", id, err)
	}
	return rec, nil
}

// #endregion get

// #region recent
// Recent returns up to limit evaluations, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT eval_id, input, unit, method, undefined, result, source, created_at
		 FROM evaluations ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored evaluations.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM evaluations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count evaluations: %w", err)
	}
	return n, nil
}

// #endregion recent

// #region helpers
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(sc scanner) (Record, error) {
	var rec Record
	var unit, createdStr string
	var undefined int
	var result sql.NullFloat64

	err := sc.Scan(&rec.EvalID, &rec.Input, &unit, &rec.Method, &undefined, &result, &rec.Source, &createdStr)
	if err != nil {
		return Record{}, err
	}
	rec.Unit, err = tangent.ParseUnit(unit)
	if err != nil {
		return Record{}, err
	}
	rec.Undefined = undefined != 0
	if result.Valid {
		rec.Result = result.Float64
	}
	rec.CreatedAt, _ = time.Parse(timeLayout, createdStr)
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion helpers
