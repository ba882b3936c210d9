package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielpatrickdp/magic-orb/internal/catalog"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id        TEXT PRIMARY KEY,
	version           INTEGER NOT NULL,
	active_reading_id TEXT,
	updated_at        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS readings (
	session_id    TEXT NOT NULL,
	position      INTEGER NOT NULL,
	reading_id    TEXT NOT NULL,
	question      TEXT NOT NULL,
	response_id   TEXT NOT NULL,
	tone          TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	color         TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	PRIMARY KEY (session_id, position),
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);
`

// #endregion schema

// ErrStaleState is returned by Commit when the session moved past the
// version the caller built its transition on.
var ErrStaleState = errors.New("stale session state")

// #region store-struct
// Store keeps one ApplicationState per session in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// #endregion store-struct

// #region constructor
// NewStore opens a SQLite database and runs migrations. ":memory:" keeps
// everything in process memory.
//
// Several stores may share one database file. Transactions take the write
// lock up front and wait for it, so a commit racing another process sees
// ErrStaleState rather than a lock error.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withConnOptions(dsn))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: in-memory databases are per connection, and commits
	// are serialised so the version check cannot race.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// busyTimeoutMillis bounds how long a transaction waits for another
// connection's write lock.
const busyTimeoutMillis = 5000

func withConnOptions(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_txlock=immediate", dsn, sep, busyTimeoutMillis)
}

// isBusy reports whether err is SQLite refusing a lock held elsewhere.
func isBusy(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_BUSY
}

// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion close

// #region load
// Load reads the state of a session. A session that was never committed
// loads as the empty state at version 0.
func (s *Store) Load(ctx context.Context, sessionID string) (Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	snap := Snapshot{SessionID: sessionID, State: Empty()}

	var activeID sql.NullString
	var updatedStr string
	err = tx.QueryRowContext(ctx,
		`SELECT version, active_reading_id, updated_at FROM sessions WHERE session_id = ?`, sessionID,
	).Scan(&snap.Version, &activeID, &updatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	if snap.UpdatedAt, err = ParseTimestamp(updatedStr); err != nil {
		return Snapshot{}, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT reading_id, question, response_id, tone, title, description, color, created_at
		 FROM readings WHERE session_id = ? ORDER BY position ASC`, sessionID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec ReadingRecord
		var tone, createdStr string
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Response.ID, &tone,
			&rec.Response.Title, &rec.Response.Description, &rec.Response.Color, &createdStr); err != nil {
			return Snapshot{}, fmt.Errorf("scan row: %w", err)
		}
		rec.Response.Tone = catalog.Tone(tone)
		if rec.Timestamp, err = ParseTimestamp(createdStr); err != nil {
			return Snapshot{}, err
		}
		snap.State.History = append(snap.State.History, rec)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate readings: %w", err)
	}

	if activeID.Valid {
		for i := range snap.State.History {
			if snap.State.History[i].ID == activeID.String {
				active := snap.State.History[i]
				snap.State.Active = &active
				break
			}
		}
		if snap.State.Active == nil {
			return Snapshot{}, fmt.Errorf("%w: active reading %s not stored", ErrInconsistentState, activeID.String)
		}
	}
	return snap, nil
}

// #endregion load

// #region commit
// Commit replaces the session state with next if the stored version still
// equals expectedVersion. History rows and the active pointer change in one
// transaction, so readers see either the old state or the new one.
func (s *Store) Commit(ctx context.Context, sessionID string, expectedVersion int64, next ApplicationState) (int64, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("%w: session %s locked by another writer: %v", ErrStaleState, sessionID, err)
		}
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM sessions WHERE session_id = ?`, sessionID).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get version: %w", err)
	}
	if current != expectedVersion {
		return 0, fmt.Errorf("%w: session %s at version %d, expected %d", ErrStaleState, sessionID, current, expectedVersion)
	}

	newVersion := expectedVersion + 1
	var activePtr interface{}
	if next.Active != nil {
		activePtr = next.Active.ID
	}
	updated := FormatTimestamp(s.now())

	if expectedVersion == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (session_id, version, active_reading_id, updated_at) VALUES (?, ?, ?, ?)`,
			sessionID, newVersion, activePtr, updated,
		)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions SET version = ?, active_reading_id = ?, updated_at = ?
			 WHERE session_id = ? AND version = ?`,
			newVersion, activePtr, updated, sessionID, expectedVersion,
		)
	}
	if err != nil {
		return 0, fmt.Errorf("update session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM readings WHERE session_id = ?`, sessionID); err != nil {
		return 0, fmt.Errorf("clear readings: %w", err)
	}
	for i, rec := range next.History {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO readings (session_id, position, reading_id, question, response_id, tone, title, description, color, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sessionID, i, rec.ID, rec.Question, rec.Response.ID, string(rec.Response.Tone),
			rec.Response.Title, rec.Response.Description, rec.Response.Color, FormatTimestamp(rec.Timestamp),
		)
		if err != nil {
			return 0, fmt.Errorf("insert reading %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		if isBusy(err) {
			return 0, fmt.Errorf("%w: session %s locked by another writer: %v", ErrStaleState, sessionID, err)
		}
		return 0, fmt.Errorf("commit: %w", err)
	}
	return newVersion, nil
}

// #endregion commit

// #region sessions
// Sessions lists known session IDs, most recently updated first.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT session_id FROM sessions ORDER BY updated_at DESC, session_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// #endregion sessions
