// Package storage archives parsed sweep captures in per-investigation
// sqlite files so that sessions can be re-analyzed and rendered without
// the original CSVs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sweephound/sweephound/internal/sweep"
)

// Store handles database operations for one archive file. Writes go
// through a WAL connection, reads through a separate read-only
// connection; both are opened lazily.
type Store struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// New creates a store for the archive at dbPath. The file and schema
// are created on first write.
func New(dbPath string) *Store {
	return &Store{dbPath: dbPath}
}

func runSQLCommand(db *sql.DB, stmt string) error {
	_, err := db.Exec(stmt)
	return err
}

func (s *Store) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *Store) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

// CreateSession registers an imported capture and returns its session
// ID. Label describes the session's role (baseline, scan, directional),
// heading is empty for non-directional captures, and the skip counts
// preserve the parse defects for later reports.
func (s *Store) CreateSession(ctx context.Context, label string, heading sweep.Heading, source string, skippedRows, skippedReadings int) (sessionID int64, err error) {
	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	var headingValue sql.NullString
	if heading != "" {
		headingValue.Valid = true
		headingValue.String = string(heading)
	}

	result, err := stmt.ExecContext(ctx, label, headingValue, source, skippedRows, skippedReadings)
	if err != nil {
		err = fmt.Errorf("inserting session: %w", err)
		return
	}

	sessionID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting session ID: %w", err)
	}
	return
}

// StoreSample persists all readings of one sweep row in a single batch
// insert.
func (s *Store) StoreSample(ctx context.Context, sessionID int64, sample *sweep.SweepSample) (err error) {
	if len(sample.Readings) == 0 {
		return nil
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	values := make([]any, 0, len(sample.Readings)*5)

	var sb strings.Builder
	sb.WriteString(insertSamplesSQL)
	for k, power := range sample.Readings {
		values = append(values,
			sessionID,
			sample.Timestamp.UTC(),
			sample.BinFrequency(k),
			sample.BinWidth,
			power,
		)
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
	}

	if _, err = tx.ExecContext(ctx, sb.String(), values...); err != nil {
		return fmt.Errorf("batch inserting samples: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ImportCapture creates a session for the capture and stores every
// sample in it.
func (s *Store) ImportCapture(ctx context.Context, label string, heading sweep.Heading, c *sweep.Capture) (sessionID int64, err error) {
	sessionID, err = s.CreateSession(ctx, label, heading, c.Source, c.SkippedRows, c.SkippedReadings)
	if err != nil {
		return 0, err
	}

	for i := range c.Samples {
		if err = s.StoreSample(ctx, sessionID, &c.Samples[i]); err != nil {
			return 0, fmt.Errorf("storing sample %d: %w", i, err)
		}
	}
	return sessionID, nil
}

// Session retrieves a session by ID, or nil when it does not exist.
func (s *Store) Session(ctx context.Context, id int64) (session *Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, selectSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	var sess Session
	if err = stmt.QueryRowContext(ctx, id).Scan(&sess.ID, &sess.StartTime, &sess.Label, &sess.Heading, &sess.Source, &sess.SkippedRows, &sess.SkippedReadings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err = fmt.Errorf("scanning session: %w", err)
		return
	}

	return &sess, nil
}

// Sessions returns all sessions ordered by start time.
func (s *Store) Sessions(ctx context.Context) (sessions []*Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectSessionsSQL)
	if err != nil {
		err = fmt.Errorf("querying sessions: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var sess Session
		if err = rows.Scan(&sess.ID, &sess.StartTime, &sess.Label, &sess.Heading, &sess.Source, &sess.SkippedRows, &sess.SkippedReadings); err != nil {
			err = fmt.Errorf("scanning session: %w", err)
			return
		}
		sessions = append(sessions, &sess)
	}
	err = rows.Err()
	return
}

// StoreVantage persists a vantage point definition used by a position
// estimation run.
func (s *Store) StoreVantage(ctx context.Context, v *VantageRecord) (vantageID int64, err error) {
	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertVantageSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, v.Name, v.NorthFeet, v.EastFeet, v.AntennaHeightFeet)
	if err != nil {
		err = fmt.Errorf("inserting vantage: %w", err)
		return
	}

	vantageID, err = result.LastInsertId()
	if err != nil {
		err = fmt.Errorf("getting vantage ID: %w", err)
	}
	return
}

// Vantages returns all stored vantage points ordered by name.
func (s *Store) Vantages(ctx context.Context) (vantages []*VantageRecord, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectVantagesSQL)
	if err != nil {
		err = fmt.Errorf("querying vantages: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var v VantageRecord
		if err = rows.Scan(&v.ID, &v.Name, &v.NorthFeet, &v.EastFeet, &v.AntennaHeightFeet); err != nil {
			err = fmt.Errorf("scanning vantage: %w", err)
			return
		}
		vantages = append(vantages, &v)
	}
	err = rows.Err()
	return
}

// Close releases both database connections. Safe to call multiple
// times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			_ = runSQLCommand(s.writeDB, initIndexesSQL)

			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		switch {
		case writeErr != nil && readErr != nil:
			s.closeErr = errors.Join(writeErr, readErr)
		case writeErr != nil:
			s.closeErr = writeErr
		case readErr != nil:
			s.closeErr = readErr
		}
	})

	return s.closeErr
}

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if cErr := rb.Rollback(); cErr != nil && !errors.Is(cErr, sql.ErrTxDone) && *err == nil {
		*err = cErr
	}
}
