package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/xorcrack/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "xorcrack.db"

// timeLayout is fixed width so that started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	// ErrRunNotFound is returned when no stored run matches an ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousRunID is returned when an ID prefix matches more than one run.
	ErrAmbiguousRunID = errors.New("run ID prefix is ambiguous")
)

// ResultDB is the SQLite store for crack runs.
type ResultDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures ResultDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file when missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the ResultDB inside dbDir.
func Open(dbDir string, opts Options) (*ResultDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	// Several xorcrack processes may share the file, so writers wait for
	// the lock instead of failing with SQLITE_BUSY.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &ResultDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *ResultDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file path.
func (rdb *ResultDB) Path() string {
	return rdb.dbPath
}

func (rdb *ResultDB) createTables() error {
	schema := `
	-- One row per crack run; report_json holds the complete BatchReport
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		sources TEXT NOT NULL,
		rank_depth INTEGER NOT NULL,
		strict INTEGER NOT NULL,
		line_count INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		best_source TEXT,
		best_line INTEGER,
		best_key INTEGER,
		best_score INTEGER,
		best_text TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

	-- One row per processed line
	CREATE TABLE IF NOT EXISTS decryptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		source TEXT NOT NULL,
		line INTEGER NOT NULL,
		fingerprint TEXT,
		rank_depth INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		key INTEGER,
		source_byte INTEGER,
		source_count INTEGER,
		score INTEGER,
		text TEXT,
		valid_utf8 INTEGER,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_decryptions_run ON decryptions(run_id);
	CREATE INDEX IF NOT EXISTS idx_decryptions_fingerprint ON decryptions(fingerprint, rank_depth);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a finalized report and one row per processed line in a
// single transaction.
func (rdb *ResultDB) SaveRun(ctx context.Context, report *model.BatchReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	sourcesJSON, err := json.Marshal(report.Sources)
	if err != nil {
		return fmt.Errorf("failed to serialize sources: %w", err)
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after Commit

	var bestSource, bestText sql.NullString
	var bestLine, bestKey, bestScore sql.NullInt64
	if b := report.Best; b != nil && b.Decryption != nil {
		bestSource = sql.NullString{String: b.Source, Valid: true}
		bestLine = sql.NullInt64{Int64: int64(b.Line), Valid: true}
		bestKey = sql.NullInt64{Int64: int64(b.Decryption.Key), Valid: true}
		bestScore = sql.NullInt64{Int64: int64(b.Decryption.Score), Valid: true}
		bestText = sql.NullString{String: b.Decryption.Text, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, started_at, duration_ms, sources, rank_depth, strict, line_count, succeeded,
		best_source, best_line, best_key, best_score, best_text, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.StartedAt.UTC().Format(timeLayout),
		report.Duration.Milliseconds(),
		string(sourcesJSON),
		report.RankDepth,
		report.Strict,
		len(report.Results),
		report.Succeeded(),
		bestSource, bestLine, bestKey, bestScore, bestText,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO decryptions (run_id, source, line, fingerprint, rank_depth, outcome,
		key, source_byte, source_count, score, text, valid_utf8, error)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range report.Results {
		if r == nil || r.Outcome == model.OutcomePending {
			continue
		}

		var key, sourceByte, sourceCount, score sql.NullInt64
		var text sql.NullString
		var validUTF8 sql.NullBool
		if d := r.Decryption; d != nil {
			key = sql.NullInt64{Int64: int64(d.Key), Valid: true}
			sourceByte = sql.NullInt64{Int64: int64(d.SourceByte), Valid: true}
			sourceCount = sql.NullInt64{Int64: int64(d.SourceCount), Valid: true}
			score = sql.NullInt64{Int64: int64(d.Score), Valid: true}
			text = sql.NullString{String: d.Text, Valid: true}
			validUTF8 = sql.NullBool{Bool: d.ValidUTF8, Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			report.ID,
			r.Source,
			r.Line,
			r.Fingerprint,
			report.RankDepth,
			r.Outcome.String(),
			key, sourceByte, sourceCount, score, text, validUTF8,
			r.ErrorMessage,
		); err != nil {
			return fmt.Errorf("failed to save line %s:%d: %w", r.Source, r.Line, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// LookupDecryption returns the most recent successful decryption stored
// for a ciphertext fingerprint and rank depth. The bool is false when
// nothing is stored.
func (rdb *ResultDB) LookupDecryption(ctx context.Context, fingerprint string, rankDepth int) (model.Decryption, bool, error) {
	query := `
	SELECT key, source_byte, source_count, score, text, valid_utf8
	FROM decryptions
	WHERE fingerprint = ? AND rank_depth = ? AND score IS NOT NULL
	ORDER BY id DESC
	LIMIT 1
	`

	var d model.Decryption
	var key, sourceByte int64
	err := rdb.db.QueryRowContext(ctx, query, fingerprint, rankDepth).Scan(
		&key,
		&sourceByte,
		&d.SourceCount,
		&d.Score,
		&d.Text,
		&d.ValidUTF8,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Decryption{}, false, nil
	}
	if err != nil {
		return model.Decryption{}, false, fmt.Errorf("failed to look up decryption: %w", err)
	}

	d.Key = byte(key)
	d.SourceByte = byte(sourceByte)
	return d, true, nil
}

// RunSummary is the metadata of a stored run, without its line results.
type RunSummary struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Sources   []string      `json:"sources"`
	RankDepth int           `json:"rank_depth"`
	Strict    bool          `json:"strict"`
	Lines     int           `json:"lines"`
	Succeeded int           `json:"succeeded"`

	// Best is nil when no line of the run succeeded.
	Best *BestLine `json:"best,omitempty"`
}

// BestLine is the winning line of a stored run.
type BestLine struct {
	Source string `json:"source"`
	Line   int    `json:"line"`
	Key    byte   `json:"key"`
	Score  int    `json:"score"`
	Text   string `json:"text"`
}

// ListRuns returns stored runs, newest first. A non-positive limit
// returns every run.
func (rdb *ResultDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
	SELECT id, started_at, duration_ms, sources, rank_depth, strict, line_count, succeeded,
		best_source, best_line, best_key, best_score, best_text
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?
	`

	rows, err := rdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			s                   RunSummary
			startedAt           string
			durationMS          int64
			sourcesJSON         string
			bestSource, bestTxt sql.NullString
			bestLine, bestKey   sql.NullInt64
			bestScore           sql.NullInt64
		)
		if err := rows.Scan(
			&s.ID,
			&startedAt,
			&durationMS,
			&sourcesJSON,
			&s.RankDepth,
			&s.Strict,
			&s.Lines,
			&s.Succeeded,
			&bestSource, &bestLine, &bestKey, &bestScore, &bestTxt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		s.StartedAt = parseTimestamp(startedAt)
		s.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(sourcesJSON), &s.Sources); err != nil {
			return nil, fmt.Errorf("failed to parse sources of run %s: %w", s.ID, err)
		}
		if bestScore.Valid {
			s.Best = &BestLine{
				Source: bestSource.String,
				Line:   int(bestLine.Int64),
				Key:    byte(bestKey.Int64),
				Score:  int(bestScore.Int64),
				Text:   bestTxt.String,
			}
		}
		runs = append(runs, s)
	}

	return runs, rows.Err()
}

// GetRun loads the full report of a stored run. id may be a unique prefix
// of the run ID.
func (rdb *ResultDB) GetRun(ctx context.Context, id string) (*model.BatchReport, error) {
	rows, err := rdb.db.QueryContext(ctx, `
	SELECT report_json FROM runs
	WHERE id = ? OR substr(id, 1, length(?)) = ?
	ORDER BY id = ? DESC
	LIMIT 2
	`, id, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var reports []string
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		reports = append(reports, reportJSON)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch {
	case len(reports) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(reports) > 1:
		// An exact match sorts first and wins over longer IDs sharing the prefix.
		var exact model.BatchReport
		if err := json.Unmarshal([]byte(reports[0]), &exact); err == nil && exact.ID == id {
			return &exact, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
	}

	var report model.BatchReport
	if err := json.Unmarshal([]byte(reports[0]), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp tries each known format and returns the zero time when
// none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
