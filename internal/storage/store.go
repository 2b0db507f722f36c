// Package storage provides SQLite persistence for behavior records.
//
// Records are append-mostly: the write path is single inserts and batches
// from the collection endpoints, plus per-record privacy flag updates. The
// read path is windowed per-user scans feeding the analyzers. WAL mode keeps
// concurrent analysis reads cheap on file-based databases.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mirrorme/mirrord/internal/models"
)

// Store handles SQLite persistence. Safe for concurrent use.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates a Store at the given database path, creating tables as
// needed. Pass ":memory:" for an in-process database.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		source TEXT,
		behavior_type TEXT NOT NULL,
		category TEXT,
		keywords TEXT NOT NULL DEFAULT '[]',
		content TEXT,
		sentiment TEXT,
		political_tilt TEXT,
		author TEXT,
		video_id TEXT,
		channel TEXT,
		timestamp DATETIME NOT NULL,
		is_sensitive INTEGER DEFAULT 0,
		include_in_analysis INTEGER DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_records_user_time ON records(user_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_records_behavior ON records(behavior_type);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRecord inserts one record. Duplicate IDs are rejected.
func (s *Store) SaveRecord(ctx context.Context, r *models.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	keywords, err := json.Marshal(r.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (
			id, user_id, source, behavior_type, category, keywords, content,
			sentiment, political_tilt, author, video_id, channel, timestamp,
			is_sensitive, include_in_analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.Source, r.BehaviorType, r.Category, string(keywords),
		r.Content, r.Sentiment, r.Tilt, r.Author, r.VideoID, r.Channel,
		r.Timestamp.UTC(), boolToInt(r.IsSensitive), boolToInt(r.IncludeInAnalysis))
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// SaveBatch inserts records in one transaction and returns the number
// stored. Records failing validation abort the whole batch.
func (s *Store) SaveBatch(ctx context.Context, records []*models.Record) (int, error) {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return 0, fmt.Errorf("invalid record %s: %w", r.ID, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			id, user_id, source, behavior_type, category, keywords, content,
			sentiment, political_tilt, author, video_id, channel, timestamp,
			is_sensitive, include_in_analysis
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		keywords, err := json.Marshal(r.Keywords)
		if err != nil {
			return 0, fmt.Errorf("marshal keywords: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.UserID, r.Source, r.BehaviorType, r.Category, string(keywords),
			r.Content, r.Sentiment, r.Tilt, r.Author, r.VideoID, r.Channel,
			r.Timestamp.UTC(), boolToInt(r.IsSensitive), boolToInt(r.IncludeInAnalysis)); err != nil {
			return 0, fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return len(records), nil
}

// Query selects the records feeding an analysis or listing.
type Query struct {
	UserID string
	// Since bounds the window; zero means no lower bound.
	Since time.Time
	// IncludeSensitive keeps records flagged sensitive in the result.
	IncludeSensitive bool
	// IncludeExcluded keeps records the user opted out of analysis.
	IncludeExcluded bool
	// Limit caps the result size; 0 means no cap.
	Limit int
}

// Records returns matching records ordered by timestamp ascending.
func (s *Store) Records(ctx context.Context, q Query) ([]models.Record, error) {
	if q.UserID == "" {
		return nil, fmt.Errorf("user ID must not be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, user_id, source, behavior_type, category, keywords, content,
			sentiment, political_tilt, author, video_id, channel, timestamp,
			is_sensitive, include_in_analysis
		FROM records WHERE user_id = ?`
	args := []any{q.UserID}

	if !q.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, q.Since.UTC())
	}
	if !q.IncludeSensitive {
		query += " AND is_sensitive = 0"
	}
	if !q.IncludeExcluded {
		query += " AND include_in_analysis = 1"
	}
	query += " ORDER BY timestamp ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountRecords returns the user's total stored record count, ignoring
// privacy filters.
func (s *Store) CountRecords(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return count, nil
}

// SetSensitivity updates the is_sensitive flag of one record.
func (s *Store) SetSensitivity(ctx context.Context, userID, recordID string, sensitive bool) error {
	return s.updateFlag(ctx, userID, recordID, "is_sensitive", sensitive)
}

// SetInclusion updates the include_in_analysis flag of one record.
func (s *Store) SetInclusion(ctx context.Context, userID, recordID string, include bool) error {
	return s.updateFlag(ctx, userID, recordID, "include_in_analysis", include)
}

func (s *Store) updateFlag(ctx context.Context, userID, recordID, column string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE records SET %s = ? WHERE id = ? AND user_id = ?", column),
		boolToInt(value), recordID, userID)
	if err != nil {
		return fmt.Errorf("update %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record not found: %s", recordID)
	}
	return nil
}

// DeleteRecord removes one record owned by the user.
func (s *Store) DeleteRecord(ctx context.Context, userID, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM records WHERE id = ? AND user_id = ?", recordID, userID)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record not found: %s", recordID)
	}
	return nil
}

// DeleteUserRecords removes every record of one user and returns the count.
func (s *Store) DeleteUserRecords(ctx context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("delete user records: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

func scanRecord(rows *sql.Rows) (models.Record, error) {
	var r models.Record
	var keywords string
	var sensitive, include int
	err := rows.Scan(&r.ID, &r.UserID, &r.Source, &r.BehaviorType, &r.Category,
		&keywords, &r.Content, &r.Sentiment, &r.Tilt, &r.Author, &r.VideoID,
		&r.Channel, &r.Timestamp, &sensitive, &include)
	if err != nil {
		return r, fmt.Errorf("scan record: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &r.Keywords); err != nil {
		return r, fmt.Errorf("unmarshal keywords: %w", err)
	}
	r.IsSensitive = sensitive != 0
	r.IncludeInAnalysis = include != 0
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
