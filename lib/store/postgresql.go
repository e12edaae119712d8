package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	_ "github.com/lib/pq"

	"github.com/xanderstrike/traktkit/lib/common"
)

// PostgresqlStore is a storage engine that writes to postgres
type PostgresqlStore struct {
	db *sql.DB
}

// NewPostgresqlClient creates a new db client object
func NewPostgresqlClient(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("postgresql open: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("postgresql ping: %w", err)
	}
	return db, nil
}

// NewPostgresqlStore creates new store, creating the journal table if needed
func NewPostgresqlStore(db *sql.DB) (PostgresqlStore, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ratings_journal (
			id varchar(36) NOT NULL PRIMARY KEY,
			username varchar(255) NOT NULL,
			submitted_at timestamp with time zone NOT NULL,
			result json NOT NULL
		);
		CREATE INDEX IF NOT EXISTS ratings_journal_username ON ratings_journal (username, submitted_at DESC);
	`)
	if err != nil {
		return PostgresqlStore{}, fmt.Errorf("postgresql migrate: %w", err)
	}
	return PostgresqlStore{db: db}, nil
}

// Ping will check if the connection works right
func (s PostgresqlStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WriteRatingsEntry will insert an entry in the journal table
func (s PostgresqlStore) WriteRatingsEntry(entry common.RatingsEntry) error {
	b, err := json.Marshal(entry.Result)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO ratings_journal (id, username, submitted_at, result) VALUES ($1, $2, $3, $4)`,
		entry.ID,
		strings.ToLower(entry.Username),
		entry.SubmittedAt,
		string(b),
	)
	return err
}

// GetRatingsEntries will load the journal of a user, newest first
func (s PostgresqlStore) GetRatingsEntries(username string) ([]common.RatingsEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, username, submitted_at, result FROM ratings_journal WHERE username=$1 ORDER BY submitted_at DESC LIMIT $2`,
		strings.ToLower(username),
		maxEntries,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []common.RatingsEntry{}
	for rows.Next() {
		var entry common.RatingsEntry
		var result []byte
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.SubmittedAt, &result); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(result, &entry.Result); err != nil {
			return nil, fmt.Errorf("corrupt journal entry %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
