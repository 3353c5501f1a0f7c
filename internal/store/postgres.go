package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock so server and worker can migrate concurrently.
	const lockID = 874120553

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another binary is migrating; wait briefly and skip.
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS summaries (
			id UUID PRIMARY KEY,
			source TEXT,
			summary TEXT,
			key_insights TEXT[],
			provider TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS alert_matches (
			id UUID PRIMARY KEY,
			topic TEXT,
			title TEXT,
			url TEXT,
			summary TEXT,
			found_at TIMESTAMPTZ DEFAULT now(),
			UNIQUE (topic, url)
		);`,
		`CREATE INDEX IF NOT EXISTS alert_matches_topic_idx ON alert_matches (topic);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) SaveRecord(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO summaries(id, source, summary, key_insights, provider, created_at) VALUES($1,$2,$3,$4,$5,$6)`,
		rec.ID, rec.Source, rec.Summary, pq.Array(rec.KeyInsights), rec.Provider, rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *PostgresStore) ListRecords(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, summary, key_insights, provider, created_at FROM summaries ORDER BY created_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var insights []string
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Summary, pq.Array(&insights), &rec.Provider, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.KeyInsights = insights
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *PostgresStore) SaveMatches(ctx context.Context, matches []Match) error {
	if len(matches) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO alert_matches(id, topic, title, url, summary, found_at)
			 VALUES($1,$2,$3,$4,$5,$6)
			 ON CONFLICT (topic, url) DO NOTHING`,
			m.ID, m.Topic, m.Title, m.URL, m.Summary, time.Now())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) ListMatches(ctx context.Context, topic string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, topic, title, url, summary, found_at FROM alert_matches`
	args := []any{}
	if topic != "" {
		query += ` WHERE topic = $1 ORDER BY found_at DESC LIMIT $2`
		args = append(args, topic, limit)
	} else {
		query += ` ORDER BY found_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.Topic, &m.Title, &m.URL, &m.Summary, &m.FoundAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
