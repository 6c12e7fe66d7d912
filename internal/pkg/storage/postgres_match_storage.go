package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/matchsight/matchsight/internal/pkg/config"
	"github.com/matchsight/matchsight/internal/pkg/models"
)

// Ensure PostgresMatchStorage implements MatchStorage
var _ MatchStorage = (*PostgresMatchStorage)(nil)

// PostgresMatchStorage stores historical matches in PostgreSQL.
type PostgresMatchStorage struct {
	db *sql.DB
}

// NewPostgresMatchStorage opens a connection and prepares the schema.
func NewPostgresMatchStorage(cfg *config.PostgresConfig) (*PostgresMatchStorage, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	storage := &PostgresMatchStorage{db: db}

	if err := storage.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL match storage initialized")
	return storage, nil
}

func (s *PostgresMatchStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS historical_matches (
		id SERIAL PRIMARY KEY,
		external_id VARCHAR(200) NOT NULL DEFAULT '',
		home_team VARCHAR(200) NOT NULL,
		away_team VARCHAR(200) NOT NULL,
		match_date VARCHAR(40) NOT NULL,
		home_score INTEGER NOT NULL DEFAULT 0,
		away_score INTEGER NOT NULL DEFAULT 0,
		ht_home_score INTEGER NOT NULL DEFAULT 0,
		ht_away_score INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(home_team, away_team, match_date)
	);

	CREATE INDEX IF NOT EXISTS idx_historical_matches_home_team ON historical_matches(home_team);
	CREATE INDEX IF NOT EXISTS idx_historical_matches_away_team ON historical_matches(away_team);
	CREATE INDEX IF NOT EXISTS idx_historical_matches_match_date ON historical_matches(match_date DESC);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StoreMatches upserts the batch; a re-fetched match overwrites its scores.
func (s *PostgresMatchStorage) StoreMatches(ctx context.Context, matches []models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO historical_matches
			(external_id, home_team, away_team, match_date, home_score, away_score, ht_home_score, ht_away_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (home_team, away_team, match_date) DO UPDATE SET
			external_id = EXCLUDED.external_id,
			home_score = EXCLUDED.home_score,
			away_score = EXCLUDED.away_score,
			ht_home_score = EXCLUDED.ht_home_score,
			ht_away_score = EXCLUDED.ht_away_score
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		if _, err := stmt.ExecContext(ctx,
			m.ID, m.HomeTeam, m.AwayTeam, m.Date,
			m.HomeScore, m.AwayScore, m.HTHomeScore, m.HTAwayScore,
		); err != nil {
			return fmt.Errorf("failed to upsert match %s vs %s: %w", m.HomeTeam, m.AwayTeam, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

// GetMatches retrieves all stored matches, newest first.
func (s *PostgresMatchStorage) GetMatches(ctx context.Context) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, home_team, away_team, match_date,
		       home_score, away_score, ht_home_score, ht_away_score
		FROM historical_matches
		ORDER BY match_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetMatchesForTeams retrieves matches involving either team, newest first.
func (s *PostgresMatchStorage) GetMatchesForTeams(ctx context.Context, homeTeam, awayTeam string) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT external_id, home_team, away_team, match_date,
		       home_score, away_score, ht_home_score, ht_away_score
		FROM historical_matches
		WHERE home_team IN ($1, $2) OR away_team IN ($1, $2)
		ORDER BY match_date DESC
	`, homeTeam, awayTeam)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for %s / %s: %w", homeTeam, awayTeam, err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows *sql.Rows) ([]models.Match, error) {
	var matches []models.Match
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(
			&m.ID, &m.HomeTeam, &m.AwayTeam, &m.Date,
			&m.HomeScore, &m.AwayScore, &m.HTHomeScore, &m.HTAwayScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match rows: %w", err)
	}
	return matches, nil
}

// Close closes the database connection.
func (s *PostgresMatchStorage) Close() error {
	return s.db.Close()
}
