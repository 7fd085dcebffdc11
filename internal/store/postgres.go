package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rockysnow7/mlb-transformer/internal/batch"
	"github.com/rockysnow7/mlb-transformer/pkg/models"
)

// Store persists parsed games and batch reports in Postgres
type Store struct {
	db *sql.DB
}

// NewStore opens a Postgres connection pool and verifies it
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveGame upserts a parsed game document with its run totals
func (s *Store) SaveGame(ctx context.Context, game *models.Game, runs map[int]int) error {
	doc, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshaling game document: %w", err)
	}

	query := `
		INSERT INTO parsed_games (game_pk, game_date, venue, play_count, home_runs_scored, away_runs_scored, document, parsed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (game_pk) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			venue = EXCLUDED.venue,
			play_count = EXCLUDED.play_count,
			home_runs_scored = EXCLUDED.home_runs_scored,
			away_runs_scored = EXCLUDED.away_runs_scored,
			document = EXCLUDED.document,
			parsed_at = NOW()
	`

	_, err = s.db.ExecContext(ctx, query,
		game.Context.GamePK,
		game.Context.Date,
		game.Context.Venue,
		len(game.Plays),
		runs[game.Context.HomeTeam.ID],
		runs[game.Context.AwayTeam.ID],
		doc,
	)
	if err != nil {
		return fmt.Errorf("upsert parsed game %d: %w", game.Context.GamePK, err)
	}

	return nil
}

// GetGame retrieves a parsed game document by game pk. Returns
// sql.ErrNoRows when the game was never parsed.
func (s *Store) GetGame(ctx context.Context, gamePK int) (*models.Game, error) {
	var doc []byte
	query := `SELECT document FROM parsed_games WHERE game_pk = $1`

	if err := s.db.QueryRowContext(ctx, query, gamePK).Scan(&doc); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("query parsed game %d: %w", gamePK, err)
	}

	var game models.Game
	if err := json.Unmarshal(doc, &game); err != nil {
		return nil, fmt.Errorf("unmarshaling game document: %w", err)
	}

	return &game, nil
}

// SaveBatchReport persists the outcome of a batch validation run
func (s *Store) SaveBatchReport(ctx context.Context, report *batch.Report) error {
	failures, err := json.Marshal(report.Failures)
	if err != nil {
		return fmt.Errorf("marshaling batch failures: %w", err)
	}

	query := `
		INSERT INTO batch_reports (job_id, root, total, parsed, failed, failures, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = s.db.ExecContext(ctx, query,
		report.JobID,
		report.Root,
		report.Total,
		report.Parsed,
		report.Failed,
		failures,
		report.StartedAt,
		report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch report %s: %w", report.JobID, err)
	}

	return nil
}

// GetBatchReport retrieves a batch report by job id. Returns
// sql.ErrNoRows when no such job finished.
func (s *Store) GetBatchReport(ctx context.Context, jobID string) (*batch.Report, error) {
	report := &batch.Report{JobID: jobID}
	var failures []byte

	query := `
		SELECT root, total, parsed, failed, failures, started_at, finished_at
		FROM batch_reports
		WHERE job_id = $1
	`

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&report.Root,
		&report.Total,
		&report.Parsed,
		&report.Failed,
		&failures,
		&report.StartedAt,
		&report.FinishedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("query batch report %s: %w", jobID, err)
	}

	if err := json.Unmarshal(failures, &report.Failures); err != nil {
		return nil, fmt.Errorf("unmarshaling batch failures: %w", err)
	}

	return report, nil
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}
