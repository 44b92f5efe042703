package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMatchNotFound is returned when a match row doesn't exist.
var ErrMatchNotFound = errors.New("match not found")

// MatchRow represents a row in matches table.
type MatchRow struct {
	ID         int64
	LocalTeam  int16
	StartedAt  time.Time
	FinishedAt *time.Time
	WinnerTeam *int16 // nil = draw or unfinished
	Ticks      int64
}

// MatchRepository manages skirmish records.
type MatchRepository struct {
	db *pgxpool.Pool
}

// NewMatchRepository creates a new MatchRepository.
func NewMatchRepository(db *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{db: db}
}

// Create inserts a started match and returns its ID.
func (r *MatchRepository) Create(ctx context.Context, localTeam int16) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO matches (local_team) VALUES ($1) RETURNING id`,
		localTeam,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating match: %w", err)
	}
	slog.Info("match created", "matchID", id)
	return id, nil
}

// Finish stamps the end of match id. winner nil records a draw.
func (r *MatchRepository) Finish(ctx context.Context, id int64, winner *int16, ticks int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE matches SET finished_at = now(), winner_team = $2, ticks = $3 WHERE id = $1`,
		id, winner, ticks,
	)
	if err != nil {
		return fmt.Errorf("finishing match %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finishing match %d: %w", id, ErrMatchNotFound)
	}
	return nil
}

// Get loads match id.
func (r *MatchRepository) Get(ctx context.Context, id int64) (MatchRow, error) {
	var m MatchRow
	err := r.db.QueryRow(ctx,
		`SELECT id, local_team, started_at, finished_at, winner_team, ticks
		 FROM matches WHERE id = $1`, id,
	).Scan(&m.ID, &m.LocalTeam, &m.StartedAt, &m.FinishedAt, &m.WinnerTeam, &m.Ticks)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, fmt.Errorf("match %d: %w", id, ErrMatchNotFound)
		}
		return m, fmt.Errorf("querying match %d: %w", id, err)
	}
	return m, nil
}
