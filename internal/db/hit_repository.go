package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HitRow represents a row in combat_hits table.
type HitRow struct {
	Tick         int64
	AtMillis     int64 // simulation time
	AttackerID   int64
	AttackerTeam int16
	TargetID     int64
	TargetTeam   int16
	Damage       float64
	Killed       bool
}

// HitRepository stores landed shots.
type HitRepository struct {
	db *pgxpool.Pool
}

// NewHitRepository creates a new HitRepository.
func NewHitRepository(db *pgxpool.Pool) *HitRepository {
	return &HitRepository{db: db}
}

// InsertHits bulk-inserts rows of match matchID.
func (r *HitRepository) InsertHits(ctx context.Context, matchID int64, rows []HitRow) error {
	if len(rows) == 0 {
		return nil
	}

	data := make([][]any, 0, len(rows))
	for _, h := range rows {
		data = append(data, []any{
			matchID, h.Tick, h.AtMillis,
			h.AttackerID, h.AttackerTeam,
			h.TargetID, h.TargetTeam,
			h.Damage, h.Killed,
		})
	}

	_, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"combat_hits"},
		[]string{"match_id", "tick", "at_ms", "attacker_id", "attacker_team", "target_id", "target_team", "damage", "killed"},
		pgx.CopyFromRows(data),
	)
	if err != nil {
		return fmt.Errorf("inserting %d hits for match %d: %w", len(rows), matchID, err)
	}

	slog.Debug("saved combat hits", "matchID", matchID, "count", len(rows))
	return nil
}

// LoadByMatch returns hits of matchID in tick order.
func (r *HitRepository) LoadByMatch(ctx context.Context, matchID int64) ([]HitRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tick, at_ms, attacker_id, attacker_team, target_id, target_team, damage, killed
		 FROM combat_hits WHERE match_id = $1 ORDER BY tick, id`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying hits for match %d: %w", matchID, err)
	}
	defer rows.Close()

	result := make([]HitRow, 0, 64)
	for rows.Next() {
		var h HitRow
		if err := rows.Scan(&h.Tick, &h.AtMillis, &h.AttackerID, &h.AttackerTeam,
			&h.TargetID, &h.TargetTeam, &h.Damage, &h.Killed); err != nil {
			return nil, fmt.Errorf("scanning hit row: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating hit rows: %w", err)
	}
	return result, nil
}

// KillsByTeam counts killing blows per attacker team.
func (r *HitRepository) KillsByTeam(ctx context.Context, matchID int64) (map[int16]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT attacker_team, count(*)
		 FROM combat_hits WHERE match_id = $1 AND killed
		 GROUP BY attacker_team`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying kills for match %d: %w", matchID, err)
	}
	defer rows.Close()

	kills := make(map[int16]int)
	for rows.Next() {
		var (
			team  int16
			count int
		)
		if err := rows.Scan(&team, &count); err != nil {
			return nil, fmt.Errorf("scanning kill row: %w", err)
		}
		kills[team] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating kill rows: %w", err)
	}
	return kills, nil
}
