package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/mapleleafu/lanerunner/game"
	"github.com/mapleleafu/lanerunner/models"
)

type PostgresRuns struct {
	db *sql.DB
}

func NewPostgresRuns(db *sql.DB) *PostgresRuns {
	return &PostgresRuns{db: db}
}

func (p *PostgresRuns) Record(ctx context.Context, run models.Run) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO runs (id, user_id, difficulty, score, coins, time_played, started_at, finished_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.UserID, string(run.Difficulty), run.Score, run.Coins, run.TimePlayed,
		run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

// ListByUser returns the user's runs, newest first. An empty difficulty list
// means every tier.
func (p *PostgresRuns) ListByUser(ctx context.Context, userID string, difficulties []game.Difficulty) ([]models.Run, error) {
	if len(difficulties) == 0 {
		difficulties = game.Difficulties
	}
	tiers := make([]string, len(difficulties))
	for i, d := range difficulties {
		tiers[i] = string(d)
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, user_id, difficulty, score, coins, time_played, started_at, finished_at
         FROM runs WHERE user_id = $1 AND difficulty = ANY($2)
         ORDER BY finished_at DESC`,
		userID, pq.Array(tiers))
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []models.Run{}
	for rows.Next() {
		var run models.Run
		var difficulty string
		if err := rows.Scan(&run.ID, &run.UserID, &difficulty, &run.Score, &run.Coins,
			&run.TimePlayed, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Difficulty = game.Difficulty(difficulty)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
