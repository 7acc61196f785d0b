package models

import (
	"time"

	"github.com/mapleleafu/lanerunner/game"
)

// Run is a finished server-hosted run as stored in PostgreSQL. Its ID is the
// hex id of the matching RunLog in MongoDB.
type Run struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Difficulty game.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Coins      int             `json:"coins"`
	TimePlayed int             `json:"timePlayed"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
}
