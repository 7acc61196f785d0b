package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mapleleafu/lanerunner/game"
)

// GameStats is the running record of one difficulty tier.
type GameStats struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Difficulty  game.Difficulty    `bson:"difficulty" json:"difficulty"`
	HighScore   int                `bson:"highScore" json:"highScore"`
	TotalCoins  int                `bson:"totalCoins" json:"totalCoins"`
	LastUpdated time.Time          `bson:"lastUpdated" json:"lastUpdated"`
}

type StatsUpdateRequest struct {
	Difficulty game.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Coins      int             `json:"coins"`
}

type StatsUpdateResult struct {
	Stats          GameStats `json:"stats"`
	IsNewHighScore bool      `json:"isNewHighScore"`
}
