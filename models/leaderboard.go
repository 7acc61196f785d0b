package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mapleleafu/lanerunner/game"
)

const (
	PlayerNameMin  = 2
	PlayerNameMax  = 20
	LeaderboardTop = 10
	LeaderboardCap = 100 // entries kept per tier by cleanup
)

type LeaderboardEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlayerName string             `bson:"playerName" json:"playerName"`
	Difficulty game.Difficulty    `bson:"difficulty" json:"difficulty"`
	Score      int                `bson:"score" json:"score"`
	Coins      int                `bson:"coins" json:"coins"`
	TimePlayed int                `bson:"timePlayed" json:"timePlayed"`
	Date       time.Time          `bson:"date" json:"date"`
	Rank       int                `bson:"-" json:"rank,omitempty"`
}

type LeaderboardAddRequest struct {
	PlayerName string          `json:"playerName"`
	Difficulty game.Difficulty `json:"difficulty"`
	Score      int             `json:"score"`
	Coins      int             `json:"coins"`
	TimePlayed int             `json:"timePlayed"`
}

type LeaderboardAddResult struct {
	Entry    LeaderboardEntry `json:"entry"`
	Rank     int              `json:"rank"`
	IsTopTen bool             `json:"isTopTen"`
	Message  string           `json:"message"`
}
