package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mapleleafu/lanerunner/game"
)

const (
	ActionLeft    = "left"
	ActionRight   = "right"
	ActionRestart = "restart"
)

type GameActionMessage struct {
	Action    string `json:"action"`
	Timestamp int64  `json:"timestamp"`
}

// GameAction is one input applied to a run, keyed by the step that consumed it.
type GameAction struct {
	Tick      int    `bson:"tick" json:"tick"`
	Action    string `bson:"action" json:"action"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// RunLog represents all inputs of a single server-hosted run.
type RunLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID  string             `bson:"sessionId" json:"sessionId"`
	UserID     string             `bson:"userId" json:"userId"`
	Difficulty game.Difficulty    `bson:"difficulty" json:"difficulty"`
	Seed       int64              `bson:"seed" json:"seed"`
	TickRate   int                `bson:"tickRate" json:"tickRate"`
	StartedAt  time.Time          `bson:"startedAt" json:"startedAt"`
	FinishedAt time.Time          `bson:"finishedAt" json:"finishedAt"`
	Actions    []GameAction       `bson:"actions" json:"actions"`
	Result     game.Result        `bson:"result" json:"result"`
}
