package models

const (
	MsgScore        = "score"
	MsgTime         = "time"
	MsgCoin         = "coin"
	MsgState        = "state"
	MsgGameOver     = "gameOver"
	MsgAnnouncement = "announcement"
	MsgError        = "error"
)

// Envelope is every server to client websocket message.
type Envelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type GameOverMessage struct {
	Score          int    `json:"score"`
	Coins          int    `json:"coins"`
	Time           int    `json:"time"`
	RunID          string `json:"runId"`
	IsNewHighScore bool   `json:"isNewHighScore"`
}

type Announcement struct {
	Kind       string `json:"kind"`
	PlayerName string `json:"playerName"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Rank       int    `json:"rank,omitempty"`
}
