package game

import (
	"math/rand"
	"time"
)

type Player struct {
	Lane    int     `json:"lane"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	TargetX float64 `json:"targetX"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (p *Player) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// State is the authoritative state of one run. It has exactly one owner,
// which mutates it only through Tick.
type State struct {
	Difficulty Difficulty
	Settings   Settings

	Running        bool
	Score          int
	CoinsCollected int
	Speed          float64
	Frame          int
	StartedAt      time.Time
	Elapsed        int // whole seconds since StartedAt, as of the last tick

	Player      Player
	Obstacles   []Entity
	Coins       []Entity
	Particles   []Entity
	Decorations []Entity

	lastObstacle time.Time
	rng          *rand.Rand
}

// NewState starts a run at the given tier. The rng drives every random
// decision of the run; passing the same seed replays the same spawns.
func NewState(d Difficulty, now time.Time, rng *rand.Rand) *State {
	return NewStateWithSettings(d, d.Settings(), now, rng)
}

func NewStateWithSettings(d Difficulty, cfg Settings, now time.Time, rng *rand.Rand) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	x := laneX(StartLane, PlayerOffsetX)
	return &State{
		Difficulty: d,
		Settings:   cfg,
		Running:    true,
		Speed:      cfg.InitialSpeed,
		StartedAt:  now,
		Player: Player{
			Lane:    StartLane,
			X:       x,
			Y:       CanvasHeight - PlayerOffsetY,
			TargetX: x,
			Width:   PlayerWidth,
			Height:  PlayerHeight,
		},
		rng: rng,
	}
}

// Result is the summary reported when a run ends.
type Result struct {
	Score          int `json:"score" bson:"score"`
	CoinsCollected int `json:"coins" bson:"coins"`
	ElapsedSeconds int `json:"time" bson:"time"`
}

func (s *State) Result() Result {
	return Result{Score: s.Score, CoinsCollected: s.CoinsCollected, ElapsedSeconds: s.Elapsed}
}

// Snapshot is a read-only copy of the state for renderers.
type Snapshot struct {
	Running     bool     `json:"running"`
	Score       int      `json:"score"`
	Coins       int      `json:"coins"`
	Speed       float64  `json:"speed"`
	Elapsed     int      `json:"elapsed"`
	Player      Player   `json:"player"`
	Obstacles   []Entity `json:"obstacles"`
	CoinList    []Entity `json:"coinList"`
	Particles   []Entity `json:"particles"`
	Decorations []Entity `json:"decorations"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Running:     s.Running,
		Score:       s.Score,
		Coins:       s.CoinsCollected,
		Speed:       s.Speed,
		Elapsed:     s.Elapsed,
		Player:      s.Player,
		Obstacles:   append([]Entity(nil), s.Obstacles...),
		CoinList:    append([]Entity(nil), s.Coins...),
		Particles:   append([]Entity(nil), s.Particles...),
		Decorations: append([]Entity(nil), s.Decorations...),
	}
}
