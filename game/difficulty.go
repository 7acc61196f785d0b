package game

import (
	"fmt"
	"time"
)

type Difficulty string

const (
	Simple   Difficulty = "simple"
	Moderate Difficulty = "moderate"
	Hard     Difficulty = "hard"
)

// Difficulties lists every tier in display order.
var Difficulties = []Difficulty{Simple, Moderate, Hard}

// Settings is the immutable configuration record of a tier.
type Settings struct {
	Name              string
	Color             string
	InitialSpeed      float64
	SpeedIncrement    float64 // added to the game speed every tick
	MaxSpeed          float64 // 0 leaves the ramp uncapped
	ObstacleSpawnRate float64
	CoinSpawnRate     float64
	MinObstacleGap    time.Duration
}

var settings = map[Difficulty]Settings{
	Simple: {
		Name:              "SIMPLE",
		Color:             "#00ff00",
		InitialSpeed:      1.8,
		SpeedIncrement:    0.0012,
		ObstacleSpawnRate: 0.022,
		CoinSpawnRate:     0.020,
		MinObstacleGap:    150 * time.Millisecond,
	},
	Moderate: {
		Name:              "MODERATE",
		Color:             "#ffaa00",
		InitialSpeed:      2.2,
		SpeedIncrement:    0.002,
		ObstacleSpawnRate: 0.035,
		CoinSpawnRate:     0.016,
		MinObstacleGap:    120 * time.Millisecond,
	},
	Hard: {
		Name:              "HARD",
		Color:             "#ff0000",
		InitialSpeed:      4.0,
		SpeedIncrement:    0.0035,
		ObstacleSpawnRate: 0.048,
		CoinSpawnRate:     0.013,
		MinObstacleGap:    100 * time.Millisecond,
	},
}

func (d Difficulty) Valid() bool {
	_, ok := settings[d]
	return ok
}

// Settings returns the tier's configuration. Unknown tiers yield the zero value.
func (d Difficulty) Settings() Settings {
	return settings[d]
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}
