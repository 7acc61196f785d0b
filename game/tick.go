package game

import (
	"math"
	"time"
)

// Events describes what a single tick changed.
type Events struct {
	Score          int
	ScoreChanged   bool
	CoinsCollected int // coins picked up during this tick
	Elapsed        int
	GameOver       bool
}

var decorationStyles = []string{"tree", "building", "car"}

// Tick advances the run by one frame. It is a no-op once the run has ended.
func (s *State) Tick(in Input, now time.Time) Events {
	var ev Events
	if !s.Running {
		return ev
	}
	scoreBefore := s.Score

	s.applyInput(in)
	s.easePlayer()

	s.spawnObstacle(now)
	s.spawnCoin()
	s.spawnDecoration()

	s.Obstacles = advanceAll(s.Obstacles, s.Speed, CanvasHeight)
	s.Coins = advanceAll(s.Coins, s.Speed, CanvasHeight)
	s.Decorations = advanceAll(s.Decorations, s.Speed, CanvasHeight)
	s.Particles = advanceAll(s.Particles, s.Speed, CanvasHeight)

	ev.CoinsCollected = s.collectCoins()
	s.Elapsed = elapsedSeconds(s.StartedAt, now)
	ev.Elapsed = s.Elapsed

	if s.crash() {
		s.Running = false
		ev.GameOver = true
	} else {
		s.Frame++
		if s.Frame%TimeBonusEvery == 0 {
			s.Score++
		}
		s.rampSpeed()
	}

	ev.Score = s.Score
	ev.ScoreChanged = s.Score != scoreBefore
	return ev
}

func (s *State) applyInput(in Input) {
	p := &s.Player
	if in.Left && p.Lane > 0 {
		p.Lane--
		p.TargetX = laneX(p.Lane, PlayerOffsetX)
	}
	if in.Right && p.Lane < LaneCount-1 {
		p.Lane++
		p.TargetX = laneX(p.Lane, PlayerOffsetX)
	}
}

func (s *State) easePlayer() {
	p := &s.Player
	diff := p.TargetX - p.X
	if math.Abs(diff) > EaseSnapDist {
		p.X += diff * EaseFactor
	} else {
		p.X = p.TargetX
	}
}

func (s *State) spawnObstacle(now time.Time) {
	if now.Sub(s.lastObstacle) < s.Settings.MinObstacleGap {
		return
	}
	if s.rng.Float64() >= s.Settings.ObstacleSpawnRate+float64(s.Score)*SpawnRatePerScore {
		return
	}
	lane := s.rng.Intn(LaneCount)
	s.Obstacles = append(s.Obstacles, Entity{
		Kind:   KindObstacle,
		Lane:   lane,
		X:      laneX(lane, ObstacleOffset),
		Y:      ObstacleSpawnY,
		Width:  ObstacleSize,
		Height: ObstacleSize,
	})
	s.lastObstacle = now
}

func (s *State) spawnCoin() {
	if s.rng.Float64() >= s.Settings.CoinSpawnRate {
		return
	}
	lane := s.rng.Intn(LaneCount)
	s.Coins = append(s.Coins, Entity{
		Kind:   KindCoin,
		Lane:   lane,
		X:      laneX(lane, CoinOffset),
		Y:      CoinSpawnY,
		Width:  CoinSize,
		Height: CoinSize,
	})
}

func (s *State) spawnDecoration() {
	if s.rng.Float64() >= DecorationSpawnRate {
		return
	}
	style := decorationStyles[s.rng.Intn(len(decorationStyles))]
	var x float64
	if s.rng.Float64() < 0.5 {
		x = s.rng.Float64() * 200
	} else {
		x = CanvasWidth - 250 + s.rng.Float64()*150
	}
	s.Decorations = append(s.Decorations, Entity{
		Kind:   KindDecoration,
		X:      x,
		Y:      DecorationSpawnY,
		Width:  DecorationSize,
		Height: DecorationSize,
		Style:  style,
	})
}

func (s *State) collectCoins() int {
	player := s.Player.Rect()
	collected := 0
	kept := s.Coins[:0]
	for _, c := range s.Coins {
		if !Overlap(player, c.Rect()) {
			kept = append(kept, c)
			continue
		}
		s.burst(c.X+c.Width/2, c.Y+c.Height/2, CoinBurst, coinColors)
		s.Score += CoinPoints
		s.CoinsCollected++
		collected++
	}
	clear(s.Coins[len(kept):])
	s.Coins = kept
	return collected
}

// crash removes the first obstacle touching the player and reports whether
// there was one.
func (s *State) crash() bool {
	player := s.Player.Rect()
	for i := range s.Obstacles {
		if !Overlap(player, s.Obstacles[i].Rect()) {
			continue
		}
		s.burst(s.Player.X+s.Player.Width/2, s.Player.Y+s.Player.Height/2, CrashBurst, crashColors)
		s.Obstacles = append(s.Obstacles[:i], s.Obstacles[i+1:]...)
		return true
	}
	return false
}

func (s *State) burst(x, y float64, n int, colors []string) {
	for i := 0; i < n; i++ {
		size := ParticleMinSize + s.rng.Float64()*(ParticleMaxSize-ParticleMinSize)
		s.Particles = append(s.Particles, Entity{
			Kind:    KindParticle,
			X:       x,
			Y:       y,
			Width:   size,
			Height:  size,
			VX:      (s.rng.Float64() - 0.5) * ParticleSpread,
			VY:      (s.rng.Float64() - 0.5) * ParticleSpread,
			Life:    ParticleLife,
			MaxLife: ParticleLife,
			Color:   colors[s.rng.Intn(len(colors))],
		})
	}
}

func (s *State) rampSpeed() {
	s.Speed += s.Settings.SpeedIncrement
	if s.Settings.MaxSpeed > 0 && s.Speed > s.Settings.MaxSpeed {
		s.Speed = s.Settings.MaxSpeed
	}
}

func elapsedSeconds(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
