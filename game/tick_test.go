package game

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// quietSettings never spawns obstacles or coins on its own.
func quietSettings(d Difficulty) Settings {
	cfg := d.Settings()
	cfg.ObstacleSpawnRate = 0
	cfg.CoinSpawnRate = 0
	return cfg
}

func newQuietState(d Difficulty) *State {
	return NewStateWithSettings(d, quietSettings(d), epoch, rand.New(rand.NewSource(1)))
}

func frame(i int) time.Time {
	return epoch.Add(time.Duration(i) * time.Second / DefaultTickRate)
}

func TestNewStatePlacesPlayerInMiddleLane(t *testing.T) {
	s := NewState(Moderate, epoch, rand.New(rand.NewSource(1)))
	if !s.Running {
		t.Fatalf("new state should be running")
	}
	if s.Player.Lane != 1 {
		t.Fatalf("lane = %d, want 1", s.Player.Lane)
	}
	if s.Player.X != 575 || s.Player.TargetX != 575 {
		t.Fatalf("player x = %f target = %f, want 575", s.Player.X, s.Player.TargetX)
	}
	if s.Player.Y != 480 {
		t.Fatalf("player y = %f, want 480", s.Player.Y)
	}
	if s.Speed != 2.2 {
		t.Fatalf("speed = %f, want moderate initial speed", s.Speed)
	}
}

func TestCoinOverlappingPlayerIsCollected(t *testing.T) {
	s := newQuietState(Simple)
	s.Coins = append(s.Coins, Entity{Kind: KindCoin, Lane: 1, X: s.Player.X, Y: s.Player.Y, Width: CoinSize, Height: CoinSize})

	ev := s.Tick(Input{}, frame(1))
	if len(s.Coins) != 0 {
		t.Fatalf("coin should be removed, %d left", len(s.Coins))
	}
	if s.Score != CoinPoints {
		t.Fatalf("score = %d, want %d", s.Score, CoinPoints)
	}
	if ev.CoinsCollected != 1 || s.CoinsCollected != 1 {
		t.Fatalf("coins collected: event=%d state=%d, want 1", ev.CoinsCollected, s.CoinsCollected)
	}
	if !ev.ScoreChanged || ev.Score != CoinPoints {
		t.Fatalf("expected score change to %d, got %+v", CoinPoints, ev)
	}
	if len(s.Particles) != CoinBurst {
		t.Fatalf("particles = %d, want %d", len(s.Particles), CoinBurst)
	}
}

func TestObstacleOverlappingPlayerEndsRun(t *testing.T) {
	s := newQuietState(Simple)
	s.Obstacles = append(s.Obstacles,
		Entity{Kind: KindObstacle, Lane: 1, X: s.Player.X, Y: s.Player.Y, Width: ObstacleSize, Height: ObstacleSize},
		Entity{Kind: KindObstacle, Lane: 0, X: laneX(0, ObstacleOffset), Y: 0, Width: ObstacleSize, Height: ObstacleSize},
	)

	ev := s.Tick(Input{}, frame(1))
	if !ev.GameOver || s.Running {
		t.Fatalf("expected game over, got event=%+v running=%v", ev, s.Running)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("colliding obstacle should be removed, %d left", len(s.Obstacles))
	}
	if len(s.Particles) != CrashBurst {
		t.Fatalf("particles = %d, want %d", len(s.Particles), CrashBurst)
	}

	speed := s.Speed
	after := s.Tick(Input{Left: true}, frame(2))
	if after.GameOver || after.ScoreChanged {
		t.Fatalf("tick after game over should do nothing, got %+v", after)
	}
	if s.Speed != speed || s.Player.Lane != 1 {
		t.Fatalf("stopped state changed: speed %f->%f lane %d", speed, s.Speed, s.Player.Lane)
	}
}

func TestTimeBonusEveryTenthTick(t *testing.T) {
	s := NewState(Hard, epoch, rand.New(rand.NewSource(7)))
	for i := 1; i <= 9; i++ {
		s.Tick(Input{}, frame(i))
	}
	if s.Score != 0 {
		t.Fatalf("score after 9 ticks = %d, want 0", s.Score)
	}
	ev := s.Tick(Input{}, frame(10))
	if s.Score != 1 || !ev.ScoreChanged {
		t.Fatalf("score after 10 ticks = %d (changed=%v), want 1", s.Score, ev.ScoreChanged)
	}
}

func TestLeftInFirstLaneIsClamped(t *testing.T) {
	s := newQuietState(Moderate)
	s.Player.Lane = 0
	s.Player.X = laneX(0, PlayerOffsetX)
	s.Player.TargetX = s.Player.X

	s.Tick(Input{Left: true}, frame(1))
	if s.Player.Lane != 0 {
		t.Fatalf("lane = %d, want 0", s.Player.Lane)
	}
	if s.Player.TargetX != laneX(0, PlayerOffsetX) {
		t.Fatalf("targetX = %f, want %f", s.Player.TargetX, laneX(0, PlayerOffsetX))
	}
}

func TestRightInLastLaneIsClamped(t *testing.T) {
	s := newQuietState(Moderate)
	s.Tick(Input{Right: true}, frame(1))
	s.Tick(Input{Right: true}, frame(2))
	if s.Player.Lane != 2 {
		t.Fatalf("lane = %d, want 2", s.Player.Lane)
	}
	s.Tick(Input{Right: true}, frame(3))
	if s.Player.Lane != 2 || s.Player.TargetX != laneX(2, PlayerOffsetX) {
		t.Fatalf("lane = %d target = %f, want lane 2", s.Player.Lane, s.Player.TargetX)
	}
}

func TestPlayerEasesWithoutOvershoot(t *testing.T) {
	s := newQuietState(Simple)
	rng := rand.New(rand.NewSource(42))
	for i := 1; i <= 600; i++ {
		in := Input{Left: rng.Intn(8) == 0, Right: rng.Intn(8) == 0}
		before := s.Player.X
		s.Tick(in, frame(i))
		lo := math.Min(before, s.Player.TargetX)
		hi := math.Max(before, s.Player.TargetX)
		if s.Player.X < lo || s.Player.X > hi {
			t.Fatalf("tick %d: x=%f outside [%f, %f]", i, s.Player.X, lo, hi)
		}
	}
}

func TestPlayerSnapsToTarget(t *testing.T) {
	s := newQuietState(Simple)
	s.Tick(Input{Left: true}, frame(1))
	if s.Player.X != 575-150*EaseFactor {
		t.Fatalf("first eased x = %f, want %f", s.Player.X, 575-150*EaseFactor)
	}
	for i := 2; i <= 60; i++ {
		s.Tick(Input{}, frame(i))
	}
	if s.Player.X != s.Player.TargetX {
		t.Fatalf("x = %f should have snapped to %f", s.Player.X, s.Player.TargetX)
	}
}

func TestEntitiesPastBottomAreDiscarded(t *testing.T) {
	s := newQuietState(Simple)
	s.Obstacles = append(s.Obstacles, Entity{Kind: KindObstacle, Lane: 0, X: laneX(0, ObstacleOffset), Y: CanvasHeight - 1, Width: ObstacleSize, Height: ObstacleSize})
	s.Coins = append(s.Coins, Entity{Kind: KindCoin, Lane: 2, X: laneX(2, CoinOffset), Y: CanvasHeight - 1, Width: CoinSize, Height: CoinSize})
	s.Decorations = append(s.Decorations, Entity{Kind: KindDecoration, X: 10, Y: CanvasHeight, Width: DecorationSize, Height: DecorationSize})

	s.Tick(Input{}, frame(1))
	if len(s.Obstacles) != 0 || len(s.Coins) != 0 || len(s.Decorations) != 0 {
		t.Fatalf("expected cleanup, got obstacles=%d coins=%d decorations=%d",
			len(s.Obstacles), len(s.Coins), len(s.Decorations))
	}
}

func TestNoStragglersDuringLongRun(t *testing.T) {
	s := NewState(Hard, epoch, rand.New(rand.NewSource(3)))
	// Park the player off the road so nothing can end the run.
	s.Player.Y = -1000
	for i := 1; i <= 3000; i++ {
		s.Tick(Input{}, frame(i))
		for _, list := range [][]Entity{s.Obstacles, s.Coins, s.Decorations} {
			for _, e := range list {
				if e.Y > CanvasHeight {
					t.Fatalf("tick %d: %s at y=%f still present", i, e.Kind, e.Y)
				}
			}
		}
		for _, p := range s.Particles {
			if p.Life <= 0 {
				t.Fatalf("tick %d: dead particle still present", i)
			}
		}
	}
	if !s.Running {
		t.Fatalf("run should not have ended")
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	s := NewState(Moderate, epoch, rand.New(rand.NewSource(11)))
	rng := rand.New(rand.NewSource(5))
	last := 0
	for i := 1; i <= 5000 && s.Running; i++ {
		s.Tick(Input{Left: rng.Intn(20) == 0, Right: rng.Intn(20) == 0}, frame(i))
		if s.Score < last {
			t.Fatalf("tick %d: score went from %d to %d", i, last, s.Score)
		}
		last = s.Score
	}
}

func TestObstacleSpawnRespectsMinimumGap(t *testing.T) {
	cfg := Hard.Settings()
	cfg.ObstacleSpawnRate = 1
	cfg.CoinSpawnRate = 0
	s := NewStateWithSettings(Hard, cfg, epoch, rand.New(rand.NewSource(1)))

	s.Tick(Input{}, epoch)
	s.Tick(Input{}, epoch.Add(50*time.Millisecond))
	if len(s.Obstacles) != 1 {
		t.Fatalf("obstacles = %d, want 1 inside the gap", len(s.Obstacles))
	}
	s.Tick(Input{}, epoch.Add(100*time.Millisecond))
	if len(s.Obstacles) != 2 {
		t.Fatalf("obstacles = %d, want 2 once the gap elapsed", len(s.Obstacles))
	}
	for _, o := range s.Obstacles {
		if o.Lane < 0 || o.Lane >= LaneCount {
			t.Fatalf("obstacle in lane %d", o.Lane)
		}
		if o.X != laneX(o.Lane, ObstacleOffset) {
			t.Fatalf("obstacle x = %f not aligned with lane %d", o.X, o.Lane)
		}
	}
}

func TestSpeedRamp(t *testing.T) {
	s := newQuietState(Simple)
	for i := 1; i <= 100; i++ {
		s.Tick(Input{}, frame(i))
	}
	want := 1.8 + 100*0.0012
	if math.Abs(s.Speed-want) > 1e-9 {
		t.Fatalf("speed = %f, want %f", s.Speed, want)
	}
}

func TestSpeedRampHonoursCap(t *testing.T) {
	cfg := quietSettings(Hard)
	cfg.SpeedIncrement = 1
	cfg.MaxSpeed = 6
	s := NewStateWithSettings(Hard, cfg, epoch, rand.New(rand.NewSource(1)))
	s.Player.Y = -1000
	for i := 1; i <= 10; i++ {
		s.Tick(Input{}, frame(i))
	}
	if s.Speed != 6 {
		t.Fatalf("speed = %f, want capped at 6", s.Speed)
	}
}

func TestElapsedSecondsFloors(t *testing.T) {
	s := newQuietState(Simple)
	ev := s.Tick(Input{}, epoch.Add(2999*time.Millisecond))
	if ev.Elapsed != 2 {
		t.Fatalf("elapsed = %d, want 2", ev.Elapsed)
	}
	ev = s.Tick(Input{}, epoch.Add(3*time.Second))
	if ev.Elapsed != 3 {
		t.Fatalf("elapsed = %d, want 3", ev.Elapsed)
	}
}

func TestParticlesFadeOut(t *testing.T) {
	s := newQuietState(Simple)
	s.Player.Y = -1000
	s.burst(100, 100, 5, coinColors)
	for i := 1; i < ParticleLife; i++ {
		s.Tick(Input{}, frame(i))
	}
	if len(s.Particles) != 5 {
		t.Fatalf("particles = %d before expiry, want 5", len(s.Particles))
	}
	s.Tick(Input{}, frame(ParticleLife))
	if len(s.Particles) != 0 {
		t.Fatalf("particles = %d after expiry, want 0", len(s.Particles))
	}
}

func TestSameSeedSameRun(t *testing.T) {
	a := NewState(Hard, epoch, rand.New(rand.NewSource(99)))
	b := NewState(Hard, epoch, rand.New(rand.NewSource(99)))
	for i := 1; i <= 500; i++ {
		a.Tick(Input{Left: i%37 == 0}, frame(i))
		b.Tick(Input{Left: i%37 == 0}, frame(i))
	}
	if a.Score != b.Score || a.Running != b.Running || len(a.Obstacles) != len(b.Obstacles) {
		t.Fatalf("seeded runs diverged: %+v vs %+v", a.Result(), b.Result())
	}
}
