package game

const (
	CanvasWidth  = 1200.0
	CanvasHeight = 600.0
	LaneCount    = 3
	LaneSpacing  = 150.0

	PlayerWidth   = 50.0
	PlayerHeight  = 50.0
	PlayerOffsetY = 120.0 // distance from the bottom edge
	PlayerOffsetX = 25.0
	StartLane     = 1

	EaseFactor   = 0.25
	EaseSnapDist = 2.0

	ObstacleSize   = 60.0
	ObstacleSpawnY = -75.0
	ObstacleOffset = 30.0
	CoinSize       = 45.0
	CoinSpawnY     = -45.0
	CoinOffset     = 22.0

	DecorationSize      = 60.0
	DecorationSpawnY    = -90.0
	DecorationSpawnRate = 0.01
	DecorationParallax  = 0.4

	ParticleLife    = 60
	ParticleSpread  = 10.0
	ParticleDamping = 0.95
	ParticleMinSize = 2.0
	ParticleMaxSize = 8.0
	CoinBurst       = 12
	CrashBurst      = 15

	CoinPoints          = 10
	TimeBonusEvery      = 10 // ticks
	SpawnRatePerScore   = 0.00002
	DefaultTickRate     = 60
	DefaultSnapshotTick = 3
)

var (
	coinColors  = []string{"#FFD700", "#FFA500", "#FFFF00"}
	crashColors = []string{"#FF4444", "#FF8800", "#FFAA00"}
)

// LaneCenter is the horizontal centre of lane i.
func LaneCenter(lane int) float64 {
	return CanvasWidth/2 + float64(lane-1)*LaneSpacing
}

func laneX(lane int, offset float64) float64 {
	return LaneCenter(lane) - offset
}
