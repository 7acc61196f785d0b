package game

type Kind uint8

const (
	KindObstacle Kind = iota + 1
	KindCoin
	KindParticle
	KindDecoration
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindCoin:
		return "coin"
	case KindParticle:
		return "particle"
	case KindDecoration:
		return "decoration"
	}
	return "unknown"
}

// Entity is every moving thing on the playfield except the player. Fields a
// kind does not use stay zero: only obstacles and coins have a lane, only
// particles have velocity and life, only decorations have a style.
type Entity struct {
	Kind   Kind    `json:"kind"`
	Lane   int     `json:"lane,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	VX      float64 `json:"vx,omitempty"`
	VY      float64 `json:"vy,omitempty"`
	Life    int     `json:"life,omitempty"`
	MaxLife int     `json:"maxLife,omitempty"`
	Color   string  `json:"color,omitempty"`
	Style   string  `json:"style,omitempty"`
}

func (e *Entity) Rect() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// advance moves the entity by one tick at the given game speed.
func (e *Entity) advance(speed float64) {
	switch e.Kind {
	case KindObstacle, KindCoin:
		e.Y += speed
	case KindDecoration:
		e.Y += speed * DecorationParallax
	case KindParticle:
		e.X += e.VX
		e.Y += e.VY
		e.VX *= ParticleDamping
		e.VY *= ParticleDamping
		e.Life--
	}
}

// gone reports whether the entity should be discarded after advancing.
func (e *Entity) gone(height float64) bool {
	if e.Kind == KindParticle {
		return e.Life <= 0
	}
	return e.Y > height
}

// advanceAll moves every entity and compacts the survivors in place,
// preserving their order.
func advanceAll(list []Entity, speed, height float64) []Entity {
	kept := list[:0]
	for i := range list {
		list[i].advance(speed)
		if !list[i].gone(height) {
			kept = append(kept, list[i])
		}
	}
	clear(list[len(kept):])
	return kept
}
