package game

import (
	"context"
	"math/rand"
	"time"
)

// Callbacks is how a Loop reports progress to its host. Nil fields are skipped.
type Callbacks struct {
	OnScoreUpdate func(score int)
	OnTimeUpdate  func(elapsedSeconds int)
	OnCoinCollect func()
	OnGameOver    func(finalScore, coinsCollected, elapsedSeconds int)

	// OnInput sees every non-empty input as the tick numbered step consumes
	// it. Steps count from 1 after each Restart.
	OnInput func(step int, in Input)
}

// Loop hosts a single run: it owns the State, feeds it latched input once per
// tick and turns each tick's Events into callbacks. The loop goroutine is the
// only mutator of the state; other goroutines talk to it through Press.
type Loop struct {
	difficulty Difficulty
	settings   Settings
	tickRate   int
	callbacks  Callbacks
	now        func() time.Time
	newRand    func() *rand.Rand
	fixedStep  bool

	input  InputLatch
	state  *State
	ended  bool
	steps  int
	origin time.Time
}

type Option func(*Loop)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// WithSeed makes every run of the loop use the same random sequence.
func WithSeed(seed int64) Option {
	return func(l *Loop) {
		l.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }
	}
}

// WithFixedStep advances the run clock by exactly one tick period per Step
// instead of reading the clock on every tick. The run then depends only on
// the seed, the tick rate and the input of each step.
func WithFixedStep() Option {
	return func(l *Loop) { l.fixedStep = true }
}

func WithSettings(cfg Settings) Option {
	return func(l *Loop) { l.settings = cfg }
}

func WithTickRate(hz int) Option {
	return func(l *Loop) {
		if hz > 0 {
			l.tickRate = hz
		}
	}
}

func NewLoop(d Difficulty, cb Callbacks, opts ...Option) *Loop {
	l := &Loop{
		difficulty: d,
		settings:   d.Settings(),
		tickRate:   DefaultTickRate,
		callbacks:  cb,
		now:        time.Now,
	}
	l.newRand = func() *rand.Rand { return rand.New(rand.NewSource(l.now().UnixNano())) }
	for _, opt := range opts {
		opt(l)
	}
	l.Restart()
	return l
}

// Restart throws the current run away and begins a new one.
func (l *Loop) Restart() {
	l.origin = l.now()
	l.state = NewStateWithSettings(l.difficulty, l.settings, l.origin, l.newRand())
	l.input.Take()
	l.ended = false
	l.steps = 0
}

func (l *Loop) Press(in Input) { l.input.Press(in) }

func (l *Loop) period() time.Duration {
	return time.Second / time.Duration(l.tickRate)
}

func (l *Loop) clock() time.Time {
	if l.fixedStep {
		return l.origin.Add(time.Duration(l.steps) * l.period())
	}
	return l.now()
}

func (l *Loop) Running() bool {
	return l.state.Running
}

// State exposes the run for reading between ticks. Callers on other
// goroutines must use a Snapshot delivered through the host instead.
func (l *Loop) State() *State {
	return l.state
}

// Step runs one tick and dispatches its callbacks. It reports whether the
// run is still going.
func (l *Loop) Step() bool {
	if l.ended {
		return false
	}
	l.steps++
	in := l.input.Take()
	cb := l.callbacks
	if cb.OnInput != nil && !in.Empty() {
		cb.OnInput(l.steps, in)
	}
	ev := l.state.Tick(in, l.clock())

	for i := 0; i < ev.CoinsCollected; i++ {
		if cb.OnCoinCollect != nil {
			cb.OnCoinCollect()
		}
	}
	if ev.ScoreChanged && cb.OnScoreUpdate != nil {
		cb.OnScoreUpdate(ev.Score)
	}
	if cb.OnTimeUpdate != nil {
		cb.OnTimeUpdate(ev.Elapsed)
	}
	if ev.GameOver {
		l.ended = true
		if cb.OnGameOver != nil {
			r := l.state.Result()
			cb.OnGameOver(r.Score, r.CoinsCollected, r.ElapsedSeconds)
		}
		return false
	}
	return true
}

// Run drives Step from a ticker until the run ends or ctx is cancelled. The
// afterTick hook, if set, sees the state after every tick on the loop
// goroutine.
func (l *Loop) Run(ctx context.Context, afterTick func(*State)) error {
	ticker := time.NewTicker(l.period())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			running := l.Step()
			if afterTick != nil {
				afterTick(l.state)
			}
			if !running {
				return nil
			}
		}
	}
}
