package game

import "sync"

// Input is the key state seen by a single tick.
type Input struct {
	Left  bool
	Right bool
}

func (in Input) Empty() bool {
	return !in.Left && !in.Right
}

// InputLatch collects key presses between ticks. Presses may arrive from any
// goroutine; Take hands them to the tick and clears them, so one press moves
// the player at most one lane no matter how long the key is held.
type InputLatch struct {
	mu      sync.Mutex
	pending Input
}

func (l *InputLatch) Press(in Input) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending.Left = l.pending.Left || in.Left
	l.pending.Right = l.pending.Right || in.Right
}

func (l *InputLatch) Take() Input {
	l.mu.Lock()
	defer l.mu.Unlock()
	in := l.pending
	l.pending = Input{}
	return in
}
