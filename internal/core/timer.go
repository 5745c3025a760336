package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate
// from a loop that wakes up more often than it needs to step.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
	maxCatchUp  int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now, maxCatchUp: 4}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// TPS reports the configured tick rate.
func (f *FixedStep) TPS() int {
	if f.step <= 0 {
		return 0
	}
	return int(time.Second / f.step)
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.Pending() > 0
}

// Pending consumes elapsed time and returns how many ticks are due. The count
// is capped so a stalled loop does not try to replay a long pause.
func (f *FixedStep) Pending() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	n := 0
	for f.accumulator >= f.step && n < f.maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == f.maxCatchUp {
		f.accumulator = 0
	}
	return n
}
