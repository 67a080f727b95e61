package core

import "time"

// DefaultPeriod is the wall-clock interval between generations.
const DefaultPeriod = 500 * time.Millisecond

// FixedStep decides when a generation tick is due. Elapsed wall time is
// accumulated across calls so that slow frames do not drop ticks; at most one
// tick is reported per call.
type FixedStep struct {
	period      time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller that fires every period.
func NewFixedStep(period time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetPeriod(period)
	return fs
}

// NewFixedStepTPS constructs a controller targeting the given ticks per second.
func NewFixedStepTPS(tps int) *FixedStep {
	if tps <= 0 {
		return NewFixedStep(DefaultPeriod)
	}
	return NewFixedStep(time.Second / time.Duration(tps))
}

// SetPeriod changes the tick interval. It is safe to call from the main loop.
func (f *FixedStep) SetPeriod(period time.Duration) {
	if period <= 0 {
		period = DefaultPeriod
	}
	f.period = period
}

// Period reports the current tick interval.
func (f *FixedStep) Period() time.Duration { return f.period }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.period {
		f.accumulator -= f.period
		return true
	}
	return false
}
