package pacing

// Default pacing bounds in words per minute.
const (
	DefaultStep   = 25
	DefaultMinWPM = 100
	DefaultMaxWPM = 1500
)

// Pacer turns decisions into stepwise speed changes.
type Pacer struct {
	Step int
	Min  int
	Max  int
}

// DefaultPacer returns a Pacer with the default step and bounds.
func DefaultPacer() Pacer {
	return Pacer{Step: DefaultStep, Min: DefaultMinWPM, Max: DefaultMaxWPM}
}

// Next returns the speed to use after applying d to wpm, clamped to the bounds.
func (p Pacer) Next(wpm int, d Decision) int {
	switch d {
	case Increase:
		wpm += p.Step
	case Decrease:
		wpm -= p.Step
	}
	if p.Min > 0 && wpm < p.Min {
		wpm = p.Min
	}
	if p.Max > 0 && wpm > p.Max {
		wpm = p.Max
	}
	return wpm
}
