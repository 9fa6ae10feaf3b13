package gesture

import "time"

// StabilizerOption configures a Stabilizer.
type StabilizerOption func(*Stabilizer)

// WithHoldDuration sets the confirmation delay, clamped to [0.5s, 3s].
func WithHoldDuration(d time.Duration) StabilizerOption {
	return func(s *Stabilizer) {
		if d > 0 {
			s.hold = clampHold(d)
		}
	}
}
