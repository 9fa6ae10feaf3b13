package session

import (
	"time"

	"github.com/ayusman/handycalc/internal/logger"
)

// Option configures a Session.
type Option func(*Session)

// WithHoldDuration sets the confirmation delay.
func WithHoldDuration(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.stabilizer.SetHoldDuration(d)
		}
	}
}

// WithLogger sets the session logger. nil keeps the no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}
