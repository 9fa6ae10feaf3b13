package gesture

import "time"

// Stabilizer timing.
const (
	DefaultHoldDuration = 1500 * time.Millisecond
	MinHoldDuration     = 500 * time.Millisecond
	MaxHoldDuration     = 3 * time.Second

	// IdleTimeout is how long Unknown must persist before a candidate is dropped.
	IdleTimeout = 2 * time.Second
)

// State is the stabilizer's phase.
type State uint8

const (
	StateIdle State = iota
	StateCandidate
)

func (s State) String() string {
	if s == StateCandidate {
		return "candidate"
	}
	return "idle"
}

// Status is a read-only view of the stabilizer for progress display.
type Status struct {
	State         State
	Candidate     Token
	Held          time.Duration
	Hold          time.Duration
	LastConfirmed Token
}

// Progress is Held/Hold clamped to [0, 1].
func (s Status) Progress() float64 {
	if s.State != StateCandidate || s.Hold <= 0 {
		return 0
	}
	p := float64(s.Held) / float64(s.Hold)
	if p > 1 {
		return 1
	}
	return p
}

// Stabilizer debounces per-frame tokens. A token must be classified
// continuously for the hold duration before it is confirmed; a held
// gesture fires again every hold duration.
//
// It is driven by one synchronous Update call per frame and is not safe
// for concurrent use.
type Stabilizer struct {
	hold time.Duration

	state         State
	candidate     Token
	start         time.Time
	lastSeen      time.Time
	lastConfirmed Token
}

// NewStabilizer creates an idle stabilizer.
func NewStabilizer(opts ...StabilizerOption) *Stabilizer {
	s := &Stabilizer{hold: DefaultHoldDuration}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update feeds the token classified at now. It returns the token and true
// when the frame confirms it.
//
// Unknown frames do not restart a candidate's timer. The candidate is
// dropped once Unknown has lasted longer than IdleTimeout since the last
// known token.
func (s *Stabilizer) Update(tok Token, now time.Time) (Token, bool) {
	if tok.IsUnknown() {
		if s.state != StateIdle && now.Sub(s.lastSeen) > IdleTimeout {
			s.Reset()
		}
		return Unknown, false
	}

	s.lastSeen = now

	if s.state == StateIdle || tok != s.candidate {
		s.state = StateCandidate
		s.candidate = tok
		s.start = now
		return Unknown, false
	}

	if now.Sub(s.start) >= s.hold {
		s.start = now
		s.lastConfirmed = tok
		return tok, true
	}
	return Unknown, false
}

// Status reports the stabilizer state as of now.
func (s *Stabilizer) Status(now time.Time) Status {
	st := Status{
		State:         s.state,
		Hold:          s.hold,
		LastConfirmed: s.lastConfirmed,
	}
	if s.state == StateCandidate {
		st.Candidate = s.candidate
		if held := now.Sub(s.start); held > 0 {
			st.Held = held
		}
	}
	return st
}

// HoldDuration returns the confirmation delay.
func (s *Stabilizer) HoldDuration() time.Duration { return s.hold }

// SetHoldDuration changes the confirmation delay, clamped to
// [MinHoldDuration, MaxHoldDuration]. A running candidate keeps its start time.
func (s *Stabilizer) SetHoldDuration(d time.Duration) {
	s.hold = clampHold(d)
}

// Reset returns to Idle and forgets the last confirmed token.
func (s *Stabilizer) Reset() {
	s.state = StateIdle
	s.candidate = Unknown
	s.start = time.Time{}
	s.lastSeen = time.Time{}
	s.lastConfirmed = Unknown
}

func clampHold(d time.Duration) time.Duration {
	switch {
	case d < MinHoldDuration:
		return MinHoldDuration
	case d > MaxHoldDuration:
		return MaxHoldDuration
	default:
		return d
	}
}
