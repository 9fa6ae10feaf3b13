package session

import (
	"time"

	"github.com/ayusman/handycalc/internal/calc"
	"github.com/ayusman/handycalc/internal/gesture"
)

// Snapshot is the read-only view a display renders after each frame.
type Snapshot struct {
	Expression    string        `json:"expression"`
	Display       string        `json:"display"`
	Result        string        `json:"result"`
	Error         string        `json:"error,omitempty"`
	Raw           gesture.Token `json:"raw"`
	Candidate     gesture.Token `json:"candidate"`
	State         string        `json:"state"`
	HeldSec       float64       `json:"held_sec"`
	HoldSec       float64       `json:"hold_sec"`
	Progress      float64       `json:"progress"`
	LastConfirmed gesture.Token `json:"last_confirmed"`
	Hands         int           `json:"hands"`
	Time          time.Time     `json:"time"`
}

// ResultText is the result line: the value, "Error: <reason>" or "".
func (s Snapshot) ResultText() string {
	if s.Error != "" {
		return "Error: " + s.Error
	}
	return s.Result
}

// Snapshot captures the session state as of now.
func (s *Session) Snapshot(now time.Time) Snapshot {
	st := s.stabilizer.Status(now)
	return Snapshot{
		Expression:    s.expr.Text(),
		Display:       s.expr.Display(),
		Result:        s.expr.Result(),
		Error:         calc.Reason(s.expr.Err()),
		Raw:           s.raw,
		Candidate:     st.Candidate,
		State:         st.State.String(),
		HeldSec:       st.Held.Seconds(),
		HoldSec:       st.Hold.Seconds(),
		Progress:      st.Progress(),
		LastConfirmed: st.LastConfirmed,
		Hands:         s.hands,
		Time:          now,
	}
}
