package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/gesture"
	"github.com/ayusman/handycalc/internal/session"
)

const (
	// DefaultFixtureFPS is used when a fixture does not set fps.
	DefaultFixtureFPS = 10
	// MaxFixtureFPS bounds the fixture frame rate.
	MaxFixtureFPS = 1000
)

// Fixture is a scripted gesture session: named poses held for a duration.
type Fixture struct {
	Description     string    `json:"description"`
	FPS             int       `json:"fps"`
	HoldDurationSec float64   `json:"hold_duration_sec"`
	Segments        []Segment `json:"segments"`
	Expect          Expect    `json:"expect"`
}

// Segment holds the same hands for DurationMs. An empty Poses list means
// no hands in view.
type Segment struct {
	Poses      []string `json:"poses"`
	DurationMs int      `json:"duration_ms"`
}

// Expect is the outcome a fixture must reproduce.
type Expect struct {
	Confirmed  []string `json:"confirmed"`
	Expression string   `json:"expression"`
	Result     string   `json:"result"`
	Error      string   `json:"error"`
}

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// ParseFixture decodes a JSON fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Frames expands the segments into frames at the fixture frame rate.
func (f *Fixture) Frames() ([]Frame, error) {
	fps := f.FPS
	if fps <= 0 {
		fps = DefaultFixtureFPS
	}
	if fps > MaxFixtureFPS {
		return nil, fmt.Errorf("fps %d above %d", fps, MaxFixtureFPS)
	}
	step := time.Second / time.Duration(fps)

	var frames []Frame
	var offset time.Duration
	for i, seg := range f.Segments {
		hands := make([]detector.HandLandmarks, 0, len(seg.Poses))
		for _, name := range seg.Poses {
			h, ok := detector.Preset(name)
			if !ok {
				return nil, fmt.Errorf("segment %d: unknown pose %q", i, name)
			}
			hands = append(hands, h)
		}

		end := offset + time.Duration(seg.DurationMs)*time.Millisecond
		for ; offset < end; offset += step {
			frames = append(frames, Frame{Offset: offset, Hands: hands})
		}
	}
	return frames, nil
}

// Options returns the session options the fixture asks for.
func (f *Fixture) Options() []session.Option {
	if f.HoldDurationSec <= 0 {
		return nil
	}
	d := time.Duration(f.HoldDurationSec * float64(time.Second))
	return []session.Option{session.WithHoldDuration(d)}
}

// Run expands and replays the fixture.
func (f *Fixture) Run(opts ...session.Option) (Result, error) {
	frames, err := f.Frames()
	if err != nil {
		return Result{}, err
	}
	return Run(frames, append(f.Options(), opts...)...), nil
}

// Check compares a result with the fixture's expectations. Confirmed is
// only checked when the fixture lists tokens.
func (f *Fixture) Check(res Result) error {
	var diffs []string
	if f.Expect.Confirmed != nil {
		got := ConfirmedNames(res.Confirmed)
		if strings.Join(got, " ") != strings.Join(f.Expect.Confirmed, " ") {
			diffs = append(diffs, fmt.Sprintf("confirmed %v, want %v", got, f.Expect.Confirmed))
		}
	}
	if res.Expression != f.Expect.Expression {
		diffs = append(diffs, fmt.Sprintf("expression %q, want %q", res.Expression, f.Expect.Expression))
	}
	if res.Result != f.Expect.Result {
		diffs = append(diffs, fmt.Sprintf("result %q, want %q", res.Result, f.Expect.Result))
	}
	if res.Error != f.Expect.Error {
		diffs = append(diffs, fmt.Sprintf("error %q, want %q", res.Error, f.Expect.Error))
	}
	if len(diffs) > 0 {
		return fmt.Errorf("replay mismatch: %s", strings.Join(diffs, "; "))
	}
	return nil
}

// ConfirmedNames renders tokens by name.
func ConfirmedNames(tokens []gesture.Token) []string {
	names := make([]string, len(tokens))
	for i, tok := range tokens {
		names[i] = tok.String()
	}
	return names
}
