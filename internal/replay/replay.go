// Package replay runs recorded or scripted landmark frames through a fresh
// calculator session with reproducible timing.
package replay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayusman/handycalc/internal/detector"
	"github.com/ayusman/handycalc/internal/gesture"
	"github.com/ayusman/handycalc/internal/session"
	"github.com/ayusman/handycalc/internal/store"
)

// Frame is one observation at an offset from the start of the run.
type Frame struct {
	Offset time.Duration
	Hands  []detector.HandLandmarks
}

// Result is the outcome of a replay run.
type Result struct {
	Frames     int             `json:"frames"`
	Confirmed  []gesture.Token `json:"confirmed"`
	Expression string          `json:"expression"`
	Result     string          `json:"result"`
	Error      string          `json:"error,omitempty"`
}

// Base is the wall-clock origin replayed frames are offset from.
var Base = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Run feeds frames in order through a new session built with opts and
// reports what it confirmed and the final expression state.
func Run(frames []Frame, opts ...session.Option) Result {
	s := session.New(opts...)

	res := Result{Frames: len(frames), Confirmed: []gesture.Token{}}
	for _, f := range frames {
		if tok, ok := s.Process(f.Hands, Base.Add(f.Offset)); ok {
			res.Confirmed = append(res.Confirmed, tok)
		}
	}

	var end time.Time
	if len(frames) > 0 {
		end = Base.Add(frames[len(frames)-1].Offset)
	}
	snap := s.Snapshot(end)
	res.Expression = snap.Expression
	res.Result = snap.Result
	res.Error = snap.Error
	return res
}

// FrameSource reads stored recording frames.
type FrameSource interface {
	Frames(id string) ([]store.RecordedFrame, error)
}

// LoadRecording reads and decodes the frames of a stored recording.
func LoadRecording(src FrameSource, id string) ([]Frame, error) {
	recorded, err := src.Frames(id)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", id, err)
	}
	return DecodeFrames(recorded)
}

// DecodeFrames converts stored frames to replay frames.
func DecodeFrames(recorded []store.RecordedFrame) ([]Frame, error) {
	frames := make([]Frame, 0, len(recorded))
	for _, rf := range recorded {
		var hands []detector.HandLandmarks
		if len(rf.Hands) > 0 {
			if err := json.Unmarshal(rf.Hands, &hands); err != nil {
				return nil, fmt.Errorf("decode frame %d: %w", rf.Sequence, err)
			}
		}
		frames = append(frames, Frame{
			Offset: rf.Offset,
			Hands:  hands,
		})
	}
	return frames, nil
}

// EncodeFrame converts hands seen at offset to a stored frame.
func EncodeFrame(offset time.Duration, hands []detector.HandLandmarks) (store.RecordedFrame, error) {
	if hands == nil {
		hands = []detector.HandLandmarks{}
	}
	data, err := json.Marshal(hands)
	if err != nil {
		return store.RecordedFrame{}, fmt.Errorf("encode frame: %w", err)
	}
	return store.RecordedFrame{Offset: offset, Hands: data}, nil
}
