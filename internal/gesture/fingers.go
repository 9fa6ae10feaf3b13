package gesture

import "github.com/ayusman/handycalc/internal/detector"

// Finger positions in a Fingers vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers holds the extended state of thumb, index, middle, ring and pinky.
type Fingers [5]bool

// tip and PIP landmark for index through pinky.
var fingerJoints = [4][2]int{
	{detector.IndexTip, detector.IndexPIP},
	{detector.MiddleTip, detector.MiddlePIP},
	{detector.RingTip, detector.RingPIP},
	{detector.PinkyTip, detector.PinkyPIP},
}

// FingerStates extracts which fingers are extended.
//
// A non-thumb finger is extended when its tip is above (smaller y) its PIP
// joint. This assumes an upright hand and misreads sideways hands.
//
// The thumb is extended when its tip x differs from its IP joint x in
// either direction. The handedness label is not consulted, so left and
// right hands can read differently for the same pose.
//
// Missing landmarks leave the affected finger not extended.
func FingerStates(h *detector.HandLandmarks) Fingers {
	var f Fingers

	tip, okTip := h.Point(detector.ThumbTip)
	ip, okIP := h.Point(detector.ThumbIP)
	if okTip && okIP {
		f[Thumb] = tip.X != ip.X
	}

	for i, j := range fingerJoints {
		tip, okTip := h.Point(j[0])
		pip, okPIP := h.Point(j[1])
		if okTip && okPIP {
			f[i+1] = tip.Y < pip.Y
		}
	}
	return f
}

// Count returns the number of extended fingers.
func (f Fingers) Count() int {
	n := 0
	for _, up := range f {
		if up {
			n++
		}
	}
	return n
}

// Only reports whether exactly the given fingers are extended.
func (f Fingers) Only(fingers ...int) bool {
	var want Fingers
	for _, i := range fingers {
		if i >= 0 && i < len(want) {
			want[i] = true
		}
	}
	return f == want
}

// String renders the vector as five 0/1 characters, thumb first.
func (f Fingers) String() string {
	b := make([]byte, len(f))
	for i, up := range f {
		b[i] = '0'
		if up {
			b[i] = '1'
		}
	}
	return string(b)
}
