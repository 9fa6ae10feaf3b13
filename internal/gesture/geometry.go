package gesture

import (
	"math"

	"github.com/ayusman/handycalc/internal/detector"
)

// Geometric thresholds in normalized frame coordinates.
const (
	VShapeMinDegrees = 30.0
	VShapeMaxDegrees = 90.0

	// OpenPalmSpread is the mean adjacent fingertip distance above which
	// five extended fingers count as a spread palm.
	OpenPalmSpread = 0.08

	// CrossedTipDistance and CrossedHandDistance bound the index-tip and
	// middle-MCP distances of two hands forming an equals sign.
	CrossedTipDistance  = 0.05
	CrossedHandDistance = 0.3
)

var fingertips = [5]int{
	detector.ThumbTip,
	detector.IndexTip,
	detector.MiddleTip,
	detector.RingTip,
	detector.PinkyTip,
}

// AngleBetween returns the angle in degrees between a-vertex and b-vertex.
// It returns NaN when either vector has zero length.
func AngleBetween(a, b, vertex detector.Point3D) float64 {
	v1x, v1y := a.X-vertex.X, a.Y-vertex.Y
	v2x, v2y := b.X-vertex.X, b.Y-vertex.Y

	n1 := math.Hypot(v1x, v1y)
	n2 := math.Hypot(v2x, v2y)
	if n1 == 0 || n2 == 0 {
		return math.NaN()
	}

	cos := (v1x*v2x + v1y*v2y) / (n1 * n2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// InVShapeRange reports whether an angle falls in [30°, 90°].
func InVShapeRange(deg float64) bool {
	return deg >= VShapeMinDegrees && deg <= VShapeMaxDegrees
}

// IsVShape reports whether the index and middle fingertips open at 30-90
// degrees around the middle finger MCP.
func IsVShape(h *detector.HandLandmarks) bool {
	index, ok1 := h.Point(detector.IndexTip)
	middle, ok2 := h.Point(detector.MiddleTip)
	base, ok3 := h.Point(detector.MiddleMCP)
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	return InVShapeRange(AngleBetween(index, middle, base))
}

// FingertipSpread is the mean distance between adjacent fingertips,
// thumb to pinky. ok is false when a fingertip is missing.
func FingertipSpread(h *detector.HandLandmarks) (spread float64, ok bool) {
	var sum float64
	for i := 0; i < len(fingertips)-1; i++ {
		a, okA := h.Point(fingertips[i])
		b, okB := h.Point(fingertips[i+1])
		if !okA || !okB {
			return 0, false
		}
		sum += detector.Distance2D(a, b)
	}
	return sum / float64(len(fingertips)-1), true
}

// IsOpenPalm reports whether all five fingers are extended and spread.
func IsOpenPalm(h *detector.HandLandmarks) bool {
	if FingerStates(h).Count() != 5 {
		return false
	}
	spread, ok := FingertipSpread(h)
	return ok && spread > OpenPalmSpread
}

// AreFingersCrossed reports whether two hands hold their index fingertips
// together while the hands themselves are close. This is a proximity test,
// not a topological crossing check. It is symmetric in its arguments.
func AreFingersCrossed(h1, h2 *detector.HandLandmarks) bool {
	tip1, ok1 := h1.Point(detector.IndexTip)
	tip2, ok2 := h2.Point(detector.IndexTip)
	base1, ok3 := h1.Point(detector.MiddleMCP)
	base2, ok4 := h2.Point(detector.MiddleMCP)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return detector.Distance2D(tip1, tip2) < CrossedTipDistance &&
		detector.Distance2D(base1, base2) < CrossedHandDistance
}
