package detector

import (
	"sort"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect ran.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic right hand, camera up, wrist at (0.5, 0.8).
var (
	fingerMCPX   = [4]float64{0.56, 0.50, 0.44, 0.38} // index, middle, ring, pinky
	fingerSpread = [4]float64{1, 0, -1, -2}
)

// PoseLandmarks builds a hand with the given fingers extended
// (thumb, index, middle, ring, pinky). spread moves extended fingertips
// apart (positive) or together (negative).
func PoseLandmarks(extended [5]bool, spread float64) HandLandmarks {
	pts := make([]Point3D, NumLandmarks)
	pts[Wrist] = Point3D{X: 0.5, Y: 0.8}

	pts[ThumbCMC] = Point3D{X: 0.56, Y: 0.76}
	pts[ThumbMCP] = Point3D{X: 0.60, Y: 0.72}
	if extended[0] {
		pts[ThumbIP] = Point3D{X: 0.58 + 2*spread, Y: 0.58}
		pts[ThumbTip] = Point3D{X: 0.62 + 2*spread, Y: 0.52}
	} else {
		// Tip folded straight over the IP joint.
		pts[ThumbIP] = Point3D{X: 0.60, Y: 0.66}
		pts[ThumbTip] = Point3D{X: 0.60, Y: 0.70}
	}

	for f := 0; f < 4; f++ {
		base := IndexMCP + 4*f
		x := fingerMCPX[f]
		pts[base] = Point3D{X: x, Y: 0.65}
		if extended[f+1] {
			dx := spread * fingerSpread[f]
			tipY := 0.40
			if base == MiddleMCP {
				tipY = 0.36
			}
			pts[base+1] = Point3D{X: x + 0.4*dx, Y: 0.55}
			pts[base+2] = Point3D{X: x + 0.7*dx, Y: 0.47}
			pts[base+3] = Point3D{X: x + dx, Y: tipY}
		} else {
			pts[base+1] = Point3D{X: x, Y: 0.60, Z: -0.03}
			pts[base+2] = Point3D{X: x - 0.01, Y: 0.64, Z: -0.04}
			pts[base+3] = Point3D{X: x - 0.02, Y: 0.68, Z: -0.02}
		}
	}

	return HandLandmarks{Points: pts, Handedness: "Right", Score: 0.95}
}

var presets = map[string]func() HandLandmarks{
	"fist":          func() HandLandmarks { return PoseLandmarks([5]bool{}, 0) },
	"index":         func() HandLandmarks { return PoseLandmarks([5]bool{false, true}, 0) },
	"index_crossed": func() HandLandmarks { return PoseLandmarks([5]bool{false, true}, 0).Translate(0.03, 0) },
	"two":           func() HandLandmarks { return PoseLandmarks([5]bool{false, true, true}, 0) },
	"v_sign":        func() HandLandmarks { return PoseLandmarks([5]bool{false, true, true}, 0.12) },
	"thumb_index":   func() HandLandmarks { return PoseLandmarks([5]bool{true, true}, 0) },
	"thumb_pinky":   func() HandLandmarks { return PoseLandmarks([5]bool{true, false, false, false, true}, 0) },
	"three":         func() HandLandmarks { return PoseLandmarks([5]bool{false, true, true, true}, 0) },
	"four":          func() HandLandmarks { return PoseLandmarks([5]bool{false, true, true, true, true}, 0) },
	"five":          func() HandLandmarks { return PoseLandmarks([5]bool{true, true, true, true, true}, -0.02) },
	"open_palm":     func() HandLandmarks { return PoseLandmarks([5]bool{true, true, true, true, true}, 0.05) },
}

// Preset returns a named synthetic pose.
func Preset(name string) (HandLandmarks, bool) {
	build, ok := presets[name]
	if !ok {
		return HandLandmarks{}, false
	}
	return build(), true
}

// PresetNames lists the available poses in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FistLandmarks returns a closed fist.
func FistLandmarks() HandLandmarks { return presets["fist"]() }

// OpenPalmLandmarks returns an open palm with fingers spread.
func OpenPalmLandmarks() HandLandmarks { return presets["open_palm"]() }
