package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hand    *HandLandmarks
		wantErr bool
	}{
		{name: "complete hand", hand: func() *HandLandmarks { h := FistLandmarks(); return &h }()},
		{name: "nil hand", hand: nil, wantErr: true},
		{name: "no points", hand: &HandLandmarks{}, wantErr: true},
		{name: "truncated", hand: &HandLandmarks{Points: make([]Point3D, 12)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hand.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrIncompleteObservation) {
					t.Errorf("Validate() = %v, want ErrIncompleteObservation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestHandLandmarks_Point(t *testing.T) {
	hand := HandLandmarks{Points: []Point3D{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}}

	t.Run("present landmark", func(t *testing.T) {
		p, ok := hand.Point(1)
		if !ok {
			t.Fatal("expected landmark 1 to be present")
		}
		if p.X != 0.3 || p.Y != 0.4 {
			t.Errorf("Point(1) = %+v", p)
		}
	})

	t.Run("missing landmark", func(t *testing.T) {
		if _, ok := hand.Point(IndexTip); ok {
			t.Error("expected IndexTip to be missing")
		}
		if _, ok := hand.Point(-1); ok {
			t.Error("expected negative index to be missing")
		}
	})

	t.Run("nil receiver", func(t *testing.T) {
		var h *HandLandmarks
		if _, ok := h.Point(Wrist); ok {
			t.Error("expected nil hand to have no landmarks")
		}
		if h.Complete() {
			t.Error("nil hand should not be complete")
		}
	})
}

func TestHandLandmarks_Translate(t *testing.T) {
	hand := FistLandmarks()
	moved := hand.Translate(0.1, -0.2)

	for i := range hand.Points {
		if math.Abs(moved.Points[i].X-hand.Points[i].X-0.1) > epsilon {
			t.Errorf("landmark %d X not shifted", i)
		}
		if math.Abs(moved.Points[i].Y-hand.Points[i].Y+0.2) > epsilon {
			t.Errorf("landmark %d Y not shifted", i)
		}
	}
	if moved.Handedness != hand.Handedness || moved.Score != hand.Score {
		t.Error("expected handedness and score to be preserved")
	}

	// The original must not be modified.
	if hand.Points[Wrist].X != 0.5 {
		t.Errorf("original wrist moved to %f", hand.Points[Wrist].X)
	}
}

func TestDistance2D(t *testing.T) {
	got := Distance2D(Point3D{X: 0, Y: 0, Z: 5}, Point3D{X: 3, Y: 4, Z: -5})
	if math.Abs(got-5) > epsilon {
		t.Errorf("Distance2D() = %f, want 5 (Z ignored)", got)
	}
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{FistLandmarks(), OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
		if mock.Calls() != 1 {
			t.Errorf("expected 1 call, got %d", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			hand, ok := Preset(name)
			if !ok {
				t.Fatalf("Preset(%q) not found", name)
			}
			if err := hand.Validate(); err != nil {
				t.Errorf("preset is incomplete: %v", err)
			}
		})
	}

	t.Run("unknown preset", func(t *testing.T) {
		if _, ok := Preset("jazz_hands"); ok {
			t.Error("expected unknown preset to be missing")
		}
	})

	t.Run("open palm fingers point up", func(t *testing.T) {
		palm := OpenPalmLandmarks()
		for _, f := range [][2]int{{IndexTip, IndexPIP}, {MiddleTip, MiddlePIP}, {RingTip, RingPIP}, {PinkyTip, PinkyPIP}} {
			if palm.Points[f[0]].Y >= palm.Points[f[1]].Y {
				t.Errorf("tip %d should be above PIP %d", f[0], f[1])
			}
		}
	})

	t.Run("fist fingers curl down", func(t *testing.T) {
		fist := FistLandmarks()
		for _, f := range [][2]int{{IndexTip, IndexPIP}, {MiddleTip, MiddlePIP}, {RingTip, RingPIP}, {PinkyTip, PinkyPIP}} {
			if fist.Points[f[0]].Y <= fist.Points[f[1]].Y {
				t.Errorf("tip %d should be below PIP %d", f[0], f[1])
			}
		}
		if fist.Points[ThumbTip].X != fist.Points[ThumbIP].X {
			t.Error("fist thumb tip should sit directly over the IP joint")
		}
	})
}

func TestMediaPipeDetector_ServiceArgs(t *testing.T) {
	d := &MediaPipeDetector{config: DefaultConfig(), scriptPath: "/opt/svc.py"}

	args := d.serviceArgs()
	want := []string{
		"/opt/svc.py",
		"--max-hands", "2",
		"--min-detection-confidence", "0.7",
		"--min-tracking-confidence", "0.7",
	}
	if len(args) != len(want) {
		t.Fatalf("serviceArgs() = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, args[i], want[i])
		}
	}
}
