package gesture

import (
	"testing"

	"github.com/ayusman/handycalc/internal/detector"
)

func TestClassifySingle_Presets(t *testing.T) {
	tests := []struct {
		preset string
		want   Token
	}{
		{"fist", Digit(0)},
		{"index", Digit(1)},
		{"two", Digit(2)},
		{"v_sign", Op(OpMultiply)},
		{"thumb_index", Op(OpAdd)},
		{"thumb_pinky", Op(OpSubtract)},
		{"three", Digit(3)},
		{"four", Digit(4)},
		{"five", Digit(5)},
		{"open_palm", Op(OpDivide)},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			h := preset(t, tt.preset)
			if got := ClassifySingle(&h); got != tt.want {
				t.Errorf("ClassifySingle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifySingle_OtherTwoFingerPoses(t *testing.T) {
	poses := map[string][5]bool{
		"thumb_middle": {true, false, true},
		"index_pinky":  {false, true, false, false, true},
		"ring_pinky":   {false, false, false, true, true},
	}
	for name, ext := range poses {
		t.Run(name, func(t *testing.T) {
			h := detector.PoseLandmarks(ext, 0)
			if got := ClassifySingle(&h); got != Digit(2) {
				t.Errorf("ClassifySingle() = %v, want 2", got)
			}
		})
	}
}

func TestClassifySingle_AllFingerVectors(t *testing.T) {
	for _, spread := range []float64{-0.02, 0, 0.12} {
		for bits := 0; bits < 32; bits++ {
			var ext [5]bool
			k := 0
			for i := range ext {
				ext[i] = bits&(1<<i) != 0
				if ext[i] {
					k++
				}
			}

			h := detector.PoseLandmarks(ext, spread)
			fingers := FingerStates(&h)
			if fingers != Fingers(ext) {
				t.Errorf("spread %v: FingerStates(%v) = %v", spread, ext, fingers)
				continue
			}

			want := Digit(k)
			switch {
			case fingers.Only(Index, Middle) && IsVShape(&h):
				want = Op(OpMultiply)
			case fingers.Only(Thumb, Index):
				want = Op(OpAdd)
			case fingers.Only(Thumb, Pinky):
				want = Op(OpSubtract)
			case k == 5 && IsOpenPalm(&h):
				want = Op(OpDivide)
			}

			if got := ClassifySingle(&h); got != want {
				t.Errorf("spread %v: ClassifySingle(%v) = %v, want %v", spread, ext, got, want)
			}
		}
	}
}

func TestClassifyPair(t *testing.T) {
	index := preset(t, "index")

	tests := []struct {
		name   string
		h1, h2 string
		want   Token
	}{
		{"two fists", "fist", "fist", Clear},
		{"crossed index", "index", "index_crossed", Equals},
		{"three and three", "three", "three", Digit(6)},
		{"four and three", "four", "three", Digit(7)},
		{"four and four", "four", "four", Digit(8)},
		{"five and four", "five", "four", Digit(9)},
		{"open palm and four", "open_palm", "four", Digit(9)},
		{"five and five", "five", "five", Unknown},
		{"fist and five", "fist", "five", Unknown},
		{"index and two", "index", "two", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := preset(t, tt.h1)
			h2 := preset(t, tt.h2)
			if got := ClassifyPair(&h1, &h2); got != tt.want {
				t.Errorf("ClassifyPair(%s, %s) = %v, want %v", tt.h1, tt.h2, got, tt.want)
			}
			if got := ClassifyPair(&h2, &h1); got != tt.want {
				t.Errorf("ClassifyPair(%s, %s) = %v, want %v", tt.h2, tt.h1, got, tt.want)
			}
		})
	}

	t.Run("index apart", func(t *testing.T) {
		apart := index.Translate(0.4, 0)
		if got := ClassifyPair(&index, &apart); got != Unknown {
			t.Errorf("ClassifyPair() = %v, want unknown", got)
		}
	})
}

func TestClassify_HandCount(t *testing.T) {
	fist := preset(t, "fist")
	five := preset(t, "five")
	three := preset(t, "three")

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  Token
	}{
		{"none", nil, Unknown},
		{"one", []detector.HandLandmarks{three}, Digit(3)},
		{"two", []detector.HandLandmarks{three, three}, Digit(6)},
		{"extra hands ignored", []detector.HandLandmarks{fist, fist, five}, Clear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.hands); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_OutputAlwaysValid(t *testing.T) {
	names := detector.PresetNames()
	for _, a := range names {
		for _, b := range names {
			h1 := preset(t, a)
			h2 := preset(t, b)
			tok := ClassifyPair(&h1, &h2)
			if tok.Kind == KindDigit && (tok.Digit < 0 || tok.Digit > 9) {
				t.Errorf("ClassifyPair(%s, %s) produced digit %d", a, b, tok.Digit)
			}
		}
	}
}
