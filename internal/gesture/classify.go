package gesture

import "github.com/ayusman/handycalc/internal/detector"

// MaxHands is the number of hands the classifiers consider. Further hands
// are ignored in landmark source order.
const MaxHands = 2

// Classify maps the hands of one frame to a token. No hands gives Unknown.
func Classify(hands []detector.HandLandmarks) Token {
	switch len(hands) {
	case 0:
		return Unknown
	case 1:
		return ClassifySingle(&hands[0])
	default:
		return ClassifyPair(&hands[0], &hands[1])
	}
}

// ClassifySingle maps one hand to a token.
//
//	0-4 fingers   digit of the count
//	index+middle  multiply when they form a V, else 2
//	thumb+index   add
//	thumb+pinky   subtract
//	5 fingers     divide when the palm is spread, else 5
func ClassifySingle(h *detector.HandLandmarks) Token {
	fingers := FingerStates(h)
	count := fingers.Count()

	switch count {
	case 2:
		switch {
		case fingers.Only(Index, Middle):
			if IsVShape(h) {
				return Op(OpMultiply)
			}
			return Digit(2)
		case fingers.Only(Thumb, Index):
			return Op(OpAdd)
		case fingers.Only(Thumb, Pinky):
			return Op(OpSubtract)
		}
		return Digit(2)
	case 5:
		if IsOpenPalm(h) {
			return Op(OpDivide)
		}
		return Digit(5)
	}
	return Digit(count)
}

// ClassifyPair maps two hands to a token. The rules are symmetric, so the
// order of h1 and h2 does not matter.
//
//	two fists                        clear
//	both index-only, tips together   equals
//	6-9 fingers in total             digit of the total
func ClassifyPair(h1, h2 *detector.HandLandmarks) Token {
	f1 := FingerStates(h1)
	f2 := FingerStates(h2)

	if f1.Count() == 0 && f2.Count() == 0 {
		return Clear
	}

	if f1.Only(Index) && f2.Only(Index) && AreFingersCrossed(h1, h2) {
		return Equals
	}

	if total := f1.Count() + f2.Count(); total >= 6 && total <= 9 {
		return Digit(total)
	}
	return Unknown
}
