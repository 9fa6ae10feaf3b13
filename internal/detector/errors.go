package detector

import "errors"

var (
	// ErrIncompleteObservation marks a hand with fewer than NumLandmarks points.
	ErrIncompleteObservation = errors.New("incomplete hand observation")

	// ErrServiceNotFound is returned when the MediaPipe service script cannot be located.
	ErrServiceNotFound = errors.New("mediapipe_service.py not found")
)
