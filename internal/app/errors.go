package app

import "errors"

var (
	// ErrNoStore is returned by recording operations when the app has no store.
	ErrNoStore = errors.New("no store configured")
	// ErrRecordingActive is returned when starting a second recording.
	ErrRecordingActive = errors.New("a recording is already in progress")
	// ErrNotRecording is returned when stopping without an active recording.
	ErrNotRecording = errors.New("no recording in progress")
)
