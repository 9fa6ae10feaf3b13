package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Recording is a named capture of landmark frames.
type Recording struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Frames    int       `json:"frames"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordedFrame is the hands seen in one frame of a recording.
type RecordedFrame struct {
	Sequence int             `json:"sequence"`
	Offset   time.Duration   `json:"offset_ns"`
	Hands    json.RawMessage `json:"hands"`
}

// RecordingRepository provides CRUD operations for recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts a new recording. An empty ID is replaced with a fresh UUID.
func (r *RecordingRepository) Create(rec *Recording) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	rec.CreatedAt = time.Now()
	rec.Frames = 0

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, name, frames, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Frames, rec.CreatedAt,
	)
	return err
}

// GetByID retrieves a recording by its ID.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec := &Recording{}
	err := r.db.QueryRow(
		`SELECT id, name, frames, created_at FROM recordings WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Frames, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List retrieves all recordings, newest first.
func (r *RecordingRepository) List() ([]*Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, name, frames, created_at FROM recordings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []*Recording
	for rows.Next() {
		rec := &Recording{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Frames, &rec.CreatedAt); err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recordings, nil
}

// Delete removes a recording and its frames.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendFrames adds frames after the recording's existing ones in a single
// transaction. Sequence numbers are assigned here.
func (r *RecordingRepository) AppendFrames(id string, frames []RecordedFrame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(`SELECT frames FROM recordings WHERE id = ?`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO recording_frames (recording_id, sequence, offset_ns, hands) VALUES (?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range frames {
		frames[i].Sequence = count + i
		hands := frames[i].Hands
		if len(hands) == 0 {
			hands = json.RawMessage("[]")
		}
		if _, err := stmt.Exec(id, frames[i].Sequence, int64(frames[i].Offset), string(hands)); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`UPDATE recordings SET frames = ? WHERE id = ?`, count+len(frames), id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Frames retrieves a recording's frames in sequence order.
func (r *RecordingRepository) Frames(id string) ([]RecordedFrame, error) {
	rows, err := r.db.Query(
		`SELECT sequence, offset_ns, hands
		 FROM recording_frames
		 WHERE recording_id = ?
		 ORDER BY sequence`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []RecordedFrame
	for rows.Next() {
		var f RecordedFrame
		var offset int64
		var hands string
		if err := rows.Scan(&f.Sequence, &offset, &hands); err != nil {
			return nil, err
		}
		f.Offset = time.Duration(offset)
		f.Hands = json.RawMessage(hands)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}
