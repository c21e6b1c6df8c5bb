package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/raceprep/raceprep/internal/errors"
)

// MarkEvent records an event id before any processing starts, so a crash
// mid-run cannot double-process. It reports whether this was the first
// sighting of the id.
func (s *Store) MarkEvent(ctx context.Context, eventID string, now time.Time) (bool, error) {
	res, err := s.readWrite.ExecContext(ctx, `
		INSERT INTO processed_events (event_id, received_at)
		VALUES (?, ?)
		ON CONFLICT (event_id) DO NOTHING`,
		eventID, now.UTC())
	if err != nil {
		return false, errors.Wrap(err, "mark event", slog.String("event_id", eventID))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "mark event rows affected", slog.String("event_id", eventID))
	}
	return affected == 1, nil
}

// UnmarkEvent releases an event id that was claimed but never ran, so a
// later platform retry can claim it again. Completed events stay marked.
func (s *Store) UnmarkEvent(ctx context.Context, eventID string) error {
	if _, err := s.readWrite.ExecContext(ctx, `
		DELETE FROM processed_events WHERE event_id = ? AND completed_at IS NULL`,
		eventID); err != nil {
		return errors.Wrap(err, "unmark event", slog.String("event_id", eventID))
	}
	return nil
}

// CompleteEvent stamps an event as fully processed.
func (s *Store) CompleteEvent(ctx context.Context, eventID string, now time.Time) error {
	if _, err := s.readWrite.ExecContext(ctx, `
		UPDATE processed_events SET completed_at = ? WHERE event_id = ?`,
		now.UTC(), eventID); err != nil {
		return errors.Wrap(err, "complete event", slog.String("event_id", eventID))
	}
	return nil
}
