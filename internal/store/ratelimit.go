package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/raceprep/raceprep/internal/errors"
)

// Per-email intake limits. The window is a rolling 24 hours of interval
// arithmetic, not a calendar day.
const (
	RateLimitMax       = 5
	RateLimitWindow    = 24 * time.Hour
	rateLimitRetention = 7 * 24 * time.Hour
)

// AllowRequest records an intake attempt for the email and reports whether
// it is within the limit. The store is keyed by lowercase email, so case
// variants share one budget. Entries older than the retention period are
// pruned on the way.
func (s *Store) AllowRequest(ctx context.Context, email string, now time.Time) (bool, error) {
	email = strings.ToLower(email)
	now = now.UTC()

	tx, err := s.readWrite.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "begin rate limit transaction")
	}
	defer tx.Rollback() //nolint:errcheck // commit path returns first

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM rate_limits WHERE requested_at < ?`,
		now.Add(-rateLimitRetention)); err != nil {
		return false, errors.Wrap(err, "prune rate limits")
	}

	var count int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM rate_limits WHERE email = ? AND requested_at > ?`,
		email, now.Add(-RateLimitWindow)).Scan(&count); err != nil {
		return false, errors.Wrap(err, "count rate limit window")
	}
	if count >= RateLimitMax {
		if err := tx.Commit(); err != nil {
			return false, errors.Wrap(err, "commit rate limit transaction")
		}
		s.logger.LogAttrs(ctx, slog.LevelWarn, "rate limit exceeded",
			slog.String("email", MaskEmail(email)), slog.Int("count", count))
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rate_limits (email, requested_at) VALUES (?, ?)`,
		email, now); err != nil {
		return false, errors.Wrap(err, "record rate limit entry")
	}
	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "commit rate limit transaction")
	}
	return true, nil
}
