package store

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raceprep/raceprep/internal/errors"
)

// Order is one append-only order log entry. Email is stored masked; the
// raw address never reaches the database.
type Order struct {
	ID          string
	EventID     string
	Email       string
	ProductType string
	AmountCents int64
	Currency    string
	CreatedAt   time.Time
}

// AppendOrder masks the email and appends the order. A missing id gets a
// fresh UUID; the assigned id is returned.
func (s *Store) AppendOrder(ctx context.Context, o Order) (string, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if _, err := s.readWrite.ExecContext(ctx, `
		INSERT INTO orders (id, event_id, email_masked, product_type, amount_cents, currency, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.EventID, MaskEmail(o.Email), o.ProductType, o.AmountCents,
		o.Currency, o.CreatedAt.UTC()); err != nil {
		return "", errors.Wrap(err, "append order",
			slog.String("event_id", o.EventID), slog.String("product_type", o.ProductType))
	}
	return o.ID, nil
}

// RecentOrders returns the newest orders, masked emails included.
func (s *Store) RecentOrders(ctx context.Context, limit int) ([]Order, error) {
	rows, err := s.readOnly.QueryContext(ctx, `
		SELECT id, event_id, email_masked, product_type, amount_cents, currency, created_at
		FROM orders ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query recent orders")
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.EventID, &o.Email, &o.ProductType,
			&o.AmountCents, &o.Currency, &o.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan order row")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate order rows")
	}
	return orders, nil
}

// MaskEmail reduces an address to first characters and the TLD, e.g.
// jane@example.com becomes j***@e***.com.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "***"
	}
	local, domain := email[:at], email[at+1:]
	masked := local[:1] + "***@"
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 {
		return masked + domain[:1] + "***"
	}
	return masked + domain[:1] + "***" + domain[dot:]
}
