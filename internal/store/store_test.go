package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceprep/raceprep/internal/store"
	"github.com/raceprep/raceprep/internal/testhelpers"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.Context(), ":memory:", testhelpers.NewLogger(testhelpers.NewWriter(t)))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestMarkEvent_FirstAndDuplicate(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.MarkEvent(t.Context(), "evt_123", now)
	require.NoError(t, err)
	assert.True(t, first, "first sighting must report true")

	second, err := s.MarkEvent(t.Context(), "evt_123", now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, second, "duplicate must report false")

	other, err := s.MarkEvent(t.Context(), "evt_456", now)
	require.NoError(t, err)
	assert.True(t, other, "unrelated event is not a duplicate")
}

func TestUnmarkEvent(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.MarkEvent(t.Context(), "evt_release", now)
	require.NoError(t, err)
	require.True(t, first)

	// Releasing an unprocessed claim lets a retry claim it again.
	require.NoError(t, s.UnmarkEvent(t.Context(), "evt_release"))
	again, err := s.MarkEvent(t.Context(), "evt_release", now.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, again, "released event must be claimable again")

	// A completed event is immune to unmarking.
	first, err = s.MarkEvent(t.Context(), "evt_kept", now)
	require.NoError(t, err)
	require.True(t, first)
	require.NoError(t, s.CompleteEvent(t.Context(), "evt_kept", now.Add(time.Second)))
	require.NoError(t, s.UnmarkEvent(t.Context(), "evt_kept"))
	dup, err := s.MarkEvent(t.Context(), "evt_kept", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, dup, "completed event stays marked")
}

func TestCompleteEvent(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := s.MarkEvent(t.Context(), "evt_done", now)
	require.NoError(t, err)
	require.True(t, first)
	require.NoError(t, s.CompleteEvent(t.Context(), "evt_done", now.Add(time.Second)))

	dup, err := s.MarkEvent(t.Context(), "evt_done", now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, dup, "completed event stays marked")
}

func TestAllowRequest_LimitBoundary(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := range store.RateLimitMax {
		ok, err := s.AllowRequest(t.Context(), "jane@example.com", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok, "request %d of %d must pass", i+1, store.RateLimitMax)
	}

	ok, err := s.AllowRequest(t.Context(), "jane@example.com", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "request %d must be rejected", store.RateLimitMax+1)

	// A different address is unaffected.
	ok, err = s.AllowRequest(t.Context(), "omar@example.com", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowRequest_CaseInsensitiveEmail(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// The store keys by lowercase email, so case variants draw on the
	// same budget.
	variants := []string{
		"jane@example.com",
		"Jane@example.com",
		"JANE@EXAMPLE.COM",
		"jane@Example.Com",
		"jAnE@example.com",
	}
	require.Len(t, variants, store.RateLimitMax)
	for i, email := range variants {
		ok, err := s.AllowRequest(t.Context(), email, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		assert.True(t, ok, "variant %q within the cap", email)
	}

	ok, err := s.AllowRequest(t.Context(), "Jane@Example.com", now.Add(10*time.Minute))
	require.NoError(t, err)
	assert.False(t, ok, "a case variant must not open a fresh budget")
}

func TestAllowRequest_RollingWindow(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := range store.RateLimitMax {
		ok, err := s.AllowRequest(t.Context(), "jane@example.com", now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.True(t, ok)
	}

	// 26 hours later the window has rolled past all five entries.
	ok, err := s.AllowRequest(t.Context(), "jane@example.com", now.Add(26*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok, "a request outside the 24h window must pass")
}

func TestAllowRequest_PrunesOldEntries(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	ok, err := s.AllowRequest(t.Context(), "jane@example.com", now)
	require.NoError(t, err)
	require.True(t, ok)

	// Eight days later the first entry is beyond retention; the call both
	// prunes it and passes.
	ok, err = s.AllowRequest(t.Context(), "jane@example.com", now.Add(8*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAppendAndReadOrders(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	id, err := s.AppendOrder(t.Context(), store.Order{
		EventID:     "evt_order_1",
		Email:       "jane@example.com",
		ProductType: "training_plan",
		AmountCents: 14900,
		Currency:    "usd",
		CreatedAt:   now,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.AppendOrder(t.Context(), store.Order{
		EventID:     "evt_order_2",
		Email:       "omar@example.net",
		ProductType: "coaching",
		AmountCents: 29900,
		Currency:    "usd",
		CreatedAt:   now.Add(time.Hour),
	})
	require.NoError(t, err)

	orders, err := s.RecentOrders(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "evt_order_2", orders[0].EventID, "newest first")
	assert.Equal(t, "o***@e***.net", orders[0].Email)
	assert.Equal(t, "j***@e***.com", orders[1].Email, "raw address never stored")
	assert.Equal(t, int64(14900), orders[1].AmountCents)
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		email string
		want  string
	}{
		{email: "jane@example.com", want: "j***@e***.com"},
		{email: "o@d.co", want: "o***@d***.co"},
		{email: "weird@localhost", want: "w***@l***"},
		{email: "not-an-email", want: "***"},
		{email: "@example.com", want: "***"},
		{email: "jane@", want: "***"},
		{email: "", want: "***"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, store.MaskEmail(tt.email), "MaskEmail(%q)", tt.email)
	}
}
