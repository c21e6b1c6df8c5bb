package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/store"
)

const maxBodyBytes = 1 << 20

// Runner dispatches a generation pipeline run for an athlete.
type Runner interface {
	Run(ctx context.Context, athleteID string) error
}

// RecoverySender sends the abandoned-cart recovery email.
type RecoverySender interface {
	SendRecovery(ctx context.Context, email, recoveryURL string) error
}

// Response is the JSON body of every webhook reply.
type Response struct {
	Status    string `json:"status"`
	AthleteID string `json:"athlete_id,omitempty"`
}

const (
	StatusSuccess      = "success"
	StatusDuplicate    = "duplicate"
	StatusIgnored      = "ignored"
	StatusRecoverySent = "recovery_sent"
)

// Handler is the webhook endpoint. Secret may be empty only in test mode.
type Handler struct {
	logger   *slog.Logger
	store    *store.Store
	runner   Runner
	recovery RecoverySender
	secret   string
	testMode bool
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New constructs the handler. now is injected for reproducible tests.
func New(logger *slog.Logger, st *store.Store, runner Runner, recovery RecoverySender,
	secret string, testMode bool, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		logger:   logger,
		store:    st,
		runner:   runner,
		recovery: recovery,
		secret:   secret,
		testMode: testMode,
		now:      now,
		limiters: map[string]*rate.Limiter{},
	}
}

// Per-IP burst control in front of the durable per-email cap.
const (
	ipRatePerSecond = 2
	ipBurst         = 10
)

func (h *Handler) limiterFor(remoteAddr string) *rate.Limiter {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(ipRatePerSecond), ipBurst)
		h.limiters[host] = l
	}
	return l
}

// ServeHTTP implements the POST webhook endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.limiterFor(r.RemoteAddr).Allow() {
		h.reply(ctx, w, http.StatusTooManyRequests, Response{Status: "rate_limited"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.reply(ctx, w, http.StatusBadRequest, Response{Status: "unreadable_body"})
		return
	}

	if h.secret != "" {
		if !VerifySignature(h.secret, body, r.Header.Get(SignatureHeader)) {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "webhook signature rejected",
				slog.String("remote", r.RemoteAddr))
			h.reply(ctx, w, http.StatusUnauthorized, Response{Status: "bad_signature"})
			return
		}
	} else if !h.testMode {
		// Refusing to run unsigned outside test mode beats silently
		// accepting forged events.
		h.reply(ctx, w, http.StatusServiceUnavailable, Response{Status: "secret_not_configured"})
		return
	}

	event, err := ParseEvent(body)
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "webhook event rejected", errors.SlogError(err))
		h.reply(ctx, w, http.StatusBadRequest, Response{Status: "invalid_event"})
		return
	}

	switch event.Type {
	case EventCheckoutExpired:
		h.handleExpired(ctx, w, event)
	case EventCheckoutCompleted:
		h.handleCompleted(ctx, w, event)
	default:
		h.reply(ctx, w, http.StatusOK, Response{Status: StatusIgnored})
	}
}

func (h *Handler) handleExpired(ctx context.Context, w http.ResponseWriter, event Event) {
	if !event.WantsRecovery() {
		h.reply(ctx, w, http.StatusOK, Response{Status: StatusIgnored})
		return
	}
	if err := h.recovery.SendRecovery(ctx, event.CustomerDetails.Email, event.RecoveryURL); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "recovery email failed", errors.SlogError(err))
		h.reply(ctx, w, http.StatusServiceUnavailable, Response{Status: "recovery_failed"})
		return
	}
	h.reply(ctx, w, http.StatusOK, Response{Status: StatusRecoverySent})
}

func (h *Handler) handleCompleted(ctx context.Context, w http.ResponseWriter, event Event) {
	order, err := event.Order()
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelWarn, "order rejected", errors.SlogError(err))
		h.reply(ctx, w, http.StatusBadRequest, Response{Status: "invalid_order"})
		return
	}

	now := h.now()

	// The duplicate check comes first: a platform retry must never charge
	// the email's rate-limit budget. Marking before running also means a
	// retry arriving mid-run comes back as a duplicate.
	first, err := h.store.MarkEvent(ctx, order.EventID, now)
	if err != nil {
		h.reply(ctx, w, http.StatusServiceUnavailable, Response{Status: "store_unavailable"})
		return
	}
	if !first {
		h.reply(ctx, w, http.StatusOK, Response{Status: StatusDuplicate, AthleteID: order.IntakeID})
		return
	}

	allowed, err := h.store.AllowRequest(ctx, order.Email, now)
	if err != nil {
		h.reply(ctx, w, http.StatusServiceUnavailable, Response{Status: "store_unavailable"})
		return
	}
	if !allowed {
		// Release the mark: the order never ran, and the platform's retry
		// should process it once the window clears.
		if err := h.store.UnmarkEvent(ctx, order.EventID); err != nil {
			h.logger.LogAttrs(ctx, slog.LevelError, "event unmark failed", errors.SlogError(err))
		}
		h.reply(ctx, w, http.StatusTooManyRequests, Response{Status: "rate_limited"})
		return
	}

	if _, err := h.store.AppendOrder(ctx, store.Order{
		EventID:     order.EventID,
		Email:       order.Email,
		ProductType: order.ProductType,
		AmountCents: order.PriceCents,
		Currency:    "usd",
		CreatedAt:   now,
	}); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "order log append failed", errors.SlogError(err))
		h.reply(ctx, w, http.StatusServiceUnavailable, Response{Status: "store_unavailable"})
		return
	}

	switch order.ProductType {
	case ProductCoaching, ProductConsulting:
		// Logged above; no generation for these products.
		h.logger.LogAttrs(ctx, slog.LevelInfo, "subscription order recorded",
			slog.String("product_type", order.ProductType),
			slog.String("event_id", order.EventID))
		if err := h.store.CompleteEvent(ctx, order.EventID, h.now()); err != nil {
			h.logger.LogAttrs(ctx, slog.LevelError, "event completion failed", errors.SlogError(err))
		}
		h.reply(ctx, w, http.StatusOK, Response{Status: StatusSuccess})
		return
	}

	if err := h.runner.Run(ctx, order.IntakeID); err != nil {
		// The mark stays: replays of failed runs are a manual operation.
		h.logger.LogAttrs(ctx, slog.LevelError, "pipeline run failed",
			slog.String("athlete_id", order.IntakeID), errors.SlogError(err))
		h.reply(ctx, w, http.StatusBadGateway, Response{Status: "pipeline_failed", AthleteID: order.IntakeID})
		return
	}
	if err := h.store.CompleteEvent(ctx, order.EventID, h.now()); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "event completion failed", errors.SlogError(err))
	}
	h.reply(ctx, w, http.StatusOK, Response{Status: StatusSuccess, AthleteID: order.IntakeID})
}

func (h *Handler) reply(ctx context.Context, w http.ResponseWriter, code int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.LogAttrs(ctx, slog.LevelError, "write webhook response", errors.SlogError(err))
	}
}
