// Package webhook receives purchase events from the payment platform,
// verifies them, deduplicates them, and dispatches the generation
// pipeline. The critical ordering is mark-then-run: an event id is
// recorded as processed before any work starts, so platform retries can
// never double-generate.
package webhook

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raceprep/raceprep/internal/errors"
)

// EventType discriminates the payment platform's event payloads.
type EventType string

const (
	EventCheckoutCompleted EventType = "checkout.session.completed"
	EventCheckoutExpired   EventType = "checkout.session.expired"
)

// Product types routed by the dispatcher.
const (
	ProductTrainingPlan = "training_plan"
	ProductCoaching     = "coaching"
	ProductConsulting   = "consulting"
)

var validProducts = map[string]bool{
	ProductTrainingPlan: true,
	ProductCoaching:     true,
	ProductConsulting:   true,
}

var ErrBadEvent = errors.NewSentinel("malformed webhook event")

// Customer is the payer identity attached to a checkout session.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
}

// Consent mirrors the platform's promotional-consent block.
type Consent struct {
	Promotions string `json:"promotions"`
}

// Event is the raw webhook payload. Metadata values arrive as strings;
// Order converts and checks them.
type Event struct {
	ID              string            `json:"id" validate:"required"`
	Type            EventType         `json:"type" validate:"required"`
	Created         int64             `json:"created"`
	CustomerDetails Customer          `json:"customer_details"`
	Metadata        map[string]string `json:"metadata"`
	Consent         *Consent          `json:"consent"`
	RecoveryURL     string            `json:"recovery_url"`
}

//nolint:gochecknoglobals // the validator instance is read-only after construction.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseEvent decodes and structurally validates a webhook body.
func ParseEvent(body []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(body, &e); err != nil {
		return Event{}, errors.Wrap(ErrBadEvent, "decode webhook body", slog.String("cause", err.Error()))
	}
	if e.Type == "" {
		return Event{}, errors.Wrap(ErrBadEvent, "event type missing", slog.String("event_id", e.ID))
	}
	if e.ID == "" {
		return Event{}, errors.Wrap(ErrBadEvent, "event id missing")
	}
	return e, nil
}

// Order is a validated purchase extracted from a completed-checkout event.
type Order struct {
	EventID     string
	ProductType string
	Tier        string
	IntakeID    string
	AthleteName string
	Name        string
	Email       string
	Weeks       int
	PriceCents  int64
}

// Order validates the checkout event and converts its metadata. Price
// parity against the server-side computation is part of validation.
func (e Event) Order() (Order, error) {
	if e.Type != EventCheckoutCompleted {
		return Order{}, errors.Wrap(ErrBadEvent, "not a completed checkout",
			slog.String("type", string(e.Type)))
	}
	if err := validate.Struct(e); err != nil {
		return Order{}, errors.Wrap(ErrBadEvent, "validate event", slog.String("cause", err.Error()))
	}

	productType := e.Metadata["product_type"]
	if !validProducts[productType] {
		return Order{}, errors.Wrap(ErrBadEvent, "unknown product type",
			slog.String("product_type", productType))
	}

	o := Order{
		EventID:     e.ID,
		ProductType: productType,
		Tier:        e.Metadata["tier"],
		IntakeID:    e.Metadata["intake_id"],
		AthleteName: e.Metadata["athlete_name"],
		Name:        e.CustomerDetails.Name,
		Email:       strings.ToLower(e.CustomerDetails.Email),
	}

	if productType == ProductTrainingPlan {
		if o.IntakeID == "" {
			return Order{}, errors.Wrap(ErrBadEvent, "intake id missing", slog.String("event_id", e.ID))
		}
		weeks, err := strconv.Atoi(e.Metadata["weeks"])
		if err != nil || weeks <= 0 {
			return Order{}, errors.Wrap(ErrBadEvent, "bad weeks metadata",
				slog.String("weeks", e.Metadata["weeks"]))
		}
		o.Weeks = weeks

		cents, err := strconv.ParseInt(e.Metadata["price_cents"], 10, 64)
		if err != nil {
			return Order{}, errors.Wrap(ErrBadEvent, "bad price metadata",
				slog.String("price_cents", e.Metadata["price_cents"]))
		}
		if want := PriceCents(weeks); cents != want {
			return Order{}, errors.Wrap(ErrBadEvent, "price mismatch",
				slog.Int64("got_cents", cents), slog.Int64("want_cents", want))
		}
		o.PriceCents = cents
	}
	return o, nil
}

// WantsRecovery reports whether an expired checkout qualifies for a
// recovery email: promotional consent opted in and a recovery URL present.
func (e Event) WantsRecovery() bool {
	return e.Type == EventCheckoutExpired &&
		e.Consent != nil && e.Consent.Promotions == "opt_in" &&
		e.RecoveryURL != ""
}
