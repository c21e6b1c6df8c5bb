// Package delivery sends athlete-facing email: the package-ready
// notification and the abandoned-checkout recovery nudge. Transient
// transport failures are retried with exponential backoff.
package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/raceprep/raceprep/internal/errors"
)

// Config is the SMTP transport configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message once. Mailer adds retries on top.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends through a plain SMTP relay.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send submits the message. net/smtp has no context support, so
// cancellation is checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "send email")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(b.String())); err != nil {
		return errors.Wrap(err, "send email", slog.String("host", s.cfg.Host))
	}
	return nil
}

// Retry policy for outbound mail.
const (
	retryBase  = time.Second
	maxRetries = 4
)

// Mailer wraps a Sender with backoff and composes the product emails.
// It satisfies the webhook's RecoverySender.
type Mailer struct {
	logger  *slog.Logger
	sender  Sender
	backoff time.Duration
}

func NewMailer(logger *slog.Logger, sender Sender) *Mailer {
	return &Mailer{logger: logger, sender: sender, backoff: retryBase}
}

// WithBackoff overrides the retry base interval.
func (m *Mailer) WithBackoff(d time.Duration) *Mailer {
	m.backoff = d
	return m
}

func (m *Mailer) send(ctx context.Context, msg Message) error {
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(m.backoff))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := m.sender.Send(ctx, msg); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "email attempt failed",
				slog.Int("attempt", attempt), errors.SlogError(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "deliver email", slog.Int("attempts", attempt))
	}
	return nil
}

// SendRecovery nudges an athlete back to an expired checkout session.
func (m *Mailer) SendRecovery(ctx context.Context, email, recoveryURL string) error {
	return m.send(ctx, Message{
		To:      email,
		Subject: "Your training plan is still waiting",
		Body: "You were one step away from your custom training plan.\r\n\r\n" +
			"Pick up where you left off: " + recoveryURL + "\r\n\r\n" +
			"The link expires in 24 hours.\r\n",
	})
}

// SendPackageReady tells the athlete their package has been generated.
func (m *Mailer) SendPackageReady(ctx context.Context, email, name, raceName string) error {
	return m.send(ctx, Message{
		To:      email,
		Subject: fmt.Sprintf("Your %s training package is ready", raceName),
		Body: fmt.Sprintf("Hi %s,\r\n\r\nYour full training package for %s has been generated: "+
			"workout files, weekly calendar, fueling plan and the athlete guide.\r\n\r\n"+
			"Load the workout files onto your head unit in filename order and read the guide "+
			"before week one.\r\n", name, raceName),
	})
}
