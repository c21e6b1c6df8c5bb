package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/raceprep/raceprep/internal/delivery"
	"github.com/raceprep/raceprep/internal/envstruct"
	"github.com/raceprep/raceprep/internal/errors"
	"github.com/raceprep/raceprep/internal/guide"
	"github.com/raceprep/raceprep/internal/logging"
	"github.com/raceprep/raceprep/internal/pipeline"
	"github.com/raceprep/raceprep/internal/store"
	"github.com/raceprep/raceprep/internal/webhook"
)

type application struct {
	logger         *slog.Logger
	store          *store.Store
	webhookHandler *webhook.Handler
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"RACEPREP_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"RACEPREP_SQLITE_URL" envDefault:"./raceprep.sqlite3"`
	// DataDir holds one directory per athlete: the intake profile in, the generated package out.
	DataDir string `env:"RACEPREP_DATA_DIR" envDefault:"./athletes"`
	// Author is stamped into every generated workout file.
	Author string `env:"RACEPREP_AUTHOR" envDefault:"RacePrep"`
	// WebhookSecret verifies checkout webhook signatures. Empty is only allowed in test mode.
	WebhookSecret string `env:"RACEPREP_WEBHOOK_SECRET" envDefault:""`
	// TestMode accepts unsigned webhook events. Never enable in production.
	TestMode bool `env:"RACEPREP_TEST_MODE" envDefault:"false"`
	// GuidePDF renders the athlete guide to PDF through headless Chromium.
	GuidePDF bool `env:"RACEPREP_GUIDE_PDF" envDefault:"false"`

	SMTPHost     string `env:"RACEPREP_SMTP_HOST" envDefault:""`
	SMTPPort     int    `env:"RACEPREP_SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"RACEPREP_SMTP_USERNAME" envDefault:""`
	SMTPPassword string `env:"RACEPREP_SMTP_PASSWORD" envDefault:""`
	SMTPFrom     string `env:"RACEPREP_SMTP_FROM" envDefault:"coach@raceprep.example"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	st, err := store.New(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open store", slog.String("url", cfg.SqliteURL))
	}
	defer func() { _ = st.Close() }()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to store")

	var renderer guide.Renderer
	if cfg.GuidePDF {
		renderer = guide.PlaywrightRenderer{}
	}
	pl, err := pipeline.New(logger, pipeline.Config{BaseDir: cfg.DataDir, Author: cfg.Author}, renderer, nil)
	if err != nil {
		return errors.Wrap(err, "build pipeline")
	}

	mailer := newMailer(logger, cfg)
	runner := &pipelineRunner{pipeline: pl, mailer: mailer, logger: logger}

	app := application{
		logger: logger,
		store:  st,
		webhookHandler: webhook.New(logger, st, runner, mailer,
			cfg.WebhookSecret, cfg.TestMode, nil),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// newMailer wires SMTP delivery, falling back to a log-only sender when
// no relay is configured so local runs still work end to end.
func newMailer(logger *slog.Logger, cfg config) *delivery.Mailer {
	if cfg.SMTPHost == "" {
		return delivery.NewMailer(logger, logOnlySender{logger: logger})
	}
	return delivery.NewMailer(logger, delivery.NewSMTPSender(delivery.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}))
}

// logOnlySender logs outbound mail instead of sending it.
type logOnlySender struct {
	logger *slog.Logger
}

func (s logOnlySender) Send(ctx context.Context, msg delivery.Message) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "email suppressed (no SMTP host configured)",
		slog.String("to", store.MaskEmail(msg.To)), slog.String("subject", msg.Subject))
	return nil
}

// pipelineRunner adapts the pipeline to the webhook's Runner and sends
// the package-ready mail after a successful run.
type pipelineRunner struct {
	pipeline *pipeline.Pipeline
	mailer   *delivery.Mailer
	logger   *slog.Logger
}

func (r *pipelineRunner) Run(ctx context.Context, athleteID string) error {
	res, err := r.pipeline.Run(ctx, athleteID)
	if err != nil {
		return err
	}
	// The package exists either way; a failed notification is recoverable
	// by the operator, a failed run is not.
	if err := r.mailer.SendPackageReady(ctx, res.Email, res.AthleteName, res.RaceName); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "package-ready email failed",
			slog.String("athlete_id", athleteID), errors.SlogError(err))
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
