package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	_ "modernc.org/sqlite"

	emailPkg "hipat/internal/adapters/email"
	web "hipat/internal/adapters/http"
	"hipat/internal/adapters/storage"
	clientStorePkg "hipat/internal/adapters/storage/client"
	mentorStorePkg "hipat/internal/adapters/storage/mentor"
	outboxStorePkg "hipat/internal/adapters/storage/outbox"
	sessionStorePkg "hipat/internal/adapters/storage/session"
	submissionStorePkg "hipat/internal/adapters/storage/submission"
	toolStorePkg "hipat/internal/adapters/storage/tool"
	"hipat/internal/application/channel"
	"hipat/internal/application/orchestrators"
	"hipat/internal/config"
	outboxDomain "hipat/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogging(cfg.LogLevel)

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Run database migrations
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Metrics registry: runtime collectors plus query instrumentation
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	queryDurations := storage.NewQueryDurations()
	registry.MustRegister(queryDurations)
	timedDB := storage.NewTimedDB(db, queryDurations)

	// Create store instances (using timed DB for query instrumentation)
	stores := &web.Stores{
		ToolStore:       toolStorePkg.NewSQLiteStore(timedDB),
		SubmissionStore: submissionStorePkg.NewSQLiteStore(timedDB),
		ClientStore:     clientStorePkg.NewSQLiteStore(timedDB),
		MentorStore:     mentorStorePkg.NewSQLiteStore(timedDB),
		SessionStore:    sessionStorePkg.NewSQLiteStore(timedDB),
		OutboxStore:     outboxStorePkg.NewSQLiteStore(timedDB),
	}

	generateID := func() string { return uuid.New().String() }

	// Seed the system tool catalog (idempotent)
	if err := orchestrators.ExecuteSeedTools(context.Background(), orchestrators.SeedToolsDeps{ToolStore: stores.ToolStore}); err != nil {
		log.Fatalf("failed to seed tools: %v", err)
	}

	// Seed the default mentor and make it the request default
	mentorID, err := orchestrators.ExecuteSeedMentor(context.Background(), orchestrators.SeedMentorDeps{
		MentorStore: stores.MentorStore,
		GenerateID:  generateID,
	}, cfg.MentorName, cfg.MentorEmail, cfg.MentorBusiness)
	if err != nil {
		log.Fatalf("failed to seed mentor: %v", err)
	}
	web.DefaultMentorID = mentorID

	// Configure email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("HIPAT_ENV") == "production" {
			log.Println("WARNING: HIPAT_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set HIPAT_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, cfg.EmailFrom, cfg.EmailReplyTo)

	// Start outbox background worker for invite delivery
	executors := map[string]orchestrators.ActionExecutor{
		outboxDomain.ActionTypeInviteEmail: &orchestrators.InviteEmailExecutor{
			Sender:  sender,
			From:    cfg.EmailFrom,
			ReplyTo: cfg.EmailReplyTo,
		},
	}
	outboxStopCh := make(chan struct{})
	outboxProcessor := orchestrators.NewOutboxProcessor(stores.OutboxStore, executors)
	orchestrators.StartBackgroundWorker(outboxProcessor, time.Duration(cfg.OutboxIntervalSeconds)*time.Second, outboxStopCh)
	defer close(outboxStopCh)

	// Channel hub: tool dialogs record completions as submissions
	recorder := &orchestrators.SubmissionRecorder{Deps: orchestrators.RecordSubmissionDeps{
		SubmissionStore: stores.SubmissionStore,
		GenerateID:      generateID,
		Now:             time.Now,
	}}
	channelMetrics := channel.NewMetrics()
	registry.MustRegister(channelMetrics.Collectors()...)
	hub := channel.NewHub(stores.ToolStore, recorder, channel.WithMetrics(channelMetrics))

	// Create HTTP handler with middleware
	mux := web.NewMux(cfg.StaticDir, stores, hub, registry)

	// Start server
	log.Printf("HiPat %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, envOrDefault("HIPAT_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func setupLogging(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
