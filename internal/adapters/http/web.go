package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hipat/internal/adapters/email"
	"hipat/internal/adapters/http/middleware"
	clientStore "hipat/internal/adapters/storage/client"
	mentorStore "hipat/internal/adapters/storage/mentor"
	outboxStore "hipat/internal/adapters/storage/outbox"
	sessionStore "hipat/internal/adapters/storage/session"
	submissionStore "hipat/internal/adapters/storage/submission"
	toolStore "hipat/internal/adapters/storage/tool"
	"hipat/internal/application/channel"
)

// Stores holds all storage dependencies.
type Stores struct {
	ToolStore       toolStore.Store
	SubmissionStore submissionStore.Store
	ClientStore     clientStore.Store
	MentorStore     mentorStore.Store
	SessionStore    sessionStore.Store
	OutboxStore     outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from HIPAT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("HIPAT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("HIPAT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("HIPAT_ENV") == "production" {
		log.Fatal("HIPAT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set HIPAT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global channel hub instance (set by NewMux)
var hub *channel.Hub

// Promotion counter (set by NewMux when a registry is supplied; nil otherwise)
var promotionsTotal prometheus.Counter

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var emailReplyTo string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, replyTo string) {
	emailSender = sender
	emailFromAddress = from
	emailReplyTo = replyTo
}

// NewMux wires HTTP handlers for the app.
// When registry is non-nil, request durations are recorded on it and a
// Prometheus scrape endpoint is mounted at /metrics.
func NewMux(staticDir string, s *Stores, h *channel.Hub, registry *prometheus.Registry) http.Handler {
	stores = s
	hub = h

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	var durations *prometheus.HistogramVec
	if registry != nil {
		durations = middleware.NewRequestDurations()
		registry.MustRegister(durations)
		promotionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hipat",
			Name:      "promotions_total",
			Help:      "Submissions promoted to roster clients.",
		})
		registry.MustRegister(promotionsTotal)
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(durations),
	)
}
