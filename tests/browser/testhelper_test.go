package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "hipat/internal/adapters/http"
	"hipat/internal/adapters/http/middleware"
	"hipat/internal/adapters/storage"
	clientStore "hipat/internal/adapters/storage/client"
	mentorStore "hipat/internal/adapters/storage/mentor"
	outboxStore "hipat/internal/adapters/storage/outbox"
	sessionStore "hipat/internal/adapters/storage/session"
	submissionStore "hipat/internal/adapters/storage/submission"
	toolStore "hipat/internal/adapters/storage/tool"
	"hipat/internal/application/channel"
	"hipat/internal/application/orchestrators"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL  string
	DB       *sql.DB
	Server   *http.Server
	PW       *playwright.Playwright
	Browser  playwright.Browser
	Stores   *web.Stores
	MentorID string
	tmpDir   string
}

// newTestApp creates a fully wired app with a temp SQLite DB and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	// Create temp directory for the database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Run migrations
	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	// Create stores
	stores := &web.Stores{
		ToolStore:       toolStore.NewSQLiteStore(db),
		SubmissionStore: submissionStore.NewSQLiteStore(db),
		ClientStore:     clientStore.NewSQLiteStore(db),
		MentorStore:     mentorStore.NewSQLiteStore(db),
		SessionStore:    sessionStore.NewSQLiteStore(db),
		OutboxStore:     outboxStore.NewSQLiteStore(db),
	}

	ctx := context.Background()
	generateID := func() string { return uuid.New().String() }

	// Seed the tool catalog and a default mentor
	if err := orchestrators.ExecuteSeedTools(ctx, orchestrators.SeedToolsDeps{ToolStore: stores.ToolStore}); err != nil {
		t.Fatalf("failed to seed tools: %v", err)
	}
	mentorID, err := orchestrators.ExecuteSeedMentor(ctx, orchestrators.SeedMentorDeps{
		MentorStore: stores.MentorStore,
		GenerateID:  generateID,
	}, "Pat Rivera", "pat@test.com", "Rivera Coaching")
	if err != nil {
		t.Fatalf("failed to seed mentor: %v", err)
	}
	web.DefaultMentorID = mentorID

	// Channel hub: completions record submissions against the temp DB
	recorder := &orchestrators.SubmissionRecorder{Deps: orchestrators.RecordSubmissionDeps{
		SubmissionStore: stores.SubmissionStore,
		GenerateID:      generateID,
		Now:             time.Now,
	}}
	hub := channel.NewHub(stores.ToolStore, recorder)

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Start HTTP server
	mux := web.NewMux("static", stores, hub, nil)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/book/" + mentorID)
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL:  baseURL,
		DB:       db,
		Server:   srv,
		PW:       pw,
		Browser:  browser,
		Stores:   stores,
		MentorID: mentorID,
		tmpDir:   tmpDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
