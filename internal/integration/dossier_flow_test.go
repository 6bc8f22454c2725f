package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database"
	"github.com/postmodernjester/rolodex/internal/database/migration"
	dbpostgres "github.com/postmodernjester/rolodex/internal/database/postgres"
	"github.com/postmodernjester/rolodex/internal/delivery/http/middleware"
	"github.com/postmodernjester/rolodex/internal/delivery/http/routes"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type contactData struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	AISummary   string    `json:"ai_summary"`
	MiniSummary string    `json:"mini_summary"`
}

type dossierData struct {
	Contact contactData `json:"contact"`
	Notes   []struct {
		Content string `json:"content"`
	} `json:"notes"`
	Profile *struct {
		Origin string `json:"origin"`
	} `json:"profile"`
	Display struct {
		Name        string `json:"name"`
		Headline    string `json:"headline"`
		OpenActions int    `json:"open_actions"`
	} `json:"display"`
}

// generationStub stands in for the external text endpoint and records what
// the compiler sent it.
type generationStub struct {
	mu    sync.Mutex
	calls int
	facts string
	notes string
}

func (g *generationStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Facts string   `json:"facts"`
			Notes string   `json:"notes"`
			URLs  []string `json:"urls"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		g.mu.Lock()
		g.calls++
		g.facts = req.Facts
		g.notes = req.Notes
		g.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"summary":  "Maya Santoso runs backend engineering at Northwind Labs and is actively hiring.",
			"oneliner": "Engineering manager at Northwind Labs.",
		})
	}
}

func TestIntegration_ContactNotesDossierFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	stub := &generationStub{}
	gen := httptest.NewServer(stub.handler())
	defer gen.Close()

	cfg := testConfig(gen.URL)
	app := newTestFiberApp(t, cfg, db)

	email := fmt.Sprintf("flow-%d@example.test", time.Now().UnixNano())
	defer cleanupUser(t, db, email)

	registerUser(t, app, email, "a-strong-password")
	tok := loginAndGetJWT(t, app, email, "a-strong-password")
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	contactID := createContact(t, app, tok)
	addNote(t, app, tok, contactID, map[string]any{
		"content":         "Talked about their monolith migration at the conference.",
		"context_label":   "conference",
		"entry_date":      "2026-08-01",
		"action_text":     "Send the migration runbook",
		"action_due_date": "2026-09-01",
	})
	addNote(t, app, tok, contactID, map[string]any{
		"content":       "Coffee follow-up, they are hiring two backend roles.",
		"context_label": "coffee",
		"entry_date":    "2026-08-15",
	})

	generated := generateDossier(t, app, tok, contactID)
	if generated.AISummary != "Maya Santoso runs backend engineering at Northwind Labs and is actively hiring." {
		t.Fatalf("generate: unexpected ai_summary %q", generated.AISummary)
	}
	if generated.MiniSummary != "Engineering manager at Northwind Labs." {
		t.Fatalf("generate: unexpected mini_summary %q", generated.MiniSummary)
	}

	stub.mu.Lock()
	calls, facts, notes := stub.calls, stub.facts, stub.notes
	stub.mu.Unlock()
	if calls != 1 {
		t.Fatalf("generate: expected one endpoint call, got %d", calls)
	}
	if !bytes.Contains([]byte(facts), []byte("Maya Santoso")) {
		t.Fatalf("generate: facts block missing contact name: %q", facts)
	}
	if !bytes.Contains([]byte(notes), []byte("monolith migration")) {
		t.Fatalf("generate: notes block missing note content: %q", notes)
	}

	view := viewDossier(t, app, tok, contactID)
	if view.Contact.AISummary != generated.AISummary {
		t.Fatalf("view: summary not persisted, got %q", view.Contact.AISummary)
	}
	if len(view.Notes) != 2 {
		t.Fatalf("view: expected 2 notes, got %d", len(view.Notes))
	}
	if view.Profile == nil || view.Profile.Origin != "synthesized" {
		t.Fatalf("view: expected synthesized profile for an unlinked contact, got %+v", view.Profile)
	}
	if view.Display.Name != "Maya Santoso" {
		t.Fatalf("view: expected display name from contact, got %q", view.Display.Name)
	}
	if view.Display.OpenActions != 1 {
		t.Fatalf("view: expected 1 open action, got %d", view.Display.OpenActions)
	}

	// A different account must not see this contact at all.
	otherEmail := fmt.Sprintf("flow-other-%d@example.test", time.Now().UnixNano())
	defer cleanupUser(t, db, otherEmail)
	registerUser(t, app, otherEmail, "a-strong-password")
	otherTok := loginAndGetJWT(t, app, otherEmail, "a-strong-password")

	req := httptest.NewRequest("GET", "/api/v1/contacts/"+contactID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+otherTok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("cross-owner request error: %v", err)
	}
	defer resp.Body.Close()
	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("cross-owner decode error: %v", err)
	}
	if sr.Status != 404 || sr.Message != "Contact not found" {
		t.Fatalf("cross-owner: expected 404 Contact not found, got %d %q", sr.Status, sr.Message)
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("ROLODEX_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set ROLODEX_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		Host:     host,
		Port:     port,
		Name:     name,
		User:     user,
		Password: pass,
		SSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/dossier_flow_test.go
	// repo root: ../../
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

func testConfig(narrativeURL string) config.Config {
	return config.Config{
		App: config.AppConfig{AppName: "rolodex", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:  stringsOrDefault(os.Getenv("ROLODEX_TEST_JWT_ACCESS_SECRET"), "test-access-secret-16"),
			RefreshSecret: stringsOrDefault(os.Getenv("ROLODEX_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret-16"),
			AccessTTL:     15 * time.Minute,
			RefreshTTL:    24 * time.Hour,
		},
		Narrative: config.NarrativeConfig{BaseURL: narrativeURL, Timeout: 5 * time.Second},
	}
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	cacheClient := cache.NewRedis(cfg.Redis, nil)
	hub := ws.NewHub(nil)
	go hub.Run()

	routes.NewRegistry(cfg, db, cacheClient, hub, nil).Register(app)
	return app
}

func cleanupUser(t *testing.T, db database.DB, email string) {
	t.Helper()

	// contacts, notes and the profile cascade off the user row
	_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE email = $1`, email)
}

func registerUser(t *testing.T, app *fiber.App, email, password string) {
	t.Helper()

	sr := postJSON(t, app, "", "/api/v1/auth/register", map[string]string{"email": email, "password": password})
	if sr.Status != 201 {
		t.Fatalf("register: expected status=201, got %d (message=%s)", sr.Status, sr.Message)
	}
}

func loginAndGetJWT(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()

	sr := postJSON(t, app, "", "/api/v1/auth/login", map[string]string{"email": email, "password": password})
	if sr.Status != 200 {
		t.Fatalf("login: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	return data.AccessToken
}

func createContact(t *testing.T, app *fiber.App, tok string) uuid.UUID {
	t.Helper()

	sr := postJSON(t, app, tok, "/api/v1/contacts", map[string]any{
		"full_name":        "Maya Santoso",
		"company":          "Northwind Labs",
		"role":             "Engineering manager",
		"how_we_met":       "GopherCon hallway track",
		"follow_up_status": "pending",
	})
	if sr.Status != 201 {
		t.Fatalf("create contact: expected status=201, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data contactData
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("create contact: data unmarshal error: %v", err)
	}
	if data.ID == uuid.Nil {
		t.Fatalf("create contact: missing id")
	}
	return data.ID
}

func addNote(t *testing.T, app *fiber.App, tok string, contactID uuid.UUID, body map[string]any) {
	t.Helper()

	sr := postJSON(t, app, tok, "/api/v1/contacts/"+contactID.String()+"/notes", body)
	if sr.Status != 201 {
		t.Fatalf("add note: expected status=201, got %d (message=%s)", sr.Status, sr.Message)
	}
}

func generateDossier(t *testing.T, app *fiber.App, tok string, contactID uuid.UUID) contactData {
	t.Helper()

	sr := postJSON(t, app, tok, "/api/v1/contacts/"+contactID.String()+"/dossier", nil)
	if sr.Status != 200 {
		t.Fatalf("generate dossier: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data contactData
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("generate dossier: data unmarshal error: %v", err)
	}
	return data
}

func viewDossier(t *testing.T, app *fiber.App, tok string, contactID uuid.UUID) dossierData {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/contacts/"+contactID.String()+"/dossier", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("view dossier request error: %v", err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("view dossier decode error: %v", err)
	}
	if sr.Status != 200 {
		t.Fatalf("view dossier: expected status=200, got %d (message=%s)", sr.Status, sr.Message)
	}

	var data dossierData
	if err := json.Unmarshal(sr.Data, &data); err != nil {
		t.Fatalf("view dossier: data unmarshal error: %v", err)
	}
	return data
}

func postJSON(t *testing.T, app *fiber.App, tok, path string, body any) semanticResponse {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body for %s: %v", path, err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest("POST", path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s error: %v", path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("decode %s response: %v", path, err)
	}
	return sr
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
