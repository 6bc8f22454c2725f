package middleware

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/postmodernjester/rolodex/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type testEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func newProtectedApp(svc jwt.Service) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware().Middleware())

	grp := app.Group("", NewAuthMiddleware(svc).Middleware())
	grp.Get("/protected", func(c fiber.Ctx) error {
		id, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
		return c.SendString(id.String())
	})
	return app
}

func decodeEnvelope(t *testing.T, body io.Reader) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func TestAuthMiddlewareRejectsMissingBearer(t *testing.T) {
	svc := jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Minute, time.Hour)
	app := newProtectedApp(svc)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp.Body); env.Message != "Unauthorized" {
		t.Fatalf("expected message %q, got %q", "Unauthorized", env.Message)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	svc := jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Minute, time.Hour)
	app := newProtectedApp(svc)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp.Body); env.Message != "Invalid token" {
		t.Fatalf("expected message %q, got %q", "Invalid token", env.Message)
	}
}

func TestAuthMiddlewareRejectsRefreshTokenAsBearer(t *testing.T) {
	svc := jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Minute, time.Hour)
	app := newProtectedApp(svc)

	tok, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp.Body); env.Message != "Invalid token" {
		t.Fatalf("expected message %q, got %q", "Invalid token", env.Message)
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	svc := jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Millisecond, time.Hour)
	app := newProtectedApp(svc)

	tok, err := svc.GenerateAccessToken(uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
	if env := decodeEnvelope(t, resp.Body); env.Message != "Token expired" {
		t.Fatalf("expected message %q, got %q", "Token expired", env.Message)
	}
}

func TestAuthMiddlewarePassesUserIDToHandler(t *testing.T) {
	svc := jwt.NewHMACService("access-secret-0123456789", "refresh-secret-0123456789", time.Minute, time.Hour)
	app := newProtectedApp(svc)

	userID := uuid.New()
	tok, err := svc.GenerateAccessToken(userID, "a@b.c")
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(body) != userID.String() {
		t.Fatalf("expected handler to see user id %s, got %q", userID, string(body))
	}
}
