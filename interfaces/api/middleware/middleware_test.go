package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"buildboard/pkg/utils"
)

const secret = "middleware-secret"

func tokenFor(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.UserContext{ID: uuid.New(), Username: "u", Role: role}, secret, ttl)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestProtectedAndRoles(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestIDMiddleware())
	app.Get("/any", Protected(secret), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	app.Get("/managers", Protected(secret), RequireAnyRole("manager", "admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/any", "", http.StatusUnauthorized},
		{"not bearer", "/any", "Token abc", http.StatusUnauthorized},
		{"expired", "/any", "Bearer " + tokenFor(t, "worker", -time.Minute), http.StatusUnauthorized},
		{"wrong secret", "/any", "Bearer " + mustToken(t, "other"), http.StatusUnauthorized},
		{"valid", "/any", "Bearer " + tokenFor(t, "worker", time.Hour), http.StatusNoContent},
		{"role denied", "/managers", "Bearer " + tokenFor(t, "worker", time.Hour), http.StatusForbidden},
		{"role allowed", "/managers", "Bearer " + tokenFor(t, "admin", time.Hour), http.StatusNoContent},
		{"unknown route", "/missing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.Header.Get(RequestIDHeader) == "" {
				t.Error("response missing request id")
			}
		})
	}
}

func mustToken(t *testing.T, key string) string {
	t.Helper()
	tok, err := utils.GenerateToken(utils.UserContext{ID: uuid.New()}, key, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return tok
}

func TestRequestIDPropagation(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("request_id").(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want abc-123", got)
	}
}
