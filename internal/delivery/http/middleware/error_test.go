package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestApp(h fiber.Handler) (*fiber.App, *observer.ObservedLogs) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.New(core)).Middleware())
	app.Get("/", h)
	return app, logs
}

func call(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return resp.StatusCode, out
}

func TestErrorMiddleware_HidesInternalDetails(t *testing.T) {
	app, logs := newTestApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password is hunter2", map[string]string{"secret": "x"}, errors.New("boom"))
	})

	status, body := call(t, app)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["message"] != "internal server error" || body["data"] != nil {
		t.Fatalf("leaked details: %v", body)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}

func TestErrorMiddleware_KeepsBadGatewayData(t *testing.T) {
	app, _ := newTestApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadGateway, "ignored", map[string]string{"status": "failed"}, errors.New("upstream"))
	})

	status, body := call(t, app)
	if status != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %d", status)
	}
	data, _ := body["data"].(map[string]any)
	if data["status"] != "failed" {
		t.Fatalf("expected data.status=failed, got %v", body)
	}
}

func TestErrorMiddleware_ClientErrorAndPanic(t *testing.T) {
	app, _ := newTestApp(func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusNotFound, "Job not found", nil, nil)
	})
	status, body := call(t, app)
	if status != fiber.StatusNotFound || body["message"] != "Job not found" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	app, logs := newTestApp(func(c fiber.Ctx) error {
		panic("kaboom")
	})
	status, _ = call(t, app)
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", status)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Fatalf("expected panic log")
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]bool{
		"Bearer abc": true,
		"bearer abc": true,
		"Basic abc":  false,
		"Bearer ":    false,
		"":           false,
	}
	for in, want := range cases {
		if _, ok := bearerTokenFromHeader(in); ok != want {
			t.Fatalf("bearerTokenFromHeader(%q) ok=%v want %v", in, ok, want)
		}
	}
}
