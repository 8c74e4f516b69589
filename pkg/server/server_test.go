package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/manaql/manaql-mcp/pkg/cards"
	"github.com/manaql/manaql-mcp/pkg/config"
)

type stubAPI struct{}

func (stubAPI) SearchCards(ctx context.Context, filters cards.SearchFilters, query string, limit, offset int) ([]*cards.Card, error) {
	return []*cards.Card{}, nil
}

func (stubAPI) GetCardByID(ctx context.Context, id int64) (*cards.Card, error) {
	return nil, cards.NotFound("card %d", id)
}

func (stubAPI) GetCardCount(ctx context.Context) (int64, error) {
	return 0, nil
}

func (stubAPI) FindSimilarCards(ctx context.Context, name string, limit int) ([]*cards.Card, error) {
	return []*cards.Card{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host: "localhost",
			Port: 8080,
			Mode: "test",
		},
	}
}

func TestNew(t *testing.T) {
	srv := New(testConfig(), stubAPI{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if srv == nil {
		t.Fatal("expected non-nil server")
	}
}

func TestSetupRoutes(t *testing.T) {
	srv := New(testConfig(), stubAPI{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Setup()

	tests := []struct {
		path     string
		expected int
	}{
		{"/health", http.StatusOK},
		{"/live", http.StatusOK},
		{"/ready", http.StatusServiceUnavailable}, // no pinger wired
		{"/api/v1/cards", http.StatusOK},
		{"/api/v1/cards/count", http.StatusOK},
		{"/api/v1/cards/42", http.StatusNotFound},
		{"/api/v1/cards/similar?name=Shock", http.StatusOK},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		srv.Router().ServeHTTP(w, req)
		if w.Code != tt.expected {
			t.Errorf("GET %s: expected %d, got %d", tt.path, tt.expected, w.Code)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	srv := New(testConfig(), stubAPI{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Setup()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}

	// A caller-provided id is echoed back.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	srv.Router().ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("expected req-123, got %s", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := New(testConfig(), stubAPI{}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cards", nil)
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS headers on preflight response")
	}
}
