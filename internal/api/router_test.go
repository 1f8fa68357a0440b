package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

func testRouter() http.Handler {
	planner := services.NewRoutePlanner(
		repositories.NewMockHostRepository([]domain.Waypoint{
			{ID: 1, Name: "A", Coords: domain.Coordinates{Lat: 33.46, Lon: -112.09}},
		}),
		nil,
		domain.UnitMiles,
		nil,
		services.OptimizerConfig{},
		1,
	)
	return NewRouter(planner)
}

func TestRouterHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", res["status"])
	}
}

func TestRouterAssignsRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a generated X-Request-ID header")
	}
}

func TestRouterEchoesInboundRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "dashboard-trace-1")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "dashboard-trace-1" {
		t.Fatalf("expected inbound request id echoed, got %q", got)
	}
}
