package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

func testPlanner(hosts []domain.Waypoint) *services.RoutePlanner {
	return services.NewRoutePlanner(
		repositories.NewMockHostRepository(hosts),
		nil,
		domain.UnitMiles,
		nil,
		services.OptimizerConfig{},
		2,
	)
}

func defaultHosts() []domain.Waypoint {
	return []domain.Waypoint{
		{ID: 1, Name: "Food Bank", Coords: domain.Coordinates{Lat: 33.4658, Lon: -112.0901}},
		{ID: 2, Name: "Desert Mission", Coords: domain.Coordinates{Lat: 33.5722, Lon: -112.0891}},
		{ID: 3, Name: "Mesa Pantry", Coords: domain.Coordinates{Lat: 33.4152, Lon: -111.8315}},
	}
}

func postOptimize(t *testing.T, h *OptimizeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/routes/optimize", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var res dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return res
}

func TestOptimizeMethodNotAllowed(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	req := httptest.NewRequest(http.MethodGet, "/api/routes/optimize", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("expected Allow: POST, got %q", allow)
	}
}

func TestOptimizeInvalidJSON(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [1,`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOptimizeUnknownFieldRejected(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [1], "waypoints": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestOptimizeEmptyRequest(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if res := decodeError(t, rec); res.Error != string(domain.ErrEmptyRequest) {
		t.Fatalf("expected EmptyRequest kind, got %q", res.Error)
	}
}

func TestOptimizeDuplicateHostID(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [7, 7]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if res := decodeError(t, rec); res.Error != string(domain.ErrDuplicateID) {
		t.Fatalf("expected DuplicateId kind, got %q", res.Error)
	}
}

func TestOptimizeTooManyWaypoints(t *testing.T) {
	hosts := make([]domain.Waypoint, 0, 201)
	ids := make([]string, 0, 201)
	for i := 1; i <= 201; i++ {
		hosts = append(hosts, domain.Waypoint{
			ID:     int64(i),
			Name:   "Host",
			Coords: domain.Coordinates{Lat: float64(i) * 0.01, Lon: float64(i) * 0.01},
		})
		ids = append(ids, strconv.Itoa(i))
	}

	h := &OptimizeHandler{Planner: testPlanner(hosts)}

	rec := postOptimize(t, h, `{"hostIds": [`+strings.Join(ids, ",")+`]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if res := decodeError(t, rec); res.Error != string(domain.ErrTooManyWaypoints) {
		t.Fatalf("expected TooManyWaypoints kind, got %q", res.Error)
	}
}

func TestOptimizeHappyPath(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [3, 1, 2], "driverId": "driver-42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.OptimizedOrder) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(res.OptimizedOrder))
	}
	seen := map[int64]bool{}
	for i, s := range res.OptimizedOrder {
		if s.Position != i {
			t.Fatalf("positions must be contiguous: entry %d has position %d", i, s.Position)
		}
		if s.Lat == 0 || s.Lon == 0 {
			t.Fatalf("stop %d missing coordinates for map deep links", i)
		}
		if seen[s.ID] {
			t.Fatalf("host %d appears twice", s.ID)
		}
		seen[s.ID] = true
	}
	if res.TotalDistance <= 0 {
		t.Fatalf("expected positive total distance, got %v", res.TotalDistance)
	}
	if res.Unit != "miles" {
		t.Fatalf("expected miles, got %q", res.Unit)
	}
	if res.Algorithm != domain.Algorithm {
		t.Fatalf("expected algorithm %q, got %q", domain.Algorithm, res.Algorithm)
	}
	if res.Geometry == "" {
		t.Fatal("expected encoded polyline geometry")
	}
	if res.DriverID == nil || *res.DriverID != "driver-42" {
		t.Fatalf("driver id must echo back, got %v", res.DriverID)
	}
}

func TestOptimizeNullDriverID(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [1, 2], "driverId": null}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.DriverID != nil {
		t.Fatalf("expected driverId omitted, got %v", *res.DriverID)
	}
}

func TestOptimizeTrailingGarbageRejected(t *testing.T) {
	h := &OptimizeHandler{Planner: testPlanner(defaultHosts())}

	rec := postOptimize(t, h, `{"hostIds": [1]}{"hostIds": [2]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
