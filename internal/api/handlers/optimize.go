package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/twpayne/go-polyline"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

// Fixed headroom on top of the optimizer's soft budget. The sum is the
// hard request deadline; one expensive optimization cannot hold a
// worker past it.
const deadlineOverhead = time.Second

// OptimizeHandler is the route-optimization boundary: it validates the
// request shape, enforces the hard deadline, and maps planner failures
// onto the contract error kinds.
type OptimizeHandler struct {
	Planner *services.RoutePlanner
}

func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	driverID := ""
	if req.DriverID != nil {
		driverID = *req.DriverID
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Planner.WallBudget()+deadlineOverhead)
	defer cancel()

	planned, err := h.Planner.PlanHosts(ctx, req.HostIDs, driverID)
	if err != nil {
		var re *domain.RouteError
		switch {
		case errors.As(err, &re):
			writeRouteError(w, r, re)
		case errors.Is(err, context.DeadlineExceeded):
			writeRouteError(w, r, domain.NewRouteError(domain.ErrTimeout,
				"request deadline exceeded"))
		default:
			log.Printf("optimize route failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toOptimizeResponse(planned, req.DriverID))
}

func toOptimizeResponse(planned *services.PlannedRoute, driverID *string) dto.OptimizeResponse {
	order := make([]dto.OptimizedStop, 0, len(planned.Stops))
	coords := make([][]float64, 0, len(planned.Stops))

	for _, s := range planned.Stops {
		order = append(order, dto.OptimizedStop{
			ID:                 s.Waypoint.ID,
			Name:               s.Waypoint.Name,
			Position:           s.Position,
			Lat:                s.Waypoint.Coords.Lat,
			Lon:                s.Waypoint.Coords.Lon,
			CumulativeDistance: s.CumulativeDistance,
		})
		coords = append(coords, s.Waypoint.Coords.CoordsToList())
	}

	geometry := ""
	if len(coords) > 1 {
		geometry = string(polyline.EncodeCoords(coords))
	}

	return dto.OptimizeResponse{
		OptimizedOrder: order,
		TotalDistance:  planned.TotalDistance,
		Unit:           string(planned.Unit),
		Algorithm:      planned.Algorithm,
		Geometry:       geometry,
		DriverID:       driverID,
		Cached:         planned.Cached,
	}
}
