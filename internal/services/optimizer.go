package services

import (
	"context"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
)

// Distances closer than this (km) are treated as equal. Keeps the
// improvement loop from flapping between equivalent permutations.
const distanceEpsilonKm = 1e-9

// OptimizerConfig bounds a single optimization run.
type OptimizerConfig struct {
	// Reject requests with more waypoints than this. Zero means the
	// default of 200; 2-opt above that is too slow for interactive use.
	MaxWaypoints int
	// Soft wall-clock cap on the improvement phase, checked between
	// passes. Zero means the default of 2 seconds.
	WallBudget time.Duration
}

const (
	defaultMaxWaypoints = 200
	defaultWallBudget   = 2 * time.Second
)

func (c OptimizerConfig) withDefaults() OptimizerConfig {
	if c.MaxWaypoints <= 0 {
		c.MaxWaypoints = defaultMaxWaypoints
	}
	if c.WallBudget <= 0 {
		c.WallBudget = defaultWallBudget
	}
	return c
}

// Compute a near-optimal visiting order for the request's waypoints.
//
// The tour is built greedily (nearest neighbor, lowest-ID tie-break) and
// then improved with 2-opt until no improving reversal remains or an
// iteration/wall-clock budget runs out. Budget exhaustion is not an
// error; the best tour found so far is returned. The result is an open
// path: no return leg to the start is assumed.
//
// All failures are *domain.RouteError values; no partial result is ever
// returned alongside an error.
func OptimizeRoute(
	ctx context.Context,
	req domain.RouteRequest,
	cfg OptimizerConfig,
) (*domain.RouteResult, error) {
	cfg = cfg.withDefaults()

	if err := validateRequest(req, cfg.MaxWaypoints); err != nil {
		return nil, err
	}

	if len(req.Waypoints) == 0 {
		return &domain.RouteResult{
			Order:           []domain.TourStop{},
			TotalDistanceKm: 0,
			Algorithm:       domain.Algorithm,
		}, nil
	}

	tour, locked := nearestNeighborTour(req)
	twoOptImprove(ctx, tour, locked, len(req.Waypoints), cfg.WallBudget)

	return buildResult(tour), nil
}

// validateRequest enforces the structural invariants every request must
// satisfy before any distance is computed.
func validateRequest(req domain.RouteRequest, ceiling int) error {
	if req.Start != nil && !req.Start.Coords.Valid() {
		return domain.NewRouteError(domain.ErrInvalidWaypoint,
			"start waypoint id=%d has invalid coordinates (%v, %v)",
			req.Start.ID, req.Start.Coords.Lat, req.Start.Coords.Lon)
	}

	seen := make(map[int64]struct{}, len(req.Waypoints)+1)
	if req.Start != nil {
		seen[req.Start.ID] = struct{}{}
	}

	for _, w := range req.Waypoints {
		if !w.Coords.Valid() {
			return domain.NewRouteError(domain.ErrInvalidWaypoint,
				"waypoint id=%d has invalid coordinates (%v, %v)",
				w.ID, w.Coords.Lat, w.Coords.Lon)
		}
		if _, ok := seen[w.ID]; ok {
			return domain.NewRouteError(domain.ErrDuplicateID,
				"waypoint id=%d appears more than once", w.ID)
		}
		seen[w.ID] = struct{}{}
	}

	if len(req.Waypoints) > ceiling {
		return domain.NewRouteError(domain.ErrTooManyWaypoints,
			"%d waypoints exceeds the ceiling of %d; pre-cluster stops first",
			len(req.Waypoints), ceiling)
	}

	return nil
}

// nearestNeighborTour builds the initial tour greedily. The returned
// slice includes the fixed start at index 0 when one is set; locked
// reports whether that first position must not be permuted.
func nearestNeighborTour(req domain.RouteRequest) (tour []domain.Waypoint, locked bool) {
	remaining := make([]domain.Waypoint, len(req.Waypoints))
	copy(remaining, req.Waypoints)

	// Scan candidates in ascending ID order so equal-distance ties
	// resolve to the lowest ID, keeping runs reproducible.
	sortWaypointsByID(remaining)

	tour = make([]domain.Waypoint, 0, len(remaining)+1)

	if req.Start != nil {
		tour = append(tour, *req.Start)
		locked = true
	} else {
		tour = append(tour, remaining[0])
		remaining = remaining[1:]
	}

	for len(remaining) > 0 {
		cur := tour[len(tour)-1]

		bestIdx := 0
		bestDist := geo.DistanceKm(cur.Coords, remaining[0].Coords)
		for i := 1; i < len(remaining); i++ {
			d := geo.DistanceKm(cur.Coords, remaining[i].Coords)
			if d < bestDist-distanceEpsilonKm {
				bestDist = d
				bestIdx = i
			}
		}

		tour = append(tour, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return tour, locked
}

func sortWaypointsByID(ws []domain.Waypoint) {
	// Insertion sort; waypoint counts are capped at a few hundred.
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j].ID < ws[j-1].ID; j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}

// twoOptImprove refines the tour in place with first-improvement 2-opt
// reversals over an open path. It stops on the first of: a full pass with
// no improvement, max(200, 4N²) pairwise evaluations, the wall-clock
// budget elapsing between passes, or context cancellation between passes.
func twoOptImprove(
	ctx context.Context,
	tour []domain.Waypoint,
	locked bool,
	n int,
	wallBudget time.Duration,
) {
	if len(tour) < 3 {
		return
	}

	maxEvals := 200
	if 4*n*n > maxEvals {
		maxEvals = 4 * n * n
	}
	deadline := time.Now().Add(wallBudget)

	minI := 0
	if locked {
		minI = 1
	}

	evals := 0
	for {
		// Budgets are soft: a pass in flight always completes, so the
		// worst case between checks is one O(N²) scan.
		if ctx.Err() != nil || time.Now().After(deadline) {
			return
		}

		improved := false
		for i := minI; i < len(tour)-1; i++ {
			for k := i + 1; k < len(tour); k++ {
				if i == 0 && k == len(tour)-1 {
					// Reversing the whole path relabels it without
					// changing its length.
					continue
				}

				evals++
				if reversalGainKm(tour, i, k) > distanceEpsilonKm {
					reverseSegment(tour, i, k)
					improved = true
				}
				if evals >= maxEvals {
					return
				}
			}
		}

		if !improved {
			return
		}
	}
}

// reversalGainKm returns how much shorter the open path becomes if the
// segment tour[i..k] is reversed. Only the boundary edges change; on an
// open path an endpoint segment has a single boundary edge.
func reversalGainKm(tour []domain.Waypoint, i, k int) float64 {
	gain := 0.0
	if i > 0 {
		gain += geo.DistanceKm(tour[i-1].Coords, tour[i].Coords) -
			geo.DistanceKm(tour[i-1].Coords, tour[k].Coords)
	}
	if k < len(tour)-1 {
		gain += geo.DistanceKm(tour[k].Coords, tour[k+1].Coords) -
			geo.DistanceKm(tour[i].Coords, tour[k+1].Coords)
	}
	return gain
}

func reverseSegment(tour []domain.Waypoint, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// tourLengthKm sums consecutive edge distances of an open path.
func tourLengthKm(tour []domain.Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(tour); i++ {
		total += geo.DistanceKm(tour[i-1].Coords, tour[i].Coords)
	}
	return total
}

func buildResult(tour []domain.Waypoint) *domain.RouteResult {
	order := make([]domain.TourStop, 0, len(tour))

	cumulative := 0.0
	for i, w := range tour {
		if i > 0 {
			cumulative += geo.DistanceKm(tour[i-1].Coords, w.Coords)
		}
		order = append(order, domain.TourStop{
			WaypointID:           w.ID,
			Position:             i,
			CumulativeDistanceKm: cumulative,
		})
	}

	return &domain.RouteResult{
		Order:           order,
		TotalDistanceKm: cumulative,
		Algorithm:       domain.Algorithm,
	}
}
