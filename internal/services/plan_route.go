package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/geo"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// PlannedStop pairs a resolved waypoint with its place in the tour.
// CumulativeDistance is expressed in the planner's display unit.
type PlannedStop struct {
	Waypoint           domain.Waypoint
	Position           int
	CumulativeDistance float64
}

// PlannedRoute is the presentation-ready outcome of one request.
type PlannedRoute struct {
	Stops         []PlannedStop
	TotalDistance float64
	Unit          domain.Unit
	Algorithm     string
	DriverID      string
	Cached        bool
}

// RoutePlanner orchestrates one optimization request end to end:
// structural validation, host resolution, cache lookup, admission
// through the concurrency limiter, optimization, and unit conversion.
// It is stateless across requests and safe for concurrent use.
type RoutePlanner struct {
	hosts ports.HostRepository
	cache ports.RouteCache // nil disables caching
	unit  domain.Unit
	depot *domain.Waypoint
	cfg   OptimizerConfig
	sem   *semaphore.Weighted
}

// NewRoutePlanner wires a planner. cache may be nil. maxConcurrent
// bounds simultaneous optimizations; the optimizer is compute-bound, so
// admission waits its turn or times out with the request deadline.
func NewRoutePlanner(
	hosts ports.HostRepository,
	cache ports.RouteCache,
	unit domain.Unit,
	depot *domain.Waypoint,
	cfg OptimizerConfig,
	maxConcurrent int64,
) *RoutePlanner {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &RoutePlanner{
		hosts: hosts,
		cache: cache,
		unit:  unit,
		depot: depot,
		cfg:   cfg.withDefaults(),
		sem:   semaphore.NewWeighted(maxConcurrent),
	}
}

// WallBudget exposes the optimizer's soft time cap so the HTTP layer can
// derive the hard request deadline from it.
func (p *RoutePlanner) WallBudget() time.Duration { return p.cfg.WallBudget }

// PlanHosts computes an optimized visiting order over the given host IDs.
func (p *RoutePlanner) PlanHosts(
	ctx context.Context,
	hostIDs []int64,
	driverID string,
) (_ *PlannedRoute, err error) {
	defer obs.Time(ctx, "planner.PlanHosts")(&err)

	if len(hostIDs) == 0 {
		return nil, domain.NewRouteError(domain.ErrEmptyRequest,
			"at least one host must be selected")
	}

	seen := make(map[int64]struct{}, len(hostIDs))
	for _, id := range hostIDs {
		if _, ok := seen[id]; ok {
			return nil, domain.NewRouteError(domain.ErrDuplicateID,
				"host id=%d appears more than once", id)
		}
		seen[id] = struct{}{}
	}

	key := p.cacheKey(hostIDs)
	if cached, ok := p.cacheGet(ctx, key); ok {
		cached.DriverID = driverID
		cached.Cached = true
		return cached, nil
	}

	waypoints, err := p.hosts.GetByIDs(ctx, hostIDs)
	if err != nil {
		return nil, fmt.Errorf("plan hosts: resolve host ids: %w", err)
	}

	// The request named real stops but none resolved; by contract this
	// yields a trivial empty route, not an error.
	if len(waypoints) == 0 {
		return &PlannedRoute{
			Stops:     []PlannedStop{},
			Unit:      p.unit,
			Algorithm: domain.Algorithm,
			DriverID:  driverID,
		}, nil
	}

	// One in-flight optimization per permit; waiting respects the
	// request deadline so a saturated host sheds load as Timeout.
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, domain.NewRouteError(domain.ErrTimeout,
			"request deadline reached before optimization could start")
	}
	defer p.sem.Release(1)

	result, err := OptimizeRoute(ctx, domain.RouteRequest{
		Waypoints: waypoints,
		Start:     p.depot,
		DriverID:  driverID,
	}, p.cfg)
	if err != nil {
		return nil, err
	}

	planned := p.toPlanned(result, waypoints, driverID)
	p.cachePut(ctx, key, planned)

	return planned, nil
}

// ListHosts returns every selectable host stop.
func (p *RoutePlanner) ListHosts(ctx context.Context) ([]domain.Waypoint, error) {
	hosts, err := p.hosts.ListHosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hosts: %w", err)
	}
	return hosts, nil
}

func (p *RoutePlanner) toPlanned(
	result *domain.RouteResult,
	waypoints []domain.Waypoint,
	driverID string,
) *PlannedRoute {
	byID := make(map[int64]domain.Waypoint, len(waypoints)+1)
	for _, w := range waypoints {
		byID[w.ID] = w
	}
	if p.depot != nil {
		byID[p.depot.ID] = *p.depot
	}

	stops := make([]PlannedStop, 0, len(result.Order))
	for _, s := range result.Order {
		stops = append(stops, PlannedStop{
			Waypoint:           byID[s.WaypointID],
			Position:           s.Position,
			CumulativeDistance: p.display(s.CumulativeDistanceKm),
		})
	}

	return &PlannedRoute{
		Stops:         stops,
		TotalDistance: p.display(result.TotalDistanceKm),
		Unit:          p.unit,
		Algorithm:     result.Algorithm,
		DriverID:      driverID,
	}
}

func (p *RoutePlanner) display(km float64) float64 {
	if p.unit == domain.UnitMiles {
		return geo.KmToMiles(km)
	}
	return km
}

// cacheKey canonicalizes the request: host order does not affect the
// optimized result, so sorted IDs plus unit and depot identify it.
func (p *RoutePlanner) cacheKey(hostIDs []int64) string {
	ids := make([]int64, len(hostIDs))
	copy(ids, hostIDs)
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}

	var b strings.Builder
	b.WriteString(domain.Algorithm)
	b.WriteString("|")
	b.WriteString(string(p.unit))
	if p.depot != nil {
		fmt.Fprintf(&b, "|depot=%d,%v,%v", p.depot.ID, p.depot.Coords.Lat, p.depot.Coords.Lon)
	}
	for _, id := range ids {
		fmt.Fprintf(&b, "|%d", id)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "route:v1:" + hex.EncodeToString(sum[:])
}

// Cached payloads never include the driver; it is request-scoped and
// reattached by the caller after a hit.
type cachedRoute struct {
	Stops         []PlannedStop `json:"stops"`
	TotalDistance float64       `json:"total_distance"`
	Unit          domain.Unit   `json:"unit"`
	Algorithm     string        `json:"algorithm"`
}

func (p *RoutePlanner) cacheGet(ctx context.Context, key string) (*PlannedRoute, bool) {
	if p.cache == nil {
		return nil, false
	}

	payload, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Printf("route cache get failed key=%s err=%v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var c cachedRoute
	if err := json.Unmarshal(payload, &c); err != nil {
		log.Printf("route cache decode failed key=%s err=%v", key, err)
		return nil, false
	}

	return &PlannedRoute{
		Stops:         c.Stops,
		TotalDistance: c.TotalDistance,
		Unit:          c.Unit,
		Algorithm:     c.Algorithm,
	}, true
}

func (p *RoutePlanner) cachePut(ctx context.Context, key string, planned *PlannedRoute) {
	if p.cache == nil {
		return
	}

	payload, err := json.Marshal(cachedRoute{
		Stops:         planned.Stops,
		TotalDistance: planned.TotalDistance,
		Unit:          planned.Unit,
		Algorithm:     planned.Algorithm,
	})
	if err != nil {
		log.Printf("route cache encode failed key=%s err=%v", key, err)
		return
	}

	if err := p.cache.Put(ctx, key, payload); err != nil {
		log.Printf("route cache put failed key=%s err=%v", key, err)
	}
}
