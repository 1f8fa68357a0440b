package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/hosts.json")
	port := config.Get("PORT", "8080")
	unit := domain.ParseUnit(config.Get("DISTANCE_UNIT", "miles"))

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	var routeCache ports.RouteCache
	if addr := strings.TrimSpace(config.Get("REDIS_ADDR", "")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		routeCache = cache.NewRedisRouteCache(client, config.GetDuration("ROUTE_CACHE_TTL", 15*time.Minute))
		log.Printf("Route cache enabled addr=%s", addr)
	}

	planner := services.NewRoutePlanner(
		repositories.NewSqliteHostRepository(db),
		routeCache,
		unit,
		depotFromEnv(),
		services.OptimizerConfig{
			MaxWaypoints: config.GetInt("MAX_WAYPOINTS", 200),
			WallBudget:   config.GetDuration("OPTIMIZER_BUDGET", 2*time.Second),
		},
		int64(config.GetInt("MAX_CONCURRENT_OPTIMIZATIONS", 4)),
	)

	router := api.NewRouter(planner)

	// Write timeout leaves room for a full optimization budget plus encoding.
	log.Printf("Server listening addr=:%s unit=%s", port, unit)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// depotFromEnv builds the optional fixed start. When DEPOT_LAT/DEPOT_LON
// are both set, every route begins at the depot instead of the lowest-ID host.
func depotFromEnv() *domain.Waypoint {
	latStr := config.Get("DEPOT_LAT", "")
	lonStr := config.Get("DEPOT_LON", "")
	if latStr == "" || lonStr == "" {
		return nil
	}

	depot := &domain.Waypoint{
		ID:   int64(config.GetInt("DEPOT_ID", -1)),
		Name: config.Get("DEPOT_NAME", "Depot"),
		Coords: domain.Coordinates{
			Lat: config.GetFloat("DEPOT_LAT", 0),
			Lon: config.GetFloat("DEPOT_LON", 0),
		},
	}

	if !depot.Coords.Valid() {
		log.Fatalf("invalid depot coordinates lat=%s lon=%s", latStr, lonStr)
	}

	return depot
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
