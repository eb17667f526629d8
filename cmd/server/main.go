package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
	"transport-optimizer-service/internal/adapters/cache"
	"transport-optimizer-service/internal/adapters/configloader"
	"transport-optimizer-service/internal/adapters/featurestore"
	"transport-optimizer-service/internal/adapters/repositories"
	"transport-optimizer-service/internal/api"
	"transport-optimizer-service/internal/config"
	pgdb "transport-optimizer-service/internal/platform/db"
	"transport-optimizer-service/internal/ports"
	"transport-optimizer-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, feature store, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/shipments.json")
	constraintsPath := config.Get("CONSTRAINTS_PATH", "configs/constraints.json")
	port := config.Get("PORT", "8080")

	db, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	// The embedded store serves local runs; a warehouse feed takes over when
	// DATABASE_URL points at Postgres (seeded separately via dbtool).
	var feed ports.ShipmentFeed = repositories.NewSqliteShipmentRepository(db)
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		pool, err := pgdb.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()
		feed = repositories.NewPostgresShipmentRepository(pool)
		log.Println("Shipment feed backend=postgres")
	}

	loader, err := configloader.NewJSONConstraintLoader(constraintsPath)
	if err != nil {
		log.Fatal(err)
	}

	source, err := buildCostSource(db, feed)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(feed, loader, source)

	// Batch runs over many scenarios can take a while; the write timeout is
	// sized for the worst case, not the typical solve.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildCostSource picks the cost-matrix source for batch runs.
// With FEATURE_STORE_URL set the remote feature store is used, fronted by
// Redis when REDIS_ADDR is configured and by the SQLite cache otherwise.
// Without it, matrices are aggregated from the local shipment feed.
func buildCostSource(db *sql.DB, feed ports.ShipmentFeed) (ports.CostSource, error) {
	storeURL := os.Getenv("FEATURE_STORE_URL")
	if strings.TrimSpace(storeURL) == "" {
		opts := services.AggregateOptions{
			Model:     services.ModelComposite,
			Statistic: services.StatMean,
			Params:    services.DefaultCostParams(),
		}
		log.Println("FEATURE_STORE_URL not set, aggregating cost matrices from the shipment feed")
		return featurestore.NewFeedCostSource(feed, opts, 0), nil
	}

	var matrixCache ports.MatrixCache
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		matrixCache = cache.NewRedisMatrixCache(client, 0)
		log.Printf("Cost matrix cache backend=redis addr=%s", addr)
	} else {
		matrixCache = cache.NewSqliteMatrixCache(db)
		log.Println("Cost matrix cache backend=sqlite")
	}

	apiKey := os.Getenv("FEATURE_STORE_API_KEY")
	return featurestore.NewHTTPCostSource(storeURL, apiKey, matrixCache)
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
