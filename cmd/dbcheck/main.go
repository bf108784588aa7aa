package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"trem-do-bem/internal/config"
	"trem-do-bem/internal/database"
)

// dbcheck connects with the DB_* settings, applies the schema migrations and
// reports row counts. It reads the same .env as the API server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Database.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid database configuration: %v\n", err)
		os.Exit(1)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully connected to database: %s\n", dbName)

	if err := database.Migrate(pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Schema is up to date")

	for _, table := range []string{"products", "orders", "order_items"} {
		var n int64
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to count %s: %v\n", table, err)
			os.Exit(1)
		}
		fmt.Printf("  %-12s %d rows\n", table, n)
	}
}
