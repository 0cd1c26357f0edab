/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the time-balance tracker server. Handles
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (env / config.yaml), apply flag overrides
  2. Initialize the SQLite session store (":memory:" by default)
  3. Build the provider client when credentials are configured
  4. Configure the HTTP router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides APP_PORT)
  -db      SQLite database path (overrides DB_PATH; ":memory:" keeps
           session state in memory, which is the intended lifetime)

PROVIDER CREDENTIALS:
  HARVEST_ACCOUNT_ID and HARVEST_TOKEN enable the reporting endpoints.
  HARVEST_USER_ID is resolved via /users/me when not set. Without
  credentials the schedule/leave endpoints still work; reporting
  answers 503.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration keys
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leap/balance-engine/api"
	"github.com/leap/balance-engine/config"
	"github.com/leap/balance-engine/provider/harvest"
	"github.com/leap/balance-engine/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Flags override config
	port := flag.String("port", cfg.AppPort, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Provider client (optional)
	var provider api.Provider
	userID := cfg.HarvestUserID
	if cfg.HasProvider() {
		client := harvest.NewClient(context.Background(), cfg.HarvestBaseURL, cfg.HarvestAccountID, cfg.HarvestToken)
		if userID == "" {
			userID, err = client.FetchUserID(context.Background())
			if err != nil {
				log.Fatalf("Failed to resolve provider user: %v", err)
			}
		}
		provider = client
	} else {
		log.Println("No provider credentials configured; reporting endpoints disabled")
	}

	// Initialize handler and router
	handler := api.NewHandler(store, provider, userID)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%s", *port)
		log.Printf("API available at http://localhost:%s/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
