package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/emsportal/internal/config"
	"github.com/garnizeh/emsportal/internal/db"
	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/web"
	"github.com/garnizeh/emsportal/pkg/backend"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	log.Printf("Starting portal version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open session database
	sessionDB, err := db.New(ctx, cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("Failed to open session DB: %v", err)
	}

	store, err := session.NewSQLiteStore(ctx, sessionDB, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to init session store: %v", err)
	}
	if n, err := store.Purge(ctx); err != nil {
		log.Printf("Failed to purge expired sessions: %v", err)
	} else if n > 0 {
		log.Printf("Purged %d expired sessions", n)
	}

	client, err := backend.NewDefaultClient(cfg.Backend, nil)
	if err != nil {
		log.Fatalf("Failed to create backend client: %v", err)
	}

	srv := web.NewServer(client, session.Watch(store), cfg.SessionCookie, cfg.SessionTTL)
	handler := web.SetupRoutes(srv, version, buildTime)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Portal listening on %s (backend %s)", cfg.Addr, cfg.Backend.BaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down portal...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := client.Close(); err != nil {
		log.Printf("Error closing backend client: %v", err)
	}
	if err := sessionDB.Close(); err != nil {
		log.Printf("Error closing session DB: %v", err)
	}

	log.Println("Portal exited")
}
