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
	"github.com/garnizeh/emsportal/internal/stub"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// emsbackend is the development stand-in for the production employee
// service. It serves the same REST contract the portal consumes.
func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting stub employee backend version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	database, err := db.New(ctx, cfg.StubBackend.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	repo, err := stub.NewRepo(ctx, database)
	if err != nil {
		log.Fatalf("Failed to init repository: %v", err)
	}

	handler := stub.NewHandler(repo, cfg.StubBackend.JWTSecret, cfg.StubBackend.TokenDuration, cfg.StubBackend.BcryptCost)

	server := &http.Server{
		Addr:         cfg.StubBackend.Addr,
		Handler:      stub.SetupRoutes(handler, cfg.StubBackend.JWTSecret),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Stub backend listening on %s", cfg.StubBackend.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down stub backend...")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := database.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Stub backend exited")
}
