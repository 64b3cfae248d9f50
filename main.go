package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiaot623/termmon/internal/config"
	"github.com/xiaot623/termmon/internal/policy"
	"github.com/xiaot623/termmon/internal/repository"
	"github.com/xiaot623/termmon/internal/service"
	server "github.com/xiaot623/termmon/internal/transport/http"
	v1 "github.com/xiaot623/termmon/internal/transport/http/v1"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting termmon...")
	log.Printf("HTTP Address: %s", cfg.HTTPAddr)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("Storage failure policy: %s", cfg.FailurePolicy)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngineFromFile(ctx, cfg.PolicyFile)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize service
	svc := service.New(db, policyEngine)
	if n, err := svc.CountCommands(ctx); err == nil {
		log.Printf("Commands on record: %d", n)
	}

	e := server.NewServer(svc, server.ServerOptions{
		AccessLog: cfg.AccessLog(),
		BodyLimit: "1M",
		Handler:   []v1.Option{v1.WithFailurePolicy(cfg.FailurePolicy)},
	})

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down termmon...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("termmon stopped")
}
