package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rockysnow7/mlb-transformer/internal/batch"
	"github.com/rockysnow7/mlb-transformer/internal/cache"
	"github.com/rockysnow7/mlb-transformer/internal/config"
	"github.com/rockysnow7/mlb-transformer/internal/handlers"
	"github.com/rockysnow7/mlb-transformer/internal/publisher"
	"github.com/rockysnow7/mlb-transformer/internal/store"
)

func main() {
	log.Println("Starting Transcript Service...")

	// Load configuration from environment
	cfg := config.LoadConfig()

	// Initialize Redis client
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Connect to Postgres
	st, err := store.NewStore(cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer st.Close()
	log.Println("Connected to Postgres")

	// Initialize components
	cacheWriter := cache.NewRedisWriter(redisClient, cfg.Redis.CacheTTL)
	streamPublisher := publisher.NewStreamPublisher(redisClient)
	runner := batch.NewRunner(cfg.Batch.Workers)

	handler := handlers.NewHandler(cacheWriter, st, streamPublisher, runner, cfg.Batch.TranscriptRoot)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Routes
	r.Get("/health", handler.HealthCheck)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/parse", handler.ParseTranscript)
		r.Get("/games", handler.GetGamesForDate)
		r.Get("/games/{gamePK}", handler.GetGame)
		r.Post("/batches", handler.StartBatch)
		r.Get("/batches/{batchID}", handler.GetBatch)
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on %s", cfg.Server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Transcript Service stopped")
}
