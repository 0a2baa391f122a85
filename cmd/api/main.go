// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/casemate-ai/casemate-gateway/internal/auth"
	"github.com/casemate-ai/casemate-gateway/internal/config"
	"github.com/casemate-ai/casemate-gateway/internal/events"
	"github.com/casemate-ai/casemate-gateway/internal/extract"
	"github.com/casemate-ai/casemate-gateway/internal/handler"
	"github.com/casemate-ai/casemate-gateway/internal/llm"
	"github.com/casemate-ai/casemate-gateway/internal/middleware"
	"github.com/casemate-ai/casemate-gateway/internal/service"
	"github.com/casemate-ai/casemate-gateway/internal/store"
	"github.com/casemate-ai/casemate-gateway/pkg/logger"
	"github.com/casemate-ai/casemate-gateway/pkg/tracing"
)

func main() {
	// Load configuration; required variables fail the process here.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	ctx := context.Background()

	// Initialize tracing if enabled
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "casemate-gateway", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to MongoDB
	mongoStore, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Error("failed to connect to mongo", zap.Error(err))
		os.Exit(1)
	}
	defer mongoStore.Close(ctx)

	// Initialize identity verifier: Firebase in production, shared-secret
	// JWT when explicitly configured for development.
	var verifier auth.Verifier
	if cfg.FirebaseCredentialsPath != "" {
		verifier, err = auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Error("failed to initialize firebase verifier", zap.Error(err))
			os.Exit(1)
		}
	} else {
		log.Warn("using development JWT verifier; do not run this in production")
		verifier = auth.NewJWTVerifier(cfg.DevJWTSecret)
	}

	// Initialize optional event publisher
	var publisher events.Publisher = events.Noop{}
	if cfg.NATSURL != "" {
		natsPublisher, err := events.Connect(events.Config{
			URL:   cfg.NATSURL,
			Token: cfg.NATSToken,
		}, log)
		if err != nil {
			log.Warn("failed to connect to NATS, events disabled", zap.Error(err))
		} else {
			defer natsPublisher.Close()
			publisher = natsPublisher
		}
	}

	// Initialize inference client
	llmClient := llm.NewOllamaClient(llm.OllamaConfig{
		Endpoint: cfg.OllamaURL,
		Model:    cfg.OllamaModel,
		Timeout:  cfg.OllamaTimeout,
	}, log)

	// Initialize services
	conversationSvc := service.NewConversationService(mongoStore, publisher, log)
	messageSvc := service.NewMessageService(mongoStore, llmClient, publisher, log)
	documentSvc := service.NewDocumentService(extract.Extract, llmClient, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(mongoStore)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	messageHandler := handler.NewMessageHandler(messageSvc, log)
	documentHandler := handler.NewDocumentHandler(documentSvc, log)
	userHandler := handler.NewUserHandler()

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(verifier))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Get("/users/me", userHandler.Me)

		r.Route("/chats", func(r chi.Router) {
			r.Get("/", conversationHandler.List)
			r.Post("/", conversationHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", conversationHandler.Delete)
				r.Post("/messages", messageHandler.Add)
				r.Post("/summarize", messageHandler.Summarize)
			})
		})

		r.Post("/documents/analyze", documentHandler.Analyze)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
