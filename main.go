package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-stats/internal/database"
	"media-stats/internal/handlers"
	"media-stats/internal/middleware"
	"media-stats/internal/scheduler"
	"media-stats/internal/startup"
	"media-stats/internal/stats"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize database
	dbStart := time.Now()
	db, err := database.New(context.Background(), config.DatabasePath)
	if err != nil {
		startup.LogFatal("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.LogDatabaseInit(time.Since(dbStart))

	// Keep connection-pool metrics current
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		for range ticker.C {
			db.UpdateDBMetrics()
		}
	}()

	// Initialize the statistics service
	statsService := stats.New(db, stats.Config{TTL: config.StatsTTL})

	// Initialize and start the background scheduler
	startup.LogSchedulerInit(config.StatsWorkers, config.AnalysisLimit)
	sched := scheduler.New(statsService, config.StatsWorkers, config.AnalysisLimit)
	sched.Start()
	startup.LogSchedulerStarted()

	// Initialize handlers
	h := handlers.New(db, statsService, sched, config)

	// Setup router
	router := setupRouter(h, config.MetricsEnabled)

	// Log routes dynamically
	startup.LogHTTPRoutes(router, config.LogHealthChecks)

	// Apply metrics middleware
	metricsHandler := middleware.Metrics(middleware.DefaultMetricsConfig())(router)

	// Apply logging middleware
	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	loggedHandler := middleware.Logger(loggingConfig)(metricsHandler)

	// Apply compression middleware
	handler := middleware.Compression(middleware.DefaultCompressionConfig())(loggedHandler)

	// Create server
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, sched)

	// Start server
	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, metricsEnabled bool) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET", "HEAD")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	if metricsEnabled {
		r.Handle("/metrics", h.MetricsHandler()).Methods("GET")
	}

	// Statistics API
	api := r.PathPrefix("/api/stats").Subrouter()
	api.HandleFunc("/folder", h.GetFolderStats).Methods("GET")
	api.HandleFunc("/refresh", h.RefreshStats).Methods("POST")
	api.HandleFunc("/pending", h.GetPendingJobs).Methods("GET")
	api.HandleFunc("/stopwords", h.GetStopwords).Methods("GET")
	api.HandleFunc("/stopwords", h.PutStopwords).Methods("PUT")

	return r
}

func handleShutdown(srv *http.Server, sched *scheduler.Scheduler) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping scheduler")
	sched.Stop()
	startup.LogShutdownStepComplete("Scheduler stopped")

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		startup.LogShutdownStepComplete("HTTP server stopped with error: " + err.Error())
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
