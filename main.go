package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"ms-showtimes/internal/analytics"
	"ms-showtimes/internal/auth"
	"ms-showtimes/internal/config"
	"ms-showtimes/internal/dates"
	"ms-showtimes/internal/feed"
	"ms-showtimes/internal/handlers"
	"ms-showtimes/internal/services"
	"ms-showtimes/internal/showtimes"
)

// Main application loop
func main() {
	cfg := config.Load()
	log.Printf("Loaded config for market %s (default theater: %s)", cfg.Market, cfg.DefaultTheater)

	// Upstream showtime feed client
	feedClient := feed.NewClient(cfg.FeedBaseURL, cfg.Market)

	// Core query pipeline: date resolution + filtering
	filter, err := showtimes.New(dates.NewResolver(), cfg.FeedTimeZone)
	if err != nil {
		log.Fatalf("Failed to initialize showtime filter: %v", err)
	}

	// Optional query-history database
	var dbService *services.DatabaseService
	var historyService *services.QueryHistoryService
	if cfg.DatabaseHost != "" {
		dbService, err = services.NewDatabaseService(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database service: %v", err)
		}
		defer dbService.Close()

		if err := dbService.RunMigrations(); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		historyService = services.NewQueryHistoryService(dbService.DB)
	} else {
		log.Println("Database not configured, skipping query history")
	}

	// Optional query analytics producer
	var producer *analytics.Producer
	if cfg.KafkaURL != "" {
		log.Printf("Publishing query events to topic %s at %s", cfg.QueryEventsKafkaTopic, cfg.KafkaURL)
		producer = analytics.NewProducer(cfg.KafkaURL, cfg.QueryEventsKafkaTopic)
		defer producer.Close()
	} else {
		log.Println("Kafka URL not configured, skipping query analytics")
	}

	showtimeService := services.NewShowtimeService(feedClient, filter, historyService, producer, cfg)

	// Set up the HTTP server for the voice intent webhook
	setupHTTPServer(cfg, showtimeService, historyService, dbService, feedClient)
}

// setupHTTPServer configures and starts the HTTP server
func setupHTTPServer(cfg config.Config, showtimeService *services.ShowtimeService, historyService *services.QueryHistoryService, dbService *services.DatabaseService, feedClient *feed.Client) {
	router := mux.NewRouter()

	// Apply CORS middleware to all routes
	router.Use(auth.CORSMiddleware(cfg))

	// Create the intent webhook handlers
	queryHandler := handlers.NewQueryHandler(showtimeService, cfg)

	// Intent webhook routes; token verification only when a skill
	// secret is configured
	apiRouter := router.PathPrefix("/api/showtimes/v1").Subrouter()
	if cfg.SkillSecret != "" {
		apiRouter.Use(auth.AuthMiddleware(cfg))
	} else {
		log.Println("Skill secret not configured, webhook token verification disabled")
	}

	apiRouter.HandleFunc("/find-seats", queryHandler.FindSeats).Methods("POST")
	apiRouter.HandleFunc("/query-seats", queryHandler.QuerySeats).Methods("POST")

	// Admin endpoints for query history, only when the database is configured
	if historyService != nil {
		statsHandler := handlers.NewStatsHandler(historyService)
		adminRouter := apiRouter.PathPrefix("/admin").Subrouter()
		adminRouter.Use(auth.AdminMiddleware(cfg))
		adminRouter.HandleFunc("/query-stats", statsHandler.GetQueryStats).Methods("GET")
	}

	// Create health handler for health check endpoints
	healthHandler := handlers.NewHealthHandler(dbService, feedClient.CheckReachable)

	// Healthcheck endpoints (no authentication required)
	router.HandleFunc("/api/showtimes/health", healthHandler.HandleHealth).Methods("GET")

	// K8s probe endpoints
	router.HandleFunc("/healthz", healthHandler.HandleHealth).Methods("GET")
	router.HandleFunc("/readyz", healthHandler.HandleReadiness).Methods("GET")
	router.HandleFunc("/livez", healthHandler.HandleLiveness).Methods("GET")

	serverAddr := cfg.ServerHost + ":" + cfg.ServerPort
	log.Printf("Starting HTTP server on %s", serverAddr)

	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
