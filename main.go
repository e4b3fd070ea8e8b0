package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/config"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/handlers"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/middleware"
)

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status": "healthy", "service": "uidai-bli-analyzer"}`))
}

func main() {
	startTime := time.Now()
	log.Printf("Starting BLI analyzer at %s", startTime.Format(time.RFC3339))

	if err := config.LoadEnv(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	port := config.GetPort()

	config.InitCache()
	log.Println("Analysis caches initialized")

	r := mux.NewRouter()

	// CORS configuration for the dashboard dev servers
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:3000",
		},
		AllowedMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
			"Origin",
		},
		AllowCredentials: true,
		MaxAge:           86400,
	})

	// Apply middlewares in order
	if config.GetCORSDebug() {
		r.Use(middleware.CORSDebugMiddleware)
	}
	r.Use(corsHandler.Handler)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	registerRoutes(api)
	log.Println("Routes registered successfully")

	r.HandleFunc("/health", healthCheck).Methods("GET")

	srv := &http.Server{
		Handler:           r,
		Addr:              ":" + port,
		WriteTimeout:      2 * time.Minute,
		ReadTimeout:       2 * time.Minute,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			serverErrors <- err
		}
	}()

	log.Printf("Server is running at http://localhost:%s", port)
	log.Printf("Health check endpoint: http://localhost:%s/health", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("Shutdown signal received")
	case err := <-serverErrors:
		log.Printf("Server error received: %v", err)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	} else {
		log.Println("Server shutdown completed successfully")
	}
}

func registerRoutes(api *mux.Router) {
	// Upload routes
	api.HandleFunc("/upload/files", handlers.UploadFiles).Methods("POST", "OPTIONS")
	api.HandleFunc("/upload/status", handlers.UploadStatus).Methods("GET")

	// Analysis routes
	api.HandleFunc("/analysis/compute-bli", handlers.ComputeBLI).Methods("GET")
	api.HandleFunc("/analysis/gap-widening/{district}", handlers.GapWidening).Methods("GET")
	api.HandleFunc("/analysis/seasonality", handlers.Seasonality).Methods("GET")
	api.HandleFunc("/analysis/state-summary", handlers.StateSummary).Methods("GET")

	// Chatbot routes
	api.HandleFunc("/chat/ask", handlers.ChatAsk).Methods("POST", "OPTIONS")
}
