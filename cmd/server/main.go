package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/arjun/bikewash/config"
	"github.com/arjun/bikewash/internal/handler"
	"github.com/arjun/bikewash/internal/middleware"
	"github.com/arjun/bikewash/internal/repository"
	"github.com/arjun/bikewash/internal/service"
	"github.com/arjun/bikewash/pkg/cache"
	"github.com/arjun/bikewash/pkg/db"
	"github.com/arjun/bikewash/pkg/geocode"
)

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// ── Connect to PostgreSQL ───────────────────────────
	pgPool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pgPool.Close()
	log.Println("✓ PostgreSQL connected")

	// ── Connect to Redis ────────────────────────────────
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ── Initialize layers ───────────────────────────────
	centerRepo := repository.NewCenterRepository(pgPool)

	authSvc := service.NewAuthService(cfg.Auth)
	sessions := service.NewSessionManager(authSvc)
	centerSvc := service.NewCenterService(centerRepo)
	pricingSvc := service.NewPricingService(service.DefaultFeeConfig())
	paymentSvc := service.NewPaymentService(cfg.Payment, pricingSvc)
	feedbackSvc := service.NewFeedbackService()
	assistantSvc := service.NewAssistantService()
	geocoder := geocode.NewClient(cfg.Geocode, redisClient)

	authHandler := handler.NewAuthHandler(authSvc, sessions)
	centerHandler := handler.NewCenterHandler(centerSvc)
	bookingHandler := handler.NewBookingHandler(centerSvc)
	adminHandler := handler.NewAdminHandler(sessions)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	assistantHandler := handler.NewAssistantHandler(assistantSvc)
	geocodeHandler := handler.NewGeocodeHandler(geocoder)

	// ── Setup router ────────────────────────────────────
	router := mux.NewRouter()

	// Health check endpoint.
	router.HandleFunc("/health", healthHandler(pgPool, redisClient)).Methods(http.MethodGet)

	// API v1 routes.
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public: login, catalog, geocoding, assistant.
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/admin/login", authHandler.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	api.HandleFunc("/centers", centerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/centers/{id}", centerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/geocode/reverse", geocodeHandler.Reverse).Methods(http.MethodGet)
	api.HandleFunc("/assistant/messages", assistantHandler.Message).Methods(http.MethodPost)

	// Signed-in: session introspection, booking flow, payments, feedback.
	authed := api.NewRoute().Subrouter()
	authed.Use(middleware.RequireSession(sessions))
	authed.HandleFunc("/auth/session", authHandler.Session).Methods(http.MethodGet)
	authed.HandleFunc("/booking/draft", bookingHandler.GetDraft).Methods(http.MethodGet)
	authed.HandleFunc("/booking/draft/customer", bookingHandler.UpdateCustomer).Methods(http.MethodPut)
	authed.HandleFunc("/booking/draft/bike", bookingHandler.UpdateBike).Methods(http.MethodPut)
	authed.HandleFunc("/booking/draft/center/{id}", bookingHandler.SelectCenter).Methods(http.MethodPut)
	authed.HandleFunc("/booking/draft/service-type", bookingHandler.SetServiceType).Methods(http.MethodPut)
	authed.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/current", bookingHandler.Current).Methods(http.MethodGet)
	authed.HandleFunc("/bookings/current/cancel", bookingHandler.CancelCurrent).Methods(http.MethodPost)
	authed.HandleFunc("/payments/checkout", paymentHandler.Checkout).Methods(http.MethodPost)
	authed.HandleFunc("/payments/{id}", paymentHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/payments/{id}/confirm", paymentHandler.Confirm).Methods(http.MethodPost)
	authed.HandleFunc("/payments/{id}/dismiss", paymentHandler.Dismiss).Methods(http.MethodPost)
	authed.HandleFunc("/feedback", feedbackHandler.Submit).Methods(http.MethodPost)

	// Admin dashboard.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireSession(sessions), middleware.RequireAdmin)
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateStatus).Methods(http.MethodPatch)

	// Wrap with logging, panic recovery, and CORS for the browser client.
	root := middleware.CORS(middleware.RequestLogger(middleware.Recoverer(router)))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in a goroutine so we can listen for shutdown signals.
	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// healthHandler returns an HTTP handler that checks PG and Redis connectivity.
func healthHandler(pgPool *pgxpool.Pool, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Services: make(map[string]string),
		}

		if err := db.HealthCheck(r.Context(), pgPool); err != nil {
			resp.Status = "degraded"
			resp.Services["postgres"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["postgres"] = "healthy"
		}

		if err := cache.HealthCheck(r.Context(), redisClient); err != nil {
			resp.Status = "degraded"
			resp.Services["redis"] = "unhealthy: " + err.Error()
		} else {
			resp.Services["redis"] = "healthy"
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
