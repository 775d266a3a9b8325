package rest

import (
	"net/http"
	"os"
	"strings"

	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest/handler"
	"mindscreen/internal/transport/rest/middleware"
	"mindscreen/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Container holds all dependencies for the router
type Container struct {
	ScreeningService *service.ScreeningService
	IntentRouter     *service.IntentRouter
	AuthService      *service.AuthService
	AlertService     *service.AlertService
	WSHub            *ws.Hub
	Gatherer         prometheus.Gatherer
	AllowedOrigins   string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	webhookHandler := handler.NewWebhookHandler(c.ScreeningService, c.IntentRouter)
	authHandler := handler.NewAuthHandler(c.AuthService)
	alertHandler := handler.NewAlertHandler(c.AlertService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AllowedOrigins)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	gatherer := c.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods("GET")

	// Chat platform fulfillment (unauthenticated)
	r.HandleFunc("/webhook", webhookHandler.Handle).Methods("POST")

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/alerts", wsHandler.AlertsWS).Methods("GET")

	counsellorRoutes := v1.NewRoute().Subrouter()
	counsellorRoutes.Use(authMW.RequireCounsellor)

	counsellorRoutes.HandleFunc("/alerts", alertHandler.List).Methods("GET", "OPTIONS")
	counsellorRoutes.HandleFunc("/alerts/{id}/ack", alertHandler.Acknowledge).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	anyOrigin := len(origins) == 0 || origins["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
			if allowedMethods == "" {
				allowedMethods = "GET, POST, OPTIONS"
			}

			allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
			if allowedHeaders == "" {
				allowedHeaders = "Content-Type, Authorization"
			}

			if anyOrigin {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
