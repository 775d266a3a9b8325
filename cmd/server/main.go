package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindscreen/internal/cache"
	"mindscreen/internal/config"
	"mindscreen/internal/metrics"
	"mindscreen/internal/repository"
	"mindscreen/internal/service"
	"mindscreen/internal/transport/rest"
	"mindscreen/internal/transport/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	_ "go.uber.org/automaxprocs"
)

// @title Mindscreen Screening Webhook API
// @version 1.0
// @description PHQ-9 / GAD-7 conversational screening behind a chat-platform webhook
// @host localhost:8080
// @BasePath /
func main() {
	log.Println("started")
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	log.Printf("Sentiment Config:")
	log.Printf("  URL:     %s", cfg.Sentiment.URL)
	log.Printf("  Timeout: %s", cfg.Sentiment.Timeout())
	if cfg.Sentiment.IsEnabled() {
		log.Println("  Lookup:  enabled ✓")
	} else {
		log.Println("  Lookup:  disabled (platform sentiment only)")
	}

	// Session store
	var store cache.SessionStore
	if cfg.UsesRedis() {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Printf("Connected to Redis, sessions expire after %s", cfg.SessionTTL)
		store = cache.NewSessionCache(rdb, cfg.SessionTTL)
	} else {
		mem := cache.NewMemorySessionStore(cfg.SessionTTL, cfg.SessionMaxEntries)
		go mem.RunJanitor(ctx, time.Minute)
		log.Printf("Using in-memory sessions (ttl=%s, max=%d)", cfg.SessionTTL, cfg.SessionMaxEntries)
		store = mem
	}

	// MongoDB connection (alerts and bookings)
	var (
		alertRepo   repository.AlertRepo
		bookingRepo repository.BookingRepo
	)
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(context.Background())

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			cancel()
			log.Fatal("Failed to ping MongoDB:", err)
		}
		cancel()
		log.Println("Connected to MongoDB")

		db := mongoClient.Database(cfg.MongoDB)
		alertRepo = repository.NewAlertRepo(db)
		bookingRepo = repository.NewBookingRepo(db)
	} else {
		log.Println("Warning: MONGO_URI not set, alerts and bookings are not persisted")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()
	log.Println("WebSocket hub started")

	// Initialize services
	authSvc := service.NewAuthService(cfg.CounsellorUsername, cfg.CounsellorPassword, cfg.JWTSecret)
	alertSvc := service.NewAlertService(alertRepo)
	alertSvc.SetBroadcaster(wsHub)
	bookingSvc := service.NewBookingService(bookingRepo)

	screeningSvc := service.NewScreeningService(store, service.NewComposer(cfg.HelplineName, cfg.HelplineNumber))
	screeningSvc.SetAlertRaiser(alertSvc)
	screeningSvc.SetBooker(bookingSvc)
	screeningSvc.SetMetrics(recorder)
	if sc := service.NewSentimentClient(cfg.Sentiment); sc != nil {
		screeningSvc.SetSentimentAnalyzer(sc)
	}

	intentRouter := service.NewIntentRouter()
	if cfg.IntentTableFile != "" {
		n, err := intentRouter.LoadTableFile(cfg.IntentTableFile)
		if err != nil {
			log.Fatal("Failed to load intent table: ", err)
		}
		log.Printf("Loaded %d intent mappings from %s", n, cfg.IntentTableFile)
	}

	container := &rest.Container{
		ScreeningService: screeningSvc,
		IntentRouter:     intentRouter,
		AuthService:      authSvc,
		AlertService:     alertSvc,
		WSHub:            wsHub,
		Gatherer:         reg,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Printf("Helpline: %s (%s)", cfg.HelplineName, cfg.HelplineNumber)
		log.Printf("Counsellor auth: username=%s", cfg.CounsellorUsername)
		log.Println("Endpoints:")
		log.Println("  POST /webhook")
		log.Println("  GET  /health")
		log.Println("  GET  /metrics")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/alerts")
		log.Println("  POST /v1/alerts/{id}/ack")
		log.Println("  WS   /v1/ws/alerts")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
