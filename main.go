package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/rcoffee/cache"
	"github.com/yeremiapane/rcoffee/config"
	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/hub"
	"github.com/yeremiapane/rcoffee/middlewares"
	"github.com/yeremiapane/rcoffee/router"
	"github.com/yeremiapane/rcoffee/services"
	"github.com/yeremiapane/rcoffee/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found")
	}

	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)
	utils.ConfigureJWT(cfg.JWTSecret, cfg.TokenTTL)
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedData {
		if err := database.Seed(ctx, db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed: %v", err)
		}
	}

	var menuCache *cache.RedisCache
	if client := config.NewRedisClient(cfg); client != nil {
		defer client.Close()
		menuCache = cache.NewRedisCache(client, "rcoffee:menu:", cfg.MenuCacheTTL)
		utils.InfoLogger.WithField("addr", cfg.RedisAddr).Info("menu cache enabled")
	} else {
		utils.InfoLogger.Info("menu cache disabled")
	}

	liveHub := hub.New()
	publisher := events.Multi{liveHub}
	if broker := newBroker(cfg); broker != nil {
		publisher = append(publisher, broker)
	}
	defer publisher.Close()

	svc := router.NewServices(db, router.ServiceOptions{
		Publisher:    publisher,
		MenuCache:    menuCache,
		QR:           services.DefaultQRGenerator{BaseURL: cfg.PublicBaseURL},
		StrictOrders: cfg.StrictOrderTransitions,
	})
	opts := router.Options{CORSOrigins: cfg.CORSOrigins, Hub: liveHub}
	if cfg.RateLimitRPS > 0 {
		opts.Limiter = middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go opts.Limiter.RunPruner(ctx, 5*time.Minute)
	}
	if cfg.AuthRatePerMinute > 0 {
		opts.AuthLimiter = middlewares.NewStrictRateLimiter(cfg.AuthRatePerMinute)
		go opts.AuthLimiter.RunPruner(ctx, 5*time.Minute)
	}
	r := router.SetupRouter(svc, opts)

	go utils.RunBlacklistCleanup(ctx, 10*time.Minute)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.WithError(err).Error("server shutdown failed")
	}
}

// newBroker connects the configured message broker. A broker that cannot
// be reached is logged and skipped so the API still starts.
func newBroker(cfg config.Config) events.Publisher {
	switch cfg.EventBroker {
	case "rabbitmq":
		p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("rabbitmq unavailable, events stay local")
			return nil
		}
		utils.InfoLogger.WithField("queue", cfg.RabbitMQQueue).Info("publishing events to rabbitmq")
		return p
	case "kafka":
		utils.InfoLogger.WithField("topic", cfg.KafkaTopic).Info("publishing events to kafka")
		return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
	case "", "none":
		return nil
	}
	utils.ErrorLogger.WithField("broker", cfg.EventBroker).Warn("unknown EVENT_BROKER, events stay local")
	return nil
}
