package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrjordantanner/logistics-app-server/api/routes"
	authsvc "github.com/mrjordantanner/logistics-app-server/internal/auth"
	deliverysvc "github.com/mrjordantanner/logistics-app-server/internal/deliveries"
	itemsvc "github.com/mrjordantanner/logistics-app-server/internal/items"
	locationsvc "github.com/mrjordantanner/logistics-app-server/internal/locations"
	ordersvc "github.com/mrjordantanner/logistics-app-server/internal/orders"
	usersvc "github.com/mrjordantanner/logistics-app-server/internal/users"
	"github.com/mrjordantanner/logistics-app-server/pkg/config"
	"github.com/mrjordantanner/logistics-app-server/pkg/db"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
	"github.com/mrjordantanner/logistics-app-server/pkg/metrics"
	"github.com/mrjordantanner/logistics-app-server/pkg/migrate"
	"github.com/mrjordantanner/logistics-app-server/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	userRepo := usersvc.NewRepository(dbClient.DB())
	itemRepo := itemsvc.NewRepository(dbClient.DB())
	locationRepo := locationsvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())
	deliveryRepo := deliverysvc.NewRepository(dbClient.DB())

	userService, err := usersvc.NewService(userRepo)
	requireService(logg, "users", err)

	itemService, err := itemsvc.NewService(itemRepo)
	requireService(logg, "items", err)

	locationService, err := locationsvc.NewService(locationRepo)
	requireService(logg, "locations", err)

	orderService, err := ordersvc.NewService(orderRepo, dbClient, locationRepo, itemRepo)
	requireService(logg, "orders", err)

	deliveryService, err := deliverysvc.NewService(deliveryRepo, dbClient, userRepo, locationRepo, orderRepo)
	requireService(logg, "deliveries", err)

	authService, err := authsvc.NewService(userRepo, cfg.JWT)
	requireService(logg, "auth", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, metricsHandler, routes.Services{
			Auth:       authService,
			Users:      userService,
			Items:      itemService,
			Locations:  locationService,
			Orders:     orderService,
			Deliveries: deliveryService,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			_ = server.Close()
		}
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to create service", err)
	os.Exit(1)
}
