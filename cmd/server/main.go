package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-planner/internal/api"
	"alcyxob/workout-planner/internal/config"
	"alcyxob/workout-planner/internal/logging"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/repository"
	"alcyxob/workout-planner/internal/repository/mongo"
	"alcyxob/workout-planner/internal/repository/sqlite"
	"alcyxob/workout-planner/internal/service"
	"alcyxob/workout-planner/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// @title Workout Planner API
// @version 1.0
// @description API for scheduling recurring workouts and tracking their completion.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.File == "" || cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Infof("starting workout planner, database driver: %s", cfg.Database.Driver)

	// --- Metrics ---
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	promRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("planner", "server", promRegistry)

	// --- Repositories ---
	userRepo, seriesRepo, closeDB, err := openRepositories(cfg.Database)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	defer closeDB()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		fileStorage, err = storage.NewS3Storage(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Info("S3 storage disabled, image attachments are unavailable")
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Minute)
	scheduleService, err := service.NewScheduleService(loadCtx, seriesRepo, fileStorage, metricsManager, service.ScheduleOptions{
		QueueSize:    cfg.Persist.QueueSize,
		WriteTimeout: cfg.Persist.Timeout,
	})
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load schedule: %v", err)
	}

	// --- Initialize Gin Engine ---
	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(), api.RequestMetrics(metricsManager))

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})
	}
	api.SetupRoutes(router, authService, scheduleService, metricsHandler)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	// Requests are done; flush whatever is still queued for the database.
	if err := scheduleService.Close(ctxShutdown); err != nil {
		log.Errorf("schedule writes were not fully persisted: %v", err)
	}

	log.Info("server exiting")
}

// openRepositories connects to the configured database. The returned func
// releases the connection.
func openRepositories(cfg config.DatabaseConfig) (repository.UserRepository, repository.SeriesRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Errorf("failed to close sqlite database: %v", err)
			}
		}
		return sqlite.NewSQLiteUserRepository(db), sqlite.NewSQLiteSeriesRepository(db), closeFn, nil

	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			log.Info("disconnecting MongoDB...")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Errorf("failed to disconnect MongoDB: %v", err)
			}
		}
		appDB := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return mongo.NewMongoUserRepository(appDB), mongo.NewMongoSeriesRepository(appDB), closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
