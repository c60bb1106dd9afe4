package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-tracker/internal/adapters/auth/identity"
	"pet-tracker/internal/adapters/pubsub"
	pg "pet-tracker/internal/adapters/storage/postgres"
	"pet-tracker/internal/adapters/upload"
	"pet-tracker/internal/config"
	"pet-tracker/internal/platform/logger"
	"pet-tracker/internal/ports/auth"
	"pet-tracker/internal/ports/photos"
	"pet-tracker/internal/ports/realtime"
	"pet-tracker/internal/router"
	"pet-tracker/internal/scheduler"

	"github.com/go-co-op/gocron/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
)

// @title Pet Tracker API
// @version 1.0
// @description Mascotas, recordatorios con agenda mensual, registros de salud e insights.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	loc, _ := cfg.Location() // ya validado en Load

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	repos := router.MemoryRepos()
	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("open database failed", map[string]any{"err": err})
			os.Exit(1)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			log.Error("migrate failed", map[string]any{"err": err})
			os.Exit(1)
		}
		repos = router.PostgresRepos(db)
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN empty, using in-memory storage", nil)
	}

	// Tiempo real
	var (
		hub realtime.Hub = pubsub.NewMemoryHub()
		rdb *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb, err = pubsub.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Error("redis connect failed", map[string]any{"err": err, "addr": cfg.RedisAddr})
			os.Exit(1)
		}
		hub = pubsub.NewRedisHub(rdb, log)
	}

	// Auth
	var verifier auth.AuthVerifier
	if cfg.DevAuth() {
		log.Warn("AUTH_BASE_URL empty, dev auth with X-Debug-User-ID", nil)
	} else {
		idc, err := identity.NewClient(identity.Config{
			BaseURL: cfg.AuthBaseURL,
			APIKey:  cfg.AuthAPIKey,
		})
		if err != nil {
			log.Error("identity client failed", map[string]any{"err": err})
			os.Exit(1)
		}
		verifier = identity.NewVerifier(idc)
	}

	var uploader photos.Uploader
	if cfg.UploadURL != "" {
		uploader = upload.NewClient(cfg.UploadURL, cfg.UploadAPIKey, 30*time.Second)
	}

	svcs := router.NewServices(repos, hub, loc)

	sweeper := scheduler.NewSweeper(svcs.Reminders, scheduler.LogNotifier{Log: log}, log, time.Now())
	sched, err := scheduler.Start(sweeper, cfg.NotifySweep)
	if err != nil {
		log.Error("scheduler start failed", map[string]any{"err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.NewRouter(router.Options{
			AuthVerifier:     verifier,
			Services:         svcs,
			Hub:              hub,
			Uploader:         uploader,
			Log:              log,
			UploadRatePerMin: cfg.UploadRatePerMin,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       time.Minute,
		// Sin WriteTimeout: los streams SSE quedan abiertos.
	}

	done := make(chan struct{})
	go gracefulShutdown(ctx, srv, sched, db, rdb, log, done)

	log.Info("starting server", map[string]any{"addr": srv.Addr, "timezone": loc.String()})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}

	<-done
	log.Info("shutdown complete", nil)
}

func gracefulShutdown(ctx context.Context, srv *http.Server, sched gocron.Scheduler, db *sql.DB, rdb *redis.Client, log logger.Logger, done chan<- struct{}) {
	<-ctx.Done()
	log.Info("shutting down", nil)

	if err := sched.Shutdown(); err != nil {
		log.Warn("scheduler shutdown", map[string]any{"err": err})
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server forced to shutdown", map[string]any{"err": err})
	}

	if db != nil {
		_ = db.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	close(done)
}
