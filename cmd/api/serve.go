package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/devCaiqueWS/barber-scheduler/internal/audit"
	"github.com/devCaiqueWS/barber-scheduler/internal/config"
	dbpkg "github.com/devCaiqueWS/barber-scheduler/internal/db"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/lock"
	"github.com/devCaiqueWS/barber-scheduler/internal/infra/repository"
	"github.com/devCaiqueWS/barber-scheduler/internal/logger"
	"github.com/devCaiqueWS/barber-scheduler/internal/routes"
	"github.com/devCaiqueWS/barber-scheduler/internal/timezone"
	"github.com/devCaiqueWS/barber-scheduler/internal/validators"
)

type auditStore interface {
	audit.Store
	audit.Reader
}

func runServer() error {
	holder, err := config.NewHolder()
	if err != nil {
		return err
	}
	cfg := holder.Current()

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	logConfig(log, cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.RegisterGin(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Store
	// ------------------------------
	deps := routes.Deps{
		Config: holder,
		Log:    log,
		Clock:  timezone.SystemClock,
	}

	var store auditStore
	switch cfg.Store {
	case config.StoreMemory:
		mem := repository.NewMemoryStore()
		seedDemo(mem, cfg, log)

		deps.Repo = mem
		deps.Overrides = mem
		store = mem

	default:
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			return err
		}
		if err := dbpkg.Migrate(db, cfg); err != nil {
			return err
		}

		deps.Repo = repository.NewAppointmentGormRepository(db)
		deps.Overrides = repository.NewOverrideGormRepository(db)
		deps.Ping = dbpkg.Ping(db)
		store = audit.NewGormStore(db)
	}
	deps.AuditLogs = store

	// ------------------------------
	// Audit
	// ------------------------------
	sinks := []audit.Sink{audit.New(store)}

	if brokers := audit.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		w := audit.NewKafkaWriter(brokers)
		defer func() { _ = w.Close() }()

		sinks = append(sinks, audit.NewKafkaSink(w, cfg.KafkaTopic))
	}

	dispatcher := audit.NewDispatcher(log, sinks...)
	deps.Audit = dispatcher

	// ------------------------------
	// Booking lock
	// ------------------------------
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		deps.Locker = lock.NewRedisLocker(rdb, cfg.LockTTL(), log)
	} else {
		deps.Locker = lock.NewKeyedMutex()
	}

	holder.Watch(func(c *config.Config, err error) {
		if err != nil {
			log.Warn("config reload rejected", zap.Error(err))
			return
		}
		log.Info("config reloaded")
		logConfig(log, c)
	})

	// ------------------------------
	// HTTP
	// ------------------------------
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}

	log.Info("server stopped")
	return nil
}
