package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"diligencias/internal/cache"
	"diligencias/internal/config"
	"diligencias/internal/database"
	"diligencias/internal/holidays"
	"diligencias/internal/logger"
	"diligencias/internal/middleware"
	"diligencias/internal/notification"
	"diligencias/internal/realtime"
	"diligencias/internal/repository"
	"diligencias/internal/schedule"
	"diligencias/internal/server"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, zlog)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	clock := schedule.NewClock(cfg.Location)

	var store cache.Cache = cache.NewMemory()
	if cfg.RedisAddr != "" {
		rc := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rc.Close() }()
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rc.Ping(ctx)
		cancel()
		if err != nil {
			return err
		}
		store = rc
	}

	hub := realtime.NewHub(middleware.AllowedOrigins(cfg.AllowedOrigins()), zlog.Named("realtime"))
	defer hub.Close()

	appointments := repository.NewAppointmentRepository(db)
	var mailer notification.Mailer
	if m := notification.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.ResendAPIURL, cfg.UpstreamTimeout); m != nil {
		mailer = m
	} else {
		zlog.Info("email notifications disabled")
	}
	pusher := notification.NewExpoPusher(cfg.ExpoPushURL, repository.NewPushTokenRepository(db), cfg.UpstreamTimeout, zlog.Named("push"))
	dispatcher := notification.NewDispatcher(mailer, pusher, hub, appointments, cfg.NotifyRecipients(), zlog.Named("notification"))

	var queue notification.Queue
	if cfg.RedisAddr != "" {
		opt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
		worker := notification.NewAsynqWorker(opt, cfg.QueueWorkers, dispatcher.Handle, zlog.Named("queue"))
		if err := worker.Start(); err != nil {
			return err
		}
		defer worker.Shutdown()
		queue = notification.NewAsynqQueue(opt)
		zlog.Info("notification queue backed by redis")
	} else {
		queue = notification.NewLocalQueue(dispatcher.Handle, cfg.QueueWorkers, 256, cfg.UpstreamTimeout*2, zlog.Named("queue"))
		zlog.Info("notification queue in process, reminders do not survive restarts")
	}
	defer func() { _ = queue.Close() }()

	router := server.New(server.Deps{
		Config:    cfg,
		DB:        db,
		Clock:     clock,
		Cache:     store,
		Holidays:  holidays.NewProvider(cfg.HolidaysAPIURL, cfg.Holidays, store, cfg.UpstreamTimeout, zlog.Named("holidays")),
		Publisher: notification.NewPublisher(queue, clock, zlog.Named("publisher")),
		Hub:       hub,
		Log:       zlog,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("http server listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.AppEnv),
			zap.String("tz", cfg.Location.String()),
			zap.Int("slots", cfg.Catalog.Len()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		zlog.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// websocket connections are hijacked and not tracked by Shutdown
	hub.Close()
	return srv.Shutdown(ctx)
}
