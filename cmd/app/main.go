package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"yogaslot/internal/app"
	"yogaslot/internal/auth"
	"yogaslot/internal/booking"
	"yogaslot/internal/client"
	"yogaslot/internal/config"
	"yogaslot/internal/email"
	"yogaslot/internal/jobs"
	"yogaslot/internal/logger"
	"yogaslot/internal/server"
	"yogaslot/internal/session"
	"yogaslot/internal/user"
)

const sweepInterval = time.Minute

func main() {
	logger.Init()
	logger.Info("Starting YogaSlot application")

	cfg, err := config.LoadApp()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	pingCancel()
	logger.Info("Redis connected", "addr", cfg.RedisAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	issuer := auth.Issuer{Secret: cfg.TokenSecret, TTL: cfg.TokenTTL}
	deps := app.Deps{
		DocstoreURL: cfg.DocstoreURL,
		Timeout:     cfg.DocstoreTimeout,
		Storage:     session.NewRedisStorage(rdb, cfg.SessionTTL),
		Tokens:      issuer,
	}

	opts := server.Options{
		CookieName:     cfg.SessionCookie,
		CookieTTL:      cfg.SessionTTL,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}

	var scheduler *jobs.Scheduler
	if cfg.EmailEnabled {
		mailer := email.New(rdb, email.Config{
			From:     cfg.EmailFrom,
			FromName: cfg.EmailFromName,
			SMTPHost: cfg.SMTPHost,
			SMTPPort: cfg.SMTPPort,
			SMTPUser: cfg.SMTPUser,
			SMTPPass: cfg.SMTPPass,
		})
		go mailer.Start(ctx)
		deps.Notifier = mailer
		opts.Mailer = mailer
		logger.Info("Email service initialized")

		scheduler, err = jobs.NewScheduler(cfg.ReminderSpec, jobs.NewReminderJob(systemBookings(cfg, issuer), mailer))
		if err != nil {
			logger.Fatalf("Failed to schedule reminders: %v", err)
		}
		scheduler.Start()
	}

	registry := app.NewRegistry(app.NewFactory(deps), cfg.SessionIdle)
	go registry.Run(ctx, sweepInterval)
	opts.Registry = registry

	srv := server.New(opts)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Port); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}

// systemBookings reads bookings outside any browser session, authenticated
// as the scheduler itself.
func systemBookings(cfg *config.App, issuer auth.Issuer) booking.Repository {
	c := client.New(cfg.DocstoreURL, cfg.DocstoreTimeout)
	c.SetAuth(func() string {
		token, err := issuer.Issue(0, "scheduler@yogaslot.local", user.RoleAdmin)
		if err != nil {
			logger.Error("failed to issue scheduler token", "error", err)
			return ""
		}
		return token
	}, nil)
	return booking.NewRepository(c)
}
