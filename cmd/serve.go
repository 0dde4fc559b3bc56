package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/queue"
	"movie-booking/internal/usecase"
	"movie-booking/internal/wire"
	"movie-booking/pkg/database"
	"movie-booking/pkg/middleware"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var snapshot cache.SnapshotStore = cache.NopSnapshotStore{}
		if config.Redis.Addr != "" {
			client, err := database.InitRedis(config.Redis)
			if err != nil {
				// Availability still works from bookings alone.
				logger.Warn("Redis unavailable, snapshot disabled", zap.Error(err))
			} else {
				defer client.Close()
				snapshot = cache.NewRedisSnapshotStore(client, config.Redis.SnapshotTTL, logger)
				logger.Info("Redis connected successfully")
			}
		}

		var publisher queue.Publisher = queue.NopPublisher{}
		if config.RabbitMQ.URL != "" {
			publisher = queue.NewPublisher(config.RabbitMQ, logger)
		}
		defer publisher.Close()

		limiter := middleware.NewIPRateLimiter(ctx, config.RateLimit)

		repos := repository.NewRepository(db, logger)
		app := wire.Wiring(repos, snapshot, publisher, limiter, db, config, logger)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			runSessionJanitor(ctx, app.Service.Auth, sessionSweepInterval, logger)
		}()

		if config.RabbitMQ.URL != "" {
			consumer := queue.NewConsumer(config.RabbitMQ, app.Service.Availability, logger)
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Snapshot consumer stopped", zap.Error(err))
				}
			}()
		}

		srv := &http.Server{
			Addr:         fmt.Sprintf(":%s", config.App.Port),
			Handler:      app.Router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		shutdownError := make(chan error, 1)
		go func() {
			<-ctx.Done()
			logger.Info("Shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := srv.Shutdown(shutdownCtx)
			wg.Wait()
			shutdownError <- err
		}()

		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			stop()
			return err
		}

		if err := <-shutdownError; err != nil {
			return err
		}

		logger.Info("Server stopped")
		return nil
	},
}

// runSessionJanitor deletes long expired sessions until ctx is done.
func runSessionJanitor(ctx context.Context, auth usecase.AuthService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.CleanExpiredSessions(ctx); err != nil {
				logger.Warn("Session cleanup failed", zap.Error(err))
			}
		}
	}
}
