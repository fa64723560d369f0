package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourhub/adapters/postgres/migrations"
	"tourhub/api"
	"tourhub/internal/config"
	"tourhub/internal/container"
)

func main() {
	// Local development reads .env; production sets real env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := buildLogger(cfg.Server.GinMode)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func buildLogger(ginMode string) *zap.Logger {
	if ginMode == "release" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return err
	}

	if err := migrations.NewMigrator(db.DB).Up(ctx); err != nil {
		return err
	}

	c, err := container.New(cfg, logger)
	if err != nil {
		return err
	}
	if err := c.InitWithDatabase(db); err != nil {
		return err
	}
	defer c.Close()

	server := api.NewServer(c)
	ops := &http.Server{
		Addr:              ":" + cfg.Server.OpsPort,
		Handler:           api.NewOpsHandler(db, cfg.Server.PprofEnabled),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("ops listening", zap.String("port", cfg.Server.OpsPort))
		if err := ops.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return ops.Shutdown(shutdownCtx)
	})

	if c.Scheduler != nil {
		g.Go(func() error {
			logger.Info("monitor scheduler started")
			return c.Scheduler.Run(ctx)
		})
	}

	return g.Wait()
}
