package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lascala/internal/cache"
	"lascala/internal/config"
	"lascala/internal/events"
	"lascala/internal/http/handlers"
	applog "lascala/internal/log"
	"lascala/internal/repos"
	"lascala/internal/storage"
	"lascala/internal/telemetry"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lascala",
		Short:         "La Scala storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return serve(cmd.Context()) },
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the web server",
			RunE:  func(cmd *cobra.Command, _ []string) error { return serve(cmd.Context()) },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			RunE: func(*cobra.Command, []string) error {
				_, db, err := bootstrap()
				if err != nil {
					return err
				}
				defer db.Close()
				return repos.Migrate(db)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Migrate and load the demo catalog into an empty database",
			RunE: func(*cobra.Command, []string) error {
				_, db, err := bootstrap()
				if err != nil {
					return err
				}
				defer db.Close()
				return repos.Setup(db, true)
			},
		},
	)
	return root
}

func bootstrap() (config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, err
	}
	if err := applog.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return cfg, nil, fmt.Errorf("log file: %w", err)
	}
	db, err := repos.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return cfg, nil, fmt.Errorf("open db: %w", err)
	}
	return cfg, db, nil
}

func serve(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close()
	defer applog.Sync()
	lg := applog.L()

	flush, err := telemetry.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		lg.Warn("sentry.init.fail", zap.Error(err))
	}
	defer flush()

	if err := repos.Setup(db, cfg.Seed); err != nil {
		return err
	}

	var c cache.Cache = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		c = cache.NewRedis(rdb, cfg.CacheTTL)
		lg.Info("cache.redis", zap.String("addr", cfg.RedisAddr))
	}

	var pub events.Publisher = events.Nop{}
	if cfg.NatsURL != "" {
		nc, err := events.Connect(cfg.NatsURL)
		if err != nil {
			lg.Warn("events.connect.fail", zap.Error(err))
		} else {
			defer nc.Close()
			pub = nc
		}
	}

	store, err := storage.NewLocalStorage(cfg.MediaDir, "/media")
	if err != nil {
		return fmt.Errorf("media dir: %w", err)
	}

	app, err := handlers.NewApp(handlers.Options{
		DB:        db,
		Config:    cfg,
		Cache:     c,
		Events:    pub,
		Store:     store,
		AccessLog: true,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("server.start", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("server.stop")
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
