package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/artvault/artvault/internal/httpapi/handlers"
	"github.com/artvault/artvault/internal/httpapi/server"
	"github.com/artvault/artvault/internal/periodicjobs"
	"github.com/artvault/artvault/pkg/cache"
	"github.com/artvault/artvault/pkg/cachesync"
	"github.com/artvault/artvault/pkg/config"
	"github.com/artvault/artvault/pkg/logger"
	"github.com/artvault/artvault/pkg/records"
	"github.com/artvault/artvault/pkg/store"
	"github.com/artvault/artvault/pkg/telemetry"
)

const teardownTimeout = 10 * time.Second

func main() {
	var seedPath string
	flag.StringVar(&seedPath, "seed", "", "YAML fixtures to insert into the durable store before starting")
	flag.Parse()

	cfg, err := config.GetConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	logger.Init(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, seedPath); err != nil {
		logrus.WithError(err).Error("artvault exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, seedPath string) error {
	log := logger.Logger(ctx)

	if err := telemetry.Init(ctx, cfg.Telemetry); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("failed to flush telemetry")
		}
	}()

	syncMetrics, err := telemetry.NewSyncMetrics(telemetry.Meter())
	if err != nil {
		return err
	}
	httpMetrics, err := telemetry.NewHTTPMetrics(telemetry.Meter())
	if err != nil {
		return err
	}

	mongoClient, err := records.Connect(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
		defer cancel()
		if err := mongoClient.Close(closeCtx); err != nil {
			log.WithError(err).Warn("failed to disconnect from mongo")
		}
	}()
	recordStore := mongoClient.Store()

	cfg.Cache.Redis.Instrument = cfg.Telemetry.Enabled
	cacheClient, err := cache.New(&cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.WithError(err).Warn("failed to close cache")
		}
	}()
	cacheStore := store.New(cacheClient)

	if seedPath != "" {
		fixtures, err := records.LoadFixtures(seedPath)
		if err != nil {
			return err
		}
		if err := records.Seed(ctx, recordStore, fixtures); err != nil {
			return err
		}
	}

	mode, err := cachesync.ParseMode(cfg.Sync.Mode)
	if err != nil {
		return err
	}
	engine := cachesync.New(recordStore, cacheStore, cachesync.Options{
		ProductiveThreshold: cfg.Sync.ProductiveThreshold,
		Mode:                mode,
		Metrics:             syncMetrics,
	})

	if cfg.Sync.Startup {
		reports, err := engine.Run(ctx)
		if err != nil {
			return err
		}
		for _, r := range reports {
			log.WithField("procedure", r.Procedure).
				WithField("synced", r.Synced).
				WithField("skipped", r.Skipped).
				WithField("failed", r.Failed).
				Info("startup cache sync finished")
		}
	}

	tasks := periodicjobs.NewPeriodicTaskManager()
	periodicjobs.NewCacheResyncJob(engine, cfg.Sync.ResyncInterval).AddToPeriodicTaskManager(tasks)

	apiServer := server.NewAPIServer(cfg, handlers.NewHandlers(cfg, cacheStore, recordStore, engine), httpMetrics)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return apiServer.Start(gctx)
	})
	g.Go(func() error {
		return tasks.RunAll(gctx)
	})
	return g.Wait()
}
