package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/adapter/chromedp_fetcher"
	"github.com/user/linkrank/internal/adapter/filestore"
	"github.com/user/linkrank/internal/adapter/html_fetcher"
	"github.com/user/linkrank/internal/adapter/postgres"
	redis_adapter "github.com/user/linkrank/internal/adapter/redis"
	"github.com/user/linkrank/internal/delivery/http/handler"
	"github.com/user/linkrank/internal/keyword"
	"github.com/user/linkrank/internal/ranking"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/internal/usecase"
	"github.com/user/linkrank/pkg/config"
	"github.com/user/linkrank/pkg/logger"
	"github.com/user/linkrank/pkg/metrics"
)

// app holds the wired dependencies shared by the menu and the API server.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	runner   *usecase.CycleRunner
	searcher *usecase.Searcher
	reports  repository.RankReportRepository
	checks   map[string]handler.HealthCheck
	closers  []func()
}

// setup loads configuration from the --env-file flag and wires the app.
func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   log,
		registry: prometheus.NewRegistry(),
		checks:   make(map[string]handler.HealthCheck),
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	format, err := keyword.ParseFormat(cfg.BodyStoreFormat)
	if err != nil {
		return nil, err
	}

	store, err := a.bodyStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var failures repository.FetchFailureRepository
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, dbpool.Close)
		if err := dbpool.Ping(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, dbpool); err != nil {
			a.Close()
			return nil, err
		}
		a.reports = postgres.NewRankReportRepo(dbpool)
		failures = postgres.NewFetchFailureRepo(dbpool)
		a.checks["postgres"] = dbpool.Ping
		log.Info("PostgreSQL connection pool established")
	}

	fetcher := a.fetcher()
	a.runner = usecase.NewCycleRunner(
		usecase.NewGraphCrawler(fetcher, failures, a.metrics, log),
		usecase.NewResourceLoader(fetcher, failures, cfg.LoaderWorkers, a.metrics, log),
		a.metrics,
		log,
	)

	policy := ranking.Policy{
		AuthorityWeight:      cfg.AuthorityWeight,
		QueryWeight:          cfg.QueryWeight,
		SelfReferencePenalty: cfg.SelfReferencePenalty,
		SelfReferencePenaltyAppliesToScoreAndCount: cfg.SelfReferencePenalizesCalls,
	}
	a.searcher = usecase.NewSearcher(store, format, policy, a.reports, a.metrics, log)

	return a, nil
}

func (a *app) bodyStore(ctx context.Context) (repository.BodyStore, error) {
	if a.cfg.BodyStoreBackend != config.BodyStoreRedis {
		a.logger.Info("using file body store", zap.String("path", a.cfg.BodyStorePath))
		return filestore.NewBodyStore(a.cfg.BodyStorePath), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     a.cfg.RedisAddr,
		Password: a.cfg.RedisPassword,
		DB:       a.cfg.RedisDB,
	})
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	a.logger.Info("Redis connection established", zap.String("key", a.cfg.BodyStoreKey))
	return redis_adapter.NewBodyStore(rdb, a.cfg.BodyStoreKey), nil
}

func (a *app) fetcher() repository.Fetcher {
	if a.cfg.Fetcher == config.FetcherChromedp {
		f := chromedp_fetcher.NewChromedpFetcher(a.cfg.FetchTimeoutDuration(), a.logger)
		a.closers = append(a.closers, f.Close)
		return f
	}
	return html_fetcher.NewHTTPFetcher(a.cfg.FetchTimeoutDuration())
}

// Close releases connections in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.logger.Sync()
}
