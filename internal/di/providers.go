package di

import (
	"fmt"

	"EtfAlpha/internal/domain/repository"
	"EtfAlpha/internal/handler/api"
	internalrepo "EtfAlpha/internal/repository"
	"EtfAlpha/internal/services/features"
	"EtfAlpha/internal/usecase"
	"EtfAlpha/pkg/cache"
	"EtfAlpha/pkg/config"
	xhttp "EtfAlpha/pkg/http"
	applogger "EtfAlpha/pkg/logger"
	"EtfAlpha/pkg/metrics"
	pkgpg "EtfAlpha/pkg/postgres"
	"EtfAlpha/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: level, Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideSnapshotSource creates the configured upstream source.
func ProvideSnapshotSource(cfg *config.Config, l *applogger.Logger) (repository.SnapshotSource, error) {
	switch cfg.Source.Type {
	case "postgres":
		client, err := pkgpg.NewClient(
			pkgpg.WithHost(cfg.Postgres.Host),
			pkgpg.WithPort(cfg.Postgres.Port),
			pkgpg.WithDatabase(cfg.Postgres.Database),
			pkgpg.WithCredentials(cfg.Postgres.User, cfg.Postgres.Password),
			pkgpg.WithSSLMode(cfg.Postgres.SSLMode),
			pkgpg.WithDialTimeout(cfg.Postgres.DialTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("postgres client: %w", err)
		}
		src := internalrepo.NewPostgresSource(client, cfg.Postgres.Table, cfg.Postgres.QueryTimeout)
		src.SetLogger(l)
		return src, nil
	case "http":
		timeout := cfg.HTTPSource.Timeout
		if timeout <= 0 {
			timeout = cfg.Source.Timeout
		}
		src := internalrepo.NewHTTPSource(cfg.HTTPSource.URL, timeout)
		src.SetLogger(l)
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
	}
}

// ProvideCache creates the snapshot memo cache. With Redis enabled the memo
// survives process restarts and is shared between replicas.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

// ProvidePipeline creates the snapshot pipeline use case.
func ProvidePipeline(
	source repository.SnapshotSource,
	c cache.Service,
	m repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(source, c, m, cfg.Cache.TTL, features.Config{
		RSIPeriod:     cfg.Pipeline.RSIPeriod,
		BullThreshold: cfg.Pipeline.BullThreshold,
		BearThreshold: cfg.Pipeline.BearThreshold,
	}, l)
}

// ProvideMarketHandler creates the HTTP handler for the market API.
func ProvideMarketHandler(l *applogger.Logger, pipeline *usecase.Pipeline, cfg *config.Config) xhttp.Handler {
	return api.NewMarketHandler(l, pipeline, cfg.Pipeline.TopN)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	source repository.SnapshotSource,
	c cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, source, c, handler)
}
