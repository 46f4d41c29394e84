package usecase

import (
	"context"
	"time"

	"EtfAlpha/internal/domain/models"
	domrepo "EtfAlpha/internal/domain/repository"
	"EtfAlpha/internal/services/aggregate"
	"EtfAlpha/internal/services/features"
	"EtfAlpha/internal/services/sanitize"
	"EtfAlpha/pkg/cache"
	applogger "EtfAlpha/pkg/logger"
)

// Pipeline runs the full snapshot transformation: fetch, sanitize, derive.
// Each invocation produces a fresh table; the only state between calls is a
// time-boxed cache keyed by the source, invalidated purely by elapsed time.
type Pipeline struct {
	source   domrepo.SnapshotSource
	cache    cache.Service
	metrics  domrepo.Metrics
	cacheTTL time.Duration
	features features.Config
	l        *applogger.Logger
}

func NewPipeline(
	source domrepo.SnapshotSource,
	c cache.Service,
	metrics domrepo.Metrics,
	cacheTTL time.Duration,
	featureCfg features.Config,
	l *applogger.Logger,
) *Pipeline {
	return &Pipeline{
		source:   source,
		cache:    c,
		metrics:  metrics,
		cacheTTL: cacheTTL,
		features: featureCfg,
		l:        l,
	}
}

// Refresh returns the derived table for the current snapshot. Within the
// cache TTL repeated calls are served from the memo without touching the
// upstream source. Only the fetch stage can fail; everything after it is
// total, so an empty upstream table flows through as an empty result.
func (p *Pipeline) Refresh(ctx context.Context) ([]models.DerivedRow, error) {
	key := "snapshot:" + p.source.Name()

	if p.cache != nil {
		var cached []models.DerivedRow
		if err := p.cache.Get(ctx, key, &cached); err == nil {
			p.metrics.RecordCacheLookup(true)
			return cached, nil
		}
		p.metrics.RecordCacheLookup(false)
	}

	fetchStart := time.Now()
	raw, err := p.source.FetchSnapshot(ctx)
	if err != nil {
		p.metrics.RecordError("fetch")
		return nil, err
	}
	p.metrics.RecordFetch(p.source.Name(), len(raw))
	p.metrics.RecordStageDuration("fetch", time.Since(fetchStart).Seconds())

	deriveStart := time.Now()
	cleaned := sanitize.Clean(raw)
	p.metrics.RecordRowsDropped("bad_timestamp", cleaned.DroppedBadTime)
	p.metrics.RecordRowsDropped("nonpositive_price", cleaned.DroppedBadPrice)

	derived := features.DeriveTable(cleaned.Rows, p.features)
	p.metrics.RecordStageDuration("derive", time.Since(deriveStart).Seconds())

	if p.l != nil {
		p.l.Info("pipeline refresh",
			applogger.String("source", p.source.Name()),
			applogger.Int("raw_rows", len(raw)),
			applogger.Int("derived_rows", len(derived)),
			applogger.Int("dropped_bad_timestamp", cleaned.DroppedBadTime),
			applogger.Int("dropped_nonpositive_price", cleaned.DroppedBadPrice),
		)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, derived, p.cacheTTL); err != nil && p.l != nil {
			p.l.Warn("snapshot cache store failed", applogger.Error(err))
		}
	}

	return derived, nil
}

// Latest returns the most recent derived row per symbol.
func (p *Pipeline) Latest(ctx context.Context) ([]models.DerivedRow, error) {
	rows, err := p.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.LatestPerSymbol(rows), nil
}

// Top returns the n highest rows of the latest snapshot by the given metric.
func (p *Pipeline) Top(ctx context.Context, metric string, n int) ([]models.DerivedRow, error) {
	rows, err := p.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.TopN(rows, metric, n), nil
}

// Correlation returns the pairwise Pearson matrix over all symbols.
func (p *Pipeline) Correlation(ctx context.Context) (models.CorrelationMatrix, error) {
	rows, err := p.Refresh(ctx)
	if err != nil {
		return models.CorrelationMatrix{}, err
	}
	return aggregate.Correlation(rows, time.Now().UTC()), nil
}

// Stats returns the KPI card values for the latest snapshot.
func (p *Pipeline) Stats(ctx context.Context) (models.SnapshotStats, error) {
	rows, err := p.Refresh(ctx)
	if err != nil {
		return models.SnapshotStats{}, err
	}
	return aggregate.Stats(rows, time.Now().UTC()), nil
}
