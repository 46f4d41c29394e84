package aggregate

import (
	"sort"
	"time"

	"EtfAlpha/internal/domain/models"
)

// Ranking metrics accepted by TopN.
const (
	MetricPrice  = "price"
	MetricSpread = "spread"
	MetricRSI    = "rsi"
)

// LatestPerSymbol reduces the table to the most recent row per symbol:
// maximum ingested_at, with ties broken last-wins in insertion order.
// Defined for empty and single-row tables. Output is sorted by symbol.
func LatestPerSymbol(rows []models.DerivedRow) []models.DerivedRow {
	latest := make(map[string]models.DerivedRow)
	for _, r := range rows {
		cur, ok := latest[r.Symbol]
		if !ok || !r.IngestedAt.Before(cur.IngestedAt) {
			latest[r.Symbol] = r
		}
	}

	out := make([]models.DerivedRow, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// TopN returns the n highest rows by the given metric, descending, with
// symbol as the deterministic tie-break. Rows without a value for the
// metric (nil RSI) rank below every row that has one.
func TopN(rows []models.DerivedRow, metric string, n int) []models.DerivedRow {
	if n <= 0 {
		return []models.DerivedRow{}
	}

	ranked := make([]models.DerivedRow, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := metricValue(ranked[i], metric)
		vj, okj := metricValue(ranked[j], metric)
		if oki != okj {
			return oki
		}
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func metricValue(r models.DerivedRow, metric string) (float64, bool) {
	switch metric {
	case MetricSpread:
		return r.VolatilitySpread, true
	case MetricRSI:
		if r.RSI == nil {
			return 0, false
		}
		return *r.RSI, true
	default:
		return r.Price, true
	}
}

// Stats computes the dashboard KPI values. Total over any input: an empty
// table yields zero values, never a division by the row count.
func Stats(rows []models.DerivedRow, now time.Time) models.SnapshotStats {
	stats := models.SnapshotStats{GeneratedAt: now}
	if len(rows) == 0 {
		return stats
	}

	stats.Rows = len(rows)

	var priceSum float64
	seen := make(map[string]struct{})
	maxRange := rows[0].DayHigh - rows[0].DayLow
	stats.MaxSpreadSymbol = rows[0].Symbol

	for _, r := range rows {
		priceSum += r.Price
		seen[r.Symbol] = struct{}{}
		if rng := r.DayHigh - r.DayLow; rng > maxRange {
			maxRange = rng
			stats.MaxSpreadSymbol = r.Symbol
		}
	}

	stats.Symbols = len(seen)
	stats.MeanPrice = priceSum / float64(len(rows))
	return stats
}
