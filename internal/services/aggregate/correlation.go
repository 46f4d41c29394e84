package aggregate

import (
	"math"
	"sort"
	"time"

	"EtfAlpha/internal/domain/models"
)

// Correlation pivots the table into per-symbol price series keyed by
// timestamp and computes the pairwise Pearson correlation across all
// symbol pairs. A pair with fewer than two overlapping timestamps, or a
// constant series, gets a nil cell rather than a crash or an infinity.
func Correlation(rows []models.DerivedRow, now time.Time) models.CorrelationMatrix {
	series := make(map[string]map[time.Time]float64)
	for _, r := range rows {
		if series[r.Symbol] == nil {
			series[r.Symbol] = make(map[time.Time]float64)
		}
		// last observation wins on duplicate timestamps
		series[r.Symbol][r.IngestedAt] = r.Price
	}

	symbols := make([]string, 0, len(series))
	for sym := range series {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	matrix := make([][]*float64, len(symbols))
	for i := range symbols {
		matrix[i] = make([]*float64, len(symbols))
		for j := range symbols {
			if j < i {
				matrix[i][j] = matrix[j][i]
				continue
			}
			matrix[i][j] = pearson(series[symbols[i]], series[symbols[j]])
		}
	}

	return models.CorrelationMatrix{
		Symbols:     symbols,
		Matrix:      matrix,
		GeneratedAt: now,
	}
}

// pearson computes the correlation of the two series over their overlapping
// timestamps. Returns nil when undefined.
func pearson(a, b map[time.Time]float64) *float64 {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for ts, av := range a {
		if bv, ok := b[ts]; ok {
			xs = append(xs, av)
			ys = append(ys, bv)
		}
	}
	if len(xs) < 2 {
		return nil
	}

	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / n
	meanY := sumY / n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return nil
	}

	r := cov / math.Sqrt(varX*varY)
	// clamp rounding noise
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return &r
}
