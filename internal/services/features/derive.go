package features

import (
	"math"
	"sort"

	"EtfAlpha/internal/domain/models"
)

// Trend labels. The classification is total: every change_pct maps to
// exactly one label, with both thresholds exclusive (boundary values are
// Neutral).
const (
	TrendBull    = "Bull Run"
	TrendBear    = "Bear Dip"
	TrendNeutral = "Neutral"
)

// Config holds feature tuning. Zero values fall back to the defaults the
// dashboard has always used.
type Config struct {
	RSIPeriod     int
	BullThreshold float64
	BearThreshold float64
}

func (c Config) withDefaults() Config {
	if c.RSIPeriod <= 0 {
		c.RSIPeriod = 14
	}
	if c.BullThreshold == 0 {
		c.BullThreshold = 1.5
	}
	if c.BearThreshold == 0 {
		c.BearThreshold = -1.5
	}
	return c
}

// VolatilitySpread is the day range as a percentage of the low. Returns the
// 0 sentinel when the low is zero instead of dividing by it.
func VolatilitySpread(high, low float64) float64 {
	if low == 0 {
		return 0
	}
	return (high - low) / low * 100
}

// GapPct is the open's distance from the previous close as a percentage.
// Returns the 0 sentinel when the previous close is zero.
func GapPct(open, prevClose float64) float64 {
	if prevClose == 0 {
		return 0
	}
	return (open - prevClose) / prevClose * 100
}

// Trend classifies a signed percentage change against the configured
// thresholds.
func Trend(changePct float64, cfg Config) string {
	cfg = cfg.withDefaults()
	switch {
	case changePct > cfg.BullThreshold:
		return TrendBull
	case changePct < cfg.BearThreshold:
		return TrendBear
	default:
		return TrendNeutral
	}
}

// DeriveTable computes the derived columns for a sanitized table. Series
// features (RSI, drawdown) are computed per symbol over that symbol's
// time-ordered rows only; rows of different symbols never leak into each
// other's series. The output is ordered by symbol, then time, with
// insertion order preserved on equal timestamps.
func DeriveTable(rows []models.MarketRow, cfg Config) []models.DerivedRow {
	cfg = cfg.withDefaults()

	groups := groupBySymbol(rows)

	out := make([]models.DerivedRow, 0, len(rows))
	for _, g := range groups {
		prices := make([]float64, len(g))
		for i, r := range g {
			prices[i] = r.Price
		}
		rsi := RSI(prices, cfg.RSIPeriod)
		dd := Drawdown(prices)

		for i, r := range g {
			out = append(out, models.DerivedRow{
				MarketRow:        r,
				VolatilitySpread: VolatilitySpread(r.DayHigh, r.DayLow),
				GapPct:           GapPct(r.DayOpen, r.PrevClose),
				TrendStatus:      Trend(r.ChangePct, cfg),
				RSI:              optional(rsi[i]),
				Drawdown:         dd[i],
			})
		}
	}

	return out
}

// groupBySymbol splits the table into per-symbol series sorted by
// ingestion time. The sort is stable so rows sharing a timestamp keep
// their original order; groups come back in symbol order.
func groupBySymbol(rows []models.MarketRow) [][]models.MarketRow {
	bySymbol := make(map[string][]models.MarketRow)
	symbols := make([]string, 0)
	for _, r := range rows {
		if _, ok := bySymbol[r.Symbol]; !ok {
			symbols = append(symbols, r.Symbol)
		}
		bySymbol[r.Symbol] = append(bySymbol[r.Symbol], r)
	}
	sort.Strings(symbols)

	out := make([][]models.MarketRow, 0, len(symbols))
	for _, sym := range symbols {
		g := bySymbol[sym]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].IngestedAt.Before(g[j].IngestedAt)
		})
		out = append(out, g)
	}
	return out
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
