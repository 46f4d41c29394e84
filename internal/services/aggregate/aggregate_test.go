package aggregate

import (
	"testing"
	"time"

	"EtfAlpha/internal/domain/models"
)

func derivedRow(symbol string, price, spread float64, ts time.Time) models.DerivedRow {
	return models.DerivedRow{
		MarketRow: models.MarketRow{
			Symbol:     symbol,
			Price:      price,
			DayHigh:    price + spread,
			DayLow:     price,
			IngestedAt: ts,
		},
		VolatilitySpread: spread,
	}
}

func TestLatestPerSymbol(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Minute)

	rows := []models.DerivedRow{
		derivedRow("QQQ", 100, 1, t0),
		derivedRow("SPY", 400, 1, t0),
		derivedRow("QQQ", 101, 1, t1),
	}

	out := LatestPerSymbol(rows)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Symbol != "QQQ" || out[0].Price != 101 {
		t.Errorf("QQQ latest = %+v, want price 101", out[0].MarketRow)
	}
	if out[1].Symbol != "SPY" {
		t.Errorf("expected SPY second, got %s", out[1].Symbol)
	}
}

func TestLatestPerSymbolTieLastWins(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := []models.DerivedRow{
		derivedRow("QQQ", 100, 1, t0),
		derivedRow("QQQ", 105, 1, t0),
	}
	out := LatestPerSymbol(rows)
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].Price != 105 {
		t.Errorf("tie on ingested_at: price = %v, want 105 (last wins)", out[0].Price)
	}
}

func TestLatestPerSymbolEmpty(t *testing.T) {
	if out := LatestPerSymbol(nil); len(out) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(out))
	}
}

func TestTopNByPriceStableTieBreak(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := []models.DerivedRow{
		derivedRow("CCC", 100, 1, t0),
		derivedRow("AAA", 100, 1, t0),
		derivedRow("BBB", 200, 1, t0),
	}

	out := TopN(rows, MetricPrice, 3)
	got := []string{out[0].Symbol, out[1].Symbol, out[2].Symbol}
	want := []string{"BBB", "AAA", "CCC"} // ties resolved by symbol
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranking = %v, want %v", got, want)
		}
	}
}

func TestTopNByRSIUndefinedRanksLast(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	low := 30.0
	high := 70.0

	withRSI := derivedRow("LOW", 1, 1, t0)
	withRSI.RSI = &low
	withRSI2 := derivedRow("HIGH", 1, 1, t0)
	withRSI2.RSI = &high
	noRSI := derivedRow("NONE", 999, 1, t0)

	out := TopN([]models.DerivedRow{noRSI, withRSI, withRSI2}, MetricRSI, 3)
	got := []string{out[0].Symbol, out[1].Symbol, out[2].Symbol}
	want := []string{"HIGH", "LOW", "NONE"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranking = %v, want %v", got, want)
		}
	}
}

func TestTopNClampsToTableSize(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := []models.DerivedRow{derivedRow("QQQ", 100, 1, t0)}
	if out := TopN(rows, MetricPrice, 15); len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out := TopN(nil, MetricPrice, 15); len(out) != 0 {
		t.Fatalf("expected empty ranking, got %d", len(out))
	}
}

func TestStats(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := []models.DerivedRow{
		derivedRow("QQQ", 100, 5, t0),
		derivedRow("SPY", 300, 2, t0),
		derivedRow("QQQ", 110, 1, t0),
	}

	stats := Stats(rows, t0)
	if stats.Rows != 3 {
		t.Errorf("rows = %d, want 3", stats.Rows)
	}
	if stats.Symbols != 2 {
		t.Errorf("symbols = %d, want 2", stats.Symbols)
	}
	if stats.MeanPrice != 170 {
		t.Errorf("mean price = %v, want 170", stats.MeanPrice)
	}
	if stats.MaxSpreadSymbol != "QQQ" {
		t.Errorf("max spread symbol = %s, want QQQ", stats.MaxSpreadSymbol)
	}
}

func TestStatsEmptyTable(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	stats := Stats(nil, t0)
	if stats.Rows != 0 || stats.MeanPrice != 0 || stats.MaxSpreadSymbol != "" {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
