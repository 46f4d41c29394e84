package sanitize

import (
	"testing"
	"time"

	"EtfAlpha/internal/domain/models"
)

func rawRow(symbol, price, ts string) models.RawRow {
	return models.RawRow{
		Symbol:     symbol,
		Price:      models.FlexString(price),
		DayHigh:    "102",
		DayLow:     "98",
		DayOpen:    "99",
		PrevClose:  "100",
		ChangePct:  "2.0",
		IngestedAt: models.FlexString(ts),
	}
}

func TestCleanCoercesStrings(t *testing.T) {
	res := Clean([]models.RawRow{rawRow("QQQ", "100.5", "2024-10-10T10:00:00Z")})
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	r := res.Rows[0]
	if r.Price != 100.5 {
		t.Errorf("price = %v, want 100.5", r.Price)
	}
	if r.DayHigh != 102 || r.DayLow != 98 {
		t.Errorf("day range = [%v, %v], want [98, 102]", r.DayLow, r.DayHigh)
	}
	want := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	if !r.IngestedAt.Equal(want) {
		t.Errorf("ingested_at = %v, want %v", r.IngestedAt, want)
	}
}

func TestCleanIdempotentOnNumeric(t *testing.T) {
	// coercing an already-numeric column must be a no-op
	res := Clean([]models.RawRow{rawRow("SPY", "412", "2024-10-10T10:00:00Z")})
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row")
	}
	if res.Rows[0].Price != 412 {
		t.Errorf("price = %v, want 412", res.Rows[0].Price)
	}
	if res.Rows[0].ChangePct != 2.0 {
		t.Errorf("change_pct = %v, want 2.0", res.Rows[0].ChangePct)
	}
}

func TestCleanUnparseableNumericDefaultsToZero(t *testing.T) {
	raw := rawRow("SPY", "410", "2024-10-10T10:00:00Z")
	raw.ChangePct = "n/a"
	res := Clean([]models.RawRow{raw})
	if len(res.Rows) != 1 {
		t.Fatalf("expected row kept")
	}
	if res.Rows[0].ChangePct != 0 {
		t.Errorf("change_pct = %v, want 0", res.Rows[0].ChangePct)
	}
}

func TestCleanDropsUnparseableTimestamp(t *testing.T) {
	res := Clean([]models.RawRow{
		rawRow("SPY", "410", "garbage"),
		rawRow("QQQ", "300", "2024-10-10T10:00:00Z"),
	})
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	if res.Rows[0].Symbol != "QQQ" {
		t.Errorf("kept %s, want QQQ", res.Rows[0].Symbol)
	}
	if res.DroppedBadTime != 1 {
		t.Errorf("DroppedBadTime = %d, want 1", res.DroppedBadTime)
	}
}

func TestCleanDropsNonPositivePrices(t *testing.T) {
	res := Clean([]models.RawRow{
		rawRow("ZERO", "0", "2024-10-10T10:00:00Z"),
		rawRow("NEG", "-5", "2024-10-10T10:00:00Z"),
		rawRow("BAD", "not-a-price", "2024-10-10T10:00:00Z"),
		rawRow("OK", "10", "2024-10-10T10:00:00Z"),
	})
	if len(res.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Rows))
	}
	if res.Rows[0].Symbol != "OK" {
		t.Errorf("kept %s, want OK", res.Rows[0].Symbol)
	}
	if res.DroppedBadPrice != 3 {
		t.Errorf("DroppedBadPrice = %d, want 3", res.DroppedBadPrice)
	}
}

func TestCleanEmptyTable(t *testing.T) {
	res := Clean(nil)
	if len(res.Rows) != 0 {
		t.Fatalf("expected empty result")
	}
	if res.DroppedBadTime != 0 || res.DroppedBadPrice != 0 {
		t.Errorf("unexpected drop counters: %+v", res)
	}
}
