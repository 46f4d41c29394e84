package aggregate

import (
	"math"
	"testing"
	"time"

	"EtfAlpha/internal/domain/models"
)

func seriesRows(symbol string, start time.Time, prices ...float64) []models.DerivedRow {
	rows := make([]models.DerivedRow, len(prices))
	for i, p := range prices {
		rows[i] = models.DerivedRow{MarketRow: models.MarketRow{
			Symbol:     symbol,
			Price:      p,
			IngestedAt: start.Add(time.Duration(i) * time.Minute),
		}}
	}
	return rows
}

func TestCorrelationPerfectPositive(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := append(
		seriesRows("AAA", t0, 1, 2, 3),
		seriesRows("BBB", t0, 10, 20, 30)...,
	)

	m := Correlation(rows, t0)
	if len(m.Symbols) != 2 || m.Symbols[0] != "AAA" || m.Symbols[1] != "BBB" {
		t.Fatalf("symbols = %v, want [AAA BBB]", m.Symbols)
	}
	cell := m.Matrix[0][1]
	if cell == nil {
		t.Fatal("AAA/BBB cell is nil, want 1")
	}
	if math.Abs(*cell-1.0) > 1e-9 {
		t.Errorf("correlation = %v, want 1", *cell)
	}
	if m.Matrix[0][0] == nil || *m.Matrix[0][0] != 1.0 {
		t.Errorf("diagonal should be exactly 1, got %v", m.Matrix[0][0])
	}
}

func TestCorrelationPerfectInverse(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := append(
		seriesRows("AAA", t0, 1, 2, 3),
		seriesRows("BBB", t0, 30, 20, 10)...,
	)

	m := Correlation(rows, t0)
	cell := m.Matrix[0][1]
	if cell == nil {
		t.Fatal("AAA/BBB cell is nil, want -1")
	}
	if math.Abs(*cell+1.0) > 1e-9 {
		t.Errorf("correlation = %v, want -1", *cell)
	}
}

func TestCorrelationSymmetric(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	rows := append(
		seriesRows("AAA", t0, 5, 9, 2, 7),
		seriesRows("BBB", t0, 3, 8, 1, 6)...,
	)

	m := Correlation(rows, t0)
	a, b := m.Matrix[0][1], m.Matrix[1][0]
	if a == nil || b == nil {
		t.Fatal("expected defined off-diagonal cells")
	}
	if *a != *b {
		t.Errorf("matrix not symmetric: %v vs %v", *a, *b)
	}
}

func TestCorrelationUndefinedCells(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)

	// single overlap only
	rows := append(
		seriesRows("AAA", t0, 1, 2),
		seriesRows("BBB", t0.Add(time.Minute), 5)...,
	)
	m := Correlation(rows, t0)
	if m.Matrix[0][1] != nil {
		t.Errorf("single overlap: cell = %v, want nil", *m.Matrix[0][1])
	}

	// constant series has zero variance
	rows = append(
		seriesRows("AAA", t0, 7, 7, 7),
		seriesRows("BBB", t0, 1, 2, 3)...,
	)
	m = Correlation(rows, t0)
	if m.Matrix[0][1] != nil {
		t.Errorf("constant series: cell = %v, want nil", *m.Matrix[0][1])
	}
	// the constant symbol's own diagonal is undefined too
	if m.Matrix[0][0] != nil {
		t.Errorf("constant diagonal: cell = %v, want nil", *m.Matrix[0][0])
	}
}

func TestCorrelationEmptyTable(t *testing.T) {
	t0 := time.Date(2024, 10, 10, 10, 0, 0, 0, time.UTC)
	m := Correlation(nil, t0)
	if len(m.Symbols) != 0 || len(m.Matrix) != 0 {
		t.Fatalf("expected empty matrix, got %+v", m)
	}
	if !m.GeneratedAt.Equal(t0) {
		t.Errorf("generated_at = %v, want %v", m.GeneratedAt, t0)
	}
}
