package models

import "time"

// CorrelationMatrix holds pairwise Pearson correlations of price series.
// A nil cell means the pair had fewer than two overlapping timestamps or a
// constant series, so no correlation is defined.
type CorrelationMatrix struct {
	Symbols     []string     `json:"symbols"`
	Matrix      [][]*float64 `json:"matrix"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// SnapshotStats are the dashboard KPI card values.
type SnapshotStats struct {
	Rows            int       `json:"rows"`
	Symbols         int       `json:"symbols"`
	MeanPrice       float64   `json:"mean_price"`
	MaxSpreadSymbol string    `json:"max_spread_symbol"`
	GeneratedAt     time.Time `json:"generated_at"`
}
