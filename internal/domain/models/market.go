package models

import (
	"bytes"
	"time"
)

// RawRow is one upstream observation before sanitization. Numeric fields may
// arrive as JSON numbers, quoted strings, or nulls depending on the source,
// so everything is captured as text and coerced exactly once downstream.
type RawRow struct {
	Symbol     string     `json:"symbol"`
	Price      FlexString `json:"price"`
	DayHigh    FlexString `json:"day_high"`
	DayLow     FlexString `json:"day_low"`
	DayOpen    FlexString `json:"day_open"`
	PrevClose  FlexString `json:"prev_close"`
	ChangePct  FlexString `json:"change_pct"`
	IngestedAt FlexString `json:"ingested_at"`
}

// FlexString unmarshals a JSON string, number, or null into its textual form.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' && len(b) >= 2 {
		*f = FlexString(b[1 : len(b)-1])
		return nil
	}
	*f = FlexString(b)
	return nil
}

// MarketRow is one sanitized observation of one asset. Immutable once built;
// symbols are not unique across a table, one symbol may have many rows over
// time.
type MarketRow struct {
	Symbol     string    `json:"symbol"`
	Price      float64   `json:"price"`
	DayHigh    float64   `json:"day_high"`
	DayLow     float64   `json:"day_low"`
	DayOpen    float64   `json:"day_open"`
	PrevClose  float64   `json:"prev_close"`
	ChangePct  float64   `json:"change_pct"`
	IngestedAt time.Time `json:"ingested_at"`
}

// DerivedRow is a MarketRow augmented with computed analytics. RSI is nil
// while the symbol's series is shorter than the configured period.
type DerivedRow struct {
	MarketRow

	VolatilitySpread float64  `json:"volatility_spread"`
	GapPct           float64  `json:"gap_pct"`
	TrendStatus      string   `json:"trend_status"`
	RSI              *float64 `json:"rsi"`
	Drawdown         float64  `json:"drawdown"`
}
