package sanitize

import (
	"EtfAlpha/internal/domain/models"
	"EtfAlpha/pkg/util"
)

// Result is the sanitized table plus drop counters for observability.
type Result struct {
	Rows            []models.MarketRow
	DroppedBadTime  int
	DroppedBadPrice int
}

// Clean coerces raw rows into typed MarketRows. It is total: any input,
// including an empty table, yields a defined result and never an error.
//
// Policies, applied uniformly:
//   - numeric fields that fail to parse become 0
//   - a row whose ingested_at cannot be parsed is dropped
//   - a row whose coerced price is not positive is dropped (the upstream
//     dashboard filters price > 0 before display)
//
// Coercion happens only here; downstream stages assume typed fields.
func Clean(raw []models.RawRow) Result {
	res := Result{Rows: make([]models.MarketRow, 0, len(raw))}

	for _, r := range raw {
		ts, ok := util.ParseTime(string(r.IngestedAt))
		if !ok {
			res.DroppedBadTime++
			continue
		}

		row := models.MarketRow{
			Symbol:     r.Symbol,
			Price:      coerce(r.Price),
			DayHigh:    coerce(r.DayHigh),
			DayLow:     coerce(r.DayLow),
			DayOpen:    coerce(r.DayOpen),
			PrevClose:  coerce(r.PrevClose),
			ChangePct:  coerce(r.ChangePct),
			IngestedAt: ts,
		}

		if row.Price <= 0 {
			res.DroppedBadPrice++
			continue
		}

		res.Rows = append(res.Rows, row)
	}

	return res
}

func coerce(v models.FlexString) float64 {
	f, ok := util.ParseFloat(string(v))
	if !ok {
		return 0
	}
	return f
}
