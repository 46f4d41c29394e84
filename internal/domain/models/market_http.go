package models

// Requests for the market HTTP endpoints. Defined in domain for consistency
// and reuse.

type SnapshotRequest struct {
	Limit int `query:"limit" json:"limit" default:"0" validate:"gte=0,lte=10000"`
}

// TopRequest's N of 0 means "use the configured default".
type TopRequest struct {
	Metric string `query:"metric" json:"metric" default:"price" validate:"oneof=price spread rsi"`
	N      int    `query:"n" json:"n" default:"0" validate:"gte=0,lte=100"`
}
