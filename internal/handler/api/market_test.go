package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"EtfAlpha/internal/domain/models"
	"EtfAlpha/internal/services/features"
	"EtfAlpha/internal/usecase"
	xhttp "EtfAlpha/pkg/http"
	xlogger "EtfAlpha/pkg/logger"
)

type stubSource struct {
	rows []models.RawRow
	err  error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchSnapshot(context.Context) ([]models.RawRow, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rows, nil
}

type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, int)             {}
func (stubMetrics) RecordRowsDropped(string, int)       {}
func (stubMetrics) RecordError(string)                  {}
func (stubMetrics) RecordCacheLookup(bool)              {}
func (stubMetrics) RecordStageDuration(string, float64) {}

func stubRow(symbol string, price string) models.RawRow {
	return models.RawRow{
		Symbol:     symbol,
		Price:      models.FlexString(price),
		DayHigh:    "102",
		DayLow:     "98",
		DayOpen:    "99",
		PrevClose:  "100",
		ChangePct:  "2.0",
		IngestedAt: "2024-10-10T10:00:00Z",
	}
}

func newTestHandler(t *testing.T, src *stubSource) *MarketHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	p := usecase.NewPipeline(src, nil, stubMetrics{}, time.Minute, features.Config{}, nil)
	return NewMarketHandler(l, p, 15)
}

func doRequest(t *testing.T, h *MarketHandler, target string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var env xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestSnapshotReturnsRows(t *testing.T) {
	h := newTestHandler(t, &stubSource{rows: []models.RawRow{
		stubRow("QQQ", "100.5"),
		stubRow("SPY", "412"),
	}})

	rec := doRequest(t, h, "/api/market/snapshot", h.Snapshot)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}

	data, _ := json.Marshal(env.Data)
	var list struct {
		Rows  []models.DerivedRow `json:"rows"`
		Total int64               `json:"total"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 2 || len(list.Rows) != 2 {
		t.Fatalf("total = %d, rows = %d, want 2", list.Total, len(list.Rows))
	}
}

func TestSnapshotLimit(t *testing.T) {
	h := newTestHandler(t, &stubSource{rows: []models.RawRow{
		stubRow("AAA", "1"),
		stubRow("BBB", "2"),
		stubRow("CCC", "3"),
	}})

	rec := doRequest(t, h, "/api/market/snapshot?limit=2", h.Snapshot)
	env := decodeEnvelope(t, rec)

	data, _ := json.Marshal(env.Data)
	var list struct {
		Rows []models.DerivedRow `json:"rows"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(list.Rows))
	}
}

func TestSnapshotEmptyUpstreamIsOK(t *testing.T) {
	h := newTestHandler(t, &stubSource{})

	rec := doRequest(t, h, "/api/market/snapshot", h.Snapshot)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty table", env.Status)
	}
}

func TestSnapshotFetchFailureMapsTo502(t *testing.T) {
	h := newTestHandler(t, &stubSource{
		err: models.NewFetchError("stub", errors.New("connection refused")),
	})

	rec := doRequest(t, h, "/api/market/snapshot", h.Snapshot)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", env.Status)
	}
}

func TestTopRejectsUnknownMetric(t *testing.T) {
	h := newTestHandler(t, &stubSource{rows: []models.RawRow{stubRow("QQQ", "100")}})

	rec := doRequest(t, h, "/api/market/top?metric=volume", h.Top)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestTopDefaultsToConfiguredN(t *testing.T) {
	rows := make([]models.RawRow, 0, 20)
	for _, sym := range []string{
		"A", "B", "C", "D", "E", "F", "G", "H", "I", "J",
		"K", "L", "M", "N", "O", "P", "Q", "R", "S", "T",
	} {
		rows = append(rows, stubRow(sym, "100"))
	}
	h := newTestHandler(t, &stubSource{rows: rows})

	rec := doRequest(t, h, "/api/market/top", h.Top)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", env.Status)
	}

	data, _ := json.Marshal(env.Data)
	var list struct {
		Rows []models.DerivedRow `json:"rows"`
	}
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Rows) != 15 {
		t.Fatalf("rows = %d, want the configured default of 15", len(list.Rows))
	}
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &stubSource{})
	rec := doRequest(t, h, "/healthz", h.Health)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, want 200", rec.Code)
	}
}
