package api

import (
	"EtfAlpha/internal/domain/models"
	"EtfAlpha/internal/usecase"
	xhttp "EtfAlpha/pkg/http"
	xlogger "EtfAlpha/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler exposes the derived snapshot tables over JSON HTTP.
type MarketHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.Pipeline
	topN     int
}

func NewMarketHandler(logger *xlogger.Logger, pipeline *usecase.Pipeline, topN int) *MarketHandler {
	if topN <= 0 {
		topN = 15
	}
	return &MarketHandler{logger: logger, pipeline: pipeline, topN: topN}
}

func (h *MarketHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/market")
	g.GET("/snapshot", h.Snapshot)
	g.GET("/latest", h.Latest)
	g.GET("/top", h.Top)
	g.GET("/correlation", h.Correlation)
	g.GET("/stats", h.Stats)

	e.GET("/healthz", h.Health)
}

func (h *MarketHandler) Snapshot(c echo.Context) error {
	req := &models.SnapshotRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	rows, err := h.pipeline.Refresh(c.Request().Context())
	if err != nil {
		return h.fetchFailure(c, err)
	}

	if req.Limit > 0 && req.Limit < len(rows) {
		rows = rows[:req.Limit]
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *MarketHandler) Latest(c echo.Context) error {
	rows, err := h.pipeline.Latest(c.Request().Context())
	if err != nil {
		return h.fetchFailure(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *MarketHandler) Top(c echo.Context) error {
	req := &models.TopRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	n := req.N
	if n == 0 {
		n = h.topN
	}

	rows, err := h.pipeline.Top(c.Request().Context(), req.Metric, n)
	if err != nil {
		return h.fetchFailure(c, err)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *MarketHandler) Correlation(c echo.Context) error {
	matrix, err := h.pipeline.Correlation(c.Request().Context())
	if err != nil {
		return h.fetchFailure(c, err)
	}
	return xhttp.SuccessResponse(c, matrix)
}

func (h *MarketHandler) Stats(c echo.Context) error {
	stats, err := h.pipeline.Stats(c.Request().Context())
	if err != nil {
		return h.fetchFailure(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}

func (h *MarketHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// fetchFailure maps a fetch-stage error to a 502 so the presentation layer
// can show its error state instead of rendering partial data.
func (h *MarketHandler) fetchFailure(c echo.Context, err error) error {
	h.logger.Error("snapshot fetch failed", xlogger.Error(err))
	if models.IsFetchError(err) {
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("market data source unavailable").WithError(err))
	}
	return xhttp.AppErrorResponse(c, err)
}
