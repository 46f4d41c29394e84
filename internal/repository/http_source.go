package repository

import (
	"context"
	"time"

	"EtfAlpha/internal/domain/models"
	xhttp "EtfAlpha/pkg/http"
	applogger "EtfAlpha/pkg/logger"
)

// HTTPSource reads the snapshot from a REST proxy that returns a JSON array
// of row objects with the same shape as the database table.
type HTTPSource struct {
	url    string
	client *xhttp.Client
	l      *applogger.Logger
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger injects a structured logger.
func (s *HTTPSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) FetchSnapshot(ctx context.Context) ([]models.RawRow, error) {
	start := time.Now()

	var out []models.RawRow
	err := s.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	}, &out)
	if err != nil {
		if s.l != nil {
			s.l.Error("http snapshot fetch error",
				applogger.String("url", s.url),
				applogger.Error(err),
			)
		}
		return nil, models.NewFetchError(s.Name(), err)
	}

	if s.l != nil {
		s.l.Info("http snapshot ok",
			applogger.String("url", s.url),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
