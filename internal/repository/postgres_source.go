package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EtfAlpha/internal/domain/models"
	applogger "EtfAlpha/pkg/logger"
	pkgpg "EtfAlpha/pkg/postgres"
)

// PostgresSource reads the raw snapshot table from the hosted database.
// One SELECT per invocation under a bounded query timeout; numeric-looking
// columns are scanned as nullable text because the upstream schema does not
// guarantee their types.
type PostgresSource struct {
	client       *pkgpg.Client
	db           *sql.DB
	table        string
	queryTimeout time.Duration
	l            *applogger.Logger
}

func NewPostgresSource(client *pkgpg.Client, table string, queryTimeout time.Duration) *PostgresSource {
	if queryTimeout <= 0 {
		queryTimeout = 10 * time.Second
	}
	return &PostgresSource{client: client, db: client.DB(), table: table, queryTimeout: queryTimeout}
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() error { return s.client.Close() }

// SetLogger injects a structured logger.
func (s *PostgresSource) SetLogger(l *applogger.Logger) { s.l = l }

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) FetchSnapshot(ctx context.Context) ([]models.RawRow, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	q := fmt.Sprintf(`
        SELECT symbol, price, day_high, day_low, day_open, prev_close, change_pct, ingested_at
        FROM %s
    `, s.table)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("postgres snapshot query error",
				applogger.String("table", s.table),
				applogger.Error(err),
			)
		}
		return nil, models.NewFetchError(s.Name(), err)
	}
	defer rows.Close()

	out := make([]models.RawRow, 0, 256)
	for rows.Next() {
		var (
			symbol                                           sql.NullString
			price, high, low, open, prevClose, changePct, ts sql.NullString
		)
		if err := rows.Scan(&symbol, &price, &high, &low, &open, &prevClose, &changePct, &ts); err != nil {
			if s.l != nil {
				s.l.Error("postgres snapshot scan error",
					applogger.String("table", s.table),
					applogger.Error(err),
				)
			}
			return nil, models.NewFetchError(s.Name(), err)
		}
		out = append(out, models.RawRow{
			Symbol:     symbol.String,
			Price:      models.FlexString(price.String),
			DayHigh:    models.FlexString(high.String),
			DayLow:     models.FlexString(low.String),
			DayOpen:    models.FlexString(open.String),
			PrevClose:  models.FlexString(prevClose.String),
			ChangePct:  models.FlexString(changePct.String),
			IngestedAt: models.FlexString(ts.String),
		})
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("postgres snapshot rows error",
				applogger.String("table", s.table),
				applogger.Error(err),
			)
		}
		return nil, models.NewFetchError(s.Name(), err)
	}

	if s.l != nil {
		s.l.Info("postgres snapshot ok",
			applogger.String("table", s.table),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}
