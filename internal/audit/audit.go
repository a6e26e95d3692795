// Package audit is a best-effort observability side-table: it records
// one row per answered stat_request to Postgres, without ever blocking
// or altering the reply the request handler already produced.
package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Row is one audit observation.
type Row struct {
	CorrelationID string
	RequestID     int
	QueryType     string
	Target        string
	Found         bool
	ElapsedMS     float64
	At            time.Time
}

// Sink buffers Rows and writes them to Postgres from a single
// background goroutine, so Record never blocks the request path on
// database latency.
type Sink struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	rows   chan Row
	done   chan struct{}
}

// Connect opens a pool against dsn, verifies it with Ping, and starts
// the background writer. The returned Sink and error are both nil if
// dsn is empty; nothing is logged — callers treat a nil Sink as
// "no audit configured" and skip recording entirely.
func Connect(ctx context.Context, dsn string, logger *zap.Logger) (*Sink, error) {
	if dsn == "" {
		return nil, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Sink{
		pool:   pool,
		logger: logger,
		rows:   make(chan Row, 256),
		done:   make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Record enqueues row for writing. It never blocks the caller: a full
// buffer drops the row and logs a warning.
func (s *Sink) Record(row Row) {
	if s == nil {
		return
	}
	select {
	case s.rows <- row:
	default:
		s.logger.Warn("audit buffer full, dropping row", zap.String("correlation_id", row.CorrelationID))
	}
}

// Healthy reports whether the underlying connection currently responds
// to a ping, for the /health endpoint.
func (s *Sink) Healthy(ctx context.Context) bool {
	if s == nil {
		return true
	}
	return s.pool.Ping(ctx) == nil
}

// Close stops the background writer and closes the pool.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	close(s.rows)
	<-s.done
	s.pool.Close()
}

func (s *Sink) run() {
	defer close(s.done)
	for row := range s.rows {
		s.write(row)
	}
}

func (s *Sink) write(row Row) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO query_audit (correlation_id, request_id, query_type, target, found, elapsed_ms, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, row.CorrelationID, row.RequestID, row.QueryType, row.Target, row.Found, row.ElapsedMS, row.At)
	if err != nil {
		s.logger.Warn("audit write failed", zap.Error(err), zap.String("correlation_id", row.CorrelationID))
	}
}
