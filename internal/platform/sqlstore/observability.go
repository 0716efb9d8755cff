package sqlstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/phrazzld/user-api/internal/platform/sqlstore"

// queryMetrics holds the OpenTelemetry instruments recorded per query.
type queryMetrics struct {
	count    metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
}

func newQueryMetrics(meter metric.Meter) *queryMetrics {
	count, _ := meter.Int64Counter("userapi.db.query.count",
		metric.WithDescription("Total number of SQL queries executed"),
		metric.WithUnit("{query}"),
	)
	duration, _ := meter.Float64Histogram("userapi.db.query.duration",
		metric.WithDescription("Query execution duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)
	errCount, _ := meter.Int64Counter("userapi.db.query.errors",
		metric.WithDescription("Total number of failed SQL queries"),
		metric.WithUnit("{error}"),
	)
	return &queryMetrics{count: count, duration: duration, errors: errCount}
}

// Option configures a UserStore.
type Option func(*UserStore)

// WithLogger sets the logger used for failed and slow query reports.
func WithLogger(l *slog.Logger) Option {
	return func(s *UserStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *UserStore) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithMeter replaces the global OpenTelemetry meter.
func WithMeter(meter metric.Meter) Option {
	return func(s *UserStore) {
		if meter != nil {
			s.metrics = newQueryMetrics(meter)
		}
	}
}

// WithSlowQueryThreshold sets the duration above which queries are logged at WARN.
// Zero disables slow query reporting.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(s *UserStore) {
		s.slowQuery = d
	}
}

func defaultInstrumentation(s *UserStore) {
	s.logger = slog.Default()
	s.tracer = otel.Tracer(instrumentationName)
	s.metrics = newQueryMetrics(otel.Meter(instrumentationName))
	s.slowQuery = 200 * time.Millisecond
}

// observe runs fn inside a span and records metrics and logs for it.
// Not-found and duplicate results are expected outcomes and are not counted as failures.
func (s *UserStore) observe(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", s.dialect.Name),
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", usersTable),
	}

	ctx, span := s.tracer.Start(ctx, "users."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	failed := err != nil && !store.IsNotFoundError(err) && !store.IsDuplicateError(err)

	metricAttrs := metric.WithAttributes(attrs...)
	s.metrics.count.Add(ctx, 1, metricAttrs)
	s.metrics.duration.Record(ctx, float64(elapsed.Microseconds())/1000, metricAttrs)

	log := logger.FromContextOrDefault(ctx, s.logger)
	switch {
	case failed:
		s.metrics.errors.Add(ctx, 1, metricAttrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, operation+" failed")
		log.Error("query failed",
			slog.String("operation", operation),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()))
	case s.slowQuery > 0 && elapsed > s.slowQuery:
		log.Warn("slow query",
			slog.String("operation", operation),
			slog.Duration("duration", elapsed))
	}

	return err
}
