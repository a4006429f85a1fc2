package database

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/hatlonely/resource/database"

// observer 执行引擎共用的观测组件：日志默认丢弃，指标默认关闭
type observer struct {
	driver  string
	logger  zerolog.Logger
	tracer  trace.Tracer
	metrics *executorMetrics
}

func newObserver(driver string) observer {
	return observer{
		driver: driver,
		logger: zerolog.Nop(),
		tracer: otel.Tracer(tracerName),
	}
}

func (o *observer) SetLogger(logger zerolog.Logger) {
	o.logger = logger
}

func (o *observer) EnableMetrics(registerer prometheus.Registerer) error {
	metrics, err := newExecutorMetrics(registerer)
	if err != nil {
		return err
	}
	o.metrics = metrics
	return nil
}

func (o *observer) start(ctx context.Context, operation string) (context.Context, trace.Span, time.Time) {
	ctx, span := o.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("db.system", o.driver),
	))
	return ctx, span, time.Now()
}

func (o *observer) finish(span trace.Span, startAt time.Time, sqlStr string, args []any, err error) {
	elapsed := time.Since(startAt)
	if err != nil {
		span.RecordError(err)
	}
	span.End()

	o.metrics.observe(o.driver, elapsed, err)

	event := o.logger.Debug()
	if err != nil && err != ErrRecordNotFound {
		event = o.logger.Error().Err(err)
	}
	event.
		Str("driver", o.driver).
		Str("sql", sqlStr).
		Int("args", len(args)).
		Dur("elapsed", elapsed).
		Msg("query")
}
