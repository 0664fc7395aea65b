package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/wirekit/logger"
)

// Metric names.
const (
	MetricResolveTotal    = "wirekit.resolve.total"
	MetricResolveDuration = "wirekit.resolve.duration"
	MetricLockContention  = "wirekit.lock.contention"
)

// InitMeter installs a global meter provider exporting to cfg.Endpoint
// every interval.
func InitMeter(ctx context.Context, cfg Config, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider. An empty name
// selects the wirekit instrumentation name.
func Meter(name string) metric.Meter {
	if name == "" {
		name = defaultInstrumentationName
	}
	return otel.Meter(name)
}

// Metrics holds the resolution instruments.
type Metrics struct {
	resolveTotal    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	lockContention  metric.Int64Counter
}

// NewMetrics creates the resolution instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolveTotal, err := meter.Int64Counter(MetricResolveTotal,
		metric.WithDescription("Total number of entry instantiations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolveTotal, err)
	}

	resolveDuration, err := meter.Float64Histogram(MetricResolveDuration,
		metric.WithDescription("Duration of entry instantiations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricResolveDuration, err)
	}

	lockContention, err := meter.Int64Counter(MetricLockContention,
		metric.WithDescription("Number of times an entry lock was held elsewhere"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLockContention, err)
	}

	return &Metrics{
		resolveTotal:    resolveTotal,
		resolveDuration: resolveDuration,
		lockContention:  lockContention,
	}, nil
}

// RecordResolve records one instantiation of entry.
func (m *Metrics) RecordResolve(ctx context.Context, entry, status string, duration time.Duration) {
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrEntry, entry),
		attribute.String(AttrStatus, status),
	))
	m.resolveDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrEntry, entry),
	))
}

// RecordContention records a contended entry lock.
func (m *Metrics) RecordContention(ctx context.Context, entry string) {
	m.lockContention.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrEntry, entry)))
}
