package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/resolve"
)

type harness struct {
	obs    *ResolveObserver
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	logs   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	logs := &bytes.Buffer{}
	log := logger.NewWithWriter(logger.Config{Level: "debug", Format: logger.FormatJSON}, "test", logs)

	obs, err := NewObserver(tp.Tracer("test"), mp.Meter("test"), log)
	if err != nil {
		t.Fatalf("NewObserver: %v", err)
	}
	return &harness{obs: obs, spans: spans, reader: reader, logs: logs}
}

func (h *harness) collect(t *testing.T) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := h.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("wirekit")
	if cfg.ServiceName != "wirekit" {
		t.Errorf("expected ServiceName wirekit, got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "" {
		t.Errorf("expected export disabled by default, got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestInit_NoEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()
	metrics.RecordResolve(ctx, "db", "ok", 5*time.Millisecond)
	metrics.RecordContention(ctx, "db")
}

func TestObserver_NestedResolution(t *testing.T) {
	h := newHarness(t)
	table, err := resolve.NewTable([]string{"a", "b"}, resolve.WithObserver(h.obs.ForContainer("c-1")))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	ctx := context.Background()
	_, err = table.Resolve(ctx, "a", func(ctx context.Context) (any, error) {
		return table.Resolve(ctx, "b", func(context.Context) (any, error) { return 2, nil })
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	ended := h.spans.Ended()
	if len(ended) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(ended))
	}
	inner, outer := ended[0], ended[1]
	if inner.Name() != SpanResolve || outer.Name() != SpanResolve {
		t.Errorf("unexpected span names %q, %q", inner.Name(), outer.Name())
	}
	if inner.Parent().SpanID() != outer.SpanContext().SpanID() {
		t.Error("expected b's span to be a child of a's span")
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range inner.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs[AttrEntry].AsString() != "b" {
		t.Errorf("expected entry b, got %v", attrs[AttrEntry])
	}
	if got := attrs[AttrStack].AsStringSlice(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected stack [a b], got %v", got)
	}
	if attrs[AttrContainer].AsString() != "c-1" {
		t.Errorf("expected container c-1, got %v", attrs[AttrContainer])
	}

	m := h.collect(t)
	sum, ok := m[MetricResolveTotal].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected %s sum, got %T", MetricResolveTotal, m[MetricResolveTotal].Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("expected 2 instantiations, got %d", total)
	}
	if _, ok := m[MetricResolveDuration].Data.(metricdata.Histogram[float64]); !ok {
		t.Errorf("expected %s histogram", MetricResolveDuration)
	}

	if !strings.Contains(h.logs.String(), `"container_id":"c-1"`) {
		t.Errorf("expected container id in logs, got %s", h.logs.String())
	}
}

func TestObserver_Failure(t *testing.T) {
	h := newHarness(t)
	table, err := resolve.NewTable([]string{"db"}, resolve.WithObserver(h.obs))
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	boom := errors.New("connection refused")
	_, err = table.Resolve(context.Background(), "db", func(context.Context) (any, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected builder error, got %v", err)
	}

	ended := h.spans.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 span, got %d", len(ended))
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status())
	}
	if !strings.Contains(h.logs.String(), "entry instantiation failed") {
		t.Errorf("expected failure log, got %s", h.logs.String())
	}
}

func TestObserver_Contended(t *testing.T) {
	h := newHarness(t)
	h.obs.Contended(context.Background(), "db")
	h.obs.Contended(context.Background(), "db")

	m := h.collect(t)
	sum, ok := m[MetricLockContention].Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 2 {
		t.Errorf("expected 2 contentions, got %+v", m[MetricLockContention].Data)
	}
}

func TestSetSpanError_NotRecording(t *testing.T) {
	// No span in context: must not panic.
	SetSpanError(context.Background(), errors.New("x"))
	SetSpanAttribute(context.Background(), AttrEntry, "db")
}
