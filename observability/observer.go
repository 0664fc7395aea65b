package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/wirekit/logger"
	"github.com/kbukum/wirekit/resolve"
)

// ResolveObserver traces, measures, and logs entry instantiations. It
// implements resolve.Observer.
type ResolveObserver struct {
	tracer      trace.Tracer
	metrics     *Metrics
	log         *logger.Logger
	containerID string
}

var _ resolve.Observer = (*ResolveObserver)(nil)

// NewObserver creates a ResolveObserver. A nil log discards log output.
func NewObserver(tracer trace.Tracer, meter metric.Meter, log *logger.Logger) (*ResolveObserver, error) {
	metrics, err := NewMetrics(meter)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ResolveObserver{tracer: tracer, metrics: metrics, log: log}, nil
}

// ForContainer returns a copy of o that tags spans and logs with id.
func (o *ResolveObserver) ForContainer(id string) *ResolveObserver {
	cp := *o
	cp.containerID = id
	cp.log = o.log.WithFields(logger.Fields(logger.FieldContainer, id))
	return &cp
}

// Begin starts a resolve span for name.
func (o *ResolveObserver) Begin(ctx context.Context, name string) (context.Context, func(error)) {
	start := time.Now()
	attrs := []attribute.KeyValue{
		attribute.String(AttrEntry, name),
		attribute.StringSlice(AttrStack, resolve.Stack(ctx)),
	}
	if o.containerID != "" {
		attrs = append(attrs, attribute.String(AttrContainer, o.containerID))
	}
	ctx, span := o.tracer.Start(ctx, SpanResolve, trace.WithAttributes(attrs...))

	return ctx, func(err error) {
		d := time.Since(start)
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.log.WithContext(ctx).Warn("entry instantiation failed",
				logger.MergeWithError(logger.EntryFields(name, d), err))
		} else {
			o.log.WithContext(ctx).Debug("entry instantiated", logger.EntryFields(name, d))
		}
		span.SetAttributes(attribute.String(AttrStatus, status))
		span.End()
		o.metrics.RecordResolve(ctx, name, status, d)
	}
}

// Contended records a contended entry lock.
func (o *ResolveObserver) Contended(ctx context.Context, name string) {
	o.metrics.RecordContention(ctx, name)
	o.log.Debug("entry lock contended", logger.Fields(logger.FieldEntry, name))
}
