package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Result values recorded for operations.
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultRejected = "rejected"
)

// Operation tracks one traced and measured store operation.
type Operation struct {
	name    string
	start   time.Time
	span    trace.Span
	metrics *Metrics
	result  string
}

// StartOperation starts a span named name on tracer. metrics may be nil.
func StartOperation(ctx context.Context, tracer trace.Tracer, metrics *Metrics, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	attrs = append(attrs, attribute.String(AttrOperation, name))
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, &Operation{name: name, start: time.Now(), span: span, metrics: metrics}
}

// SetAttributes adds attributes to the operation's span.
func (o *Operation) SetAttributes(attrs ...attribute.KeyValue) {
	o.span.SetAttributes(attrs...)
}

// SetResult overrides the result End records. Without it End records
// ResultOK, or ResultFailed when given an error.
func (o *Operation) SetResult(result string) {
	o.result = result
}

// End finishes the span and records metrics.
func (o *Operation) End(ctx context.Context, err error) {
	result := o.result
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		if result == "" {
			result = ResultFailed
		}
	}
	if result == "" {
		result = ResultOK
	}
	o.span.SetAttributes(attribute.String(AttrResult, result))
	o.span.End()
	o.metrics.RecordOperation(ctx, o.name, result, time.Since(o.start))
}
