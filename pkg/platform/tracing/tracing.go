// Package tracing holds the span helpers shared by the service layer. Spans go
// to the global OpenTelemetry provider, which is a no-op until one is installed.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "supplyledger/pkg/domain-errors"
)

// Tracer returns the named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Start opens a span and returns a finisher that records the outcome. Use with
// a named error return:
//
//	ctx, end := tracing.Start(ctx, s.tracer, "ledger.Mint")
//	defer func() { end(err) }()
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.SetAttributes(attribute.String("error.code", string(dErrors.CodeOf(err))))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
