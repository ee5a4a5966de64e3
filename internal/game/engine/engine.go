// Package engine orchestrates the five game operations as atomic state
// transitions over the storage layer. Each operation reads a consistent
// snapshot of the records it names, computes the transition with pure
// domain logic, and commits with a version-guarded write; a lost race
// surfaces as a retryable concurrent-modification error, never a hang and
// never a silently dropped write.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ngocht-dev/anchor-game/internal/game/storage"
	"github.com/ngocht-dev/anchor-game/internal/telemetry"
)

const tracerName = "github.com/ngocht-dev/anchor-game/internal/game/engine"

// Engine executes game operations against a store.
type Engine struct {
	store   storage.Store
	emitter *telemetry.Emitter
	clock   func() time.Time
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithTelemetry attaches an operation journal emitter.
func WithTelemetry(emitter *telemetry.Emitter) Option {
	return func(e *Engine) {
		e.emitter = emitter
	}
}

// New creates an engine over the given store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		clock:  time.Now,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.clock().UTC()
}

// startSpan opens an operation span with the common attributes.
func (e *Engine) startSpan(ctx context.Context, operation, gameID, actor string) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("game.id", gameID),
		attribute.String("game.actor", actor),
	))
}

// finishSpan records the outcome on the span before ending it.
func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// journal appends a best-effort audit row for a committed operation. The
// operation already committed, so a journal failure is recorded on the span
// instead of failing the call.
func (e *Engine) journal(ctx context.Context, span trace.Span, evt storage.TelemetryEvent, attrs map[string]any) {
	if e.emitter == nil {
		return
	}
	if evt.Severity == "" {
		evt.Severity = string(telemetry.SeverityInfo)
	}
	if len(attrs) > 0 {
		raw, err := json.Marshal(attrs)
		if err != nil {
			span.RecordError(err)
			return
		}
		evt.AttributesJSON = raw
	}
	if err := e.emitter.Emit(ctx, evt); err != nil {
		span.RecordError(err)
	}
}
