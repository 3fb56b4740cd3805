package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("internal/storage/mq")

// kTracer injects trace context into produced records and starts process
// spans for consumed ones. The propagator is fixed so record headers match
// what pkg/outbox stores, whether or not a global propagator was installed yet.
var kTracer = kotel.NewTracer(
	kotel.TracerPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)),
)
