package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/price-tracker/pkg/correlationid"
)

// BuildHeaders captures the trace context and correlation id of ctx so they
// survive the trip through the outbox table and the broker.
func BuildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}

	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// ContextFromHeaders restores what BuildHeaders captured into ctx.
func ContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}

// ContextFromRecord restores the correlation id carried by a Kafka record.
// Trace context on records is handled by the kotel hooks.
func ContextFromRecord(ctx context.Context, rec *kgo.Record) context.Context {
	for _, h := range rec.Headers {
		if h.Key == correlationid.Header && len(h.Value) > 0 {
			return correlationid.NewContext(ctx, string(h.Value))
		}
	}
	return ctx
}
