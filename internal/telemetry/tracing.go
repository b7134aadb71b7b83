package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/exa-laboratories/OpenROAD/internal/antenna/checker")

// StartCheckNetSpan opens the antenna.check_net span for one net, per
// spec.md §10.3. Callers must always call the returned trace.Span's
// End method.
func StartCheckNetSpan(ctx context.Context, netName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "antenna.check_net", trace.WithAttributes(
		attribute.String("net.name", netName),
	))
}
