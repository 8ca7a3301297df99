package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("bowling-league/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handlers only. Helpers and middleware
// share the otelhttp request span, and untraced routes such as /healthz get
// a no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

// pathAttributes tags a handler span with the league route values present
// on the request.
func pathAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, key := range []struct{ path, attr string }{
		{path: "leagueID", attr: "league.id"},
		{path: "teamID", attr: "team.id"},
		{path: "playerID", attr: "player.id"},
	} {
		if v := strings.TrimSpace(r.PathValue(key.path)); v != "" {
			attrs = append(attrs, attribute.String(key.attr, v))
		}
	}
	return attrs
}
