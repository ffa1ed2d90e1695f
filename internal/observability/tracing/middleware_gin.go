package tracing

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/classifieds/internal/observability/context"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "classifieds/http"

// GinMiddleware opens a server span per request using the global provider.
func GinMiddleware() gin.HandlerFunc {
	return GinMiddlewareWithProvider(otel.GetTracerProvider())
}

// GinMiddlewareWithProvider opens a server span named after the matched
// route. Spans carry the listing from the path and the seller the handler
// bound to the request context, so a quote and its commit can be joined.
func GinMiddlewareWithProvider(tp trace.TracerProvider) gin.HandlerFunc {
	tracer := tp.Tracer(tracerName)
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(ctx, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", route),
			),
		)
		defer span.End()

		if listingID := strings.TrimSpace(c.Param("listing_id")); listingID != "" {
			span.SetAttributes(attribute.String("listing_id", listingID))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		reqCtx := c.Request.Context()
		attrs := []attribute.KeyValue{attribute.Int("http.status_code", c.Writer.Status())}
		if id := obscontext.RequestIDFromContext(reqCtx); id != "" {
			attrs = append(attrs, attribute.String("request_id", id))
		}
		if sellerID := obscontext.SellerIDFromContext(reqCtx); sellerID != "" {
			attrs = append(attrs, attribute.String("seller_id", sellerID))
		}
		span.SetAttributes(SafeAttributes(attrs...)...)

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			if safeErr := SafeError(lastErr.Err); safeErr != nil {
				span.RecordError(safeErr)
			}
		}
		span.SetStatus(codes.Error, http.StatusText(c.Writer.Status()))
	}
}
