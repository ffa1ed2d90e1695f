package context

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type requestIDKey struct{}
type correlationKey struct{}
type sellerIDKey struct{}

// WithRequestID stores the inbound request identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// EnsureCorrelationID guarantees a correlation ID on the context, generating one when missing.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	cid := CorrelationIDFromContext(ctx)
	if cid == "" {
		cid = ulid.Make().String()
	}
	return context.WithValue(ctx, correlationKey{}, cid), cid
}

func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(correlationKey{}).(string); ok {
		return v
	}
	return ""
}

// WithSellerID annotates the context with the seller a request acts for.
func WithSellerID(ctx context.Context, sellerID string) context.Context {
	if sellerID == "" {
		return ctx
	}
	return context.WithValue(ctx, sellerIDKey{}, sellerID)
}

func SellerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sellerIDKey{}).(string); ok {
		return v
	}
	return ""
}

type listingIDKey struct{}

// WithListingID annotates the context with the listing being priced or committed.
func WithListingID(ctx context.Context, listingID string) context.Context {
	if listingID == "" {
		return ctx
	}
	return context.WithValue(ctx, listingIDKey{}, listingID)
}

func ListingIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(listingIDKey{}).(string); ok {
		return v
	}
	return ""
}
