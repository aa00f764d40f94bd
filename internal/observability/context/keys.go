package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	quoteIDKey   contextKey = "observability_quote_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithQuoteID records the quote a request operates on so pipeline logs can
// be correlated with it.
func WithQuoteID(ctx context.Context, quoteID string) context.Context {
	if ctx == nil || quoteID == "" {
		return ctx
	}
	return context.WithValue(ctx, quoteIDKey, quoteID)
}

func QuoteIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(quoteIDKey).(string)
	return value
}
