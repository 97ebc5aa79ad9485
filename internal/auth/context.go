package auth

import "context"

type ctxKey struct{}

// WithBrokerID returns a copy of ctx carrying the authenticated broker id.
func WithBrokerID(ctx context.Context, brokerID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, brokerID)
}

func BrokerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}
