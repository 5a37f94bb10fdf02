package requestctx

import "context"

type key int

const requestID key = iota

// WithRequestID stores the request correlation id for handlers and log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestID, id)
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestID).(string)
	return id
}
