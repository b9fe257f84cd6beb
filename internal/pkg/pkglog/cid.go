package pkglog

import "context"

// UnknownCorrelationID is returned when no correlation ID was set, e.g. for
// logs written outside a request such as startup or shutdown.
const UnknownCorrelationID = "[invalid_chain_id]"

type correlationIDKey struct{}

// GetCorrelationID returns the correlation ID of the request that ctx belongs
// to. The router sets it from the X-Correlation-ID header or a new UUID, so
// upload, chart and export logs of one request share it.
func GetCorrelationID(ctx context.Context) string {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	if !ok {
		return UnknownCorrelationID
	}
	return cid
}

func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
