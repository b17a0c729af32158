package obs

import (
	"context"
	"log/slog"
	"time"

	"mixtrail-service/internal/platform/metrics"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID returns a context carrying the request id used in timing logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time starts timing op. Call the returned func with a pointer to the named
// error result so failures are logged and counted separately.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			metrics.OperationDurationMs.WithLabelValues(name, "error").Observe(float64(dur.Milliseconds()))
			slog.WarnContext(ctx, "op_failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		metrics.OperationDurationMs.WithLabelValues(name, "ok").Observe(float64(dur.Milliseconds()))
		slog.DebugContext(ctx, "op_done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
