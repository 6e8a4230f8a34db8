package obs

import (
	"context"
	"time"

	"dropoff-route-planner/internal/platform/metrics"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Time logs the duration of op through the request logger carried by ctx.
// Usage: defer obs.Time(ctx, "ors.geocode")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := middleware.GetReqID(ctx)

	return func(errp *error) {
		dur := time.Since(start)
		logger := zerolog.Ctx(ctx)

		if errp != nil && *errp != nil {
			logger.Warn().Str("req_id", reqID).Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("op failed")
			return
		}
		logger.Debug().Str("req_id", reqID).Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("op done")
	}
}

// Provider is Time for external provider calls; it also feeds the provider latency histogram.
func Provider(ctx context.Context, provider, op string) func(errp *error) {
	start := time.Now()
	done := Time(ctx, provider+"."+op)

	return func(errp *error) {
		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}
		metrics.ProviderDuration.WithLabelValues(provider, op, outcome).Observe(time.Since(start).Seconds())
		done(errp)
	}
}
