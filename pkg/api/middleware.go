package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hazyhaar/recase/pkg/kit"
)

// instrument tags each request with an ID and logs how it was served.
func instrument(logger *slog.Logger) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			ctx = kit.WithRequestID(ctx, uuid.NewString())
			start := time.Now()
			resp, err := next(ctx, request)
			logger.Debug("endpoint served",
				"transport", kit.GetTransport(ctx),
				"request_id", kit.GetRequestID(ctx),
				"duration", time.Since(start).String(),
				"error", err,
			)
			return resp, err
		}
	}
}
