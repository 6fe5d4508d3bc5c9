package middleware

import (
	"context"
	"errors"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/metrics"
)

// MetricsInterceptor records request counts and latency for every RPC.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			metrics.RPCDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			metrics.RPCRequests.WithLabelValues(procedure, codeLabel(err)).Inc()
			return resp, err
		}
	}
}

func codeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr.Code().String()
	}
	return connect.CodeUnknown.String()
}
