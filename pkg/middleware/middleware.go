package middleware

import (
	"context"
	"errors"
	"stonepay_admin/metrics"
	"stonepay_admin/pkg/logger"
	"time"
)

// Handler performs one backend call: it sends requestBody to endpoint and
// decodes the reply into response.
type Handler func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error

type Middleware func(next Handler) Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusCoder is implemented by errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

func statusOf(err error) int {
	if err == nil {
		return 200
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// BackendMetrics records every call in the backend_* Prometheus series.
// endpointLabel maps a concrete endpoint to a low-cardinality label.
func BackendMetrics(endpointLabel func(string) string) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
			start := time.Now()
			err := next(ctx, method, endpoint, requestBody, response)
			metrics.RecordBackendCall(method, endpointLabel(endpoint), statusOf(err), time.Since(start))
			return err
		}
	}
}

func Logging(log logger.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, method, endpoint string, requestBody, response interface{}) error {
			start := time.Now()
			err := next(ctx, method, endpoint, requestBody, response)
			if err != nil {
				log.Error("%s %s failed after %s: %v", method, endpoint, time.Since(start), err)
				return err
			}
			log.Log("%s %s ok in %s", method, endpoint, time.Since(start))
			return nil
		}
	}
}
