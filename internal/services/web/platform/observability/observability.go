// Package observability provides request logging for the web service.
package observability

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/services/web/platform/httpx"
)

// RequestLogger logs one line per request once the handler returns.
func RequestLogger(logger *zap.Logger) httpx.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(recorder, r)

			requestID := strings.TrimSpace(r.Header.Get(httpx.RequestIDHeader))
			if requestID == "" {
				requestID = strings.TrimSpace(recorder.Header().Get(httpx.RequestIDHeader))
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.statusCode()),
				zap.Int("bytes", recorder.bytes),
				zap.Duration("latency", time.Since(started)),
			}
			if requestID != "" {
				fields = append(fields, zap.String("request_id", requestID))
			}
			if httpx.IsHTMXRequest(r) {
				fields = append(fields, zap.Bool("htmx", true))
			}
			logger.Info("http request", fields...)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
