// internal/middleware/requestlog.go
//
// Access log and request counter.  One structured line per request with
// the id, client, and browser from requestinfo.  Must run inside
// requestinfo.Enrich.

package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/metrics"
	"github.com/yanizio/todogate/internal/requestinfo"
)

// RequestLog logs method, path, status, and duration at info level.
// /healthz and /metrics are logged at debug.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, strconv.Itoa(status)).Inc()

		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"dur_ms", time.Since(start).Milliseconds(),
		}
		if ri := requestinfo.FromContext(r.Context()); ri != nil {
			fields = append(fields,
				"req_id", ri.ID,
				"ip", ri.Geo.IP,
				"country", ri.Geo.CountryISO,
				"browser", ri.UA.Browser,
				"bot", ri.UA.IsBot,
			)
		}

		switch {
		case r.URL.Path == "/healthz" || r.URL.Path == "/metrics":
			zap.S().Debugw("request", fields...)
		case status >= 500:
			zap.S().Errorw("request", fields...)
		default:
			zap.S().Infow("request", fields...)
		}
	})
}
