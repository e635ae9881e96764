package middleware

import (
	"net/http"
	"time"

	"github.com/tair/crumbly/pkg/logger"
)

// Logging logs HTTP requests with structured logging
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newStatusRecorder(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		ctx := r.Context()

		logEvent := logger.Info(ctx)
		if rw.statusCode >= http.StatusInternalServerError {
			logEvent = logger.Error(ctx)
		} else if rw.statusCode >= http.StatusBadRequest {
			logEvent = logger.Warn(ctx)
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", rw.statusCode).
			Dur("duration", duration).
			Msg("HTTP request completed")
	})
}
