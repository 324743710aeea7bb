package middleware

import (
	"net/http"
	"time"
)

// Logging пишет в лог каждый запрос локального API
func Logging(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			next.ServeHTTP(sw, r)

			reqID := GetRequestID(r.Context())
			elapsed := time.Since(start)
			switch {
			case sw.status >= http.StatusInternalServerError:
				logger.Error("HTTP %s %s - status=%d, bytes=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, sw.status, sw.size, elapsed, reqID)
			case sw.status >= http.StatusBadRequest:
				logger.Warn("HTTP %s %s - status=%d, bytes=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, sw.status, sw.size, elapsed, reqID)
			default:
				logger.Info("HTTP %s %s - status=%d, bytes=%d, duration=%s, request_id=%s",
					r.Method, r.URL.Path, sw.status, sw.size, elapsed, reqID)
			}
		})
	}
}
