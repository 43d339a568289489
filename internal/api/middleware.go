package api

import (
	"cvrp-route-service/internal/platform/obs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// statusWriter captures the final HTTP status code and number of bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// loggingMiddleware tags each request with an id, then logs and records
// duration, status and response size once the handler returns.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)
		r = r.WithContext(obs.WithRequestID(r.Context(), reqID))

		sw := &statusWriter{ResponseWriter: w}

		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}
		dur := time.Since(start)

		// r.Pattern is filled in by the mux; unmatched requests share one label.
		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(sw.status)
		obs.HTTPRequests.WithLabelValues(r.Method, path, status).Inc()
		obs.HTTPDuration.WithLabelValues(r.Method, path, status).Observe(dur.Seconds())

		log.Printf(
			"req_id=%s method=%s path=%s status=%d bytes=%d dur=%dms",
			reqID, r.Method, r.URL.RequestURI(), sw.status, sw.bytes, dur.Milliseconds(),
		)
	})
}

// rateLimit rejects requests with 429 once limiter runs out of tokens.
// A nil limiter disables the check.
func rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}` + "\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
