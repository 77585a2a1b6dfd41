package web

import (
	"net/http"
	"time"

	"github.com/bnema/cookiemsg/internal/infrastructure/authz"
	"github.com/bnema/cookiemsg/internal/logging"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// withRequestContext attaches the logger, a request ID and the caller's role
// to the request context, and logs each request once it completes.
func (h *Handler) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = logging.GenerateRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := logging.WithContext(r.Context(), h.logger)
		ctx = logging.WithRequestID(ctx, requestID)
		ctx = logging.WithComponent(ctx, "web")
		if h.cfg.RoleHeader != "" {
			ctx = authz.WithRole(ctx, r.Header.Get(h.cfg.RoleHeader))
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				logging.FromContext(ctx).Error().Interface("panic", p).Msg("handler panicked")
				writeProblem(rec, http.StatusInternalServerError, "internal error", nil)
			}
			logging.FromContext(ctx).Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("elapsed", time.Since(start)).
				Msg("request handled")
		}()

		next.ServeHTTP(rec, r.WithContext(ctx))
	})
}
