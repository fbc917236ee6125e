package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 10 * time.Second

// NewRouter - websocket endpoint, service endpoints and the static client.
func NewRouter(logger *slog.Logger, ws http.Handler, stats statsService, staticDir string) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		stats:  stats,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/ws", ws.ServeHTTP)

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(requestTimeout))

		gr.Get("/ping", h.Ping)
		gr.Get("/stats", h.Stats)
	})

	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}

// requestLogger - one log line per request. The wrapped writer keeps http.Hijacker
// so websocket upgrades pass through.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			level := slog.LevelDebug
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				level = slog.LevelError
			case ww.Status() >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "http_request",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_ip", r.RemoteAddr),
			)
		})
	}
}
