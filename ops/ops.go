// Package ops serves the operational HTTP surface: liveness,
// readiness and prometheus metrics. Nothing user facing lives here.
package ops

import (
	"net/http"

	"saltbot/state"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/infinitybotlist/eureka/zapchi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer,
		middleware.RealIP,
		middleware.CleanPath,
		zapchi.Logger(state.Logger, "ops"),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if state.Discord == nil || state.Discord.State.User == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("discord session not ready"))
			return
		}

		w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
