package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/SonGokuFan1996/NeuroNet/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute — метка для запросов мимо зарегистрированных маршрутов.
const unmatchedRoute = "unmatched"

// Metrics пишет длительность запроса в metrics.HTTPRequests.
// Метка route — шаблон chi (например, /feed/posts/{id}), а не сырой путь.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()

			next.ServeHTTP(sw, r)

			route := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			metrics.HTTPRequests.
				WithLabelValues(r.Method, route, strconv.Itoa(sw.code())).
				Observe(time.Since(start).Seconds())
		})
	}
}
