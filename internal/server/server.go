// Package server exposes the lookup operations over HTTP: unit lists as
// JSON and region/parcel geometries as GeoJSON feature collections.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/store"
	"github.com/sells-group/uldk-cli/pkg/uldk"
)

// Server wires the ULDK client and the optional geometry cache into an
// HTTP handler.
type Server struct {
	client uldk.Client
	cache  store.Store // nil disables caching
	ttl    time.Duration
}

// New creates a Server. cache may be nil to disable geometry caching.
func New(client uldk.Client, cache store.Store, ttl time.Duration) *Server {
	return &Server{client: client, cache: cache, ttl: ttl}
}

// Handler builds the chi router with CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/api/units/{kind}", s.handleUnits)
	r.Get("/api/regions/{id}", s.handleRegion)
	r.Get("/api/parcels/{id}", s.handleParcel)

	return r
}

// requestLogger logs each request with its duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
