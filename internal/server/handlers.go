package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sells-group/uldk-cli/internal/export"
	"github.com/sells-group/uldk-cli/internal/store"
	"github.com/sells-group/uldk-cli/pkg/uldk"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUnits serves one administrative unit list. The {kind} path segment
// uses the service's unit names; teryt selects the parent unit.
func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	teryt := r.URL.Query().Get("teryt")
	ctx := r.Context()

	var opts []uldk.Option
	var err error
	switch kind {
	case uldk.KindVoivodeship:
		opts, err = s.client.Voivodeships(ctx)
	case uldk.KindDistrict:
		opts, err = s.client.Districts(ctx, teryt)
	case uldk.KindCommune:
		opts, err = s.client.Communes(ctx, teryt)
	case uldk.KindPrecinct:
		opts, err = s.client.Precincts(ctx, teryt)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown unit kind " + kind})
		return
	}

	if err != nil {
		zap.L().Error("server: unit list fetch failed",
			zap.String("kind", kind),
			zap.String("teryt", teryt),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "lookup failed"})
		return
	}

	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	s.handleGeometry(w, r, store.KindRegion, s.client.RegionByID)
}

func (s *Server) handleParcel(w http.ResponseWriter, r *http.Request) {
	s.handleGeometry(w, r, store.KindParcel, s.client.ParcelByID)
}

// handleGeometry serves one geometry lookup as a GeoJSON feature
// collection, consulting the cache when enabled.
func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request, kind string,
	fetch func(context.Context, string) ([]geom.T, error),
) {
	// Parcel ids routinely contain a slash (e.g. 140809_5.0001.34/2), so
	// the path segment arrives percent-encoded and must be unescaped
	// before it is used as a lookup id or cache key.
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed id"})
		return
	}
	ctx := r.Context()

	if s.cache != nil {
		if body, hit, err := s.cache.GetGeometry(ctx, kind, id); err == nil && hit {
			w.Header().Set("Content-Type", "application/geo+json")
			w.WriteHeader(http.StatusOK)
			w.Write(body) //nolint:errcheck
			return
		} else if err != nil {
			zap.L().Warn("server: cache lookup failed", zap.String("id", id), zap.Error(err))
		}
	}

	geoms, err := fetch(ctx, id)
	if err != nil {
		if uldk.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": kind + " not found"})
			return
		}
		zap.L().Error("server: geometry lookup failed",
			zap.String("kind", kind),
			zap.String("id", id),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "lookup failed"})
		return
	}

	body, err := export.EncodeFeatureCollection(id, geoms)
	if err != nil {
		zap.L().Error("server: geojson encode failed", zap.String("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode failed"})
		return
	}

	if s.cache != nil {
		if err := s.cache.PutGeometry(ctx, kind, id, body, s.ttl); err != nil {
			zap.L().Warn("server: cache store failed", zap.String("id", id), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: write response", zap.Error(err))
	}
}
