package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/openeyemedia/climate-api/internal/resolver"
)

// LocationQuery is the analyze request body. Either a coordinate pair or a
// name (location is the legacy field name for it) must be present.
type LocationQuery struct {
	Location  string   `json:"location,omitempty"`
	Name      string   `json:"name,omitempty"`
	Country   string   `json:"country,omitempty"`
	Admin1    string   `json:"admin1,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ComparisonQuery is the compare request body.
type ComparisonQuery struct {
	CurrentLocation LocationQuery `json:"current_location"`
	TargetLocation  LocationQuery `json:"target_location"`
}

func (q LocationQuery) toResolverQuery() resolver.Query {
	name := q.Name
	if name == "" {
		name = q.Location
	}
	return resolver.Query{
		Name:        name,
		Country:     q.Country,
		AdminRegion: q.Admin1,
		Latitude:    q.Latitude,
		Longitude:   q.Longitude,
	}
}

func (q LocationQuery) valid() bool {
	return (q.Latitude != nil && q.Longitude != nil) || q.Name != "" || q.Location != ""
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var query LocationQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !query.valid() {
		writeError(w, http.StatusBadRequest,
			"either coordinates (latitude/longitude) or location name must be provided")
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), query.toResolverQuery())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeData(w, http.StatusOK, analysis)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var query ComparisonQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !query.CurrentLocation.valid() || !query.TargetLocation.valid() {
		writeError(w, http.StatusBadRequest,
			"both current_location and target_location must carry a name or coordinates")
		return
	}

	comparison, err := s.analyzer.Compare(r.Context(),
		query.CurrentLocation.toResolverQuery(),
		query.TargetLocation.toResolverQuery())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}
	writeData(w, http.StatusOK, comparison)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("q")
	if len(name) < 2 {
		writeError(w, http.StatusBadRequest, "query parameter q must be at least 2 characters")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = n
	}

	locations, err := s.searcher.Search(r.Context(), name, limit)
	if err != nil {
		zap.L().Error("server: search failed", zap.String("query", name), zap.Error(err))
		writeError(w, http.StatusBadGateway, "geocoding service unavailable")
		return
	}
	writeData(w, http.StatusOK, locations)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "climate-api",
	})
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	if eris.Is(err, resolver.ErrLocationNotFound) {
		writeError(w, http.StatusNotFound, "could not find climate data for location")
		return
	}
	zap.L().Error("server: analysis failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "error analyzing location")
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("server: encode response", zap.Error(err))
	}
}
