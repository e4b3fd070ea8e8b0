package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/config"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/processor"
)

const uploadFirstDetail = "Please upload CSV files first"

// currentProcessor builds a processor over the tables currently in the
// store. Every analysis request recomputes from scratch; only the encoded
// results are cached, keyed by store version.
func currentProcessor() (*processor.BLIProcessor, error) {
	enrollment, err := config.Store.Get(models.RoleEnrollment)
	if err != nil {
		return nil, err
	}
	biometric, err := config.Store.Get(models.RoleBiometric)
	if err != nil {
		return nil, err
	}
	return processor.New(enrollment, biometric), nil
}

// ComputeBLI handles GET /api/analysis/compute-bli.
func ComputeBLI(w http.ResponseWriter, r *http.Request) {
	p, err := currentProcessor()
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadFirstDetail)
		return
	}

	key := config.GetCacheKey("compute-bli", config.Store.Version())
	if cached, ok := config.AnalysisCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result := p.ComputeDistrictBLI()
	config.AnalysisCache.Set(key, result, gocache.DefaultExpiration)
	writeJSON(w, http.StatusOK, result)
}

// GapWidening handles GET /api/analysis/gap-widening/{district}.
func GapWidening(w http.ResponseWriter, r *http.Request) {
	district := mux.Vars(r)["district"]

	p, err := currentProcessor()
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadFirstDetail)
		return
	}

	key := config.GetCacheKey("gap-widening", config.Store.Version(), strings.ToLower(district))
	if cached, ok := config.GapSeriesCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := p.GapWidening(district)
	if err != nil {
		var notFound *processor.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	config.GapSeriesCache.Set(key, result, gocache.DefaultExpiration)
	writeJSON(w, http.StatusOK, result)
}

// Seasonality handles GET /api/analysis/seasonality.
func Seasonality(w http.ResponseWriter, r *http.Request) {
	p, err := currentProcessor()
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadFirstDetail)
		return
	}

	key := config.GetCacheKey("seasonality", config.Store.Version())
	if cached, ok := config.SeasonalityCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result := p.Seasonality()
	config.SeasonalityCache.Set(key, result, gocache.DefaultExpiration)
	writeJSON(w, http.StatusOK, result)
}

// StateSummary handles GET /api/analysis/state-summary.
func StateSummary(w http.ResponseWriter, r *http.Request) {
	p, err := currentProcessor()
	if err != nil {
		writeError(w, http.StatusBadRequest, uploadFirstDetail)
		return
	}
	writeJSON(w, http.StatusOK, p.StateSummary())
}
