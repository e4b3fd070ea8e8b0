package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/config"
)

const (
	enrollmentCSV = "date,state,district,pincode,age_5_17\n" +
		"01-01-2024,Bihar,Gopalganj,841001,50\n" +
		"02-01-2024,Bihar,Gopalganj,841001,30\n" +
		"01-01-2024,Kerala,Kochi,682001,100\n"
	biometricCSV = "date,state,district,pincode,bio_age_5_17\n" +
		"01-01-2024,Bihar,Gopalganj,841001,10\n" +
		"01-01-2024,Kerala,Kochi,682001,95\n"
)

func newTestRouter() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload/files", UploadFiles).Methods("POST")
	api.HandleFunc("/upload/status", UploadStatus).Methods("GET")
	api.HandleFunc("/analysis/compute-bli", ComputeBLI).Methods("GET")
	api.HandleFunc("/analysis/gap-widening/{district}", GapWidening).Methods("GET")
	api.HandleFunc("/analysis/seasonality", Seasonality).Methods("GET")
	api.HandleFunc("/analysis/state-summary", StateSummary).Methods("GET")
	api.HandleFunc("/chat/ask", ChatAsk).Methods("POST")
	return r
}

func resetState(t *testing.T) {
	t.Helper()
	config.InitCache()
	config.Store.Reset()
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doUpload(t *testing.T, r *mux.Router, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest(http.MethodPost, "/api/upload/files", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestComputeBLIBeforeUpload(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/compute-bli", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "Please upload CSV files first")
}

func TestUploadThenStatusAndCompute(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	rec := doUpload(t, r, map[string]string{
		"enrollment": enrollmentCSV,
		"biometric":  biometricCSV,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["enrollment_rows"])
	assert.Equal(t, float64(2), body["biometric_rows"])

	// Status flips to ready
	req := httptest.NewRequest(http.MethodGet, "/api/upload/status", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	status := decodeBody(t, rec)
	assert.Equal(t, true, status["ready_for_analysis"])
	assert.Equal(t, false, status["demographic_loaded"])

	// Analysis over the committed tables
	req = httptest.NewRequest(http.MethodGet, "/api/analysis/compute-bli", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	analysis := decodeBody(t, rec)
	assert.Equal(t, float64(3), analysis["total_records"], "union of the composite keys")
	dateRange := analysis["date_range"].(map[string]any)
	assert.Equal(t, "2024-01-01", dateRange["start"])
	assert.Equal(t, "2024-01-02", dateRange["end"])

	districts := analysis["top_problem_districts"].([]any)
	require.Len(t, districts, 2)
	worst := districts[0].(map[string]any)
	assert.Equal(t, "Gopalganj", worst["district"])
	assert.Equal(t, "Critical", worst["risk_level"])
	assert.Equal(t, "#ef4444", worst["color_code"])
}

func TestUploadMissingPincodeColumn(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	rec := doUpload(t, r, map[string]string{
		"enrollment": "date,state,district,age_5_17\n01-01-2024,Bihar,Patna,5\n",
		"biometric":  biometricCSV,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeBody(t, rec)["detail"].(string)
	assert.Contains(t, detail, "pincode")
	assert.Contains(t, detail, "Found columns")
	assert.False(t, config.Store.ReadyForAnalysis(), "nothing committed on failure")
}

func TestUploadEmptyBiometricFile(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	rec := doUpload(t, r, map[string]string{
		"enrollment": enrollmentCSV,
		"biometric":  "date,state,district,pincode,bio_age_5_17\n",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "Biometric CSV is empty")
}

func TestUploadMissingBiometricPart(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	rec := doUpload(t, r, map[string]string{"enrollment": enrollmentCSV})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "Biometric CSV file is required")
}

func TestGapWideningEndpoint(t *testing.T) {
	resetState(t)
	r := newTestRouter()
	doUpload(t, r, map[string]string{"enrollment": enrollmentCSV, "biometric": biometricCSV})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/gap-widening/gopalganj", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	series := decodeBody(t, rec)
	assert.Equal(t, "Bihar", series["state"])
	points := series["data_points"].([]any)
	require.Len(t, points, 2)
	last := points[1].(map[string]any)
	assert.Equal(t, float64(80), last["cumulative_enrollments"])
	assert.Equal(t, float64(10), last["cumulative_updates"])
	assert.Equal(t, float64(70), last["gap"])
}

func TestGapWideningUnknownDistrict(t *testing.T) {
	resetState(t)
	r := newTestRouter()
	doUpload(t, r, map[string]string{"enrollment": enrollmentCSV, "biometric": biometricCSV})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/gap-widening/Atlantis", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "Atlantis")
}

func TestSeasonalityEndpoint(t *testing.T) {
	resetState(t)
	r := newTestRouter()
	doUpload(t, r, map[string]string{"enrollment": enrollmentCSV, "biometric": biometricCSV})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/seasonality", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	season := decodeBody(t, rec)
	assert.Equal(t, "January", season["peak_month"])
	assert.Equal(t, "January", season["low_month"])
}

func TestStateSummaryEndpoint(t *testing.T) {
	resetState(t)
	r := newTestRouter()
	doUpload(t, r, map[string]string{"enrollment": enrollmentCSV, "biometric": biometricCSV})

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/state-summary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var states []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &states))
	require.Len(t, states, 2)
	assert.Equal(t, "Bihar", states[0]["state"], "highest BLI first")
	assert.Equal(t, "Critical", states[0]["risk_level"])
}

func TestChatBeforeUpload(t *testing.T) {
	resetState(t)
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/chat/ask",
		strings.NewReader(`{"message": "What is BLI?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["detail"], "upload data files first")
}

func TestChatFallsBackWhenBackendUnreachable(t *testing.T) {
	resetState(t)
	t.Setenv("OLLAMA_URL", "http://127.0.0.1:1")
	t.Setenv("LLM_TIMEOUT_SECONDS", "1")

	r := newTestRouter()
	doUpload(t, r, map[string]string{"enrollment": enrollmentCSV, "biometric": biometricCSV})

	req := httptest.NewRequest(http.MethodPost, "/api/chat/ask",
		strings.NewReader(`{"message": "Which district has the worst BLI?"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "generation failure is never surfaced")
	body := decodeBody(t, rec)
	assert.Contains(t, body["response"], "Gopalganj")
	assert.NotEmpty(t, body["suggested_questions"])
}
