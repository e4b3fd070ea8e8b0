package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/config"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/loader"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

type UploadResponse struct {
	Success         bool                `json:"success"`
	Message         string              `json:"message"`
	EnrollmentRows  int                 `json:"enrollment_rows"`
	BiometricRows   int                 `json:"biometric_rows"`
	ColumnsDetected map[string][]string `json:"columns_detected"`
}

// UploadFiles handles POST /api/upload/files. Multipart fields: enrollment
// (required), biometric (required), demographic (optional). Both mandatory
// tables must validate before anything is committed to the store, so a bad
// biometric file never leaves a half-replaced dataset behind.
func UploadFiles(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(config.GetMaxUploadSizeMB()) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart upload: "+err.Error())
		return
	}

	enrollment, err := readUploadPart(r, "enrollment", loader.EnrollmentColumns, "Enrollment", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	biometric, err := readUploadPart(r, "biometric", loader.BiometricColumns, "Biometric", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	demographic, err := readUploadPart(r, "demographic", []string{"date"}, "Demographic", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config.Store.Set(models.RoleEnrollment, enrollment)
	config.Store.Set(models.RoleBiometric, biometric)
	if demographic != nil {
		config.Store.Set(models.RoleDemographic, demographic)
	}
	config.ClearAllCaches()

	log.Printf("Upload committed: %d enrollment rows, %d biometric rows", enrollment.Len(), biometric.Len())

	writeJSON(w, http.StatusOK, UploadResponse{
		Success:        true,
		Message:        "Files uploaded successfully",
		EnrollmentRows: enrollment.Len(),
		BiometricRows:  biometric.Len(),
		ColumnsDetected: map[string][]string{
			"enrollment": enrollment.Columns,
			"biometric":  biometric.Columns,
		},
	})
}

// readUploadPart reads one multipart file field and parses it as CSV.
// Optional parts that are absent return (nil, nil).
func readUploadPart(r *http.Request, field string, required []string, fileType string, mandatory bool) (*models.Table, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if !mandatory {
			return nil, nil
		}
		return nil, fmt.Errorf("%s CSV file is required (multipart field %q)", fileType, field)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return loader.LoadCSV(data, required, fileType)
}

// UploadStatus handles GET /api/upload/status.
func UploadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"enrollment_loaded":  config.Store.Loaded(models.RoleEnrollment),
		"biometric_loaded":   config.Store.Loaded(models.RoleBiometric),
		"demographic_loaded": config.Store.Loaded(models.RoleDemographic),
		"ready_for_analysis": config.Store.ReadyForAnalysis(),
	})
}
