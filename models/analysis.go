package models

// DistrictBLI is one district-level aggregate with its risk classification.
type DistrictBLI struct {
	State            string  `json:"state"`
	District         string  `json:"district"`
	TotalEnrollments int64   `json:"total_enrollments"`
	TotalUpdates     int64   `json:"total_updates"`
	ChildUpdateGap   int64   `json:"child_update_gap"`
	BLIScore         float64 `json:"bli_score"`
	RiskLevel        string  `json:"risk_level"`
	ColorCode        string  `json:"color_code"`
}

// StateBLI is the state-level aggregate. Risk fields are only populated on
// the state-summary endpoint; the compute-bli state summary omits them.
type StateBLI struct {
	State            string  `json:"state"`
	TotalEnrollments int64   `json:"age_5_17"`
	TotalUpdates     int64   `json:"bio_age_5_17"`
	ChildUpdateGap   int64   `json:"child_update_gap"`
	BLIScore         float64 `json:"bli_score"`
	RiskLevel        string  `json:"risk_level,omitempty"`
	ColorCode        string  `json:"color_code,omitempty"`
}

// AnalysisResponse is the payload of GET /api/analysis/compute-bli.
type AnalysisResponse struct {
	Success             bool              `json:"success"`
	TotalRecords        int               `json:"total_records"`
	DateRange           map[string]string `json:"date_range"`
	TopProblemDistricts []DistrictBLI     `json:"top_problem_districts"`
	StateSummary        []StateBLI        `json:"state_summary"`
	OverallBLI          float64           `json:"overall_bli"`
}

// TimeSeriesPoint is one day of the cumulative gap-widening curve.
type TimeSeriesPoint struct {
	Date                  string `json:"date"`
	CumulativeEnrollments int64  `json:"cumulative_enrollments"`
	CumulativeUpdates     int64  `json:"cumulative_updates"`
	Gap                   int64  `json:"gap"`
}

// GapWideningData is the payload of GET /api/analysis/gap-widening/{district}.
type GapWideningData struct {
	District   string            `json:"district"`
	State      string            `json:"state"`
	DataPoints []TimeSeriesPoint `json:"data_points"`
}

// MonthlyBLI is one (year, month) bucket of the seasonality rollup.
type MonthlyBLI struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	MonthName        string  `json:"month_name"`
	TotalUpdates     int64   `json:"bio_age_5_17"`
	TotalEnrollments int64   `json:"age_5_17"`
	UpdateRate       float64 `json:"update_rate"`
}

// SeasonalityResponse is the payload of GET /api/analysis/seasonality.
type SeasonalityResponse struct {
	MonthlyData []MonthlyBLI `json:"monthly_data"`
	PeakMonth   string       `json:"peak_month"`
	LowMonth    string       `json:"low_month"`
}

// ChatRequest is the body of POST /api/chat/ask.
type ChatRequest struct {
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

// ChatResponse carries the answer plus follow-up suggestions.
type ChatResponse struct {
	Response           string   `json:"response"`
	SuggestedQuestions []string `json:"suggested_questions"`
}
