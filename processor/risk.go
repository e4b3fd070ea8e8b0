package processor

// Epsilon stabilizes BLI denominators so a district with zero enrollments
// divides cleanly. The value is part of the API contract.
const Epsilon = 1e-6

// Risk level labels.
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// RiskLevel buckets a BLI score into a risk label and dashboard color.
// Thresholds are strict: a score exactly on a boundary belongs to the
// higher bucket. Scores are not clamped; negative values land in Low and
// anything above 0.5 is Critical.
func RiskLevel(bli float64) (string, string) {
	switch {
	case bli < 0.1:
		return RiskLow, "#22c55e"
	case bli < 0.3:
		return RiskMedium, "#eab308"
	case bli < 0.5:
		return RiskHigh, "#f97316"
	default:
		return RiskCritical, "#ef4444"
	}
}
