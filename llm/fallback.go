package llm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/processor"
)

// FallbackResponse answers a question from the precomputed analysis alone.
// It classifies the question by keyword against an ordered intent list and
// interpolates live numbers into a templated answer. Deterministic, needs
// no network, and is the recovery path whenever generation fails.
func (s *Service) FallbackResponse(question string) *models.ChatResponse {
	q := strings.ToLower(question)
	a := s.analysis

	if containsAny(q, "highest", "worst", "top", "problem") && containsAny(q, "bli", "lag", "district", "risk") {
		if len(a.TopProblemDistricts) > 0 {
			top := a.TopProblemDistricts[0]
			return &models.ChatResponse{
				Response: fmt.Sprintf("The district with the highest BLI is **%s** in **%s** with a BLI of **%v** (%s risk). This means **%s** children have enrolled but not yet updated their biometrics, putting them at risk of service disruption.",
					top.District, top.State, top.BLIScore, top.RiskLevel, commafy(top.ChildUpdateGap)),
				SuggestedQuestions: []string{
					"Why is this district's BLI so high?",
					"What is the overall BLI?",
					"Which districts need immediate intervention?",
				},
			}
		}
	}

	if strings.Contains(q, "what is bli") || strings.Contains(q, "biometric lag") || strings.Contains(q, "explain bli") {
		return &models.ChatResponse{
			Response: fmt.Sprintf("The **Biometric Lag Index (BLI)** measures the gap between child enrollments (age 5-17) and their biometric updates. **Formula:** BLI = (Enrollments - Updates) / Enrollments. A higher BLI indicates more children who have enrolled but haven't updated their biometrics. Currently, the overall BLI is **%v**.", a.OverallBLI),
			SuggestedQuestions: []string{
				"Which districts have critical BLI?",
				"What is the overall BLI?",
				"What do the risk levels mean?",
			},
		}
	}

	if containsAny(q, "overall", "total", "average", "summary") {
		criticalCount := countByRisk(a.TopProblemDistricts, processor.RiskCritical)
		highCount := countByRisk(a.TopProblemDistricts, processor.RiskHigh)
		return &models.ChatResponse{
			Response: fmt.Sprintf("**Overall Summary:** The BLI across all districts is **%v**. Total records analyzed: **%s** spanning from %s to %s. Currently, **%d** districts are at Critical risk and **%d** are at High risk.",
				a.OverallBLI, commafy(int64(a.TotalRecords)), a.DateRange["start"], a.DateRange["end"], criticalCount, highCount),
			SuggestedQuestions: []string{
				"Which district has the highest BLI?",
				"How many districts are at critical risk?",
				"Which state needs intervention?",
			},
		}
	}

	if containsAny(q, "critical", "risk", "danger", "urgent") {
		critical := filterByRisk(a.TopProblemDistricts, processor.RiskCritical)
		high := filterByRisk(a.TopProblemDistricts, processor.RiskHigh)
		if len(critical) > 0 {
			var names []string
			for i, d := range critical {
				if i == 5 {
					break
				}
				names = append(names, fmt.Sprintf("%s (%s)", d.District, d.State))
			}
			return &models.ChatResponse{
				Response: fmt.Sprintf("**%d districts** are at Critical risk level (BLI > 0.5). Top critical districts: **%s**. Additionally, **%d** districts are at High risk. These need immediate biometric update camps.",
					len(critical), strings.Join(names, ", "), len(high)),
				SuggestedQuestions: []string{
					"What actions should be taken?",
					"Show me the gap widening trend",
					"Which state has the most critical districts?",
				},
			}
		}
		return &models.ChatResponse{
			Response: fmt.Sprintf("Good news! No districts are currently at Critical risk. However, **%d** districts are at High risk and should be monitored closely.", len(high)),
			SuggestedQuestions: []string{
				"Which districts are at high risk?",
				"What is the overall BLI?",
			},
		}
	}

	if strings.Contains(q, "state") && len(s.rankedStates) > 0 {
		topState := s.rankedStates[0]
		response := fmt.Sprintf("**State with highest BLI:** %s with BLI of **%v**.", topState.State, round4(topState.BLIScore))
		if len(s.rankedStates) > 1 {
			bottomState := s.rankedStates[len(s.rankedStates)-1]
			response += fmt.Sprintf(" **Best performing state:** %s with BLI of **%v**.", bottomState.State, round4(bottomState.BLIScore))
		}
		response += fmt.Sprintf(" Total **%d** states analyzed.", len(s.rankedStates))
		return &models.ChatResponse{
			Response: response,
			SuggestedQuestions: []string{
				"Which districts in this state need attention?",
				"What is the overall BLI?",
			},
		}
	}

	if containsAny(q, "intervention", "action", "recommend", "solution", "help", "fix") {
		critical := filterByRisk(a.TopProblemDistricts, processor.RiskCritical)
		priority := "the highest-BLI district"
		if len(a.TopProblemDistricts) > 0 {
			priority = a.TopProblemDistricts[0].District
		}
		return &models.ChatResponse{
			Response: fmt.Sprintf("**Recommended Actions:** 1) Organize biometric update camps in **%d** critical districts, prioritizing %s. 2) Deploy mobile enrollment units to schools. 3) Run awareness campaigns for parents about the importance of updating children's biometrics. 4) Set up monitoring dashboards to track progress weekly.",
				len(critical), priority),
			SuggestedQuestions: []string{
				"Which districts are most critical?",
				"How many children are affected?",
				"What is the BLI formula?",
			},
		}
	}

	if containsAny(q, "children", "kids", "affected", "gap", "how many") {
		var totalGap int64
		for _, d := range a.TopProblemDistricts {
			totalGap += d.ChildUpdateGap
		}
		response := fmt.Sprintf("Based on the analyzed data, approximately **%s** children (age 5-17) have enrolled but not updated their biometrics across all districts.", commafy(totalGap))
		if len(a.TopProblemDistricts) > 0 {
			top := a.TopProblemDistricts[0]
			response += fmt.Sprintf(" The district with the largest gap is **%s** with **%s** children affected.", top.District, commafy(top.ChildUpdateGap))
		}
		return &models.ChatResponse{
			Response: response,
			SuggestedQuestions: []string{
				"Which district has the highest BLI?",
				"What interventions do you recommend?",
			},
		}
	}

	if containsAny(q, "list", "all", "show") && strings.Contains(q, "district") {
		var lines []string
		for i, d := range a.TopProblemDistricts {
			if i == 10 {
				break
			}
			lines = append(lines, fmt.Sprintf("• %s (%s): BLI=%v, %s risk", d.District, d.State, d.BLIScore, d.RiskLevel))
		}
		return &models.ChatResponse{
			Response: "**Top 10 Districts by BLI:**\n" + strings.Join(lines, "\n"),
			SuggestedQuestions: []string{
				"What is the overall BLI?",
				"Which state has the most problems?",
			},
		}
	}

	// Catch-all with enough context to steer the next question.
	response := fmt.Sprintf("Based on the uploaded data: **Overall BLI is %v**.", a.OverallBLI)
	if len(a.TopProblemDistricts) > 0 {
		top := a.TopProblemDistricts[0]
		response += fmt.Sprintf(" The district needing most attention is **%s** in **%s** with BLI of **%v** (%s risk).",
			top.District, top.State, top.BLIScore, top.RiskLevel)
	}
	response += fmt.Sprintf(" Total **%s** records analyzed. Ask me about specific districts, states, risk levels, or recommendations!", commafy(int64(a.TotalRecords)))
	return &models.ChatResponse{
		Response: response,
		SuggestedQuestions: []string{
			"What is the BLI formula?",
			"Which districts need intervention?",
			"What does Critical risk mean?",
			"Which state has the highest BLI?",
		},
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func countByRisk(districts []models.DistrictBLI, level string) int {
	return len(filterByRisk(districts, level))
}

func filterByRisk(districts []models.DistrictBLI, level string) []models.DistrictBLI {
	var out []models.DistrictBLI
	for _, d := range districts {
		if d.RiskLevel == level {
			out = append(out, d)
		}
	}
	return out
}

// commafy renders 1234567 as "1,234,567".
func commafy(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + strings.Join(parts, ",")
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
