package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/processor"
)

// Service answers natural-language questions about the current analysis.
// It forwards the question plus a data context block to the generation
// backend; on any failure it answers locally from the same numbers.
type Service struct {
	generator    Generator
	timeout      time.Duration
	analysis     *models.AnalysisResponse
	rankedStates []models.StateBLI
	dataContext  string
}

// NewService precomputes the analysis snapshot and the prompt context.
func NewService(p *processor.BLIProcessor, gen Generator, timeout time.Duration) *Service {
	s := &Service{
		generator:    gen,
		timeout:      timeout,
		analysis:     p.ComputeDistrictBLI(),
		rankedStates: p.StateSummary(),
	}
	s.dataContext = s.buildContext()
	return s
}

func (s *Service) buildContext() string {
	var b strings.Builder
	a := s.analysis

	b.WriteString("You are an AI assistant analyzing UIDAI Aadhaar biometric data for the \"Digital Continuity\" project.\n\n")
	b.WriteString("=== DATA SUMMARY ===\n")
	fmt.Fprintf(&b, "- Total records analyzed: %s\n", commafy(int64(a.TotalRecords)))
	fmt.Fprintf(&b, "- Date range: %s to %s\n", a.DateRange["start"], a.DateRange["end"])
	fmt.Fprintf(&b, "- Overall Biometric Lag Index (BLI): %v\n\n", a.OverallBLI)

	b.WriteString("=== BLI FORMULA ===\n")
	b.WriteString("BLI = ((Total Enrollments for age 5-17) - (Total Biometric Updates for age 5-17)) / (Total Enrollments for age 5-17)\n\n")

	b.WriteString("=== RISK LEVEL THRESHOLDS ===\n")
	b.WriteString("- BLI < 0.1: Low Risk (Green) - Acceptable levels\n")
	b.WriteString("- BLI 0.1-0.3: Medium Risk (Yellow) - Needs monitoring\n")
	b.WriteString("- BLI 0.3-0.5: High Risk (Orange) - Needs attention\n")
	b.WriteString("- BLI > 0.5: Critical Risk (Red) - Immediate intervention required\n\n")

	b.WriteString("=== ALL DISTRICT DATA (Sorted by BLI - Highest First) ===\n")
	for i, d := range a.TopProblemDistricts {
		fmt.Fprintf(&b, "%d. %s, %s: BLI=%v, Gap=%s children, Risk=%s\n",
			i+1, d.District, d.State, d.BLIScore, commafy(d.ChildUpdateGap), d.RiskLevel)
	}

	b.WriteString("\n=== STATE SUMMARY (Sorted by BLI - Highest First) ===\n")
	for i, st := range s.rankedStates {
		fmt.Fprintf(&b, "%d. %s: BLI=%v, Risk=%s\n", i+1, st.State, round4(st.BLIScore), st.RiskLevel)
	}

	b.WriteString("\n=== WHAT BLI MEANS ===\n")
	b.WriteString("The Biometric Lag Index measures children (age 5-17) who have enrolled in Aadhaar but have NOT updated their biometrics. High BLI means many children risk service disruption when their biometrics become outdated.\n\n")

	b.WriteString("=== YOUR ROLE ===\n")
	b.WriteString("Answer questions about this data accurately. Use specific numbers from the data above. If asked about trends, districts, states, or interventions, reference the actual data provided.")

	return b.String()
}

// AnswerQuestion submits the question to the generation backend with a
// bounded timeout. Network errors, non-success statuses and empty
// completions all route to the deterministic fallback; the caller never
// sees a generation failure.
func (s *Service) AnswerQuestion(ctx context.Context, question string) *models.ChatResponse {
	if s.generator != nil {
		prompt := fmt.Sprintf(`%s

USER QUESTION: %s

INSTRUCTIONS:
1. Answer ONLY based on the data provided above
2. Use specific numbers, district names, and states from the data
3. If the question is about a specific district or state, look it up in the data above
4. Keep your response concise but informative (2-4 sentences)
5. If the data doesn't contain the answer, say so clearly

YOUR ANSWER:`, s.dataContext, question)

		genCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		answer, err := s.generator.Generate(genCtx, prompt)
		if err == nil {
			if answer = strings.TrimSpace(answer); answer != "" {
				return &models.ChatResponse{
					Response:           cleanResponse(answer),
					SuggestedQuestions: s.suggestions(question),
				}
			}
		} else {
			log.Printf("Text generation failed, using fallback responder: %v", err)
		}
	}
	return s.FallbackResponse(question)
}

// cleanResponse trims model artifacts and caps the answer length.
func cleanResponse(response string) string {
	response = strings.TrimSpace(response)
	sentences := strings.Split(response, ".")
	if len(sentences) > 6 {
		response = strings.Join(sentences[:5], ".") + "."
	}
	return response
}

// suggestions picks follow-up questions matching what was just asked.
func (s *Service) suggestions(question string) []string {
	asked := strings.ToLower(question)
	switch {
	case strings.Contains(asked, "highest") || strings.Contains(asked, "worst"):
		return []string{
			"What is the overall BLI across all districts?",
			"Which state has the most critical districts?",
			"What interventions do you recommend?",
		}
	case strings.Contains(asked, "state"):
		return []string{
			"Which district in this state needs the most attention?",
			"What is the overall BLI?",
			"How many districts are at critical risk?",
		}
	case strings.Contains(asked, "bli") && (strings.Contains(asked, "what") || strings.Contains(asked, "explain")):
		return []string{
			"Which district has the highest BLI?",
			"How many children are affected overall?",
			"What does critical risk mean?",
		}
	case strings.Contains(asked, "risk") || strings.Contains(asked, "critical"):
		return []string{
			"List all critical risk districts",
			"What actions should be taken?",
			"Which state has the most problems?",
		}
	default:
		return []string{
			"Which district has the highest BLI?",
			"What is the BLI formula?",
			"How many districts are at critical risk?",
			"Which state needs the most attention?",
		}
	}
}
