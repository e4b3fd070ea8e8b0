package processor

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

// Column names the metric is computed from.
const (
	colEnrollments = "age_5_17"
	colUpdates     = "bio_age_5_17"
)

// NotFoundError reports a gap-widening lookup for an unknown district.
type NotFoundError struct {
	District string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("District '%s' not found", e.District)
}

// JoinedRow is one row of the outer join of the enrollment and biometric
// tables on (date, state, district, pincode). Counts absent from one side
// are zero. Gap is computed once here and reused by every rollup.
type JoinedRow struct {
	Date        time.Time
	State       string
	District    string
	Pincode     string
	Enrollments int64
	Updates     int64
	Gap         int64
}

type joinKey struct {
	date     time.Time
	state    string
	district string
	pincode  string
}

// BLIProcessor computes every Biometric Lag Index rollup from the two
// uploaded tables. It recomputes from scratch on construction; nothing is
// maintained incrementally.
type BLIProcessor struct {
	merged []JoinedRow
}

// New joins the enrollment and biometric tables and derives the per-row
// child update gap.
func New(enrollment, biometric *models.Table) *BLIProcessor {
	byKey := make(map[joinKey]*JoinedRow)

	add := func(row models.Row) *JoinedRow {
		key := joinKey{row.Date, row.State, row.District, row.Pincode}
		j, ok := byKey[key]
		if !ok {
			j = &JoinedRow{
				Date:     row.Date,
				State:    row.State,
				District: row.District,
				Pincode:  row.Pincode,
			}
			byKey[key] = j
		}
		return j
	}

	for _, row := range enrollment.Rows {
		add(row).Enrollments += row.Count(colEnrollments)
	}
	for _, row := range biometric.Rows {
		add(row).Updates += row.Count(colUpdates)
	}

	merged := make([]JoinedRow, 0, len(byKey))
	for _, j := range byKey {
		j.Gap = j.Enrollments - j.Updates
		merged = append(merged, *j)
	}
	// Map iteration is randomized; fix the row order so every rollup and
	// JSON payload comes out the same for the same inputs.
	sort.Slice(merged, func(a, b int) bool {
		ra, rb := merged[a], merged[b]
		if !ra.Date.Equal(rb.Date) {
			return ra.Date.Before(rb.Date)
		}
		if ra.State != rb.State {
			return ra.State < rb.State
		}
		if ra.District != rb.District {
			return ra.District < rb.District
		}
		return ra.Pincode < rb.Pincode
	})

	return &BLIProcessor{merged: merged}
}

// Merged exposes the joined rows.
func (p *BLIProcessor) Merged() []JoinedRow {
	return p.merged
}

type groupSums struct {
	state       string
	district    string
	enrollments int64
	updates     int64
	gap         int64
}

// ComputeDistrictBLI is the main computation: BLI per district, the top-10
// problem districts, the state rollup and the overall score.
func (p *BLIProcessor) ComputeDistrictBLI() *models.AnalysisResponse {
	districts := p.districtSums()

	scored := make([]models.DistrictBLI, 0, len(districts))
	for _, d := range districts {
		bli := float64(d.gap) / (float64(d.enrollments) + Epsilon)
		level, color := RiskLevel(bli)
		scored = append(scored, models.DistrictBLI{
			State:            d.state,
			District:         d.district,
			TotalEnrollments: d.enrollments,
			TotalUpdates:     d.updates,
			ChildUpdateGap:   d.gap,
			BLIScore:         round4(bli),
			RiskLevel:        level,
			ColorCode:        color,
		})
	}
	sortDistrictsByScore(scored)

	top := scored
	if len(top) > 10 {
		top = top[:10]
	}

	// Overall BLI over the grouped district sums. Summation is associative,
	// so this matches the raw-row total, but the granularity is kept the
	// same as the reference output.
	var totalEnrollments, totalUpdates int64
	for _, d := range districts {
		totalEnrollments += d.enrollments
		totalUpdates += d.updates
	}
	overall := float64(totalEnrollments-totalUpdates) / (float64(totalEnrollments) + Epsilon)

	return &models.AnalysisResponse{
		Success:             true,
		TotalRecords:        len(p.merged),
		DateRange:           p.dateRange(),
		TopProblemDistricts: top,
		StateSummary:        p.stateSums(false),
		OverallBLI:          round4(overall),
	}
}

// StateSummary returns state aggregates with risk levels, highest BLI first.
func (p *BLIProcessor) StateSummary() []models.StateBLI {
	states := p.stateSums(true)
	sort.SliceStable(states, func(a, b int) bool {
		if states[a].BLIScore != states[b].BLIScore {
			return states[a].BLIScore > states[b].BLIScore
		}
		return states[a].State < states[b].State
	})
	return states
}

// Seasonality rolls the joined rows up by calendar month and reports the
// peak and low months by update volume. Months are ordered by (year,
// month); ties on volume resolve to the earliest occurrence.
func (p *BLIProcessor) Seasonality() *models.SeasonalityResponse {
	type ym struct {
		year  int
		month int
	}
	sums := make(map[ym]*models.MonthlyBLI)
	for _, row := range p.merged {
		key := ym{row.Date.Year(), int(row.Date.Month())}
		m, ok := sums[key]
		if !ok {
			m = &models.MonthlyBLI{
				Year:      key.year,
				Month:     key.month,
				MonthName: time.Month(key.month).String(),
			}
			sums[key] = m
		}
		m.TotalEnrollments += row.Enrollments
		m.TotalUpdates += row.Updates
	}

	monthly := make([]models.MonthlyBLI, 0, len(sums))
	for _, m := range sums {
		m.UpdateRate = float64(m.TotalUpdates) / (float64(m.TotalEnrollments) + Epsilon)
		monthly = append(monthly, *m)
	}
	sort.Slice(monthly, func(a, b int) bool {
		if monthly[a].Year != monthly[b].Year {
			return monthly[a].Year < monthly[b].Year
		}
		return monthly[a].Month < monthly[b].Month
	})

	resp := &models.SeasonalityResponse{MonthlyData: monthly}
	if len(monthly) > 0 {
		peak, low := 0, 0
		for i := 1; i < len(monthly); i++ {
			if monthly[i].TotalUpdates > monthly[peak].TotalUpdates {
				peak = i
			}
			if monthly[i].TotalUpdates < monthly[low].TotalUpdates {
				low = i
			}
		}
		resp.PeakMonth = monthly[peak].MonthName
		resp.LowMonth = monthly[low].MonthName
	}
	return resp
}

// GapWidening builds the cumulative enrollment/update series for one
// district. The match is case-insensitive and exact; when the same district
// name exists in several states the lexicographically smallest state is
// reported. Returns NotFoundError when nothing matches.
func (p *BLIProcessor) GapWidening(district string) (*models.GapWideningData, error) {
	var matched []JoinedRow
	state := ""
	for _, row := range p.merged {
		if !strings.EqualFold(row.District, district) {
			continue
		}
		matched = append(matched, row)
		if state == "" || row.State < state {
			state = row.State
		}
	}
	if len(matched) == 0 {
		return nil, &NotFoundError{District: district}
	}

	daily := make(map[time.Time]*JoinedRow)
	for _, row := range matched {
		d, ok := daily[row.Date]
		if !ok {
			d = &JoinedRow{Date: row.Date}
			daily[row.Date] = d
		}
		d.Enrollments += row.Enrollments
		d.Updates += row.Updates
	}
	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(a, b int) bool { return dates[a].Before(dates[b]) })

	points := make([]models.TimeSeriesPoint, 0, len(dates))
	var cumEnrollments, cumUpdates int64
	for _, d := range dates {
		cumEnrollments += daily[d].Enrollments
		cumUpdates += daily[d].Updates
		points = append(points, models.TimeSeriesPoint{
			Date:                  d.Format("2006-01-02"),
			CumulativeEnrollments: cumEnrollments,
			CumulativeUpdates:     cumUpdates,
			Gap:                   cumEnrollments - cumUpdates,
		})
	}

	return &models.GapWideningData{
		District:   district,
		State:      state,
		DataPoints: points,
	}, nil
}

func (p *BLIProcessor) districtSums() []groupSums {
	byDistrict := make(map[string]*groupSums)
	order := make([]string, 0)
	for _, row := range p.merged {
		key := row.State + "\x00" + row.District
		g, ok := byDistrict[key]
		if !ok {
			g = &groupSums{state: row.State, district: row.District}
			byDistrict[key] = g
			order = append(order, key)
		}
		g.enrollments += row.Enrollments
		g.updates += row.Updates
		g.gap += row.Gap
	}
	out := make([]groupSums, 0, len(order))
	for _, key := range order {
		out = append(out, *byDistrict[key])
	}
	return out
}

// stateSums groups by state in state-name order. Risk fields are attached
// only for the state-summary endpoint.
func (p *BLIProcessor) stateSums(withRisk bool) []models.StateBLI {
	byState := make(map[string]*groupSums)
	names := make([]string, 0)
	for _, row := range p.merged {
		g, ok := byState[row.State]
		if !ok {
			g = &groupSums{state: row.State}
			byState[row.State] = g
			names = append(names, row.State)
		}
		g.enrollments += row.Enrollments
		g.updates += row.Updates
		g.gap += row.Gap
	}
	sort.Strings(names)

	out := make([]models.StateBLI, 0, len(names))
	for _, name := range names {
		g := byState[name]
		bli := float64(g.gap) / (float64(g.enrollments) + Epsilon)
		s := models.StateBLI{
			State:            g.state,
			TotalEnrollments: g.enrollments,
			TotalUpdates:     g.updates,
			ChildUpdateGap:   g.gap,
			BLIScore:         bli,
		}
		if withRisk {
			s.RiskLevel, s.ColorCode = RiskLevel(bli)
		}
		out = append(out, s)
	}
	return out
}

func (p *BLIProcessor) dateRange() map[string]string {
	if len(p.merged) == 0 {
		return map[string]string{"start": "N/A", "end": "N/A"}
	}
	min, max := p.merged[0].Date, p.merged[0].Date
	for _, row := range p.merged[1:] {
		if row.Date.Before(min) {
			min = row.Date
		}
		if row.Date.After(max) {
			max = row.Date
		}
	}
	return map[string]string{
		"start": min.Format("2006-01-02"),
		"end":   max.Format("2006-01-02"),
	}
}

func sortDistrictsByScore(districts []models.DistrictBLI) {
	sort.SliceStable(districts, func(a, b int) bool {
		if districts[a].BLIScore != districts[b].BLIScore {
			return districts[a].BLIScore > districts[b].BLIScore
		}
		if districts[a].State != districts[b].State {
			return districts[a].State < districts[b].State
		}
		return districts[a].District < districts[b].District
	})
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
