// Package scoring implements the Cooper Index: a fixed-table, points-based
// heuristic that classifies a prospective lessee's profile into a qualitative
// recommendation band. It is a pure computation with a single failure mode,
// the incomplete form.
package scoring

import (
	"errors"
	"math"
)

// MaxPoints is the highest achievable total across the six criteria.
const MaxPoints = 30

// ErrIncompleteForm is returned when any of the six slots is empty or holds a
// code outside its option table. A partial total is never surfaced as a real
// score.
var ErrIncompleteForm = errors.New("incomplete form: please fill in all fields")

// Recommendation bands, evaluated on the 0–30 scale with >= thresholds in
// descending order (first match wins): 25 is Excellent, 24 is Good.
const (
	RecommendationExcellent = "Excellent candidate for lease"
	RecommendationGood      = "Good candidate for lease"
	RecommendationFair      = "Fair candidate – review carefully"
	RecommendationPoor      = "Poor candidate – high risk"
)

// Answers holds one submitted calculator form. Every slot must carry a code
// from its criterion's option table before a score can be finalized.
type Answers struct {
	Age           string `json:"age"`
	LeaseDuration string `json:"leaseDuration"`
	Insurance     string `json:"insurance"`
	Balance       string `json:"balance"`
	Location      string `json:"location"`
	Size          string `json:"size"`
}

// value returns the submitted code for a slot.
func (a Answers) value(criterion Criterion) string {
	switch criterion {
	case CriterionAge:
		return a.Age
	case CriterionLeaseDuration:
		return a.LeaseDuration
	case CriterionInsurance:
		return a.Insurance
	case CriterionBalance:
		return a.Balance
	case CriterionLocation:
		return a.Location
	case CriterionSize:
		return a.Size
	default:
		return ""
	}
}

// BreakdownEntry is one scored slot in a result: the criterion, the label of
// the selected option, and the points it contributed.
type BreakdownEntry struct {
	Criterion Criterion `json:"criterion"`
	Label     string    `json:"label"`
	Points    int       `json:"points"`
}

// Result is a finalized Cooper Index score. Breakdown is always in fixed slot
// order, which is what the PDF report and on-screen table render.
type Result struct {
	TotalPoints    int              `json:"totalPoints"`
	Breakdown      []BreakdownEntry `json:"breakdown"`
	Recommendation string           `json:"recommendation"`
	Percent        int              `json:"percent"`
}

// Score converts a complete answer set into a Result. If any slot is empty or
// not present in its option table it returns ErrIncompleteForm; unknown codes
// contribute zero to the running total internally, but an authoritative
// Result is only produced when all six slots resolve.
func Score(answers Answers) (*Result, error) {
	breakdown := make([]BreakdownEntry, 0, len(Criteria))
	total := 0
	complete := true

	for _, criterion := range Criteria {
		opt, ok := lookup(criterion, answers.value(criterion))
		if !ok {
			complete = false
		}
		total += opt.Points
		breakdown = append(breakdown, BreakdownEntry{
			Criterion: criterion,
			Label:     opt.Label,
			Points:    opt.Points,
		})
	}

	if !complete {
		return nil, ErrIncompleteForm
	}

	return &Result{
		TotalPoints:    total,
		Breakdown:      breakdown,
		Recommendation: Recommend(total),
		Percent:        Percent(total),
	}, nil
}

// Recommend maps a total onto its qualitative band.
func Recommend(totalPoints int) string {
	switch {
	case totalPoints >= 25:
		return RecommendationExcellent
	case totalPoints >= 15:
		return RecommendationGood
	case totalPoints >= 10:
		return RecommendationFair
	default:
		return RecommendationPoor
	}
}

// Percent expresses a total as a rounded percentage of MaxPoints.
func Percent(totalPoints int) int {
	return int(math.Round(float64(totalPoints) / MaxPoints * 100))
}
