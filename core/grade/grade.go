// Package grade computes weighted course grades from assessment records.
//
// Everything in this package is a pure function over a snapshot of records:
// no state is kept between calls and the functions are safe for concurrent use.
package grade

import (
	"math"
	"strconv"
)

const (
	// FullWeight is the total weight of a course, in percent.
	FullWeight = 100.0
	// MaxGrade is the highest grade (and target) a course can have, in percent.
	MaxGrade = 100.0
)

// Record is a single weighted assessment (exam, quiz, project...).
type Record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`    // percent of the final grade, [0, 100]
	Score    float64 `json:"score"`     // points earned, [0, MaxScore]
	MaxScore float64 `json:"max_score"` // points possible, > 0
}

// SetWeight sets the record weight, clamped to [0, 100].
func (r *Record) SetWeight(w float64) {
	r.Weight = clamp(w, 0, FullWeight)
}

// SetScore sets the record score, clamped to [0, MaxScore].
func (r *Record) SetScore(s float64) {
	r.Score = clamp(s, 0, math.Max(r.MaxScore, 0))
}

// SetMaxScore sets the points possible and clamps the score down to it if needed.
func (r *Record) SetMaxScore(m float64) {
	r.MaxScore = m
	if r.Score > m {
		r.Score = math.Max(m, 0)
	}
}

// Percentage returns the score as a percentage of MaxScore, 0 when MaxScore is not positive.
func (r Record) Percentage() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return r.Score / r.MaxScore * 100
}

func (r Record) contributes() bool {
	return r.Weight > 0 && r.MaxScore > 0
}

// CurrentGrade returns the weighted average of the contributing records,
// renormalized to the weight actually graded so far: a single 20% assessment
// with a perfect score yields 100, not 20.
// Records with no weight or no max score are ignored. Returns 0 when nothing contributes.
func CurrentGrade(records []Record) float64 {
	var weightedSum, usedWeight float64
	for _, r := range records {
		if !r.contributes() {
			continue
		}
		weightedSum += r.Percentage() * (r.Weight / 100)
		usedWeight += r.Weight
	}
	if usedWeight == 0 {
		return 0
	}
	return weightedSum * (100 / usedWeight)
}

// TotalWeight sums the weight of all records.
func TotalWeight(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Weight
	}
	return total
}

// RemainingWeight is the course weight left to be graded, never negative.
func RemainingWeight(records []Record) float64 {
	return math.Max(FullWeight-TotalWeight(records), 0)
}

// WeightExceeded reports whether the records are worth more than the whole course.
// Over-allocation is allowed, only flagged.
func WeightExceeded(records []Record) bool {
	return TotalWeight(records) > FullWeight
}

// ValidTarget reports whether t is a usable target grade.
func ValidTarget(t float64) bool {
	return !math.IsNaN(t) && t >= 0 && t <= MaxGrade
}

// Status tells how to read a Needed result.
type Status string

const (
	StatusScore         Status = "score"          // Needed.Score holds the needed percentage
	StatusNotApplicable Status = "not_applicable" // no weight left to earn points on
	StatusImpossible    Status = "impossible"     // more than 100% would be needed
	StatusInvalidTarget Status = "invalid_target" // target outside [0, 100]
)

// Needed is the score required on the remaining weight to reach a target grade.
type Needed struct {
	Status Status  `json:"status"`
	Score  float64 `json:"score"`
}

func (n Needed) IsScore() bool { return n.Status == StatusScore }

// String renders the result the way it is displayed to students.
func (n Needed) String() string {
	switch n.Status {
	case StatusScore:
		return strconv.FormatFloat(n.Score, 'f', 2, 64)
	case StatusNotApplicable:
		return "N/A"
	case StatusImpossible:
		return "Impossible"
	case StatusInvalidTarget:
		return "Invalid target"
	}
	return ""
}

// NeededScore solves for the percentage x needed on the remaining weight so that
//
//	current*(used/100) + x*(remaining/100) == target
//
// where used counts the weight of every record, graded or not.
// x is bounded before it is rounded to 2 decimals; the epsilon only absorbs float noise.
func NeededScore(records []Record, target float64) Needed {
	if !ValidTarget(target) {
		return Needed{Status: StatusInvalidTarget}
	}

	usedWeight := TotalWeight(records)
	remainingWeight := FullWeight - usedWeight
	if remainingWeight <= 0 {
		return Needed{Status: StatusNotApplicable}
	}

	current := CurrentGrade(records)
	x := (target - current*(usedWeight/100)) / (remainingWeight / 100)
	switch {
	case x > 100+floatNoise:
		return Needed{Status: StatusImpossible}
	case x <= 0: // target already met
		return Needed{Status: StatusScore, Score: 0}
	}
	return Needed{Status: StatusScore, Score: math.Min(round2(x), 100)}
}

// Band is the coarse standing of a grade.
type Band string

const (
	BandGood Band = "good" // >= 90
	BandFair Band = "fair" // >= 70
	BandPoor Band = "poor"
)

func BandOf(g float64) Band {
	switch {
	case g >= 90:
		return BandGood
	case g >= 70:
		return BandFair
	}
	return BandPoor
}

// Summary bundles everything a grade predictor shows for a course.
type Summary struct {
	CurrentGrade    float64 `json:"current_grade"`
	CurrentBand     Band    `json:"current_band"`
	TargetGrade     float64 `json:"target_grade"`
	Needed          Needed  `json:"needed"`
	NeededLabel     string  `json:"needed_label"`
	TotalWeight     float64 `json:"total_weight"`
	RemainingWeight float64 `json:"remaining_weight"`
	WeightExceeded  bool    `json:"weight_exceeded"`
	RecordCount     int     `json:"record_count"`
}

func Summarize(records []Record, target float64) Summary {
	current := CurrentGrade(records)
	needed := NeededScore(records, target)
	return Summary{
		CurrentGrade:    round2(current),
		CurrentBand:     BandOf(current),
		TargetGrade:     target,
		Needed:          needed,
		NeededLabel:     needed.String(),
		TotalWeight:     TotalWeight(records),
		RemainingWeight: RemainingWeight(records),
		WeightExceeded:  WeightExceeded(records),
		RecordCount:     len(records),
	}
}

const floatNoise = 1e-9

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}
