package grade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rec(weight, score, maxScore float64) Record {
	return Record{Weight: weight, Score: score, MaxScore: maxScore}
}

func TestCurrentGrade(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		want    float64
	}{
		{name: "no records", want: 0},
		{name: "only zero weights", records: []Record{rec(0, 80, 100), rec(0, 10, 20)}, want: 0},
		{name: "only zero max scores", records: []Record{rec(30, 0, 0), rec(20, 0, 0)}, want: 0},
		{name: "single full weight", records: []Record{rec(100, 50, 100)}, want: 50},
		{name: "renormalized partial weight", records: []Record{rec(20, 100, 100)}, want: 100},
		{name: "weighted average", records: []Record{rec(30, 80, 100), rec(20, 45, 50)}, want: 84},
		{name: "non contributing ignored", records: []Record{rec(40, 35, 50), rec(0, 0, 100), rec(25, 0, 0)}, want: 70},
		{name: "over allocated", records: []Record{rec(80, 100, 100), rec(40, 50, 100)}, want: 83.333333},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CurrentGrade(tt.records), 1e-6)
		})
	}
}

func TestNeededScore(t *testing.T) {
	tests := []struct {
		name    string
		records []Record
		target  float64
		want    Needed
	}{
		{name: "target above 100", records: []Record{rec(60, 90, 100)}, target: 101, want: Needed{Status: StatusInvalidTarget}},
		{name: "negative target", records: []Record{rec(60, 90, 100)}, target: -1, want: Needed{Status: StatusInvalidTarget}},
		{name: "NaN target", target: math.NaN(), want: Needed{Status: StatusInvalidTarget}},
		{name: "course fully weighted", records: []Record{rec(60, 90, 100), rec(40, 10, 100)}, target: 50, want: Needed{Status: StatusNotApplicable}},
		{name: "course over weighted", records: []Record{rec(70, 90, 100), rec(40, 10, 100)}, target: 0, want: Needed{Status: StatusNotApplicable}},
		{name: "simple", records: []Record{rec(60, 90, 100)}, target: 85, want: Needed{Status: StatusScore, Score: 77.5}},
		{name: "exact 100 is reachable", records: []Record{rec(50, 100, 100)}, target: 100, want: Needed{Status: StatusScore, Score: 100}},
		{name: "just above 100", records: []Record{rec(50, 99.998, 100)}, target: 100, want: Needed{Status: StatusImpossible}},
		{name: "impossible", records: []Record{rec(50, 40, 100)}, target: 90, want: Needed{Status: StatusImpossible}},
		{name: "already met", records: []Record{rec(80, 100, 100)}, target: 70, want: Needed{Status: StatusScore, Score: 0}},
		{name: "no records", target: 85, want: Needed{Status: StatusScore, Score: 85}},
		{name: "rounded", records: []Record{rec(30, 2, 3)}, target: 80, want: Needed{Status: StatusScore, Score: 85.71}},
		{
			name:    "zero max score keeps its weight",
			records: []Record{rec(50, 80, 100), rec(25, 0, 0)},
			target:  80,
			want:    Needed{Status: StatusScore, Score: 80},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeededScore(tt.records, tt.target)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.InDelta(t, tt.want.Score, got.Score, 1e-9)
		})
	}
}

func TestNeededScore_Idempotent(t *testing.T) {
	records := []Record{rec(35, 41, 50), rec(15, 7, 10), rec(0, 3, 4)}
	first := NeededScore(records, 77)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, NeededScore(records, 77))
		assert.Equal(t, CurrentGrade(records), CurrentGrade(records))
	}
}

func TestNeeded_String(t *testing.T) {
	assert.Equal(t, "77.50", Needed{Status: StatusScore, Score: 77.5}.String())
	assert.Equal(t, "0.00", Needed{Status: StatusScore}.String())
	assert.Equal(t, "N/A", Needed{Status: StatusNotApplicable}.String())
	assert.Equal(t, "Impossible", Needed{Status: StatusImpossible}.String())
	assert.Equal(t, "Invalid target", Needed{Status: StatusInvalidTarget}.String())
}

func TestRecord_Setters(t *testing.T) {
	r := rec(20, 90, 100)

	r.SetMaxScore(80)
	assert.Equal(t, 80.0, r.MaxScore)
	assert.Equal(t, 80.0, r.Score, "score must be clamped to the new max score")

	r.SetMaxScore(120)
	assert.Equal(t, 80.0, r.Score, "raising max score keeps the score")

	r.SetScore(150)
	assert.Equal(t, 120.0, r.Score)
	r.SetScore(-3)
	assert.Equal(t, 0.0, r.Score)

	r.SetWeight(130)
	assert.Equal(t, 100.0, r.Weight)
	r.SetWeight(-1)
	assert.Equal(t, 0.0, r.Weight)
}

func TestWeights(t *testing.T) {
	records := []Record{rec(60, 1, 1), rec(50, 1, 1)}
	assert.Equal(t, 110.0, TotalWeight(records))
	assert.Equal(t, 0.0, RemainingWeight(records))
	assert.True(t, WeightExceeded(records))

	records = records[:1]
	assert.Equal(t, 40.0, RemainingWeight(records))
	assert.False(t, WeightExceeded(records))
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandGood, BandOf(90))
	assert.Equal(t, BandFair, BandOf(89.99))
	assert.Equal(t, BandFair, BandOf(70))
	assert.Equal(t, BandPoor, BandOf(69.9))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Record{rec(60, 90, 100)}, 85)
	assert.Equal(t, 90.0, s.CurrentGrade)
	assert.Equal(t, BandGood, s.CurrentBand)
	assert.Equal(t, 85.0, s.TargetGrade)
	assert.Equal(t, Needed{Status: StatusScore, Score: 77.5}, s.Needed)
	assert.Equal(t, "77.50", s.NeededLabel)
	assert.Equal(t, 60.0, s.TotalWeight)
	assert.Equal(t, 40.0, s.RemainingWeight)
	assert.False(t, s.WeightExceeded)
	assert.Equal(t, 1, s.RecordCount)
}
