package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{90, "1h 30m"},
		{605, "10h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes))
	}
}

func TestMostStudiedSubject(t *testing.T) {
	assert.Equal(t, "N/A", MostStudiedSubject(nil))

	sessions := []Session{
		{Subject: "Math", Duration: 30},
		{Subject: "History", Duration: 50},
		{Subject: "Math", Duration: 40},
	}
	assert.Equal(t, "Math", MostStudiedSubject(sessions), "durations are summed per subject")

	tie := []Session{
		{Subject: "Biology", Duration: 60},
		{Subject: "Chemistry", Duration: 60},
	}
	assert.Equal(t, "Biology", MostStudiedSubject(tie), "ties go to the first subject")
}

func TestAverageProductivity(t *testing.T) {
	s := func(levels ...Productivity) []Session {
		sessions := make([]Session, 0, len(levels))
		for _, l := range levels {
			sessions = append(sessions, Session{Productivity: l})
		}
		return sessions
	}

	assert.Equal(t, "N/A", AverageProductivity(nil))
	assert.Equal(t, "High", AverageProductivity(s(ProductivityHigh, ProductivityHigh, ProductivityMedium))) // 2.67
	assert.Equal(t, "High", AverageProductivity(s(ProductivityHigh, ProductivityMedium)))                   // 2.5
	assert.Equal(t, "Medium", AverageProductivity(s(ProductivityHigh, ProductivityLow)))                    // 2
	assert.Equal(t, "Medium", AverageProductivity(s(ProductivityMedium, ProductivityLow)))                  // 1.5
	assert.Equal(t, "Low", AverageProductivity(s(ProductivityLow, ProductivityLow, ProductivityMedium)))    // 1.33
}

func TestSort(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, time.April, day, 0, 0, 0, 0, time.UTC) }
	created := time.Date(2024, time.April, 1, 8, 0, 0, 0, time.UTC)

	sessions := []Session{
		{ID: "old", Date: d(1)},
		{ID: "new-1", Date: d(9), CreatedAt: created},
		{ID: "mid", Date: d(5)},
		{ID: "new-2", Date: d(9), CreatedAt: created.Add(time.Minute)},
	}
	Sort(sessions)

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"new-2", "new-1", "mid", "old"}, ids)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]Session{
		{Subject: "Math", Duration: 50, Productivity: ProductivityHigh},
		{Subject: "Physics", Duration: 45, Productivity: ProductivityLow},
	})
	assert.Equal(t, Stats{
		SessionCount:        2,
		TotalMinutes:        95,
		TotalTime:           "1h 35m",
		MostStudiedSubject:  "Math",
		AverageProductivity: "Medium",
	}, stats)

	assert.Equal(t, Stats{TotalTime: "0m", MostStudiedSubject: "N/A", AverageProductivity: "N/A"}, ComputeStats(nil))
}
