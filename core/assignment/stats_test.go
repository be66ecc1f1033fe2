package assignment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestSort(t *testing.T) {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assignments := []Assignment{
		{ID: "done-early", DueDate: day(1), Completed: true},
		{ID: "late", DueDate: day(20)},
		{ID: "early-2", DueDate: day(5), CreatedAt: created.Add(time.Hour)},
		{ID: "early-1", DueDate: day(5), CreatedAt: created},
		{ID: "done-late", DueDate: day(30), Completed: true},
	}
	Sort(assignments)

	ids := make([]string, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"early-1", "early-2", "late", "done-early", "done-late"}, ids)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(nil))
	assert.Equal(t, 33, CompletionRate([]Assignment{{Completed: true}, {}, {}}))
	assert.Equal(t, 67, CompletionRate([]Assignment{{Completed: true}, {Completed: true}, {}}))
	assert.Equal(t, 100, CompletionRate([]Assignment{{Completed: true}}))
}

func TestComputeStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := ComputeStats(nil)
		assert.Equal(t, 0, s.Total)
		assert.Nil(t, s.MostUrgent)
		assert.Equal(t, "N/A", s.MostUrgentLabel)
		assert.Equal(t, map[Priority]int{PriorityHigh: 0, PriorityMedium: 0, PriorityLow: 0}, s.PriorityDistribution)
	})

	t.Run("all complete", func(t *testing.T) {
		s := ComputeStats([]Assignment{{Title: "Essay", Completed: true, Priority: PriorityLow}})
		assert.Equal(t, 100, s.CompletionRate)
		assert.Nil(t, s.MostUrgent)
		assert.Equal(t, "No urgent assignments", s.MostUrgentLabel)
	})

	t.Run("mixed", func(t *testing.T) {
		s := ComputeStats([]Assignment{
			{Title: "Lab report", DueDate: day(12), Priority: PriorityHigh},
			{Title: "Reading", DueDate: day(2), Priority: PriorityLow, Completed: true},
			{Title: "Problem set", DueDate: day(9), Priority: PriorityHigh},
			{Title: "Slides", DueDate: day(15), Priority: PriorityMedium},
		})
		assert.Equal(t, 4, s.Total)
		assert.Equal(t, 1, s.Completed)
		assert.Equal(t, 25, s.CompletionRate)
		require.NotNil(t, s.MostUrgent)
		assert.Equal(t, "Problem set", s.MostUrgent.Title)
		assert.Equal(t, "Problem set", s.MostUrgentLabel)
		assert.Equal(t, map[Priority]int{PriorityHigh: 2, PriorityMedium: 1, PriorityLow: 1}, s.PriorityDistribution)
	})
}
