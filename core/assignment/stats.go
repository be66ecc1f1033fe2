package assignment

import (
	"math"
	"sort"
)

const (
	noAssignmentsLabel = "N/A"
	noUrgentLabel      = "No urgent assignments"
)

// Sort orders assignments for display: incomplete first, then by due date,
// then by creation. The sort is done in place.
func Sort(assignments []Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

type Stats struct {
	Total                int              `json:"total"`
	Completed            int              `json:"completed"`
	CompletionRate       int              `json:"completion_rate"` // percent
	MostUrgent           *Assignment      `json:"most_urgent"`
	MostUrgentLabel      string           `json:"most_urgent_label"`
	PriorityDistribution map[Priority]int `json:"priority_distribution"`
}

// CompletionRate returns the rounded percentage of completed assignments, 0 when there are none.
func CompletionRate(assignments []Assignment) int {
	if len(assignments) == 0 {
		return 0
	}
	var completed int
	for _, a := range assignments {
		if a.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(assignments)) * 100))
}

// MostUrgent returns the incomplete assignment due first, or false if all are complete.
func MostUrgent(assignments []Assignment) (Assignment, bool) {
	var (
		urgent Assignment
		found  bool
	)
	for _, a := range assignments {
		if a.Completed {
			continue
		}
		if !found || a.DueDate.Before(urgent.DueDate) {
			urgent = a
			found = true
		}
	}
	return urgent, found
}

func PriorityDistribution(assignments []Assignment) map[Priority]int {
	dist := make(map[Priority]int, len(Priorities))
	for _, p := range Priorities {
		dist[p] = 0
	}
	for _, a := range assignments {
		dist[a.Priority]++
	}
	return dist
}

func ComputeStats(assignments []Assignment) Stats {
	s := Stats{
		Total:                len(assignments),
		CompletionRate:       CompletionRate(assignments),
		PriorityDistribution: PriorityDistribution(assignments),
	}
	for _, a := range assignments {
		if a.Completed {
			s.Completed++
		}
	}

	switch urgent, ok := MostUrgent(assignments); {
	case len(assignments) == 0:
		s.MostUrgentLabel = noAssignmentsLabel
	case !ok:
		s.MostUrgentLabel = noUrgentLabel
	default:
		s.MostUrgent = &urgent
		s.MostUrgentLabel = urgent.Title
	}
	return s
}
