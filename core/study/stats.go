package study

import (
	"fmt"
	"sort"
)

const notAvailable = "N/A"

var productivityScores = map[Productivity]float64{
	ProductivityHigh:   3,
	ProductivityMedium: 2,
	ProductivityLow:    1,
}

// Sort orders sessions most recent first. The sort is done in place.
func Sort(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// FormatDuration renders minutes as "1h 30m", or "45m" under an hour.
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// MostStudiedSubject returns the subject with the most minutes logged.
// Ties go to the subject met first in sessions.
func MostStudiedSubject(sessions []Session) string {
	if len(sessions) == 0 {
		return notAvailable
	}
	totals := make(map[string]int)
	order := make([]string, 0)
	for _, s := range sessions {
		if _, ok := totals[s.Subject]; !ok {
			order = append(order, s.Subject)
		}
		totals[s.Subject] += s.Duration
	}

	best := order[0]
	for _, subject := range order[1:] {
		if totals[subject] > totals[best] {
			best = subject
		}
	}
	return best
}

// AverageProductivity buckets the mean productivity score (High 3, Medium 2, Low 1).
func AverageProductivity(sessions []Session) string {
	if len(sessions) == 0 {
		return notAvailable
	}
	var sum float64
	for _, s := range sessions {
		sum += productivityScores[s.Productivity]
	}
	avg := sum / float64(len(sessions))
	switch {
	case avg >= 2.5:
		return string(ProductivityHigh)
	case avg >= 1.5:
		return string(ProductivityMedium)
	}
	return string(ProductivityLow)
}

type Stats struct {
	SessionCount        int    `json:"session_count"`
	TotalMinutes        int    `json:"total_minutes"`
	TotalTime           string `json:"total_time"`
	MostStudiedSubject  string `json:"most_studied_subject"`
	AverageProductivity string `json:"average_productivity"`
}

func ComputeStats(sessions []Session) Stats {
	s := Stats{
		SessionCount:        len(sessions),
		MostStudiedSubject:  MostStudiedSubject(sessions),
		AverageProductivity: AverageProductivity(sessions),
	}
	for _, sess := range sessions {
		s.TotalMinutes += sess.Duration
	}
	s.TotalTime = FormatDuration(s.TotalMinutes)
	return s
}
