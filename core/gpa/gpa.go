package gpa

import "github.com/studyflow/studyflow/core"

// Calculate returns the credit weighted grade point average, rounded to 2 decimals.
// In progress courses (no grade) and courses without credits are skipped.
// Returns 0 when no course counts.
func Calculate(courses []Course) float64 {
	var totalPoints, totalCredits float64
	for _, c := range courses {
		points, ok := GradePoints(c.Grade)
		if !ok || c.Credits <= 0 {
			continue
		}
		totalPoints += points * c.Credits
		totalCredits += c.Credits
	}
	if totalCredits == 0 {
		return 0
	}
	return core.Round(totalPoints/totalCredits, 2)
}

type Summary struct {
	GPA         float64  `json:"gpa"`
	Credits     float64  `json:"credits"` // graded credits counted in the GPA
	CourseCount int      `json:"course_count"`
	GradedCount int      `json:"graded_count"`
	Courses     []Course `json:"courses"`
}

func Summarize(courses []Course) Summary {
	s := Summary{
		GPA:         Calculate(courses),
		CourseCount: len(courses),
		Courses:     courses,
	}
	for _, c := range courses {
		if _, ok := GradePoints(c.Grade); ok && c.Credits > 0 {
			s.Credits += c.Credits
			s.GradedCount++
		}
	}
	if s.Courses == nil {
		s.Courses = []Course{}
	}
	return s
}
