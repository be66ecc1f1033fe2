// Package timer implements the pomodoro study timer: work intervals separated
// by short breaks, with a long break after every few completed pomodoros.
//
// The ticking itself happens client side; the server keeps the state between
// intervals and the study time accumulated during work intervals.
package timer

import (
	"fmt"
	"time"

	"github.com/studyflow/studyflow/core"
)

type Interval string

const (
	IntervalWork       Interval = "work"
	IntervalShortBreak Interval = "short_break"
	IntervalLongBreak  Interval = "long_break"
)

// Durations configures the interval lengths.
type Durations struct {
	Work           time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int // completed pomodoros between long breaks
}

func DurationsFromConfig(conf core.TimerConfig) Durations {
	return Durations{
		Work:           conf.Work,
		ShortBreak:     conf.ShortBreak,
		LongBreak:      conf.LongBreak,
		LongBreakEvery: conf.LongBreakEvery,
	}
}

// State is the persisted timer of a user.
type State struct {
	UserID         string    `json:"-" db:"user_id" firestore:"user_id"`
	PomodoroCount  int       `json:"pomodoro_count" db:"pomodoro_count" firestore:"pomodoro_count"`
	TotalStudyTime int64     `json:"total_study_time" db:"total_study_time" firestore:"total_study_time"` // seconds
	IsWorkTime     bool      `json:"is_work_time" db:"is_work_time" firestore:"is_work_time"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC
}

// NewState returns the state of a timer that never ran.
func NewState(userID string) State {
	return State{UserID: userID, IsWorkTime: true}
}

// Interval returns the kind of the current interval. A break following the
// n-th pomodoro is long when n is a multiple of LongBreakEvery.
func (s State) Interval(d Durations) Interval {
	if s.IsWorkTime {
		return IntervalWork
	}
	if d.LongBreakEvery > 0 && s.PomodoroCount > 0 && s.PomodoroCount%d.LongBreakEvery == 0 {
		return IntervalLongBreak
	}
	return IntervalShortBreak
}

func (d Durations) Length(i Interval) time.Duration {
	switch i {
	case IntervalShortBreak:
		return d.ShortBreak
	case IntervalLongBreak:
		return d.LongBreak
	}
	return d.Work
}

// RecordProgress adds elapsed time to the study total. Break time is not study time.
func (s *State) RecordProgress(elapsed time.Duration) {
	if s.IsWorkTime {
		s.TotalStudyTime += int64(elapsed / time.Second)
	}
}

// Complete ends the current interval: a finished work interval counts as a
// pomodoro and starts a break, a finished break starts a work interval.
func (s *State) Complete() {
	if s.IsWorkTime {
		s.PomodoroCount++
		s.IsWorkTime = false
		return
	}
	s.IsWorkTime = true
}

// Skip ends the current interval early, with the same effect as Complete.
func (s *State) Skip() {
	s.Complete()
}

func (s *State) Reset() {
	*s = NewState(s.UserID)
}

// View is a State with its derived, display ready values.
type View struct {
	State
	Interval            Interval `json:"interval"`
	IntervalLength      int64    `json:"interval_length"` // seconds
	IntervalClock       string   `json:"interval_clock"`
	TotalStudyTimeLabel string   `json:"total_study_time_label"`
}

func NewView(s State, d Durations) View {
	i := s.Interval(d)
	length := d.Length(i)
	return View{
		State:               s,
		Interval:            i,
		IntervalLength:      int64(length / time.Second),
		IntervalClock:       FormatClock(int64(length / time.Second)),
		TotalStudyTimeLabel: FormatTotal(s.TotalStudyTime),
	}
}

// Progress returns how much of an interval of length total has elapsed, in percent.
func Progress(total, left time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	if left < 0 {
		left = 0
	}
	return float64(total-left) / float64(total) * 100
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatTotal renders seconds as "Xh Ym".
func FormatTotal(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}
