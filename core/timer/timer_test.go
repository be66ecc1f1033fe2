package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testDurations = Durations{
	Work:           25 * time.Minute,
	ShortBreak:     5 * time.Minute,
	LongBreak:      15 * time.Minute,
	LongBreakEvery: 4,
}

func TestState_Cycle(t *testing.T) {
	s := NewState("u1")
	assert.Equal(t, IntervalWork, s.Interval(testDurations))

	wantBreaks := []Interval{IntervalShortBreak, IntervalShortBreak, IntervalShortBreak, IntervalLongBreak, IntervalShortBreak}
	for i, want := range wantBreaks {
		s.Complete() // work -> break
		assert.Equal(t, i+1, s.PomodoroCount)
		assert.False(t, s.IsWorkTime)
		assert.Equal(t, want, s.Interval(testDurations), "break after pomodoro %d", i+1)

		s.Complete() // break -> work
		assert.True(t, s.IsWorkTime)
		assert.Equal(t, i+1, s.PomodoroCount, "finishing a break is not a pomodoro")
	}
}

func TestState_Skip(t *testing.T) {
	s := NewState("u1")
	s.Skip()
	assert.Equal(t, 1, s.PomodoroCount)
	assert.False(t, s.IsWorkTime)

	s.Skip()
	assert.True(t, s.IsWorkTime)
	assert.Equal(t, 1, s.PomodoroCount)
}

func TestState_RecordProgress(t *testing.T) {
	s := NewState("u1")
	s.RecordProgress(90 * time.Second)
	assert.Equal(t, int64(90), s.TotalStudyTime)

	s.Complete()
	s.RecordProgress(5 * time.Minute)
	assert.Equal(t, int64(90), s.TotalStudyTime, "break time is not study time")
}

func TestState_Reset(t *testing.T) {
	s := State{UserID: "u1", PomodoroCount: 7, TotalStudyTime: 4000}
	s.Reset()
	assert.Equal(t, NewState("u1"), s)
}

func TestNewView(t *testing.T) {
	v := NewView(State{PomodoroCount: 4, TotalStudyTime: 3*3600 + 25*60}, testDurations)
	assert.Equal(t, IntervalLongBreak, v.Interval)
	assert.Equal(t, int64(900), v.IntervalLength)
	assert.Equal(t, "15:00", v.IntervalClock)
	assert.Equal(t, "3h 25m", v.TotalStudyTimeLabel)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 0.0, Progress(25*time.Minute, 25*time.Minute))
	assert.Equal(t, 20.0, Progress(25*time.Minute, 20*time.Minute))
	assert.Equal(t, 100.0, Progress(25*time.Minute, 0))
	assert.Equal(t, 0.0, Progress(0, 0))

	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "04:09", FormatClock(249))
	assert.Equal(t, "00:00", FormatClock(-3))

	assert.Equal(t, "0h 0m", FormatTotal(59))
	assert.Equal(t, "1h 1m", FormatTotal(3660))
}
