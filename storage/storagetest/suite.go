// Package storagetest holds the behaviour every repository implementation must share.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
	"github.com/studyflow/studyflow/core/user"
	"github.com/studyflow/studyflow/testutil"
)

type Repos struct {
	Users       user.Repository
	Grades      predictor.Repository
	Courses     gpa.Repository
	Assignments assignment.Repository
	Sessions    study.Repository
	Timers      timer.Repository
}

// Run runs the whole suite, with fresh repositories for every test.
func Run(t *testing.T, newRepos func(t *testing.T) Repos) {
	t.Run("users", func(t *testing.T) { testUsers(t, newRepos(t)) })
	t.Run("grades", func(t *testing.T) { testGrades(t, newRepos(t)) })
	t.Run("courses", func(t *testing.T) { testCourses(t, newRepos(t)) })
	t.Run("assignments", func(t *testing.T) { testAssignments(t, newRepos(t)) })
	t.Run("sessions", func(t *testing.T) { testSessions(t, newRepos(t)) })
	t.Run("timers", func(t *testing.T) { testTimers(t, newRepos(t)) })
	t.Run("cascade", func(t *testing.T) { testCascade(t, newRepos(t)) })
}

func ts(minutes int) time.Time {
	return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func testUsers(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Users

	jane := testutil.CreateUser(t, repo, "Jane Doe", "jane", "jane@test.test", "Pwd#2024x", []string{user.RoleStudent}, true, ts(0))
	admin := testutil.CreateUser(t, repo, "Ada Admin", "ada", "", "", []string{user.RoleAdmin}, true, ts(1))
	idle := testutil.CreateUser(t, repo, "Idle Student", "", "idle@test.test", "", []string{user.RoleStudent}, false, ts(2))

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, jane.ID)
		require.NoError(t, err)
		assert.Equal(t, jane, got)
		assert.NoError(t, got.CheckPassword("Pwd#2024x"))

		got, err = repo.GetUserByUsernameOrEmail(ctx, "idle@test.test")
		require.NoError(t, err)
		assert.Equal(t, idle.ID, got.ID)

		got, err = repo.GetUserByUsernameOrEmail(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)

		got, err = repo.GetUserByEmail(ctx, "jane@test.test")
		require.NoError(t, err)
		assert.Equal(t, jane.ID, got.ID)

		_, err = repo.GetUserByID(ctx, uuid.NewString())
		assert.True(t, core.IsNotFound(err))
		_, err = repo.GetUserByEmail(ctx, "")
		assert.True(t, core.IsNotFound(err), "users without email are not found by the empty email")
		_, err = repo.GetUserByUsernameOrEmail(ctx, "")
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("uniqueness", func(t *testing.T) {
		assert.Equal(t, user.ErrUsernameExists, repo.CheckUniqueness(ctx, "jane", "other@test.test"))
		assert.Equal(t, user.ErrEmailExists, repo.CheckUniqueness(ctx, "other", "jane@test.test"))
		assert.NoError(t, repo.CheckUniqueness(ctx, "jane", "jane@test.test", jane))
		assert.NoError(t, repo.CheckUniqueness(ctx, "", ""), "unset fields never collide")
		assert.NoError(t, repo.CheckUniqueness(ctx, "newbie", "newbie@test.test"))
	})

	t.Run("filter", func(t *testing.T) {
		ids := func(users []user.User) []string {
			res := make([]string, 0, len(users))
			for _, u := range users {
				res = append(res, u.ID)
			}
			return res
		}
		active, inactive := true, false

		got, err := repo.FilterUsers(ctx, user.QueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{jane.ID, admin.ID, idle.ID}, ids(got))

		got, err = repo.FilterUsers(ctx, user.QueryFilter{Search: "DOE"})
		require.NoError(t, err)
		assert.Equal(t, []string{jane.ID}, ids(got))

		got, err = repo.FilterUsers(ctx, user.QueryFilter{Roles: []string{user.RoleStudent}})
		require.NoError(t, err)
		assert.Equal(t, []string{jane.ID, idle.ID}, ids(got))

		got, err = repo.FilterUsers(ctx, user.QueryFilter{Roles: []string{user.RoleStudent}, IsActive: &inactive})
		require.NoError(t, err)
		assert.Equal(t, []string{idle.ID}, ids(got))

		got, err = repo.FilterUsers(ctx, user.QueryFilter{IsActive: &active}, core.DBOrdering{Field: "name", Ascending: true})
		require.NoError(t, err)
		assert.Equal(t, []string{admin.ID, jane.ID}, ids(got))

		got, err = repo.FilterUsers(ctx, user.QueryFilter{}, core.DBOrdering{Field: "created_at"})
		require.NoError(t, err)
		assert.Equal(t, []string{idle.ID, admin.ID, jane.ID}, ids(got))
	})

	t.Run("update", func(t *testing.T) {
		upd := jane
		upd.Name = "Jane Roe"
		upd.Email = ""
		upd.LastLogin = ts(10)
		upd.UpdatedAt = ts(10)
		_, err := repo.UpdateUser(ctx, upd)
		require.NoError(t, err)

		got, err := repo.GetUserByID(ctx, jane.ID)
		require.NoError(t, err)
		assert.Equal(t, upd, got)

		_, err = repo.UpdateUser(ctx, user.User{ID: uuid.NewString()})
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteUsersByID(ctx, admin.ID, idle.ID))
		got, err := repo.FilterUsers(ctx, user.QueryFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.NoError(t, repo.DeleteUsersByID(ctx))
	})
}

func testGrades(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Grades
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)
	other := testutil.CreateUser(t, repos.Users, "Other", "other", "", "", nil, true)

	mid := predictor.Assessment{ID: uuid.NewString(), UserID: owner.ID, Name: "Midterm", Weight: 30, Score: 80, MaxScore: 100, CreatedAt: ts(0), UpdatedAt: ts(0)}
	quiz := predictor.Assessment{ID: uuid.NewString(), UserID: owner.ID, Name: "Quiz", Weight: 10, Score: 9, MaxScore: 10, CreatedAt: ts(1), UpdatedAt: ts(1)}
	for _, a := range []predictor.Assessment{mid, quiz} {
		_, err := repo.CreateAssessment(ctx, a)
		require.NoError(t, err)
	}

	got, err := repo.QueryAssessments(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []predictor.Assessment{mid, quiz}, got)

	got, err = repo.QueryAssessments(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = repo.GetAssessment(ctx, other.ID, mid.ID)
	assert.Equal(t, predictor.ErrNotFound, err, "rows are scoped to their owner")

	mid.Score = 95.5
	mid.UpdatedAt = ts(5)
	_, err = repo.UpdateAssessment(ctx, mid)
	require.NoError(t, err)
	a, err := repo.GetAssessment(ctx, owner.ID, mid.ID)
	require.NoError(t, err)
	assert.Equal(t, mid, a)

	stolen := quiz
	stolen.UserID = other.ID
	_, err = repo.UpdateAssessment(ctx, stolen)
	assert.Equal(t, predictor.ErrNotFound, err)

	assert.Equal(t, predictor.ErrNotFound, repo.DeleteAssessment(ctx, other.ID, quiz.ID))
	require.NoError(t, repo.DeleteAssessment(ctx, owner.ID, quiz.ID))
	assert.Equal(t, predictor.ErrNotFound, repo.DeleteAssessment(ctx, owner.ID, quiz.ID))

	_, err = repo.GetTarget(ctx, owner.ID)
	assert.Equal(t, predictor.ErrTargetNotSet, err)

	target := predictor.Target{UserID: owner.ID, Target: 85, UpdatedAt: ts(6)}
	_, err = repo.SaveTarget(ctx, target)
	require.NoError(t, err)
	target.Target = 92.5
	target.UpdatedAt = ts(7)
	_, err = repo.SaveTarget(ctx, target)
	require.NoError(t, err)

	gotTarget, err := repo.GetTarget(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, target, gotTarget)
}

func testCourses(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Courses
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)

	calc := gpa.Course{ID: uuid.NewString(), UserID: owner.ID, Name: "Calculus", Credits: 4, Grade: "A-", CreatedAt: ts(0), UpdatedAt: ts(0)}
	art := gpa.Course{ID: uuid.NewString(), UserID: owner.ID, Name: "Art", Credits: 2, CreatedAt: ts(1), UpdatedAt: ts(1)}
	for _, c := range []gpa.Course{calc, art} {
		_, err := repo.CreateCourse(ctx, c)
		require.NoError(t, err)
	}

	got, err := repo.QueryCourses(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []gpa.Course{calc, art}, got)

	art.Grade = "B+"
	art.UpdatedAt = ts(3)
	_, err = repo.UpdateCourse(ctx, art)
	require.NoError(t, err)
	c, err := repo.GetCourse(ctx, owner.ID, art.ID)
	require.NoError(t, err)
	assert.Equal(t, art, c)

	require.NoError(t, repo.DeleteCourse(ctx, owner.ID, calc.ID))
	_, err = repo.GetCourse(ctx, owner.ID, calc.ID)
	assert.Equal(t, gpa.ErrNotFound, err)
}

func testAssignments(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Assignments
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)

	essay := assignment.Assignment{
		ID: uuid.NewString(), UserID: owner.ID, Title: "Essay", Description: "2000 words",
		DueDate: day(20), Priority: assignment.PriorityHigh, CreatedAt: ts(0), UpdatedAt: ts(0),
	}
	lab := assignment.Assignment{
		ID: uuid.NewString(), UserID: owner.ID, Title: "Lab report",
		DueDate: day(10), Priority: assignment.PriorityLow, CreatedAt: ts(1), UpdatedAt: ts(1),
	}
	for _, a := range []assignment.Assignment{essay, lab} {
		_, err := repo.CreateAssignment(ctx, a)
		require.NoError(t, err)
	}

	got, err := repo.QueryAssignments(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []assignment.Assignment{essay, lab}, got)

	lab.Completed = true
	lab.DueDate = day(12)
	lab.UpdatedAt = ts(4)
	_, err = repo.UpdateAssignment(ctx, lab)
	require.NoError(t, err)
	a, err := repo.GetAssignment(ctx, owner.ID, lab.ID)
	require.NoError(t, err)
	assert.Equal(t, lab, a)

	require.NoError(t, repo.DeleteAssignment(ctx, owner.ID, essay.ID))
	assert.Equal(t, assignment.ErrNotFound, repo.DeleteAssignment(ctx, owner.ID, essay.ID))
}

func testSessions(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Sessions
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)

	math := study.Session{
		ID: uuid.NewString(), UserID: owner.ID, Subject: "Math", Duration: 50, Date: day(3),
		Notes: "chapter 4", Productivity: study.ProductivityHigh, CreatedAt: ts(0), UpdatedAt: ts(0),
	}
	_, err := repo.CreateSession(ctx, math)
	require.NoError(t, err)

	got, err := repo.QuerySessions(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []study.Session{math}, got)

	math.Duration = 75
	math.Productivity = study.ProductivityLow
	math.UpdatedAt = ts(2)
	_, err = repo.UpdateSession(ctx, math)
	require.NoError(t, err)
	s, err := repo.GetSession(ctx, owner.ID, math.ID)
	require.NoError(t, err)
	assert.Equal(t, math, s)

	require.NoError(t, repo.DeleteSession(ctx, owner.ID, math.ID))
	_, err = repo.GetSession(ctx, owner.ID, math.ID)
	assert.Equal(t, study.ErrNotFound, err)
}

func testTimers(t *testing.T, repos Repos) {
	ctx := context.Background()
	repo := repos.Timers
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)

	_, err := repo.GetState(ctx, owner.ID)
	assert.Equal(t, timer.ErrNotFound, err)

	state := timer.State{UserID: owner.ID, PomodoroCount: 1, TotalStudyTime: 1500, IsWorkTime: false, UpdatedAt: ts(0)}
	_, err = repo.SaveState(ctx, state)
	require.NoError(t, err)

	state.IsWorkTime = true
	state.UpdatedAt = ts(5)
	_, err = repo.SaveState(ctx, state)
	require.NoError(t, err)

	got, err := repo.GetState(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func testCascade(t *testing.T, repos Repos) {
	ctx := context.Background()
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "", "", nil, true)
	other := testutil.CreateUser(t, repos.Users, "Other", "other", "", "", nil, true)

	for _, uid := range []string{owner.ID, other.ID} {
		_, err := repos.Grades.CreateAssessment(ctx, predictor.Assessment{ID: uuid.NewString(), UserID: uid, Name: "Final", Weight: 50, MaxScore: 100, CreatedAt: ts(0), UpdatedAt: ts(0)})
		require.NoError(t, err)
		_, err = repos.Courses.CreateCourse(ctx, gpa.Course{ID: uuid.NewString(), UserID: uid, Name: "Calculus", Credits: 4, CreatedAt: ts(0), UpdatedAt: ts(0)})
		require.NoError(t, err)
		_, err = repos.Assignments.CreateAssignment(ctx, assignment.Assignment{ID: uuid.NewString(), UserID: uid, Title: "Essay", DueDate: day(2), Priority: assignment.PriorityLow, CreatedAt: ts(0), UpdatedAt: ts(0)})
		require.NoError(t, err)
		_, err = repos.Sessions.CreateSession(ctx, study.Session{ID: uuid.NewString(), UserID: uid, Subject: "Math", Duration: 30, Date: day(1), Productivity: study.ProductivityLow, CreatedAt: ts(0), UpdatedAt: ts(0)})
		require.NoError(t, err)
		_, err = repos.Timers.SaveState(ctx, timer.State{UserID: uid, IsWorkTime: true, UpdatedAt: ts(0)})
		require.NoError(t, err)
	}

	require.NoError(t, repos.Users.DeleteUsersByID(ctx, owner.ID))

	assessments, err := repos.Grades.QueryAssessments(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, assessments, "deleting a user deletes their data")
	courses, err := repos.Courses.QueryCourses(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, courses)
	assignments, err := repos.Assignments.QueryAssignments(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
	sessions, err := repos.Sessions.QuerySessions(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	_, err = repos.Timers.GetState(ctx, owner.ID)
	assert.Equal(t, timer.ErrNotFound, err)
	_, err = repos.Users.GetUserByID(ctx, owner.ID)
	assert.Equal(t, user.ErrNotFound, err)

	// other users keep their data
	assessments, err = repos.Grades.QueryAssessments(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, assessments, 1)
	sessions, err = repos.Sessions.QuerySessions(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	_, err = repos.Timers.GetState(ctx, other.ID)
	assert.NoError(t, err)
}
