package firestoredb

import (
	"context"

	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
)

type gradeRepository struct {
	db  *DB
	col ownedCollection[predictor.Assessment]
}

var _ predictor.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) predictor.Repository {
	return &gradeRepository{
		db:  db,
		col: ownedCollection[predictor.Assessment]{db: db, name: assessmentsCollection, notFound: predictor.ErrNotFound},
	}
}

func (repo *gradeRepository) QueryAssessments(ctx context.Context, userID string) ([]predictor.Assessment, error) {
	return repo.col.list(ctx, userID)
}

func (repo *gradeRepository) GetAssessment(ctx context.Context, userID, id string) (predictor.Assessment, error) {
	return repo.col.get(ctx, userID, id)
}

func (repo *gradeRepository) CreateAssessment(ctx context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	return a, repo.col.create(ctx, a.UserID, a.ID, a)
}

func (repo *gradeRepository) UpdateAssessment(ctx context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	return a, repo.col.replace(ctx, a.UserID, a.ID, a)
}

func (repo *gradeRepository) DeleteAssessment(ctx context.Context, userID, id string) error {
	return repo.col.remove(ctx, userID, id)
}

func (repo *gradeRepository) GetTarget(ctx context.Context, userID string) (predictor.Target, error) {
	return getSetting[predictor.Target](ctx, repo.db, userID, gradeTargetDoc, predictor.ErrTargetNotSet)
}

func (repo *gradeRepository) SaveTarget(ctx context.Context, t predictor.Target) (predictor.Target, error) {
	return t, setSetting(ctx, repo.db, t.UserID, gradeTargetDoc, t)
}

type courseRepository struct {
	col ownedCollection[gpa.Course]
}

var _ gpa.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) gpa.Repository {
	return &courseRepository{col: ownedCollection[gpa.Course]{db: db, name: coursesCollection, notFound: gpa.ErrNotFound}}
}

func (repo *courseRepository) QueryCourses(ctx context.Context, userID string) ([]gpa.Course, error) {
	return repo.col.list(ctx, userID)
}

func (repo *courseRepository) GetCourse(ctx context.Context, userID, id string) (gpa.Course, error) {
	return repo.col.get(ctx, userID, id)
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c gpa.Course) (gpa.Course, error) {
	return c, repo.col.create(ctx, c.UserID, c.ID, c)
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c gpa.Course) (gpa.Course, error) {
	return c, repo.col.replace(ctx, c.UserID, c.ID, c)
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, userID, id string) error {
	return repo.col.remove(ctx, userID, id)
}

type assignmentRepository struct {
	col ownedCollection[assignment.Assignment]
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{col: ownedCollection[assignment.Assignment]{db: db, name: assignmentsCollection, notFound: assignment.ErrNotFound}}
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, userID string) ([]assignment.Assignment, error) {
	return repo.col.list(ctx, userID)
}

func (repo *assignmentRepository) GetAssignment(ctx context.Context, userID, id string) (assignment.Assignment, error) {
	return repo.col.get(ctx, userID, id)
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return a, repo.col.create(ctx, a.UserID, a.ID, a)
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	return a, repo.col.replace(ctx, a.UserID, a.ID, a)
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, userID, id string) error {
	return repo.col.remove(ctx, userID, id)
}

type sessionRepository struct {
	col ownedCollection[study.Session]
}

var _ study.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) study.Repository {
	return &sessionRepository{col: ownedCollection[study.Session]{db: db, name: sessionsCollection, notFound: study.ErrNotFound}}
}

func (repo *sessionRepository) QuerySessions(ctx context.Context, userID string) ([]study.Session, error) {
	return repo.col.list(ctx, userID)
}

func (repo *sessionRepository) GetSession(ctx context.Context, userID, id string) (study.Session, error) {
	return repo.col.get(ctx, userID, id)
}

func (repo *sessionRepository) CreateSession(ctx context.Context, s study.Session) (study.Session, error) {
	return s, repo.col.create(ctx, s.UserID, s.ID, s)
}

func (repo *sessionRepository) UpdateSession(ctx context.Context, s study.Session) (study.Session, error) {
	return s, repo.col.replace(ctx, s.UserID, s.ID, s)
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, userID, id string) error {
	return repo.col.remove(ctx, userID, id)
}

type timerRepository struct {
	db *DB
}

var _ timer.Repository = (*timerRepository)(nil)

func NewTimerRepository(db *DB) timer.Repository {
	return &timerRepository{db: db}
}

func (repo *timerRepository) GetState(ctx context.Context, userID string) (timer.State, error) {
	return getSetting[timer.State](ctx, repo.db, userID, timerDoc, timer.ErrNotFound)
}

func (repo *timerRepository) SaveState(ctx context.Context, s timer.State) (timer.State, error) {
	return s, setSetting(ctx, repo.db, s.UserID, timerDoc, s)
}
