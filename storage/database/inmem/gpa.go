package inmemdb

import (
	"context"

	"github.com/studyflow/studyflow/core/gpa"
)

type courseRepository struct {
	db *DB
}

var _ gpa.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *DB) gpa.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) QueryCourses(_ context.Context, userID string) ([]gpa.Course, error) {
	return repo.db.courses.list(userID), nil
}

func (repo *courseRepository) GetCourse(_ context.Context, userID, id string) (gpa.Course, error) {
	if c, ok := repo.db.courses.get(userID, id); ok {
		return c, nil
	}
	return gpa.Course{}, gpa.ErrNotFound
}

func (repo *courseRepository) CreateCourse(_ context.Context, c gpa.Course) (gpa.Course, error) {
	repo.db.courses.insert(c.UserID, c.ID, c)
	return c, nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c gpa.Course) (gpa.Course, error) {
	if !repo.db.courses.replace(c.UserID, c.ID, c) {
		return gpa.Course{}, gpa.ErrNotFound
	}
	return c, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, userID, id string) error {
	if !repo.db.courses.remove(userID, id) {
		return gpa.ErrNotFound
	}
	return nil
}
