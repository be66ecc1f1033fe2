package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/gpa"
)

const courseColumns = "id, user_id, name, credits, grade, created_at, updated_at"

type courseRepository struct {
	db *sqlx.DB
}

var _ gpa.Repository = (*courseRepository)(nil)

func NewCourseRepository(db *sqlx.DB) gpa.Repository {
	return &courseRepository{db: db}
}

func normalizeCourse(c gpa.Course) gpa.Course {
	c.CreatedAt = utc(c.CreatedAt)
	c.UpdatedAt = utc(c.UpdatedAt)
	return c
}

func (repo *courseRepository) QueryCourses(ctx context.Context, userID string) ([]gpa.Course, error) {
	q := repo.db.Rebind("SELECT " + courseColumns + " FROM courses WHERE user_id = ? ORDER BY created_at, id")
	courses := make([]gpa.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	for i := range courses {
		courses[i] = normalizeCourse(courses[i])
	}
	return courses, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, userID, id string) (gpa.Course, error) {
	q := repo.db.Rebind("SELECT " + courseColumns + " FROM courses WHERE user_id = ? AND id = ?")
	var c gpa.Course
	if err := repo.db.GetContext(ctx, &c, q, userID, id); err != nil {
		return gpa.Course{}, trapNoRowsErr(err, gpa.ErrNotFound, "getting course")
	}
	return normalizeCourse(c), nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, c gpa.Course) (gpa.Course, error) {
	q := `INSERT INTO courses (` + courseColumns + `)
		VALUES (:id, :user_id, :name, :credits, :grade, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, c); err != nil {
		return gpa.Course{}, errors.Wrap(err, "inserting course")
	}
	return c, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, c gpa.Course) (gpa.Course, error) {
	q := `UPDATE courses SET name = :name, credits = :credits, grade = :grade, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`
	if err := execAffecting(ctx, repo.db, gpa.ErrNotFound, "updating course", q, c); err != nil {
		return gpa.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, repo.db, "courses", userID, id, gpa.ErrNotFound)
}
