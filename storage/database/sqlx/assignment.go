package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/assignment"
)

const assignmentColumns = "id, user_id, title, description, due_date, priority, completed, created_at, updated_at"

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func normalizeAssignment(a assignment.Assignment) assignment.Assignment {
	a.DueDate = utc(a.DueDate)
	a.CreatedAt = utc(a.CreatedAt)
	a.UpdatedAt = utc(a.UpdatedAt)
	return a
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, userID string) ([]assignment.Assignment, error) {
	q := repo.db.Rebind("SELECT " + assignmentColumns + " FROM assignments WHERE user_id = ? ORDER BY created_at, id")
	assignments := make([]assignment.Assignment, 0)
	if err := repo.db.SelectContext(ctx, &assignments, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	for i := range assignments {
		assignments[i] = normalizeAssignment(assignments[i])
	}
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignment(ctx context.Context, userID, id string) (assignment.Assignment, error) {
	q := repo.db.Rebind("SELECT " + assignmentColumns + " FROM assignments WHERE user_id = ? AND id = ?")
	var a assignment.Assignment
	if err := repo.db.GetContext(ctx, &a, q, userID, id); err != nil {
		return assignment.Assignment{}, trapNoRowsErr(err, assignment.ErrNotFound, "getting assignment")
	}
	return normalizeAssignment(a), nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := `INSERT INTO assignments (` + assignmentColumns + `)
		VALUES (:id, :user_id, :title, :description, :due_date, :priority, :completed, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, a); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	q := `UPDATE assignments
		SET title = :title, description = :description, due_date = :due_date, priority = :priority,
			completed = :completed, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`
	if err := execAffecting(ctx, repo.db, assignment.ErrNotFound, "updating assignment", q, a); err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, repo.db, "assignments", userID, id, assignment.ErrNotFound)
}
