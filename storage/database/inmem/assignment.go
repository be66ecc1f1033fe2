package inmemdb

import (
	"context"

	"github.com/studyflow/studyflow/core/assignment"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context, userID string) ([]assignment.Assignment, error) {
	return repo.db.assignments.list(userID), nil
}

func (repo *assignmentRepository) GetAssignment(_ context.Context, userID, id string) (assignment.Assignment, error) {
	if a, ok := repo.db.assignments.get(userID, id); ok {
		return a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.assignments.insert(a.UserID, a.ID, a)
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if !repo.db.assignments.replace(a.UserID, a.ID, a) {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, userID, id string) error {
	if !repo.db.assignments.remove(userID, id) {
		return assignment.ErrNotFound
	}
	return nil
}
