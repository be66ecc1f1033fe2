package inmemdb

import (
	"context"

	"github.com/studyflow/studyflow/core/predictor"
)

type gradeRepository struct {
	db *DB
}

var _ predictor.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *DB) predictor.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryAssessments(_ context.Context, userID string) ([]predictor.Assessment, error) {
	return repo.db.assessments.list(userID), nil
}

func (repo *gradeRepository) GetAssessment(_ context.Context, userID, id string) (predictor.Assessment, error) {
	if a, ok := repo.db.assessments.get(userID, id); ok {
		return a, nil
	}
	return predictor.Assessment{}, predictor.ErrNotFound
}

func (repo *gradeRepository) CreateAssessment(_ context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	repo.db.assessments.insert(a.UserID, a.ID, a)
	return a, nil
}

func (repo *gradeRepository) UpdateAssessment(_ context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	if !repo.db.assessments.replace(a.UserID, a.ID, a) {
		return predictor.Assessment{}, predictor.ErrNotFound
	}
	return a, nil
}

func (repo *gradeRepository) DeleteAssessment(_ context.Context, userID, id string) error {
	if !repo.db.assessments.remove(userID, id) {
		return predictor.ErrNotFound
	}
	return nil
}

func (repo *gradeRepository) GetTarget(_ context.Context, userID string) (predictor.Target, error) {
	if t, ok := repo.db.targets.get(userID); ok {
		return t, nil
	}
	return predictor.Target{}, predictor.ErrTargetNotSet
}

func (repo *gradeRepository) SaveTarget(_ context.Context, t predictor.Target) (predictor.Target, error) {
	repo.db.targets.put(t.UserID, t)
	return t, nil
}
