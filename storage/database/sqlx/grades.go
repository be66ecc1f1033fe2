package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/predictor"
)

const assessmentColumns = "id, user_id, name, weight, score, max_score, created_at, updated_at"

type gradeRepository struct {
	db *sqlx.DB
}

var _ predictor.Repository = (*gradeRepository)(nil)

func NewGradeRepository(db *sqlx.DB) predictor.Repository {
	return &gradeRepository{db: db}
}

func normalizeAssessment(a predictor.Assessment) predictor.Assessment {
	a.CreatedAt = utc(a.CreatedAt)
	a.UpdatedAt = utc(a.UpdatedAt)
	return a
}

func (repo *gradeRepository) QueryAssessments(ctx context.Context, userID string) ([]predictor.Assessment, error) {
	q := repo.db.Rebind("SELECT " + assessmentColumns + " FROM assessments WHERE user_id = ? ORDER BY created_at, id")
	assessments := make([]predictor.Assessment, 0)
	if err := repo.db.SelectContext(ctx, &assessments, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying assessments")
	}
	for i := range assessments {
		assessments[i] = normalizeAssessment(assessments[i])
	}
	return assessments, nil
}

func (repo *gradeRepository) GetAssessment(ctx context.Context, userID, id string) (predictor.Assessment, error) {
	q := repo.db.Rebind("SELECT " + assessmentColumns + " FROM assessments WHERE user_id = ? AND id = ?")
	var a predictor.Assessment
	if err := repo.db.GetContext(ctx, &a, q, userID, id); err != nil {
		return predictor.Assessment{}, trapNoRowsErr(err, predictor.ErrNotFound, "getting assessment")
	}
	return normalizeAssessment(a), nil
}

func (repo *gradeRepository) CreateAssessment(ctx context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	q := `INSERT INTO assessments (` + assessmentColumns + `)
		VALUES (:id, :user_id, :name, :weight, :score, :max_score, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, a); err != nil {
		return predictor.Assessment{}, errors.Wrap(err, "inserting assessment")
	}
	return a, nil
}

func (repo *gradeRepository) UpdateAssessment(ctx context.Context, a predictor.Assessment) (predictor.Assessment, error) {
	q := `UPDATE assessments
		SET name = :name, weight = :weight, score = :score, max_score = :max_score, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`
	if err := execAffecting(ctx, repo.db, predictor.ErrNotFound, "updating assessment", q, a); err != nil {
		return predictor.Assessment{}, err
	}
	return a, nil
}

func (repo *gradeRepository) DeleteAssessment(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, repo.db, "assessments", userID, id, predictor.ErrNotFound)
}

func (repo *gradeRepository) GetTarget(ctx context.Context, userID string) (predictor.Target, error) {
	q := repo.db.Rebind("SELECT user_id, target, updated_at FROM grade_targets WHERE user_id = ?")
	var t predictor.Target
	if err := repo.db.GetContext(ctx, &t, q, userID); err != nil {
		return predictor.Target{}, trapNoRowsErr(err, predictor.ErrTargetNotSet, "getting target")
	}
	t.UpdatedAt = utc(t.UpdatedAt)
	return t, nil
}

func (repo *gradeRepository) SaveTarget(ctx context.Context, t predictor.Target) (predictor.Target, error) {
	q := `INSERT INTO grade_targets (user_id, target, updated_at) VALUES (:user_id, :target, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET target = excluded.target, updated_at = excluded.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, t); err != nil {
		return predictor.Target{}, errors.Wrap(err, "saving target")
	}
	return t, nil
}
