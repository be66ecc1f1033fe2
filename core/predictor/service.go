package predictor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/grade"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound       = core.NewNotFoundError("assessment not found")
	ErrTargetNotSet   = core.NewNotFoundError("target grade not set")
	errScoreAboveMax  = core.NewValidationError(nil, core.FieldError{Field: "score", Error: "score cannot exceed max_score"})
	errInvalidRecords = errors.New("invalid records")
)

type (
	Repository interface {
		// QueryAssessments returns the user's assessments in creation order.
		QueryAssessments(ctx context.Context, userID string) ([]Assessment, error)
		GetAssessment(ctx context.Context, userID, id string) (Assessment, error)
		CreateAssessment(ctx context.Context, a Assessment) (Assessment, error)
		UpdateAssessment(ctx context.Context, a Assessment) (Assessment, error)
		DeleteAssessment(ctx context.Context, userID, id string) error
		// GetTarget returns ErrTargetNotSet when the user never set a target.
		GetTarget(ctx context.Context, userID string) (Target, error)
		SaveTarget(ctx context.Context, t Target) (Target, error)
	}

	Service interface {
		List(ctx context.Context, userID string) ([]Assessment, error)
		Get(ctx context.Context, userID, id string) (Assessment, error)
		Create(ctx context.Context, userID string, na NewAssessment) (Assessment, error)
		Update(ctx context.Context, userID, id string, ua UpdateAssessment) (Assessment, error)
		Delete(ctx context.Context, userID, id string) error
		GetTarget(ctx context.Context, userID string) (Target, error)
		SetTarget(ctx context.Context, userID string, target float64) (Target, error)
		Overview(ctx context.Context, userID string) (Overview, error)
		Predict(ctx context.Context, userID string, req PredictRequest) (grade.Summary, error)
	}

	service struct {
		repo            Repository
		defaultTarget   float64
		defaultMaxScore float64
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{
		repo:            repo,
		defaultTarget:   conf.Grades.DefaultTarget,
		defaultMaxScore: conf.Grades.DefaultMaxScore,
	}
}

func now() time.Time {
	return nowFunc().UTC().Truncate(time.Microsecond)
}

func (svc *service) List(ctx context.Context, userID string) ([]Assessment, error) {
	return svc.repo.QueryAssessments(ctx, userID)
}

func (svc *service) Get(ctx context.Context, userID, id string) (Assessment, error) {
	return svc.repo.GetAssessment(ctx, userID, id)
}

func (svc *service) Create(ctx context.Context, userID string, na NewAssessment) (Assessment, error) {
	maxScore := svc.defaultMaxScore
	if na.MaxScore != nil {
		maxScore = *na.MaxScore
	}
	if na.Score > maxScore {
		return Assessment{}, errScoreAboveMax
	}

	ts := now()
	return svc.repo.CreateAssessment(ctx, Assessment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      na.Name,
		Weight:    na.Weight,
		Score:     na.Score,
		MaxScore:  maxScore,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
}

func (svc *service) Update(ctx context.Context, userID, id string, ua UpdateAssessment) (Assessment, error) {
	a, err := svc.repo.GetAssessment(ctx, userID, id)
	if err != nil {
		return Assessment{}, err
	}
	if err = ua.apply(&a); err != nil {
		return Assessment{}, err
	}
	a.UpdatedAt = now()
	return svc.repo.UpdateAssessment(ctx, a)
}

func (svc *service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteAssessment(ctx, userID, id)
}

func (svc *service) GetTarget(ctx context.Context, userID string) (Target, error) {
	t, err := svc.repo.GetTarget(ctx, userID)
	if err == ErrTargetNotSet {
		return Target{UserID: userID, Target: svc.defaultTarget}, nil
	}
	return t, err
}

func (svc *service) SetTarget(ctx context.Context, userID string, target float64) (Target, error) {
	if !grade.ValidTarget(target) {
		return Target{}, core.NewValidationError(nil, core.FieldError{Field: "target", Error: "target must be between 0 and 100"})
	}
	return svc.repo.SaveTarget(ctx, Target{UserID: userID, Target: target, UpdatedAt: now()})
}

func (svc *service) Overview(ctx context.Context, userID string) (Overview, error) {
	assessments, err := svc.repo.QueryAssessments(ctx, userID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying assessments")
	}
	target, err := svc.GetTarget(ctx, userID)
	if err != nil {
		return Overview{}, errors.Wrap(err, "getting target")
	}
	return Overview{
		Assessments: assessments,
		Summary:     grade.Summarize(Records(assessments), target.Target),
	}, nil
}

// Predict runs the grade engine on records the caller provides, without storing them.
func (svc *service) Predict(ctx context.Context, userID string, req PredictRequest) (grade.Summary, error) {
	if req.Records == nil {
		return grade.Summary{}, core.NewValidationError(errInvalidRecords, core.FieldError{Field: "records", Error: "this field is required"})
	}
	var target float64
	if req.Target != nil {
		target = *req.Target
	} else {
		t, err := svc.GetTarget(ctx, userID)
		if err != nil {
			return grade.Summary{}, errors.Wrap(err, "getting target")
		}
		target = t.Target
	}
	records := make([]grade.Record, 0, len(req.Records))
	for _, r := range req.Records {
		records = append(records, r.Record())
	}
	return grade.Summarize(records, target), nil
}
