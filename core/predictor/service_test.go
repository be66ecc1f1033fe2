package predictor_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/grade"
	"github.com/studyflow/studyflow/core/predictor"
	inmemdb "github.com/studyflow/studyflow/storage/database/inmem"
)

const uid = "8f7b2c4e-0000-4000-8000-000000000001"

func newService() predictor.Service {
	conf := &core.Config{Grades: core.GradesConfig{DefaultTarget: 90, DefaultMaxScore: 100}}
	return predictor.NewService(inmemdb.NewGradeRepository(inmemdb.Open()), conf)
}

func floatPtr(f float64) *float64 { return &f }

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	a, err := svc.Create(ctx, uid, predictor.NewAssessment{Name: "Midterm", Weight: 30, Score: 45, MaxScore: floatPtr(50)})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, uid, a.UserID)
	assert.Equal(t, 50.0, a.MaxScore)
	assert.False(t, a.CreatedAt.IsZero())

	dflt, err := svc.Create(ctx, uid, predictor.NewAssessment{Name: "Quiz", Weight: 10, Score: 80})
	require.NoError(t, err)
	assert.Equal(t, 100.0, dflt.MaxScore, "default max score")

	_, err = svc.Create(ctx, uid, predictor.NewAssessment{Name: "Bad", Weight: 10, Score: 60, MaxScore: floatPtr(50)})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "score", vErr.Fields[0].Field)

	list, err := svc.List(ctx, uid)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)

	other, err := svc.List(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, err := svc.Create(ctx, uid, predictor.NewAssessment{Name: "Final", Weight: 40, Score: 90})
	require.NoError(t, err)

	t.Run("lowering max score clamps the score", func(t *testing.T) {
		got, err := svc.Update(ctx, uid, a.ID, predictor.UpdateAssessment{MaxScore: floatPtr(80)})
		require.NoError(t, err)
		assert.Equal(t, 80.0, got.MaxScore)
		assert.Equal(t, 80.0, got.Score)
		assert.False(t, got.UpdatedAt.Before(a.UpdatedAt))
	})

	t.Run("score above max score", func(t *testing.T) {
		_, err := svc.Update(ctx, uid, a.ID, predictor.UpdateAssessment{Score: floatPtr(81)})
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("weight is clamped", func(t *testing.T) {
		got, err := svc.Update(ctx, uid, a.ID, predictor.UpdateAssessment{Weight: floatPtr(140)})
		require.NoError(t, err)
		assert.Equal(t, 100.0, got.Weight)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.Update(ctx, uid, "missing", predictor.UpdateAssessment{Weight: floatPtr(10)})
		assert.Equal(t, predictor.ErrNotFound, err)

		_, err = svc.Update(ctx, "someone-else", a.ID, predictor.UpdateAssessment{Weight: floatPtr(10)})
		assert.True(t, core.IsNotFound(err))
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	a, err := svc.Create(ctx, uid, predictor.NewAssessment{Name: "Lab", Weight: 10, Score: 7, MaxScore: floatPtr(10)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, uid, a.ID))
	assert.Equal(t, predictor.ErrNotFound, svc.Delete(ctx, uid, a.ID))

	_, err = svc.Get(ctx, uid, a.ID)
	assert.Equal(t, predictor.ErrNotFound, err)
}

func TestService_Target(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	target, err := svc.GetTarget(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 90.0, target.Target, "default target")
	assert.True(t, target.UpdatedAt.IsZero())

	target, err = svc.SetTarget(ctx, uid, 75)
	require.NoError(t, err)
	assert.Equal(t, 75.0, target.Target)

	target, err = svc.GetTarget(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 75.0, target.Target)

	for _, bad := range []float64{-1, 100.5} {
		_, err = svc.SetTarget(ctx, uid, bad)
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr, "target %v", bad)
	}
}

func TestService_Overview(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	ov, err := svc.Overview(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, ov.Assessments)
	assert.Equal(t, 0.0, ov.Summary.CurrentGrade)
	assert.Equal(t, grade.StatusScore, ov.Summary.Needed.Status)
	assert.Equal(t, 90.0, ov.Summary.Needed.Score)

	_, err = svc.Create(ctx, uid, predictor.NewAssessment{Name: "Midterm", Weight: 30, Score: 80})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uid, predictor.NewAssessment{Name: "Project", Weight: 20, Score: 45, MaxScore: floatPtr(50)})
	require.NoError(t, err)
	_, err = svc.SetTarget(ctx, uid, 85)
	require.NoError(t, err)

	ov, err = svc.Overview(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, ov.Assessments, 2)
	// (80*0.3 + 90*0.2) / 0.5 = 84
	assert.Equal(t, 84.0, ov.Summary.CurrentGrade)
	assert.Equal(t, grade.BandFair, ov.Summary.CurrentBand)
	assert.Equal(t, 85.0, ov.Summary.TargetGrade)
	// (85 - 84*0.5) / 0.5 = 86
	assert.Equal(t, grade.Needed{Status: grade.StatusScore, Score: 86}, ov.Summary.Needed)
	assert.Equal(t, "86.00", ov.Summary.NeededLabel)
	assert.Equal(t, 50.0, ov.Summary.RemainingWeight)
}

func TestService_Predict(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	records := []predictor.PredictRecord{{Name: "Exam", Weight: 60, Score: 50, MaxScore: 100}}

	summary, err := svc.Predict(ctx, uid, predictor.PredictRequest{Records: records, Target: floatPtr(90)})
	require.NoError(t, err)
	// (90 - 30) / 0.4 = 150
	assert.Equal(t, grade.StatusImpossible, summary.Needed.Status)
	assert.Equal(t, "Impossible", summary.NeededLabel)

	// falls back on the stored target
	_, err = svc.SetTarget(ctx, uid, 50)
	require.NoError(t, err)
	summary, err = svc.Predict(ctx, uid, predictor.PredictRequest{Records: records})
	require.NoError(t, err)
	assert.Equal(t, grade.Needed{Status: grade.StatusScore, Score: 50}, summary.Needed)

	// nothing is stored
	list, err := svc.List(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Predict(ctx, uid, predictor.PredictRequest{})
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestPredictRequest_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	tests := []struct {
		name    string
		req     predictor.PredictRequest
		wantErr bool
	}{
		{name: "valid", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Name: " Exam ", Weight: 60, Score: 50, MaxScore: 100}}}},
		{name: "no records", req: predictor.PredictRequest{Records: []predictor.PredictRecord{}}},
		{name: "records missing", req: predictor.PredictRequest{}, wantErr: true},
		{name: "negative weight", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Weight: -40, Score: 50, MaxScore: 100}}}, wantErr: true},
		{name: "weight above 100", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Weight: 101, Score: 50, MaxScore: 100}}}, wantErr: true},
		{name: "negative score", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Weight: 10, Score: -1, MaxScore: 100}}}, wantErr: true},
		{name: "score above max", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Weight: 10, Score: 500, MaxScore: 100}}}, wantErr: true},
		{name: "zero max score", req: predictor.PredictRequest{Records: []predictor.PredictRecord{{Weight: 10, Score: 0, MaxScore: 0}}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
