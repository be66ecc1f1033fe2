package predictor

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/grade"
)

// Assessment is a graded (or to be graded) piece of work owned by a user.
type Assessment struct {
	ID        string    `json:"id" db:"id" firestore:"id"`
	UserID    string    `json:"-" db:"user_id" firestore:"user_id"`
	Name      string    `json:"name" db:"name" firestore:"name"`
	Weight    float64   `json:"weight" db:"weight" firestore:"weight"`
	Score     float64   `json:"score" db:"score" firestore:"score"`
	MaxScore  float64   `json:"max_score" db:"max_score" firestore:"max_score"`
	CreatedAt time.Time `json:"created_at" db:"created_at" firestore:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC
}

func (a Assessment) Record() grade.Record {
	return grade.Record{
		ID:       a.ID,
		Name:     a.Name,
		Weight:   a.Weight,
		Score:    a.Score,
		MaxScore: a.MaxScore,
	}
}

// Records converts assessments to grade records, keeping their order.
func Records(assessments []Assessment) []grade.Record {
	records := make([]grade.Record, 0, len(assessments))
	for _, a := range assessments {
		records = append(records, a.Record())
	}
	return records
}

// Target is the final grade a user aims for.
type Target struct {
	UserID    string    `json:"-" db:"user_id" firestore:"user_id"`
	Target    float64   `json:"target" db:"target" firestore:"target"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC, zero when never set
}

// Overview is the full grade predictor state of a user.
type Overview struct {
	Assessments []Assessment  `json:"assessments"`
	Summary     grade.Summary `json:"summary"`
}

// NewAssessment contains information needed to create a new Assessment.
// MaxScore defaults to the configured default max score.
type NewAssessment struct {
	Name     string   `json:"name" validate:"max=200"`
	Weight   float64  `json:"weight" validate:"gte=0,lte=100"`
	Score    float64  `json:"score" validate:"gte=0"`
	MaxScore *float64 `json:"max_score" validate:"omitempty,gt=0"`
}

func (na *NewAssessment) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	return validate.Struct(na)
}

// UpdateAssessment defines what information may be provided to modify an existing Assessment.
// Lowering MaxScore below the current score clamps the score.
type UpdateAssessment struct {
	Name     *string  `json:"name" validate:"omitempty,max=200"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0,lte=100"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0"`
	MaxScore *float64 `json:"max_score" validate:"omitempty,gt=0"`
}

func (ua *UpdateAssessment) Validate(validate *validator.Validate) error {
	if ua.Name != nil {
		name := core.CleanString(*ua.Name)
		ua.Name = &name
	}
	return validate.Struct(ua)
}

// apply mutates `a` field by field, enforcing the score <= max score invariant.
func (ua UpdateAssessment) apply(a *Assessment) error {
	maxScore := a.MaxScore
	if ua.MaxScore != nil {
		maxScore = *ua.MaxScore
	}
	if ua.Score != nil && *ua.Score > maxScore {
		return errScoreAboveMax
	}

	rec := a.Record()
	if ua.Weight != nil {
		rec.SetWeight(*ua.Weight)
	}
	if ua.MaxScore != nil {
		rec.SetMaxScore(*ua.MaxScore)
	}
	if ua.Score != nil {
		rec.SetScore(*ua.Score)
	}
	if ua.Name != nil {
		a.Name = *ua.Name
	}
	a.Weight = rec.Weight
	a.Score = rec.Score
	a.MaxScore = rec.MaxScore
	return nil
}

// SetTarget is the payload to change the target grade.
type SetTarget struct {
	Target *float64 `json:"target" validate:"required,gte=0,lte=100"`
}

func (st *SetTarget) Validate(validate *validator.Validate) error {
	return validate.Struct(st)
}

// PredictRecord is an unstored assessment, held to the same rules as NewAssessment.
type PredictRecord struct {
	Name     string  `json:"name" validate:"max=200"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=100"`
	Score    float64 `json:"score" validate:"gte=0,ltefield=MaxScore"`
	MaxScore float64 `json:"max_score" validate:"gt=0"`
}

func (pr PredictRecord) Record() grade.Record {
	return grade.Record{Name: pr.Name, Weight: pr.Weight, Score: pr.Score, MaxScore: pr.MaxScore}
}

// PredictRequest evaluates records that are not stored.
// Target defaults to the user's target grade.
type PredictRequest struct {
	Records []PredictRecord `json:"records" validate:"required,dive"`
	Target  *float64        `json:"target"`
}

func (pr *PredictRequest) Validate(validate *validator.Validate) error {
	for i := range pr.Records {
		pr.Records[i].Name = core.CleanString(pr.Records[i].Name)
	}
	return validate.Struct(pr)
}
