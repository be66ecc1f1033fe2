package study

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studyflow/studyflow/core"
)

type Productivity string

const (
	ProductivityHigh   Productivity = "High"
	ProductivityMedium Productivity = "Medium"
	ProductivityLow    Productivity = "Low"
)

// Session is a logged block of study time.
type Session struct {
	ID           string       `json:"id" db:"id" firestore:"id"`
	UserID       string       `json:"-" db:"user_id" firestore:"user_id"`
	Subject      string       `json:"subject" db:"subject" firestore:"subject"`
	Duration     int          `json:"duration" db:"duration" firestore:"duration"` // minutes
	Date         time.Time    `json:"date" db:"date" firestore:"date"`             // midnight UTC
	Notes        string       `json:"notes" db:"notes" firestore:"notes"`
	Productivity Productivity `json:"productivity" db:"productivity" firestore:"productivity"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at" firestore:"created_at"` // UTC
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC
}

// NewSession contains information needed to log a new Session. Date defaults to today.
type NewSession struct {
	Subject      string       `json:"subject" validate:"required,notblank,max=200"`
	Duration     int          `json:"duration" validate:"required,gte=1,lte=1440"`
	Date         string       `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes        string       `json:"notes" validate:"max=2000"`
	Productivity Productivity `json:"productivity" validate:"omitempty,oneof=High Medium Low"`
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.Subject = core.CleanString(ns.Subject)
	ns.Notes = core.CleanString(ns.Notes)
	ns.Date = core.CleanString(ns.Date)
	if ns.Productivity == "" {
		ns.Productivity = ProductivityMedium
	}
	return validate.Struct(ns)
}

// UpdateSession defines what information may be provided to modify an existing Session.
type UpdateSession struct {
	Subject      *string       `json:"subject" validate:"omitempty,notblank,max=200"`
	Duration     *int          `json:"duration" validate:"omitempty,gte=1,lte=1440"`
	Date         *string       `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Notes        *string       `json:"notes" validate:"omitempty,max=2000"`
	Productivity *Productivity `json:"productivity" validate:"omitempty,oneof=High Medium Low"`
}

func (us *UpdateSession) Validate(validate *validator.Validate) error {
	if us.Subject != nil {
		subject := core.CleanString(*us.Subject)
		us.Subject = &subject
	}
	if us.Notes != nil {
		notes := core.CleanString(*us.Notes)
		us.Notes = &notes
	}
	return validate.Struct(us)
}

func (us UpdateSession) apply(s *Session) error {
	if us.Date != nil {
		date, err := core.ParseDate(*us.Date)
		if err != nil {
			return errInvalidDate
		}
		s.Date = date
	}
	if us.Subject != nil {
		s.Subject = *us.Subject
	}
	if us.Duration != nil {
		s.Duration = *us.Duration
	}
	if us.Notes != nil {
		s.Notes = *us.Notes
	}
	if us.Productivity != nil {
		s.Productivity = *us.Productivity
	}
	return nil
}
