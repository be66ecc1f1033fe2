package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/studyflow/studyflow/core"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Assignment is a piece of homework due at a given date.
type Assignment struct {
	ID          string    `json:"id" db:"id" firestore:"id"`
	UserID      string    `json:"-" db:"user_id" firestore:"user_id"`
	Title       string    `json:"title" db:"title" firestore:"title"`
	Description string    `json:"description" db:"description" firestore:"description"`
	DueDate     time.Time `json:"due_date" db:"due_date" firestore:"due_date"` // midnight UTC
	Priority    Priority  `json:"priority" db:"priority" firestore:"priority"`
	Completed   bool      `json:"completed" db:"completed" firestore:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" firestore:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" firestore:"updated_at"` // UTC
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string   `json:"title" validate:"required,notblank,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	DueDate     string   `json:"due_date" validate:"required,datetime=2006-01-02"`
	Priority    Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
	if na.Priority == "" {
		na.Priority = PriorityMedium
	}
	return validate.Struct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
type UpdateAssignment struct {
	Title       *string   `json:"title" validate:"omitempty,notblank,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string   `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    *Priority `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	Completed   *bool     `json:"completed"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	if ua.Title != nil {
		title := core.CleanString(*ua.Title)
		ua.Title = &title
	}
	if ua.Description != nil {
		desc := core.CleanString(*ua.Description)
		ua.Description = &desc
	}
	return validate.Struct(ua)
}

func (ua UpdateAssignment) apply(a *Assignment) error {
	if ua.DueDate != nil {
		due, err := core.ParseDate(*ua.DueDate)
		if err != nil {
			return errInvalidDueDate
		}
		a.DueDate = due
	}
	if ua.Title != nil {
		a.Title = *ua.Title
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	if ua.Priority != nil {
		a.Priority = *ua.Priority
	}
	if ua.Completed != nil {
		a.Completed = *ua.Completed
	}
	return nil
}
