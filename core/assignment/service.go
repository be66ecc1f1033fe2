package assignment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow/studyflow/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound       = core.NewNotFoundError("assignment not found")
	errInvalidDueDate = core.NewValidationError(nil, core.FieldError{Field: "due_date", Error: "invalid date, expected YYYY-MM-DD"})
)

type (
	Repository interface {
		QueryAssignments(ctx context.Context, userID string) ([]Assignment, error)
		GetAssignment(ctx context.Context, userID, id string) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, userID, id string) error
	}

	Service interface {
		// List returns the user's assignments, incomplete first then by due date.
		List(ctx context.Context, userID string) ([]Assignment, error)
		Create(ctx context.Context, userID string, na NewAssignment) (Assignment, error)
		Update(ctx context.Context, userID, id string, ua UpdateAssignment) (Assignment, error)
		ToggleComplete(ctx context.Context, userID, id string) (Assignment, error)
		Delete(ctx context.Context, userID, id string) error
		Stats(ctx context.Context, userID string) (Stats, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func now() time.Time {
	return nowFunc().UTC().Truncate(time.Microsecond)
}

func (svc *service) List(ctx context.Context, userID string) ([]Assignment, error) {
	assignments, err := svc.repo.QueryAssignments(ctx, userID)
	if err != nil {
		return nil, err
	}
	Sort(assignments)
	return assignments, nil
}

func (svc *service) Create(ctx context.Context, userID string, na NewAssignment) (Assignment, error) {
	due, err := core.ParseDate(na.DueDate)
	if err != nil {
		return Assignment{}, errInvalidDueDate
	}
	priority := na.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	ts := now()
	return svc.repo.CreateAssignment(ctx, Assignment{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       na.Title,
		Description: na.Description,
		DueDate:     due,
		Priority:    priority,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
}

func (svc *service) Update(ctx context.Context, userID, id string, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignment(ctx, userID, id)
	if err != nil {
		return Assignment{}, err
	}
	if err = ua.apply(&a); err != nil {
		return Assignment{}, err
	}
	a.UpdatedAt = now()
	return svc.repo.UpdateAssignment(ctx, a)
}

func (svc *service) ToggleComplete(ctx context.Context, userID, id string) (Assignment, error) {
	a, err := svc.repo.GetAssignment(ctx, userID, id)
	if err != nil {
		return Assignment{}, err
	}
	a.Completed = !a.Completed
	a.UpdatedAt = now()
	return svc.repo.UpdateAssignment(ctx, a)
}

func (svc *service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteAssignment(ctx, userID, id)
}

func (svc *service) Stats(ctx context.Context, userID string) (Stats, error) {
	assignments, err := svc.repo.QueryAssignments(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(assignments), nil
}
