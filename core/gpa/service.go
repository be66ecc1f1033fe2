package gpa

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow/studyflow/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("course not found")
)

type (
	Repository interface {
		// QueryCourses returns the user's courses in creation order.
		QueryCourses(ctx context.Context, userID string) ([]Course, error)
		GetCourse(ctx context.Context, userID, id string) (Course, error)
		CreateCourse(ctx context.Context, c Course) (Course, error)
		UpdateCourse(ctx context.Context, c Course) (Course, error)
		DeleteCourse(ctx context.Context, userID, id string) error
	}

	Service interface {
		List(ctx context.Context, userID string) ([]Course, error)
		Create(ctx context.Context, userID string, nc NewCourse) (Course, error)
		Update(ctx context.Context, userID, id string, uc UpdateCourse) (Course, error)
		Delete(ctx context.Context, userID, id string) error
		Summary(ctx context.Context, userID string) (Summary, error)
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

func (svc *service) List(ctx context.Context, userID string) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, userID)
}

func (svc *service) Create(ctx context.Context, userID string, nc NewCourse) (Course, error) {
	ts := now()
	return svc.repo.CreateCourse(ctx, Course{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      nc.Name,
		Credits:   nc.Credits,
		Grade:     nc.Grade,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
}

func (svc *service) Update(ctx context.Context, userID, id string, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourse(ctx, userID, id)
	if err != nil {
		return Course{}, err
	}
	uc.apply(&c)
	c.UpdatedAt = now()
	return svc.repo.UpdateCourse(ctx, c)
}

func (svc *service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteCourse(ctx, userID, id)
}

func (svc *service) Summary(ctx context.Context, userID string) (Summary, error) {
	courses, err := svc.repo.QueryCourses(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(courses), nil
}
