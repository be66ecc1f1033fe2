package study

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studyflow/studyflow/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound    = core.NewNotFoundError("study session not found")
	errInvalidDate = core.NewValidationError(nil, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
)

type (
	Repository interface {
		QuerySessions(ctx context.Context, userID string) ([]Session, error)
		GetSession(ctx context.Context, userID, id string) (Session, error)
		CreateSession(ctx context.Context, s Session) (Session, error)
		UpdateSession(ctx context.Context, s Session) (Session, error)
		DeleteSession(ctx context.Context, userID, id string) error
	}

	Service interface {
		// List returns the user's sessions, most recent first.
		List(ctx context.Context, userID string) ([]Session, error)
		Create(ctx context.Context, userID string, ns NewSession) (Session, error)
		Update(ctx context.Context, userID, id string, us UpdateSession) (Session, error)
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

func (svc *service) List(ctx context.Context, userID string) ([]Session, error) {
	sessions, err := svc.repo.QuerySessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	Sort(sessions)
	return sessions, nil
}

func (svc *service) Create(ctx context.Context, userID string, ns NewSession) (Session, error) {
	ts := now()
	date := core.Today(ts)
	if ns.Date != "" {
		var err error
		if date, err = core.ParseDate(ns.Date); err != nil {
			return Session{}, errInvalidDate
		}
	}
	productivity := ns.Productivity
	if productivity == "" {
		productivity = ProductivityMedium
	}

	return svc.repo.CreateSession(ctx, Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		Subject:      ns.Subject,
		Duration:     ns.Duration,
		Date:         date,
		Notes:        ns.Notes,
		Productivity: productivity,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
}

func (svc *service) Update(ctx context.Context, userID, id string, us UpdateSession) (Session, error) {
	s, err := svc.repo.GetSession(ctx, userID, id)
	if err != nil {
		return Session{}, err
	}
	if err = us.apply(&s); err != nil {
		return Session{}, err
	}
	s.UpdatedAt = now()
	return svc.repo.UpdateSession(ctx, s)
}

func (svc *service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteSession(ctx, userID, id)
}

func (svc *service) Stats(ctx context.Context, userID string) (Stats, error) {
	sessions, err := svc.repo.QuerySessions(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	Sort(sessions)
	return ComputeStats(sessions), nil
}
