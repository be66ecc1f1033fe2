package timer

import (
	"context"
	"sync"
	"time"

	"github.com/studyflow/studyflow/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound         = core.NewNotFoundError("timer state not found")
	errNegativeProgress = core.NewValidationError(nil, core.FieldError{Field: "seconds", Error: "seconds cannot be negative"})
)

type (
	Repository interface {
		// GetState returns ErrNotFound when the user never used the timer.
		GetState(ctx context.Context, userID string) (State, error)
		SaveState(ctx context.Context, s State) (State, error)
	}

	Service interface {
		State(ctx context.Context, userID string) (View, error)
		RecordProgress(ctx context.Context, userID string, seconds int64) (View, error)
		Complete(ctx context.Context, userID string) (View, error)
		Skip(ctx context.Context, userID string) (View, error)
		Reset(ctx context.Context, userID string) (View, error)
	}

	service struct {
		repo      Repository
		durations Durations
		mu        sync.Mutex // serializes read-modify-write cycles
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{
		repo:      repo,
		durations: DurationsFromConfig(conf.Timer),
	}
}

func (svc *service) get(ctx context.Context, userID string) (State, error) {
	s, err := svc.repo.GetState(ctx, userID)
	if err == ErrNotFound {
		return NewState(userID), nil
	}
	return s, err
}

func (svc *service) mutate(ctx context.Context, userID string, fn func(s *State)) (View, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	s, err := svc.get(ctx, userID)
	if err != nil {
		return View{}, err
	}
	fn(&s)
	s.UpdatedAt = nowFunc().UTC().Truncate(time.Microsecond)
	if s, err = svc.repo.SaveState(ctx, s); err != nil {
		return View{}, err
	}
	return NewView(s, svc.durations), nil
}

func (svc *service) State(ctx context.Context, userID string) (View, error) {
	s, err := svc.get(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return NewView(s, svc.durations), nil
}

func (svc *service) RecordProgress(ctx context.Context, userID string, seconds int64) (View, error) {
	if seconds < 0 {
		return View{}, errNegativeProgress
	}
	return svc.mutate(ctx, userID, func(s *State) { s.RecordProgress(time.Duration(seconds) * time.Second) })
}

func (svc *service) Complete(ctx context.Context, userID string) (View, error) {
	return svc.mutate(ctx, userID, func(s *State) { s.Complete() })
}

func (svc *service) Skip(ctx context.Context, userID string) (View, error) {
	return svc.mutate(ctx, userID, func(s *State) { s.Skip() })
}

func (svc *service) Reset(ctx context.Context, userID string) (View, error) {
	return svc.mutate(ctx, userID, func(s *State) { s.Reset() })
}
