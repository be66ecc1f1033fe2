package inmemdb

import (
	"context"

	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
)

type sessionRepository struct {
	db *DB
}

var _ study.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *DB) study.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) QuerySessions(_ context.Context, userID string) ([]study.Session, error) {
	return repo.db.sessions.list(userID), nil
}

func (repo *sessionRepository) GetSession(_ context.Context, userID, id string) (study.Session, error) {
	if s, ok := repo.db.sessions.get(userID, id); ok {
		return s, nil
	}
	return study.Session{}, study.ErrNotFound
}

func (repo *sessionRepository) CreateSession(_ context.Context, s study.Session) (study.Session, error) {
	repo.db.sessions.insert(s.UserID, s.ID, s)
	return s, nil
}

func (repo *sessionRepository) UpdateSession(_ context.Context, s study.Session) (study.Session, error) {
	if !repo.db.sessions.replace(s.UserID, s.ID, s) {
		return study.Session{}, study.ErrNotFound
	}
	return s, nil
}

func (repo *sessionRepository) DeleteSession(_ context.Context, userID, id string) error {
	if !repo.db.sessions.remove(userID, id) {
		return study.ErrNotFound
	}
	return nil
}

type timerRepository struct {
	db *DB
}

var _ timer.Repository = (*timerRepository)(nil)

func NewTimerRepository(db *DB) timer.Repository {
	return &timerRepository{db: db}
}

func (repo *timerRepository) GetState(_ context.Context, userID string) (timer.State, error) {
	if s, ok := repo.db.timers.get(userID); ok {
		return s, nil
	}
	return timer.State{}, timer.ErrNotFound
}

func (repo *timerRepository) SaveState(_ context.Context, s timer.State) (timer.State, error) {
	repo.db.timers.put(s.UserID, s)
	return s, nil
}
