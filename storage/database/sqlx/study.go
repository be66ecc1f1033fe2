package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
)

const sessionColumns = "id, user_id, subject, duration, date, notes, productivity, created_at, updated_at"

type sessionRepository struct {
	db *sqlx.DB
}

var _ study.Repository = (*sessionRepository)(nil)

func NewSessionRepository(db *sqlx.DB) study.Repository {
	return &sessionRepository{db: db}
}

func normalizeSession(s study.Session) study.Session {
	s.Date = utc(s.Date)
	s.CreatedAt = utc(s.CreatedAt)
	s.UpdatedAt = utc(s.UpdatedAt)
	return s
}

func (repo *sessionRepository) QuerySessions(ctx context.Context, userID string) ([]study.Session, error) {
	q := repo.db.Rebind("SELECT " + sessionColumns + " FROM study_sessions WHERE user_id = ? ORDER BY created_at, id")
	sessions := make([]study.Session, 0)
	if err := repo.db.SelectContext(ctx, &sessions, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying study sessions")
	}
	for i := range sessions {
		sessions[i] = normalizeSession(sessions[i])
	}
	return sessions, nil
}

func (repo *sessionRepository) GetSession(ctx context.Context, userID, id string) (study.Session, error) {
	q := repo.db.Rebind("SELECT " + sessionColumns + " FROM study_sessions WHERE user_id = ? AND id = ?")
	var s study.Session
	if err := repo.db.GetContext(ctx, &s, q, userID, id); err != nil {
		return study.Session{}, trapNoRowsErr(err, study.ErrNotFound, "getting study session")
	}
	return normalizeSession(s), nil
}

func (repo *sessionRepository) CreateSession(ctx context.Context, s study.Session) (study.Session, error) {
	q := `INSERT INTO study_sessions (` + sessionColumns + `)
		VALUES (:id, :user_id, :subject, :duration, :date, :notes, :productivity, :created_at, :updated_at)`
	if _, err := repo.db.NamedExecContext(ctx, q, s); err != nil {
		return study.Session{}, errors.Wrap(err, "inserting study session")
	}
	return s, nil
}

func (repo *sessionRepository) UpdateSession(ctx context.Context, s study.Session) (study.Session, error) {
	q := `UPDATE study_sessions
		SET subject = :subject, duration = :duration, date = :date, notes = :notes,
			productivity = :productivity, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id`
	if err := execAffecting(ctx, repo.db, study.ErrNotFound, "updating study session", q, s); err != nil {
		return study.Session{}, err
	}
	return s, nil
}

func (repo *sessionRepository) DeleteSession(ctx context.Context, userID, id string) error {
	return deleteOwned(ctx, repo.db, "study_sessions", userID, id, study.ErrNotFound)
}

type timerRepository struct {
	db *sqlx.DB
}

var _ timer.Repository = (*timerRepository)(nil)

func NewTimerRepository(db *sqlx.DB) timer.Repository {
	return &timerRepository{db: db}
}

func (repo *timerRepository) GetState(ctx context.Context, userID string) (timer.State, error) {
	q := repo.db.Rebind(`SELECT user_id, pomodoro_count, total_study_time, is_work_time, updated_at
		FROM timer_states WHERE user_id = ?`)
	var s timer.State
	if err := repo.db.GetContext(ctx, &s, q, userID); err != nil {
		return timer.State{}, trapNoRowsErr(err, timer.ErrNotFound, "getting timer state")
	}
	s.UpdatedAt = utc(s.UpdatedAt)
	return s, nil
}

func (repo *timerRepository) SaveState(ctx context.Context, s timer.State) (timer.State, error) {
	q := `INSERT INTO timer_states (user_id, pomodoro_count, total_study_time, is_work_time, updated_at)
		VALUES (:user_id, :pomodoro_count, :total_study_time, :is_work_time, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			pomodoro_count = excluded.pomodoro_count,
			total_study_time = excluded.total_study_time,
			is_work_time = excluded.is_work_time,
			updated_at = excluded.updated_at`
	if _, err := repo.db.NamedExecContext(ctx, q, s); err != nil {
		return timer.State{}, errors.Wrap(err, "saving timer state")
	}
	return s, nil
}
