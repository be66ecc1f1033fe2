// Package storage opens the repositories of every domain on the configured database engine.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
	"github.com/studyflow/studyflow/core/user"
	"github.com/studyflow/studyflow/storage/database"
	inmemdb "github.com/studyflow/studyflow/storage/database/inmem"
	sqlxrepos "github.com/studyflow/studyflow/storage/database/sqlx"
	firestoredb "github.com/studyflow/studyflow/storage/firestore"
)

// Stores groups the repositories backed by a single engine.
type Stores struct {
	Engine      string
	Users       user.Repository
	Grades      predictor.Repository
	Courses     gpa.Repository
	Assignments assignment.Repository
	Sessions    study.Repository
	Timers      timer.Repository

	// SQL is the connection pool of the postgres and sqlite engines, nil otherwise.
	SQL *sql.DB

	close func() error
}

func NewInMemory(db *inmemdb.DB) *Stores {
	return &Stores{
		Engine:      core.EngineMemory,
		Users:       inmemdb.NewUserRepository(db),
		Grades:      inmemdb.NewGradeRepository(db),
		Courses:     inmemdb.NewCourseRepository(db),
		Assignments: inmemdb.NewAssignmentRepository(db),
		Sessions:    inmemdb.NewSessionRepository(db),
		Timers:      inmemdb.NewTimerRepository(db),
		close:       func() error { return nil },
	}
}

func NewSQL(engine string, db *sqlx.DB) *Stores {
	return &Stores{
		Engine:      engine,
		Users:       sqlxrepos.NewUserRepository(db),
		Grades:      sqlxrepos.NewGradeRepository(db),
		Courses:     sqlxrepos.NewCourseRepository(db),
		Assignments: sqlxrepos.NewAssignmentRepository(db),
		Sessions:    sqlxrepos.NewSessionRepository(db),
		Timers:      sqlxrepos.NewTimerRepository(db),
		SQL:         db.DB,
		close:       db.Close,
	}
}

func NewFirestore(db *firestoredb.DB) *Stores {
	return &Stores{
		Engine:      core.EngineFirestore,
		Users:       firestoredb.NewUserRepository(db),
		Grades:      firestoredb.NewGradeRepository(db),
		Courses:     firestoredb.NewCourseRepository(db),
		Assignments: firestoredb.NewAssignmentRepository(db),
		Sessions:    firestoredb.NewSessionRepository(db),
		Timers:      firestoredb.NewTimerRepository(db),
		close:       db.Close,
	}
}

// Open connects to conf.Database.Engine. SQL databases are created when missing but not migrated.
func Open(ctx context.Context, conf *core.Config) (*Stores, error) {
	switch conf.Database.Engine {
	case core.EngineMemory:
		return NewInMemory(inmemdb.Open()), nil

	case core.EnginePostgres, core.EngineSQLite:
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, errors.Wrap(err, "creating database")
		}
		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}
		return NewSQL(conf.Database.Engine, db), nil

	case core.EngineFirestore:
		db, err := firestoredb.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		return NewFirestore(db), nil
	}
	return nil, fmt.Errorf("unsupported database engine: %q", conf.Database.Engine)
}

// Migrate applies pending migrations on SQL engines. Other engines have no schema.
func (s *Stores) Migrate(conf *core.Config) error {
	if s.SQL == nil {
		return nil
	}
	return database.Migrate(s.SQL, conf)
}

func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
