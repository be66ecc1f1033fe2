package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
	"github.com/studyflow/studyflow/storage/database"
)

// CreateUser stores a user straight through repo, bypassing validation.
func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.NewString(),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("createUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

// OpenSQLiteDB opens a migrated sqlite database living in a test temp dir.
func OpenSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conf := &core.Config{Database: core.DatabaseConfig{
		Engine:     core.EngineSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("database.Open(): %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db.DB, conf); err != nil {
		t.Fatalf("database.Migrate(): %v", err)
	}
	return db
}
