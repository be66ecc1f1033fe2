package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
	"github.com/studyflow/studyflow/storage"
	"github.com/studyflow/studyflow/testutil"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		conf := &core.Config{Database: core.DatabaseConfig{Engine: core.EngineMemory}}
		stores, err := storage.Open(ctx, conf)
		require.NoError(t, err)
		defer func() { assert.NoError(t, stores.Close()) }()

		assert.Nil(t, stores.SQL)
		assert.NoError(t, stores.Migrate(conf))
		usr := testutil.CreateUser(t, stores.Users, "User", "awe", "awe@test.test", "", nil, true)
		got, err := stores.Users.GetUserByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.Equal(t, usr.Username, got.Username)
	})

	t.Run("sqlite", func(t *testing.T) {
		conf := &core.Config{Database: core.DatabaseConfig{
			Engine:     core.EngineSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "studyflow.db"),
		}}
		stores, err := storage.Open(ctx, conf)
		require.NoError(t, err)
		defer func() { assert.NoError(t, stores.Close()) }()

		require.NotNil(t, stores.SQL)
		require.NoError(t, stores.Migrate(conf))
		usr := testutil.CreateUser(t, stores.Users, "User", "awe", "awe@test.test", "", []string{user.RoleStudent}, true)
		got, err := stores.Users.GetUserByUsernameOrEmail(ctx, "awe@test.test")
		require.NoError(t, err)
		assert.Equal(t, usr.ID, got.ID)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := storage.Open(ctx, &core.Config{Database: core.DatabaseConfig{Engine: "mongo"}})
		assert.EqualError(t, err, `unsupported database engine: "mongo"`)
	})
}
