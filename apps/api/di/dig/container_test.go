package dig_container

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/studyflow/studyflow/apps/api/echo"
	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/storage"
)

func TestNew(t *testing.T) {
	t.Setenv("ENV", "TEST")
	t.Setenv("TEST_DATABASE_ENGINE", core.EngineMemory)
	t.Setenv("TEST_SERVER_DISABLEREQLOGS", "true")

	c := New()
	err := c.Invoke(func(conf *core.Config, stores *storage.Stores, server echoapi.Server) {
		assert.True(t, conf.TestMode)
		assert.Equal(t, core.EngineMemory, stores.Engine)

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
	require.NoError(t, err)
}
