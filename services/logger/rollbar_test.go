package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/user"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", TestMode: true})

	usr := user.User{ID: "u1", Username: "jane", Email: "jane@test.test"}
	logger.Error("saving grade", errors.New("boom"), usr)

	out := buf.String()
	assert.Contains(t, out, "ERROR: saving grade")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "jane@test.test", "the user only goes to the error tracker")
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger := RollbarLogger{std: log.New(&bytes.Buffer{}, "", 0)}
	err := errors.New("boom")
	extra := map[string]interface{}{"path": "/v1/grades"}

	args := logger.prepare("msg", []interface{}{err, user.User{ID: "u1"}, extra, user.User{ID: "u2"}})
	assert.Equal(t, []interface{}{"msg", err, extra}, args)
}
