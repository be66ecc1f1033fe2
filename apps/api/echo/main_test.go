package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/studyflow/studyflow/apps/api/echo"
	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
	"github.com/studyflow/studyflow/core/user"
	emailsvc "github.com/studyflow/studyflow/services/email"
	logsvc "github.com/studyflow/studyflow/services/logger"
	inmemdb "github.com/studyflow/studyflow/storage/database/inmem"
	"github.com/studyflow/studyflow/testutil"
)

const pwd = "Pwd#2024x"

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     interface{}
	token    string
	wantCode int
}

// testApp is a server backed by a fresh in-memory database.
type testApp struct {
	t       *testing.T
	conf    *core.Config
	server  echoapi.Server
	usrRepo user.Repository
	mailSvc *emailsvc.ConsoleServiceMock
}

func newTestConfig() *core.Config {
	return &core.Config{
		TestMode:                  true,
		AppName:                   "StudyFlow",
		SecretKey:                 "test-secret",
		DefaultFromEmail:          mail.Address{Name: "StudyFlow", Address: "noreply@test.test"},
		FrontendBaseURL:           "http://localhost:3000",
		PasswordResetTimeoutDelta: 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
			LoginRateLimit:            3,
			LoginRateWindow:           time.Minute,
			UserCacheTTL:              time.Minute,
		},
		Grades: core.GradesConfig{DefaultTarget: 90, DefaultMaxScore: 100},
		Timer: core.TimerConfig{
			Work:           25 * time.Minute,
			ShortBreak:     5 * time.Minute,
			LongBreak:      15 * time.Minute,
			LongBreakEvery: 4,
		},
	}
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	conf := newTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator, logger)
	gpa.InitValidators(validate, translator)

	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	server := echoapi.NewServer(conf, &echoapi.Deps{
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		UserSvc:       user.NewService(usrRepo, mailSvc, conf),
		GradeSvc:      predictor.NewService(inmemdb.NewGradeRepository(db), conf),
		GPASvc:        gpa.NewService(inmemdb.NewCourseRepository(db)),
		AssignmentSvc: assignment.NewService(inmemdb.NewAssignmentRepository(db)),
		StudySvc:      study.NewService(inmemdb.NewSessionRepository(db)),
		TimerSvc:      timer.NewService(inmemdb.NewTimerRepository(db), conf),
	})
	return &testApp{t: t, conf: conf, server: server, usrRepo: usrRepo, mailSvc: mailSvc}
}

func (app *testApp) createUser(uname string, roles []string, isActive bool) user.User {
	app.t.Helper()
	return testutil.CreateUser(app.t, app.usrRepo, "User "+uname, uname, uname+"@test.test", pwd, roles, isActive)
}

func (app *testApp) createStudent(uname string) (user.User, string) {
	app.t.Helper()
	usr := app.createUser(uname, []string{user.RoleStudent}, true)
	return usr, app.token(usr)
}

func (app *testApp) token(usr user.User) string {
	app.t.Helper()
	token, err := echoapi.GenerateToken(echoapi.GetUserClaims(usr, app.conf), app.conf)
	require.NoError(app.t, err)
	return token
}

// do sends a JSON request, authenticated when token is set.
func (app *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	app.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case []byte:
			buf.Write(b)
		case string:
			buf.WriteString(b)
		default:
			require.NoError(app.t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

// run executes table tests that only check status codes.
func (app *testApp) run(tests []httpTest) {
	app.t.Helper()
	for _, tt := range tests {
		app.t.Run(tt.name, func(t *testing.T) {
			rec := app.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
		})
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) {
	t.Helper()
	require.Equal(t, wantCode, rec.Code, rec.Body.String())
}

func TestServer_home(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/", "", nil)
	checkCode(t, rec, http.StatusOK)
	assert.Equal(t, "Welcome to StudyFlow API!", rec.Body.String())
}

func TestServer_authRequired(t *testing.T) {
	app := newTestApp(t)

	ghost := user.User{ID: "ghost", Username: "ghost", Roles: []string{user.RoleStudent}}
	naughty := app.createUser("naughty", []string{user.RoleStudent}, false)

	paths := []string{"/v1/grades", "/v1/gpa", "/v1/assignments", "/v1/sessions", "/v1/timer", "/v1/users/me"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := app.do(http.MethodGet, path, "", nil)
			checkCode(t, rec, http.StatusUnauthorized)

			rec = app.do(http.MethodGet, path, "not-a-jwt", nil)
			checkCode(t, rec, http.StatusUnauthorized)

			// deleted user
			rec = app.do(http.MethodGet, path, app.token(ghost), nil)
			checkCode(t, rec, http.StatusUnauthorized)

			rec = app.do(http.MethodGet, path, app.token(naughty), nil)
			checkCode(t, rec, http.StatusForbidden)
		})
	}
}
