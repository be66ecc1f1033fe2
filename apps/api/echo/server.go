package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core"
	"github.com/studyflow/studyflow/core/assignment"
	"github.com/studyflow/studyflow/core/gpa"
	"github.com/studyflow/studyflow/core/predictor"
	"github.com/studyflow/studyflow/core/study"
	"github.com/studyflow/studyflow/core/timer"
	"github.com/studyflow/studyflow/core/user"
)

type (
	// Deps holds everything the API needs to serve requests.
	Deps struct {
		Logger        core.Logger
		Validate      *validator.Validate
		Translator    ut.Translator
		UserSvc       user.Service
		GradeSvc      predictor.Service
		GPASvc        gpa.Service
		AssignmentSvc assignment.Service
		StudySvc      study.Service
		TimerSvc      timer.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		conf     *core.Config
		deps     *Deps
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(conf *core.Config, deps *Deps) Server {
	s := &server{
		conf:     conf,
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(conf, deps.UserSvc),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := s.conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !(s.conf.Server.DisableReqLogs || s.conf.TestMode) {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig)
	authed := []echo.MiddlewareFunc{jwt, s.auth.activeUserMiddleware}

	registerUserAPI(v1, jwt, s.auth, s.deps)

	registerGradeAPI(v1.Group("/grades", authed...), s.deps.GradeSvc, s.deps.Validate)
	registerGPAAPI(v1.Group("/gpa", authed...), s.deps.GPASvc, s.deps.Validate)
	registerAssignmentAPI(v1.Group("/assignments", authed...), s.deps.AssignmentSvc, s.deps.Validate)
	registerStudyAPI(v1.Group("/sessions", authed...), s.deps.StudySvc, s.deps.Validate)
	registerTimerAPI(v1.Group("/timer", authed...), s.deps.TimerSvc, s.deps.Validate)
}

// Start serves until the server is shut down. Listening errors are sent to Errors().
func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- errors.Wrap(err, "starting server")
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
