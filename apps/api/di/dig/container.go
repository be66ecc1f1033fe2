package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

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
	"github.com/studyflow/studyflow/storage"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// DepsParam collects what the API server needs.
type DepsParam struct {
	dig.In
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

func newRollbarLogger(conf *core.Config, prefix string, flags int) *logsvc.RollbarLogger {
	stdLogger := log.New(os.Stdout, prefix, flags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newLogger(conf *core.Config) core.Logger {
	return newRollbarLogger(conf, "API : ", log.LstdFlags)
}

func newDBLogger(conf *core.Config) core.Logger {
	return newRollbarLogger(conf, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
}

func newStores(conf *core.Config, loggerParam DBLoggerParam) *storage.Stores {
	setUp := func() (*storage.Stores, error) {
		stores, err := storage.Open(context.Background(), conf)
		if err != nil {
			return nil, err
		}
		if err = stores.Migrate(conf); err != nil {
			_ = stores.Close()
			return nil, err
		}
		return stores, nil
	}

	stores, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	loggerParam.Logger.Info(fmt.Sprintf("database engine: %s", stores.Engine))
	return stores
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridApiKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator(translator ut.Translator, logger core.Logger) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator, logger)
	gpa.InitValidators(validate, translator)
	return validate
}

func newDeps(p DepsParam) *echoapi.Deps {
	return &echoapi.Deps{
		Logger:        p.Logger,
		Validate:      p.Validate,
		Translator:    p.Translator,
		UserSvc:       p.UserSvc,
		GradeSvc:      p.GradeSvc,
		GPASvc:        p.GPASvc,
		AssignmentSvc: p.AssignmentSvc,
		StudySvc:      p.StudySvc,
		TimerSvc:      p.TimerSvc,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStores))
	must(c.Provide(func(s *storage.Stores) user.Repository { return s.Users }))
	must(c.Provide(func(s *storage.Stores) predictor.Repository { return s.Grades }))
	must(c.Provide(func(s *storage.Stores) gpa.Repository { return s.Courses }))
	must(c.Provide(func(s *storage.Stores) assignment.Repository { return s.Assignments }))
	must(c.Provide(func(s *storage.Stores) study.Repository { return s.Sessions }))
	must(c.Provide(func(s *storage.Stores) timer.Repository { return s.Timers }))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(predictor.NewService))
	must(c.Provide(gpa.NewService))
	must(c.Provide(assignment.NewService))
	must(c.Provide(study.NewService))
	must(c.Provide(timer.NewService))
	must(c.Provide(newDeps))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
