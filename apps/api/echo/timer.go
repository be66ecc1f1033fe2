package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/timer"
)

type timerApi struct {
	svc      timer.Service
	validate *validator.Validate
}

func registerTimerAPI(g *echo.Group, svc timer.Service, validate *validator.Validate) {
	api := timerApi{svc: svc, validate: validate}

	g.GET("", api.state)
	g.POST("/progress", api.progress)
	g.POST("/complete", api.transition(svc.Complete, "completing interval"))
	g.POST("/skip", api.transition(svc.Skip, "skipping interval"))
	g.POST("/reset", api.transition(svc.Reset, "resetting timer"))
}

func (api *timerApi) state(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	v, err := api.svc.State(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "getting timer state")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *timerApi) progress(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data timer.ProgressReport
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressReport")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	v, err := api.svc.RecordProgress(ctx.Request().Context(), uid, *data.Seconds)
	if err != nil {
		return errors.Wrap(err, "recording timer progress")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *timerApi) transition(
	fn func(ctx context.Context, userID string) (timer.View, error),
	action string,
) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		uid, err := contextUserID(ctx)
		if err != nil {
			return err
		}
		v, err := fn(ctx.Request().Context(), uid)
		if err != nil {
			return errors.Wrap(err, action)
		}
		return ctx.JSON(http.StatusOK, v)
	}
}
