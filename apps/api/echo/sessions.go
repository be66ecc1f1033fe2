package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/study"
)

type studyApi struct {
	svc      study.Service
	validate *validator.Validate
}

func registerStudyAPI(g *echo.Group, svc study.Service, validate *validator.Validate) {
	api := studyApi{svc: svc, validate: validate}

	g.GET("", api.list)
	g.POST("", api.create)
	g.GET("/stats", api.stats)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *studyApi) list(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	sessions, err := api.svc.List(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "listing study sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *studyApi) stats(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "computing study stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *studyApi) create(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.NewSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), uid, data)
	if err != nil {
		return errors.Wrap(err, "logging study session")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studyApi) update(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data study.UpdateSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSession")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), uid, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating study session")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studyApi) destroy(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), uid, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting study session")
	}
	return ctx.NoContent(http.StatusNoContent)
}
