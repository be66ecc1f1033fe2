package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/studyflow/studyflow/core/predictor"
)

type gradeApi struct {
	svc      predictor.Service
	validate *validator.Validate
}

func registerGradeAPI(g *echo.Group, svc predictor.Service, validate *validator.Validate) {
	api := gradeApi{svc: svc, validate: validate}

	g.GET("", api.overview)
	g.GET("/summary", api.summary)
	g.POST("/predict", api.predict)
	g.GET("/target", api.getTarget)
	g.PUT("/target", api.setTarget)

	g.GET("/assessments", api.list)
	g.POST("/assessments", api.create)
	g.GET("/assessments/:id", api.retrieve)
	g.PUT("/assessments/:id", api.update)
	g.DELETE("/assessments/:id", api.destroy)
}

func (api *gradeApi) overview(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	ov, err := api.svc.Overview(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "getting grades overview")
	}
	return ctx.JSON(http.StatusOK, ov)
}

func (api *gradeApi) summary(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	ov, err := api.svc.Overview(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "getting grades overview")
	}
	return ctx.JSON(http.StatusOK, ov.Summary)
}

func (api *gradeApi) predict(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data predictor.PredictRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PredictRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	summary, err := api.svc.Predict(ctx.Request().Context(), uid, data)
	if err != nil {
		return errors.Wrap(err, "predicting grade")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *gradeApi) getTarget(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	target, err := api.svc.GetTarget(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "getting target")
	}
	return ctx.JSON(http.StatusOK, target)
}

func (api *gradeApi) setTarget(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data predictor.SetTarget
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetTarget")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	target, err := api.svc.SetTarget(ctx.Request().Context(), uid, *data.Target)
	if err != nil {
		return errors.Wrap(err, "setting target")
	}
	return ctx.JSON(http.StatusOK, target)
}

func (api *gradeApi) list(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	assessments, err := api.svc.List(ctx.Request().Context(), uid)
	if err != nil {
		return errors.Wrap(err, "listing assessments")
	}
	return ctx.JSON(http.StatusOK, assessments)
}

func (api *gradeApi) create(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data predictor.NewAssessment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	a, err := api.svc.Create(ctx.Request().Context(), uid, data)
	if err != nil {
		return errors.Wrap(err, "creating assessment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	a, err := api.svc.Get(ctx.Request().Context(), uid, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting assessment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *gradeApi) update(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	var data predictor.UpdateAssessment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssessment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	a, err := api.svc.Update(ctx.Request().Context(), uid, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating assessment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	uid, err := contextUserID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), uid, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting assessment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
