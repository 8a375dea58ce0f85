package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
)

type feedbackApi struct {
	svc *feedback.Service
}

func (s *Server) registerFeedbackAPI(g *echo.Group, authed []echo.MiddlewareFunc) {
	api := feedbackApi{svc: s.deps.FeedbackSvc}

	g.POST("", api.submit)

	g.GET("", api.query, authed...)
	g.GET("/summary", api.summary, authed...)
	g.GET("/:id", api.retrieve, authed...)
	g.PATCH("/:id", api.update, authed...)
	g.DELETE("/:id", api.destroy, authed...)
}

func (api *feedbackApi) owned(ctx echo.Context) (feedback.Feedback, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *feedbackApi) submit(ctx echo.Context) error {
	var data feedback.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	files, err := formFiles(ctx)
	if err != nil {
		return err
	}

	fb, err := api.svc.Submit(ctx.Request().Context(), data, files)
	if err != nil {
		return errors.Wrap(err, "submitting feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *feedbackApi) query(ctx echo.Context) error {
	var filter feedback.QueryFilter
	if err := bindRaw(ctx, &filter); err != nil {
		return err
	}

	all, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying feedback")
	}
	return ctx.JSON(http.StatusOK, all)
}

func (api *feedbackApi) summary(ctx echo.Context) error {
	sum, err := api.svc.Summary(ctx.Request().Context(), contextUser(ctx).ID)
	if err != nil {
		return errors.Wrap(err, "summarizing feedback")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *feedbackApi) retrieve(ctx echo.Context) error {
	fb, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (api *feedbackApi) update(ctx echo.Context) error {
	fb, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data feedback.UpdateFeedback
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	if fb, err = api.svc.Update(ctx.Request().Context(), fb, data); err != nil {
		return errors.Wrap(err, "updating feedback")
	}
	return ctx.JSON(http.StatusOK, fb)
}

func (api *feedbackApi) destroy(ctx echo.Context) error {
	fb, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), fb); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
