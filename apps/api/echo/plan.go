package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/plan"
)

type planApi struct {
	svc *plan.Service
}

func (s *Server) registerPlanAPI(g *echo.Group) {
	api := planApi{svc: s.deps.PlanSvc}

	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.replace)
	g.DELETE("/:id", api.destroy)
}

func (api *planApi) owned(ctx echo.Context) (plan.Plan, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *planApi) create(ctx echo.Context) error {
	var data plan.PlanInput
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), contextUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "creating membership plan")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *planApi) query(ctx echo.Context) error {
	var filter plan.QueryFilter
	if err := bindRaw(ctx, &filter); err != nil {
		return err
	}

	plans, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying membership plans")
	}
	return ctx.JSON(http.StatusOK, plans)
}

func (api *planApi) retrieve(ctx echo.Context) error {
	p, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *planApi) replace(ctx echo.Context) error {
	p, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data plan.PlanInput
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	if p, err = api.svc.Replace(ctx.Request().Context(), p, data); err != nil {
		return errors.Wrap(err, "replacing membership plan")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *planApi) destroy(ctx echo.Context) error {
	p, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), p); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
