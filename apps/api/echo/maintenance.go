package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/maintenance"
)

type maintenanceApi struct {
	svc *maintenance.Service
}

func (s *Server) registerMaintenanceAPI(g *echo.Group) {
	api := maintenanceApi{svc: s.deps.MaintenanceSvc}

	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.PATCH("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

func (api *maintenanceApi) owned(ctx echo.Context) (maintenance.Report, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *maintenanceApi) create(ctx echo.Context) error {
	var data maintenance.NewReport
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	r, err := api.svc.Create(ctx.Request().Context(), contextUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "creating maintenance report")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *maintenanceApi) query(ctx echo.Context) error {
	var filter maintenance.QueryFilter
	if err := bindRaw(ctx, &filter); err != nil {
		return err
	}

	reports, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying maintenance reports")
	}
	return ctx.JSON(http.StatusOK, reports)
}

func (api *maintenanceApi) retrieve(ctx echo.Context) error {
	r, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *maintenanceApi) update(ctx echo.Context) error {
	r, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data maintenance.UpdateReport
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	if r, err = api.svc.Update(ctx.Request().Context(), r, data); err != nil {
		return errors.Wrap(err, "updating maintenance report")
	}
	return ctx.JSON(http.StatusOK, r)
}

func (api *maintenanceApi) destroy(ctx echo.Context) error {
	r, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), r); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
