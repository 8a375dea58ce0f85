package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/complaint"
)

type complaintApi struct {
	svc *complaint.Service
}

func (s *Server) registerComplaintAPI(g *echo.Group, authed []echo.MiddlewareFunc) {
	api := complaintApi{svc: s.deps.ComplaintSvc}

	// public: members submit to a gym by its id
	g.POST("", api.submit)

	g.GET("", api.query, authed...)
	g.GET("/:id", api.retrieve, authed...)
	g.PATCH("/:id", api.update, authed...)
	g.DELETE("/:id", api.destroy, authed...)
}

func (api *complaintApi) owned(ctx echo.Context) (complaint.Complaint, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *complaintApi) submit(ctx echo.Context) error {
	var data complaint.NewComplaint
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	files, err := formFiles(ctx)
	if err != nil {
		return err
	}

	c, err := api.svc.Submit(ctx.Request().Context(), data, files)
	if err != nil {
		return errors.Wrap(err, "submitting complaint")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *complaintApi) query(ctx echo.Context) error {
	var filter complaint.QueryFilter
	if err := bindRaw(ctx, &filter); err != nil {
		return err
	}

	complaints, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying complaints")
	}
	return ctx.JSON(http.StatusOK, complaints)
}

func (api *complaintApi) retrieve(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *complaintApi) update(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data complaint.UpdateComplaint
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	if c, err = api.svc.Update(ctx.Request().Context(), c, data); err != nil {
		return errors.Wrap(err, "updating complaint")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *complaintApi) destroy(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), c); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
