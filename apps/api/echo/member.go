package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
)

type memberApi struct {
	svc *member.Service
}

func (s *Server) registerMemberAPI(g *echo.Group) {
	api := memberApi{svc: s.deps.MemberSvc}

	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/stats", api.stats)
	g.GET("/:id", api.retrieve)
	g.PATCH("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// owned loads the member of the :id path param, if owned by the context user.
func (api *memberApi) owned(ctx echo.Context) (member.Member, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	m, err := api.svc.Create(ctx.Request().Context(), contextUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "creating member")
	}
	return ctx.JSON(http.StatusCreated, m)
}

func (api *memberApi) query(ctx echo.Context) error {
	var filter member.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return err
	}

	members, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) stats(ctx echo.Context) error {
	stats, err := api.svc.Stats(ctx.Request().Context(), contextUser(ctx).ID)
	if err != nil {
		return errors.Wrap(err, "computing member stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	m, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.View(m))
}

func (api *memberApi) update(ctx echo.Context) error {
	m, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data member.UpdateMember
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	v, err := api.svc.Update(ctx.Request().Context(), m, data)
	if err != nil {
		return errors.Wrap(err, "updating member")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *memberApi) destroy(ctx echo.Context) error {
	m, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), m); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
