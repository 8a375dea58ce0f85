package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/certification"
)

type certificationApi struct {
	svc *certification.Service
}

func (s *Server) registerCertificationAPI(g *echo.Group) {
	api := certificationApi{svc: s.deps.CertificationSvc}

	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.replace)
	g.DELETE("/:id", api.destroy)
}

func (api *certificationApi) owned(ctx echo.Context) (certification.Certification, error) {
	return api.svc.GetOwned(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("id"))
}

func (api *certificationApi) create(ctx echo.Context) error {
	var data certification.CertificationInput
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	c, err := api.svc.Create(ctx.Request().Context(), contextUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "creating certification")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *certificationApi) query(ctx echo.Context) error {
	certs, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID)
	if err != nil {
		return errors.Wrap(err, "querying certifications")
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *certificationApi) retrieve(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.View(c))
}

func (api *certificationApi) replace(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	var data certification.CertificationInput
	if err = ctx.Bind(&data); err != nil {
		return err
	}

	v, err := api.svc.Replace(ctx.Request().Context(), c, data)
	if err != nil {
		return errors.Wrap(err, "replacing certification")
	}
	return ctx.JSON(http.StatusOK, v)
}

func (api *certificationApi) destroy(ctx echo.Context) error {
	c, err := api.owned(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), c); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
