package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
)

type attendanceApi struct {
	svc *attendance.Service
}

func (s *Server) registerAttendanceAPI(g *echo.Group) {
	api := attendanceApi{svc: s.deps.AttendanceSvc}

	g.POST("", api.mark)
	g.GET("", api.roster)
	g.DELETE("", api.unmark)
	g.GET("/all", api.query)
	g.GET("/summary/:memberId", api.summary)
}

type (
	// RosterRequest selects the day of a roster and narrows its members.
	RosterRequest struct {
		Date string `query:"date"`
		member.QueryFilter
	}

	SummaryRequest struct {
		From string `query:"from"`
		To   string `query:"to"`
	}
)

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkAttendance
	if err := ctx.Bind(&data); err != nil {
		return err
	}

	a, err := api.svc.Mark(ctx.Request().Context(), contextUser(ctx).ID, data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *attendanceApi) roster(ctx echo.Context) error {
	var req RosterRequest
	if err := bindRaw(ctx, &req); err != nil {
		return err
	}

	roster, err := api.svc.Roster(ctx.Request().Context(), contextUser(ctx).ID, req.Date, req.QueryFilter)
	if err != nil {
		return errors.Wrap(err, "building roster")
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *attendanceApi) unmark(ctx echo.Context) error {
	err := api.svc.Unmark(ctx.Request().Context(), contextUser(ctx).ID, ctx.QueryParam("memberId"), ctx.QueryParam("date"))
	if err != nil {
		return errors.Wrap(err, "unmarking attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	var filter attendance.QueryFilter
	if err := bindRaw(ctx, &filter); err != nil {
		return err
	}

	records, err := api.svc.Query(ctx.Request().Context(), contextUser(ctx).ID, filter)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	var req SummaryRequest
	if err := bindRaw(ctx, &req); err != nil {
		return err
	}

	sum, err := api.svc.MemberSummary(ctx.Request().Context(), contextUser(ctx).ID, ctx.Param("memberId"), req.From, req.To)
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	return ctx.JSON(http.StatusOK, sum)
}
