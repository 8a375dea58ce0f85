// Package echoapi exposes the gym management services over HTTP with echo.
package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/certification"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/complaint"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/maintenance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/plan"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc          *user.Service
		MemberSvc        *member.Service
		AttendanceSvc    *attendance.Service
		MaintenanceSvc   *maintenance.Service
		ComplaintSvc     *complaint.Service
		FeedbackSvc      *feedback.Service
		PlanSvc          *plan.Service
		CertificationSvc *certification.Service

		DisableReqLogs bool
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		auth     *authenticator
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		auth:     newAuthenticator(deps.Conf, deps.UserSvc),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.BodyLimit("60M"))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug
	s.app.Binder = &binder{validate: s.deps.Validate}

	s.app.GET("/", s.home)
	if conf.Uploads.Backend == core.UploadsDisk && conf.Uploads.Dir != "" {
		s.app.Static("/uploads", conf.Uploads.Dir)
	}

	authed := []echo.MiddlewareFunc{s.auth.jwt, s.auth.loadUser}

	s.registerUserAPI(s.app.Group("/user"), authed)
	s.registerMemberAPI(s.app.Group("/user/members", authed...))
	s.registerMaintenanceAPI(s.app.Group("/user/maintenance", authed...))
	s.registerCertificationAPI(s.app.Group("/user/certifications", authed...))
	s.registerAttendanceAPI(s.app.Group("/attendance", authed...))
	s.registerPlanAPI(s.app.Group("/membership-plans", authed...))
	s.registerComplaintAPI(s.app.Group("/complaints"), authed)
	s.registerFeedbackAPI(s.app.Group("/feedback"), authed)
}

// Start serves until the server is shut down; failures are reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"name": s.deps.Conf.AppName, "build": s.deps.Conf.Build})
}
