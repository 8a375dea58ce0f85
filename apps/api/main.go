package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register the /debug/pprof handlers
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	echoapi "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/apps/api/echo"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/certification"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/complaint"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/feedback"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/maintenance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/member"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/plan"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
	emailsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/email"
	logsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/logger"
	uploadsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/uploads"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database/docrepos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	db, err := database.Open(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = db.Close(context.Background()); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()
	if err = database.Migrate(ctx, db); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	if err = core.ParseEmailTemplates(); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("dbEngine").Set(conf.Database.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server, err := newServer(ctx, conf, db, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// newServer builds the services on top of db and the API server exposing them.
func newServer(ctx context.Context, conf *core.Config, db *database.DB, logger core.Logger) (*echoapi.Server, error) {
	var mailSvc core.EmailService
	if conf.Debug || conf.TestMode {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	storage, err := uploadsvc.NewStorage(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "setting up uploads storage")
	}
	uploader := uploadsvc.NewUploader(storage, conf, logger)

	usrSvc := user.NewService(docrepos.NewUserRepository(db), mailSvc, conf)
	memberSvc := member.NewService(docrepos.NewMemberRepository(db), usrSvc, conf)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	member.InitValidators(validate, translator)
	plan.InitValidators(validate)

	return echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:             conf,
			Logger:           logger,
			Validate:         validate,
			Translator:       translator,
			UserSvc:          usrSvc,
			MemberSvc:        memberSvc,
			AttendanceSvc:    attendance.NewService(docrepos.NewAttendanceRepository(db), memberSvc),
			MaintenanceSvc:   maintenance.NewService(docrepos.NewMaintenanceRepository(db)),
			ComplaintSvc:     complaint.NewService(docrepos.NewComplaintRepository(db), usrSvc, uploader, mailSvc),
			FeedbackSvc:      feedback.NewService(docrepos.NewFeedbackRepository(db), usrSvc, uploader, mailSvc),
			PlanSvc:          plan.NewService(docrepos.NewPlanRepository(db)),
			CertificationSvc: certification.NewService(docrepos.NewCertificationRepository(db)),
		},
	), nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
