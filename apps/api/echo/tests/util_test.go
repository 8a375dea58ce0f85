package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

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
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database/docrepos"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
)

const testPassword = "Gr3at&Strong!"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testApp struct {
	conf    *core.Config
	server  *echoapi.Server
	usrSvc  *user.Service
	mailSvc *emailsvc.ConsoleServiceMock
}

type httpErr struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := core.NewTestConfig()
	conf.Uploads.Dir = t.TempDir()

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	member.InitValidators(validate, translator)
	plan.InitValidators(validate)

	store := memstore.New()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	storage, err := uploadsvc.NewDiskStorage(conf.Uploads.Dir, conf.Uploads.BaseURL)
	require.NoError(t, err)
	uploader := uploadsvc.NewUploader(storage, conf, logger)

	usrSvc := user.NewService(docrepos.NewUserRepository(store), mailSvc, conf)
	memberSvc := member.NewService(docrepos.NewMemberRepository(store), usrSvc, conf)

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:             conf,
		Logger:           logger,
		Validate:         validate,
		Translator:       translator,
		UserSvc:          usrSvc,
		MemberSvc:        memberSvc,
		AttendanceSvc:    attendance.NewService(docrepos.NewAttendanceRepository(store), memberSvc),
		MaintenanceSvc:   maintenance.NewService(docrepos.NewMaintenanceRepository(store)),
		ComplaintSvc:     complaint.NewService(docrepos.NewComplaintRepository(store), usrSvc, uploader, mailSvc),
		FeedbackSvc:      feedback.NewService(docrepos.NewFeedbackRepository(store), usrSvc, uploader, mailSvc),
		PlanSvc:          plan.NewService(docrepos.NewPlanRepository(store)),
		CertificationSvc: certification.NewService(docrepos.NewCertificationRepository(store)),
		DisableReqLogs:   true,
	})
	return &testApp{conf: conf, server: server, usrSvc: usrSvc, mailSvc: mailSvc}
}

// createUser registers an owner and returns it with a valid token.
func (app *testApp) createUser(t *testing.T, name, email string) (user.User, string) {
	t.Helper()
	usr, err := app.usrSvc.Register(context.Background(), user.NewUser{Name: name, Email: email, Password: testPassword})
	require.NoError(t, err)
	return usr, app.token(t, usr)
}

func (app *testApp) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := echoapi.GenerateToken(app.conf, echoapi.GetUserClaims(app.conf, usr, time.Now()))
	require.NoError(t, err)
	return token
}

// do serves a JSON request, with body marshalled unless it already is []byte.
func (app *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case []byte:
		buf.Write(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return app.serve(req, token)
}

// doMultipart serves a multipart form request, files being attached under "evidence".
func (app *testApp) doMultipart(t *testing.T, path string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for name, content := range files {
		fw, err := w.CreateFormFile("evidence", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return app.serve(req, "")
}

func (app *testApp) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.server.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

// requireError checks the status and the error envelope of rec.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, code int) httpErr {
	t.Helper()
	require.Equal(t, code, rec.Code, rec.Body.String())
	var res httpErr
	decode(t, rec, &res)
	require.NotEmpty(t, res.Error)
	return res
}
