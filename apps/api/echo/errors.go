package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/attendance"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core/user"
)

var (
	errUnauthorized       = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAccountDeactivated = echo.NewHTTPError(http.StatusUnauthorized, "account deactivated")
	errInvalidInput       = "invalid input"
)

// errorResponse is the body of every error response.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var res errorResponse

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			code = origErr.Code
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
			}
			res.Error = fmt.Sprint(origErr.Message)
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			res.Error = errInvalidInput
			res.Fields = make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				res.Fields[vErr.Field()] = vErr.Translate(translator)
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			res.Error = origErr.Error()
			if len(origErr.Fields) > 0 {
				if origErr.Err == nil {
					res.Error = errInvalidInput
				}
				res.Fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					res.Fields[fErr.Field] = fErr.Error
				}
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			res.Error = origErr.Error()
		default:
			switch origErr {
			case core.ErrNotOwner, user.ErrInvalidCredentials, user.ErrAccountDeactivated:
				code = http.StatusUnauthorized
				res.Error = origErr.Error()
			case attendance.ErrAlreadyExist:
				code = http.StatusConflict
				res.Error = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				res.Error = http.StatusText(http.StatusInternalServerError)
				if ctx.Echo().Debug {
					res.Error = err.Error()
				}

				usr, ok := ctx.Get(contextUserKey).(user.User)
				if !ok {
					if claims, cErr := getContextClaims(ctx); cErr == nil {
						usr = user.User{ID: claims.Subject, Name: claims.Name, Email: claims.Email}
					}
				}
				logger.Error(res.Error, errors.Wrap(err, http.StatusText(code)), usr)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, res)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
