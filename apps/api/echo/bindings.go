package echoapi

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

const evidenceField = "evidence"

// cleaner is implemented by request payloads that normalize themselves before validation.
type cleaner interface {
	Clean()
}

// binder binds the request, cleans the payload then validates it.
type binder struct {
	echo.DefaultBinder
	validate *validator.Validate
}

func (b *binder) Bind(i interface{}, ctx echo.Context) error {
	if err := b.DefaultBinder.Bind(i, ctx); err != nil {
		return err
	}
	if c, ok := i.(cleaner); ok {
		c.Clean()
	}
	return b.validate.Struct(i)
}

// bindRaw binds without cleaning nor validating.
func bindRaw(ctx echo.Context, i interface{}) error {
	return new(echo.DefaultBinder).Bind(i, ctx)
}

// formFiles returns the evidence files of a multipart request; other requests carry none.
func formFiles(ctx echo.Context) ([]core.Upload, error) {
	if !strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "malformed multipart form").SetInternal(err)
	}
	headers := form.File[evidenceField]
	uploads := make([]core.Upload, 0, len(headers))
	for _, fh := range headers {
		uploads = append(uploads, newUpload(fh))
	}
	return uploads, nil
}

func newUpload(fh *multipart.FileHeader) core.Upload {
	return core.Upload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, errors.Wrap(err, "opening form file")
			}
			return f, nil
		},
	}
}
