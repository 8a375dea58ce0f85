// Package uploadsvc checks evidence files and hands them to a core.FileStorage backend.
package uploadsvc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

// sniffLen is how much of a file mimetype needs to recognise it.
const sniffLen = 3072

const errField = "evidence"

type Uploader struct {
	storage core.FileStorage
	maxSize int64
	logger  core.Logger
}

var _ core.EvidenceUploader = (*Uploader)(nil)

func NewUploader(storage core.FileStorage, conf *core.Config, logger core.Logger) *Uploader {
	return &Uploader{storage: storage, maxSize: conf.Uploads.MaxSize, logger: logger}
}

func invalid(format string, args ...interface{}) error {
	return core.NewValidationError(nil, core.FieldError{Field: errField, Error: fmt.Sprintf(format, args...)})
}

// SaveEvidence stores up to core.MaxEvidenceFiles images or videos.
// Nothing is kept if any file is rejected.
func (up *Uploader) SaveEvidence(ctx context.Context, uploads []core.Upload) ([]core.Evidence, error) {
	if len(uploads) > core.MaxEvidenceFiles {
		return nil, invalid("at most %d files may be attached", core.MaxEvidenceFiles)
	}
	for _, u := range uploads {
		if up.maxSize > 0 && u.Size > up.maxSize {
			return nil, invalid("%s exceeds the %d MB limit", u.Filename, up.maxSize>>20)
		}
	}

	saved := make([]core.Evidence, 0, len(uploads))
	for _, u := range uploads {
		ev, err := up.save(ctx, u)
		if err != nil {
			up.DeleteEvidence(ctx, saved)
			return nil, err
		}
		saved = append(saved, ev)
	}
	return saved, nil
}

func (up *Uploader) save(ctx context.Context, u core.Upload) (core.Evidence, error) {
	rc, err := u.Open()
	if err != nil {
		return core.Evidence{}, errors.Wrapf(err, "opening %s", u.Filename)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return core.Evidence{}, errors.Wrapf(err, "reading %s", u.Filename)
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	kind := strings.SplitN(mtype.String(), "/", 2)[0]
	if kind != "image" && kind != "video" {
		return core.Evidence{}, invalid("%s is not an image or a video", u.Filename)
	}

	key := uuid.New().String() + mtype.Extension()
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	url, err := up.storage.Save(ctx, key, contentType, io.MultiReader(bytes.NewReader(head), rc), u.Size)
	if err != nil {
		return core.Evidence{}, errors.Wrapf(err, "storing %s", u.Filename)
	}
	return core.Evidence{
		URL:      url,
		Key:      key,
		Filename: path.Base(u.Filename),
		MimeType: contentType,
		Size:     u.Size,
	}, nil
}

// DeleteEvidence removes evidence from storage, even when ctx is already cancelled.
func (up *Uploader) DeleteEvidence(ctx context.Context, evidence []core.Evidence) {
	ctx = context.WithoutCancel(ctx)
	for _, ev := range evidence {
		if err := up.storage.Delete(ctx, ev.Key); err != nil && up.logger != nil {
			up.logger.Warn(fmt.Sprintf("removing evidence %s: %v", ev.Key, err), err)
		}
	}
}
