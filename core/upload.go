package core

import (
	"context"
	"io"
)

// MaxEvidenceFiles is the number of files a single complaint or feedback may carry.
const MaxEvidenceFiles = 5

type (
	// Evidence is an uploaded image or video attached to a complaint or feedback.
	Evidence struct {
		URL      string `json:"url" bson:"url"`
		Key      string `json:"key" bson:"key"`
		Filename string `json:"filename" bson:"filename"`
		MimeType string `json:"mimetype" bson:"mimetype"`
		Size     int64  `json:"size" bson:"size"`
	}

	// Upload is a file received from a client, opened lazily.
	Upload struct {
		Filename string
		Size     int64
		Open     func() (io.ReadCloser, error)
	}

	// FileStorage persists uploaded content under a key and returns its public URL.
	FileStorage interface {
		Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (url string, err error)
		Delete(ctx context.Context, key string) error
	}

	// EvidenceUploader checks and stores the files of a submission.
	EvidenceUploader interface {
		SaveEvidence(ctx context.Context, uploads []Upload) ([]Evidence, error)
		// DeleteEvidence removes stored files, logging the ones it could not remove.
		DeleteEvidence(ctx context.Context, evidence []Evidence)
	}
)
