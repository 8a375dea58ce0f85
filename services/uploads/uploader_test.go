package uploadsvc

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func upload(name string, content []byte) core.Upload {
	return core.Upload{
		Filename: name,
		Size:     int64(len(content)),
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(content)), nil },
	}
}

func newTestUploader(t *testing.T) (*Uploader, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := NewDiskStorage(dir, "/uploads/")
	require.NoError(t, err)
	conf := core.NewTestConfig()
	conf.Uploads.MaxSize = 1 << 20
	return NewUploader(storage, conf, nil), dir
}

func assertEvidenceError(t *testing.T, err error) {
	t.Helper()
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "evidence", verr.Fields[0].Field)
}

func TestUploader_SaveEvidence(t *testing.T) {
	up, dir := newTestUploader(t)

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 5000)...)
	evidence, err := up.SaveEvidence(context.Background(), []core.Upload{upload("dir/photo.png", content)})
	require.NoError(t, err)
	require.Len(t, evidence, 1)

	ev := evidence[0]
	assert.Equal(t, "image/png", ev.MimeType)
	assert.Equal(t, "photo.png", ev.Filename)
	assert.Equal(t, int64(len(content)), ev.Size)
	assert.True(t, strings.HasSuffix(ev.Key, ".png"))
	assert.Equal(t, "/uploads/"+ev.Key, ev.URL)

	stored, err := os.ReadFile(filepath.Join(dir, ev.Key))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploader_Rejections(t *testing.T) {
	up, dir := newTestUploader(t)
	ctx := context.Background()

	t.Run("too many files", func(t *testing.T) {
		files := make([]core.Upload, core.MaxEvidenceFiles+1)
		for i := range files {
			files[i] = upload("p.png", pngHeader)
		}
		_, err := up.SaveEvidence(ctx, files)
		assertEvidenceError(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		big := core.Upload{Filename: "big.png", Size: 2 << 20, Open: upload("big.png", pngHeader).Open}
		_, err := up.SaveEvidence(ctx, []core.Upload{big})
		assertEvidenceError(t, err)
	})

	t.Run("not media rolls back", func(t *testing.T) {
		_, err := up.SaveEvidence(ctx, []core.Upload{
			upload("ok.png", pngHeader),
			upload("notes.txt", []byte("just some text")),
		})
		assertEvidenceError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestUploader_DeleteEvidence(t *testing.T) {
	up, dir := newTestUploader(t)

	evidence, err := up.SaveEvidence(context.Background(), []core.Upload{
		upload("a.png", pngHeader),
		upload("b.png", pngHeader),
	})
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	up.DeleteEvidence(ctx, append(evidence, core.Evidence{Key: "gone.png"}))

	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiskStorage_InvalidKey(t *testing.T) {
	storage, err := NewDiskStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), "../escape.png", "image/png", bytes.NewReader(pngHeader), 0)
	assert.Error(t, err)
	assert.NoError(t, storage.Delete(context.Background(), "missing.png"))
}

func TestObjectBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		s3conf  core.S3Config
		baseURL string
		want    string
	}{
		{"explicit base url", core.S3Config{Bucket: "b", Region: "eu-west-1"}, "https://cdn.gym.test/", "https://cdn.gym.test"},
		{"custom endpoint", core.S3Config{Bucket: "b", Endpoint: "http://localhost:9000"}, "/uploads", "http://localhost:9000/b"},
		{"aws", core.S3Config{Bucket: "b", Region: "eu-west-1"}, "/uploads", "https://b.s3.eu-west-1.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectBaseURL(tt.s3conf, tt.baseURL))
		})
	}
}
