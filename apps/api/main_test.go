package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
	logsvc "github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/services/logger"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/database"
	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore/memstore"
)

func TestNewServer(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Uploads.Dir = t.TempDir()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	db := &database.DB{Store: memstore.New()}

	server, err := newServer(context.Background(), conf, db, logger)
	require.NoError(t, err)

	serve := func(method, path string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var home map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &home))
	assert.Equal(t, conf.AppName, home["name"])

	rec = serve(http.MethodPost, "/user/login", []byte(`{"email":"nobody@gym.test","password":"Gr3at&Strong!"}`))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = serve(http.MethodGet, "/user/members", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())

	rec = serve(http.MethodGet, "/complaints", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, rec.Body.String())
}

func TestNewServer_unknownUploadsBackend(t *testing.T) {
	conf := core.NewTestConfig()
	conf.Uploads.Backend = "ftp"
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)

	_, err := newServer(context.Background(), conf, &database.DB{Store: memstore.New()}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown uploads backend "ftp"`)
}
