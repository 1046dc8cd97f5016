// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{logger: &logger.Logger{Logger: zerolog.New(buf)}}
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestWithTraceID(t *testing.T) {
	existing := uuid.NewString()

	tests := []struct {
		name      string
		header    string
		wantReuse bool
	}{
		{name: "uuid from client is reused", header: existing, wantReuse: true},
		{name: "missing header", header: ""},
		{name: "non uuid header is replaced", header: "my-trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := bufferedHandler(&buf)

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(traceIDHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			got := rr.Header().Get(traceIDHeader)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			if tt.wantReuse {
				assert.Equal(t, existing, got)
			} else {
				assert.NotEqual(t, tt.header, got)
			}

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, got, line["trace_id"])
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := bufferedHandler(&buf)

	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging)
	router.Post("/api/lists", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("created"))
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/lists?x=1", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "/api/lists?x=1", line["uri"])
	assert.Equal(t, http.MethodPost, line["method"])
	assert.EqualValues(t, http.StatusCreated, line["status"])
	assert.EqualValues(t, len("created"), line["size"])
	assert.Contains(t, line, "duration")
	assert.Equal(t, rr.Header().Get(traceIDHeader), line["trace_id"])
}

func TestResponseWriter(t *testing.T) {
	t.Run("implicit 200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		_, err := w.Write([]byte("abc"))
		require.NoError(t, err)
		_, err = w.Write([]byte("de"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.status)
		assert.Equal(t, 5, w.size)
		assert.Equal(t, "abcde", rr.Body.String())
	})

	t.Run("second WriteHeader is ignored", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		w.WriteHeader(http.StatusNotFound)
		w.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusNotFound, w.status)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("unwrap and hijack", func(t *testing.T) {
		rr := httptest.NewRecorder()
		w := &responseWriter{ResponseWriter: rr}

		assert.Same(t, rr, w.Unwrap())

		_, _, err := w.Hijack()
		assert.Error(t, err, "recorder cannot be hijacked")
	})
}

func TestWithGZip(t *testing.T) {
	t.Run("compresses when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rr := httptest.NewRecorder()

		withGZip(okHandler("hello lists")).ServeHTTP(rr, req)

		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
		zr, err := gzip.NewReader(rr.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, "hello lists", string(body))
	})

	t.Run("plain without accept header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		withGZip(okHandler("hello")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "hello", rr.Body.String())
	})

	t.Run("websocket upgrade is left alone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		req.Header.Set("Upgrade", "websocket")
		rr := httptest.NewRecorder()

		withGZip(okHandler("raw")).ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "raw", rr.Body.String())
	})

	t.Run("decompresses request body", func(t *testing.T) {
		var compressed bytes.Buffer
		zw := gzip.NewWriter(&compressed)
		_, _ = zw.Write([]byte(`{"name":"Books"}`))
		require.NoError(t, zw.Close())

		req := httptest.NewRequest(http.MethodPost, "/", &compressed)
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		var got string
		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			got = string(body)
		})).ServeHTTP(rr, req)

		assert.Equal(t, `{"name":"Books"}`, got)
	})

	t.Run("corrupt request body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(okHandler("never")).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestWithETag(t *testing.T) {
	h := &Handler{logger: logger.Nop()}
	handler := h.withETag(okHandler(`[{"id":1}]`))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/lists", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, `[{"id":1}]`, rr.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/lists", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithETag_SkipsErrorsAndWrites(t *testing.T) {
	h := &Handler{logger: logger.Nop()}

	failing := h.withETag(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "list was not found", http.StatusNotFound)
	}))
	rr := httptest.NewRecorder()
	failing.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/lists/1", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, rr.Header().Get("ETag"))
	assert.Contains(t, rr.Body.String(), "list was not found")

	rr = httptest.NewRecorder()
	h.withETag(okHandler("created")).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/lists", nil))
	assert.Empty(t, rr.Header().Get("ETag"))
	assert.Equal(t, "created", rr.Body.String())
}

func TestCheckHTTPMethod(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/lists/{listID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/lists", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/lists/7", http.StatusOK},
		{http.MethodPost, "/api/lists", http.StatusCreated},
		{http.MethodDelete, "/api/lists/7", http.StatusNotFound},
		{http.MethodGet, "/api/lists", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
