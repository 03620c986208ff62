package httputil

import (
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIHeaders(t *testing.T) {
	h := APIHeaders("token-1", "anon-1")
	assert.Equal(t, "token-1", h.Get("X-Csrf-Token"))
	assert.Equal(t, "anon-1", h.Get("X-Anon-Id"))
	assert.Equal(t, UserAgent, h.Get("User-Agent"))

	// Missing credentials mean missing headers, not empty ones.
	h = APIHeaders("", "")
	_, hasCSRF := h["X-Csrf-Token"]
	_, hasAnon := h["X-Anon-Id"]
	assert.False(t, hasCSRF)
	assert.False(t, hasAnon)
}

func TestReadBody_Gzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("compressed payload"))
		gz.Close()
	}))
	defer srv.Close()

	// Explicit Accept-Encoding disables the transport's transparent
	// decompression, so ReadBody has to do the work itself.
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := ReadBody(resp)
	require.NoError(t, err)
	assert.Equal(t, "compressed payload", string(body))
}

func TestDoWithRetry_RecoversFrom5xx(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := DoWithRetry(srv.Client(), req, 2)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), calls.Load())
}

func TestDoWithRetry_GivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(srv.Client(), req, 1)
	assert.Error(t, err)
}
