package vinted

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMarketplace emulates the item-upload API surface the relist flow hits.
type fakeMarketplace struct {
	mu         sync.Mutex
	events     []string
	photoCount int64
	failDelete bool
}

func (f *fakeMarketplace) record(event string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeMarketplace) handler(srvURL func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v2/item_upload/items/42":
			f.record("fetch")
			fmt.Fprintf(w, `{"item":{
				"id":42,"title":"Jacket","description":"Nice one",
				"brand":{"id":53,"title":"Levi's"},"status":{"id":2,"title":"Very good"},
				"price":{"amount":"25.5","currency_code":"EUR"},
				"photos":[
					{"id":1,"full_size_url":"%s/photos/a.jpg"},
					{"id":2,"orientation":90,"url":"%s/photos/b.jpg"}
				]}}`, srvURL(), srvURL())

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/photos/"):
			w.Write([]byte("bytes-of-" + r.URL.Path))

		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/photos":
			f.mu.Lock()
			f.photoCount++
			id := f.photoCount
			f.mu.Unlock()
			f.record("upload")
			json.NewEncoder(w).Encode(UploadedPhoto{ID: 100 + id})

		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/item_upload/items":
			f.record("create")
			var payload CreateItemPayload
			json.NewDecoder(r.Body).Decode(&payload)
			fmt.Fprintf(w, `{"item":{"id":999,"url":"https://www.vinted.fr/items/999"}}`)

		case r.Method == http.MethodPost && r.URL.Path == "/api/v2/items/42/delete":
			f.record("delete")
			if f.failDelete {
				w.WriteHeader(http.StatusInternalServerError)
			}

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestRelister(f *fakeMarketplace, opts PayloadOptions) (*Relister, *httptest.Server) {
	var srv *httptest.Server
	srv = httptest.NewServer(f.handler(func() string { return srv.URL }))

	client := NewClient(srv.Client(), srv.URL, zap.NewNop())
	pipeline := NewPhotoPipeline(client, nil, zap.NewNop())
	return NewRelister(client, pipeline, opts, zap.NewNop()), srv
}

func TestRelist(t *testing.T) {
	f := &fakeMarketplace{}
	relister, srv := newTestRelister(f, PayloadOptions{})
	defer srv.Close()

	result, err := relister.Relist(context.Background(), 42, RelistOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(42), result.SourceID)
	assert.Equal(t, int64(999), result.NewID)
	assert.Equal(t, "https://www.vinted.fr/items/999", result.NewURL)
	assert.Equal(t, 2, result.PhotosUploaded)
	assert.Equal(t, 0, result.PhotosFailed)
	assert.False(t, result.SourceDeleted)

	assert.Equal(t, []string{"fetch", "upload", "upload", "create"}, f.events)
}

func TestRelist_DeleteSourceAfterCreate(t *testing.T) {
	f := &fakeMarketplace{}
	relister, srv := newTestRelister(f, PayloadOptions{})
	defer srv.Close()

	result, err := relister.Relist(context.Background(), 42, RelistOptions{DeleteSource: true})
	require.NoError(t, err)
	assert.True(t, result.SourceDeleted)

	// The source is only ever deleted once the copy exists.
	assert.Equal(t, []string{"fetch", "upload", "upload", "create", "delete"}, f.events)
}

func TestRelist_DeleteFailureSurfacesResult(t *testing.T) {
	f := &fakeMarketplace{failDelete: true}
	relister, srv := newTestRelister(f, PayloadOptions{})
	defer srv.Close()

	result, err := relister.Relist(context.Background(), 42, RelistOptions{DeleteSource: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete source")

	// The copy exists even though the run errored.
	require.NotNil(t, result)
	assert.Equal(t, int64(999), result.NewID)
	assert.False(t, result.SourceDeleted)
}

func TestRelist_ReusePhotos(t *testing.T) {
	f := &fakeMarketplace{}
	relister, srv := newTestRelister(f, PayloadOptions{})
	defer srv.Close()

	result, err := relister.Relist(context.Background(), 42, RelistOptions{ReusePhotos: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.PhotosUploaded)

	// No photo traffic at all: the record's ids were reassigned directly.
	assert.Equal(t, []string{"fetch", "create"}, f.events)
}

func TestRelist_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, zap.NewNop())
	relister := NewRelister(client, NewPhotoPipeline(client, nil, zap.NewNop()), PayloadOptions{}, zap.NewNop())

	_, err := relister.Relist(context.Background(), 42, RelistOptions{})
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
}

func TestRelist_NoPhotosOnSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"item":{"id":42,"title":"Jacket","price":"5"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, zap.NewNop())
	relister := NewRelister(client, NewPhotoPipeline(client, nil, zap.NewNop()), PayloadOptions{}, zap.NewNop())

	_, err := relister.Relist(context.Background(), 42, RelistOptions{})
	assert.ErrorIs(t, err, ErrNoPhotos)
}
