package linkpreview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a", FirstURL("see https://example.com/a and http://other.io"))
	assert.Equal(t, "", FirstURL("no links here"))
	assert.Equal(t, "", FirstURL("ftp://not-http.example.com"))
}

func TestFetch_ExtractsOpenGraphMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head>
			<title>Fallback Title</title>
			<meta property="og:title" content="OG Title">
			<meta property="og:description" content="OG Description">
			<meta property="og:image" content="https://example.com/img.png">
			<meta property="og:site_name" content="Example">
		</head><body>ignored</body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(2 * time.Second)
	meta, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "OG Title", meta.Title)
	assert.Equal(t, "OG Description", meta.Description)
	assert.Equal(t, "https://example.com/img.png", meta.ImageURL)
	assert.Equal(t, "Example", meta.SiteName)
	assert.Equal(t, server.URL, meta.URL)
}

func TestFetch_FallsBackToTitleTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Plain Page</title></head><body></body></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(2 * time.Second)
	meta, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Plain Page", meta.Title)
	assert.Empty(t, meta.Description)
}

func TestFetch_CachesPerURL(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Cached</title></head></html>`))
	}))
	defer server.Close()

	fetcher := NewFetcher(2 * time.Second)
	_, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetch_RejectsNonHTMLAndErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{}`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/empty":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<html><head></head></html>`))
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(2 * time.Second)

	_, err := fetcher.Fetch(context.Background(), server.URL+"/json")
	assert.Error(t, err)
	_, err = fetcher.Fetch(context.Background(), server.URL+"/missing")
	assert.Error(t, err)
	_, err = fetcher.Fetch(context.Background(), server.URL+"/empty")
	assert.Error(t, err)
}
