package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchTextReturnsBodyAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte("<rss></rss>"))
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	body, contentType, err := c.FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<rss></rss>", body)
	assert.Equal(t, "application/rss+xml", contentType)
}

func TestFetchJSONDecodesObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"incidents":[{"id":"abc"}]}`))
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	parsed, err := c.FetchJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	incidents, ok := parsed["incidents"].([]any)
	require.True(t, ok)
	assert.Len(t, incidents, 1)
}

func TestFetchJSONMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	_, err := c.FetchJSON(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindMalformed, fe.Kind)
}

func TestFetchErrorOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(2 * time.Second)
	_, _, err := c.FetchText(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindNetwork, fe.Kind)
	assert.False(t, IsTimeout(err))
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(50 * time.Millisecond)
	start := time.Now()
	_, _, err := c.FetchText(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, IsTimeout(err), "expected timeout kind, got %v", err)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "client must return within the timeout")
}
