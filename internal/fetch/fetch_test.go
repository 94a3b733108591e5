package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corporativo/sdu/pkg/errors"
)

func testClient(opts ...Option) *Client {
	opts = append([]Option{WithRetries(3, time.Millisecond)}, opts...)
	return New(opts...)
}

func TestDownloadRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	data, err := testClient().Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDownloadGivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient().Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
	// Initial attempt plus three retries.
	assert.Equal(t, int32(4), calls.Load())
}

func TestDownloadDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDownloadRateLimitTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(WithRetries(0, time.Millisecond)).Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
}

func TestResolveShareURLAppendsDownloadParam(t *testing.T) {
	tests := []struct {
		name  string
		final string
		want  string
	}{
		{
			"sharepoint without query",
			"https://empresa.sharepoint.com/personal/doc",
			"https://empresa.sharepoint.com/personal/doc?download=1",
		},
		{
			"sharepoint with query",
			"https://empresa.sharepoint.com/personal/doc?e=abc",
			"https://empresa.sharepoint.com/personal/doc?e=abc&download=1",
		},
		{
			"already has download param",
			"https://onedrive.live.com/x?download=1",
			"https://onedrive.live.com/x?download=1",
		},
		{
			"other host untouched",
			"https://files.example.com/doc.xlsx",
			"https://files.example.com/doc.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyDownloadParam(tt.final))
		})
	}
}

func TestResolveShareURLFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/final", http.StatusFound)
	}))
	defer redirector.Close()

	resolved, err := testClient().ResolveShareURL(context.Background(), redirector.URL)
	require.NoError(t, err)
	assert.Equal(t, target.URL+"/final", resolved)
}

func TestFetchWorkbookRejectsNonWorkbook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Big enough but not a ZIP container.
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	_, err := testClient().FetchWorkbook(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsSourceUnavailable(err))
}

func TestFetchWorkbookRejectsTinyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte{0x50, 0x4B, 0x03, 0x04})
	}))
	defer srv.Close()

	_, err := testClient().FetchWorkbook(context.Background(), srv.URL)
	require.Error(t, err)
}
