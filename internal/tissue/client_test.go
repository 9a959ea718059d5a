package tissue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tissueplus/tissue/internal/domain"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	raw, err := json.Marshal(data)
	assert.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(Envelope{Success: true, Data: raw}))
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "secret", nil), srv
}

func TestBatchDownloadStatus(t *testing.T) {
	var got numsRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/download/status/batch", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &got))

		writeEnvelope(t, w, map[string]string{
			"ABC-123": "downloaded",
			"XYZ-999": "weird",
		})
	})

	statuses, err := client.BatchDownloadStatus(context.Background(), []string{"ABC-123", "DEF-456", "XYZ-999"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ABC-123", "DEF-456", "XYZ-999"}, got.Nums)
	assert.Equal(t, domain.StatusMap{
		"ABC-123": domain.StatusDownloaded,
		"XYZ-999": domain.StatusNone,
	}, statuses)
	_, present := statuses["DEF-456"]
	assert.False(t, present, "numbers missing from the reply stay missing")
}

func TestBatchDownloadStatusEmptySkipsRequest(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	statuses, err := client.BatchDownloadStatus(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestGetVideos(t *testing.T) {
	client, srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/video/", r.URL.Path)
		writeEnvelope(t, w, []VideoDTO{
			{
				Num:    " ABC-123 ",
				Title:  "First",
				Actors: []Actor{{Name: "Alice"}, {Name: " "}},
				Cover:  "/static/cover.jpg",
				Size:   1024,
			},
			{Num: "DEF-456", Cover: "https://cdn.example/c.jpg"},
		})
	})

	videos, err := client.GetVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "ABC-123", videos[0].Num)
	assert.Equal(t, []string{"Alice"}, videos[0].Actors)
	assert.Equal(t, srv.URL+"/static/cover.jpg", videos[0].Cover)
	assert.Equal(t, "https://cdn.example/c.jpg", videos[1].Cover)
}

func TestGetDownloadsAndComplete(t *testing.T) {
	var completed hashesRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/download/":
			writeEnvelope(t, w, []DownloadDTO{{Hash: "h1", Name: "ABC-123.mp4", Num: "ABC-123", Progress: 0.5, State: "downloading"}})
		case "/api/download/complete":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&completed))
			writeEnvelope(t, w, nil)
		default:
			http.NotFound(w, r)
		}
	})

	downloads, err := client.GetDownloads(context.Background())
	require.NoError(t, err)
	require.Len(t, downloads, 1)
	assert.Equal(t, 50, downloads[0].Percent())

	require.NoError(t, client.CompleteDownloads(context.Background(), []string{"h1", "h2"}))
	assert.Equal(t, []string{"h1", "h2"}, completed.Hashes)
}

func TestQueueDownloads(t *testing.T) {
	var queued numsRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/download/batch", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&queued))
		writeEnvelope(t, w, nil)
	})

	require.NoError(t, client.QueueDownloads(context.Background(), []string{"ABC-123"}))
	assert.Equal(t, []string{"ABC-123"}, queued.Nums)
}

func TestUnauthorizedMapsToErrAuthFailed(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetVideos(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
}

func TestNonSuccessStatusIsAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"downloader offline"}`))
	})

	_, err := client.GetDownloads(context.Background())

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "downloader offline", apiErr.Message)
}

func TestFailedEnvelopeIsAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Envelope{Success: false, Message: "not allowed"})
	})

	err := client.QueueDownloads(context.Background(), []string{"A-1"})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not allowed", apiErr.Message)
}

func TestUnreachableServerIsOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "secret", nil)
	_, err := client.GetVersion(context.Background())
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestCancelledContextIsReturnedAsIs(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, map[string]string{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.BatchDownloadStatus(ctx, []string{"A-1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetVersion(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/common/version", r.URL.Path)
		writeEnvelope(t, w, VersionDTO{Current: "1.2.0", Latest: "1.3.0"})
	})

	info, err := client.GetVersion(context.Background())
	require.NoError(t, err)
	assert.True(t, info.UpdateAvailable())
	require.NoError(t, client.Ping(context.Background()))
}
