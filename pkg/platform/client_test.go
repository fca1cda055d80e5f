package platform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

func TestClient_UploadTranscode(t *testing.T) {
	var polls int32
	var uploaded []byte
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("GET /media/transcode/audio/uploadUrl", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		resp := map[string]any{"upload": map[string]any{"uploadUrl": ts.URL + "/put-here", "uploadId": "up-1"}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("PUT /put-here", func(w http.ResponseWriter, r *http.Request) {
		uploaded, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /media/upload/up-1/transcoded", func(w http.ResponseWriter, _ *http.Request) {
		// not ready for the first two polls
		if atomic.AddInt32(&polls, 1) < 3 {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"transcode": map[string]any{}}))
			return
		}
		resp := map[string]any{"transcode": map[string]any{
			"transcodedSha256": "abc123",
			"transcodedInfo":   map[string]any{"duration": 12.5, "fileSize": 4096, "channels": "stereo", "format": "mp3"},
		}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})

	c := NewClient(config.PlatformConfig{APIBase: ts.URL, PollAttempts: 5, PollDelay: time.Millisecond})
	out, err := c.UploadTranscode(context.Background(), "tok", []byte("raw-audio"))
	require.NoError(t, err)

	assert.Equal(t, []byte("raw-audio"), uploaded)
	assert.Equal(t, "abc123", out.ContentHash)
	assert.InDelta(t, 12.5, out.Duration, 0.001)
	assert.Equal(t, int64(4096), out.FileSize)
	assert.Equal(t, "stereo", out.Channels)
	assert.Equal(t, "mp3", out.Format)
	assert.EqualValues(t, 3, polls)
}

func TestClient_UploadTranscodeTimeout(t *testing.T) {
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	defer ts.Close()

	mux.HandleFunc("GET /media/transcode/audio/uploadUrl", func(w http.ResponseWriter, _ *http.Request) {
		resp := map[string]any{"upload": map[string]any{"uploadUrl": ts.URL + "/put-here", "uploadId": "up-1"}}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("PUT /put-here", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /media/upload/up-1/transcoded", func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"transcode": map[string]any{}}))
	})

	c := NewClient(config.PlatformConfig{APIBase: ts.URL, PollAttempts: 3, PollDelay: time.Millisecond})
	_, err := c.UploadTranscode(context.Background(), "tok", []byte("raw"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscodeTimeout)
}

func TestClient_Publish(t *testing.T) {
	var body publishBody
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"cardId": "card-42"}))
	}))
	defer ts.Close()

	chapters := []domain.Chapter{{Key: "2025-01-01", Title: "January 1"}}
	c := NewClient(config.PlatformConfig{APIBase: ts.URL})
	res, err := c.Publish(context.Background(), "tok", "", "en", 5, 8, chapters)
	require.NoError(t, err)

	assert.Equal(t, "card-42", res.CardID)
	assert.Empty(t, body.CardID, "no card id sent on create")
	assert.Equal(t, []string{"en"}, body.Metadata.Languages)
	assert.Equal(t, 5, body.Metadata.MinAge)
	assert.Len(t, body.Content.Chapters, 1)
}

func TestClient_PublishRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"cardId": "card-7"}))
	}))
	defer ts.Close()

	c := NewClient(config.PlatformConfig{APIBase: ts.URL})
	res, err := c.Publish(context.Background(), "tok", "card-7", "en", 5, 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "card-7", res.CardID)
	assert.EqualValues(t, 3, calls)
}

func TestClient_PublishClientErrorNoRetry(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	c := NewClient(config.PlatformConfig{APIBase: ts.URL})
	_, err := c.Publish(context.Background(), "tok", "", "en", 5, 8, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermanent)
	assert.EqualValues(t, 1, calls, "4xx must not be retried")
}
