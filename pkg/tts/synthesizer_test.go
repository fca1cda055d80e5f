package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/config"
)

func TestClient_Synthesize(t *testing.T) {
	var gotReq synthesizeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/synthesize", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer ts.Close()

	c := NewClient(config.TTSConfig{Endpoint: ts.URL, APIKey: "test-key", Voice: "nanny"})

	audio := c.Synthesize(context.Background(), "hello kids", "")
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "hello kids", gotReq.Text)
	assert.Equal(t, "nanny", gotReq.VoiceID, "default voice applied")

	c.Synthesize(context.Background(), "hello", "custom")
	assert.Equal(t, "custom", gotReq.VoiceID)
}

func TestClient_SynthesizeBestEffort(t *testing.T) {
	t.Run("missing key yields empty audio, no panic", func(t *testing.T) {
		c := NewClient(config.TTSConfig{Endpoint: "http://localhost:1"})
		assert.Nil(t, c.Synthesize(context.Background(), "text", ""))
	})

	t.Run("vendor error yields empty audio", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		c := NewClient(config.TTSConfig{Endpoint: ts.URL, APIKey: "k"})
		assert.Nil(t, c.Synthesize(context.Background(), "text", ""))
	})

	t.Run("unreachable vendor yields empty audio", func(t *testing.T) {
		c := NewClient(config.TTSConfig{Endpoint: "http://127.0.0.1:1", APIKey: "k"})
		assert.Nil(t, c.Synthesize(context.Background(), "text", ""))
	})
}
