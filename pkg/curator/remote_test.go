package curator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

// llmServer returns a test server answering every completion with content
func llmServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func remoteCfg(url string) config.LLMConfig {
	return config.LLMConfig{
		Enabled:     true,
		Endpoint:    url + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.4,
		MaxTokens:   2000,
		Timeout:     5 * time.Second,
	}
}

func TestRemote_Select(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "1", Kind: domain.KindEvent, Title: "First flight", Year: 1903},
		{ID: "2", Kind: domain.KindEvent, Title: "Moon landing", Year: 1969},
	}

	server := llmServer(t, `{"selected": [
		{"id": "2", "kind": "event", "title": "Moon landing", "year": 1969},
		{"id": "1", "kind": "event", "title": "First flight", "year": 1903}
	]}`)
	defer server.Close()

	sel, err := NewRemote(remoteCfg(server.URL)).Select(context.Background(), items, Request{Date: "2025-01-01", Language: "en", AgeMin: 5, AgeMax: 8})
	require.NoError(t, err)

	assert.Equal(t, "llm", sel.Source)
	require.Len(t, sel.Selected, 2)
	assert.Equal(t, "2", sel.Selected[0].ID, "LLM narration order preserved")
}

func TestRemote_SelectFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	items := []domain.FeedItem{
		{ID: "1", Kind: domain.KindEvent, Title: "A", Year: 1900},
		{ID: "2", Kind: domain.KindEvent, Title: "B", Year: 1950},
	}
	sel, err := NewRemote(remoteCfg(server.URL)).Select(context.Background(), items, Request{})
	require.NoError(t, err, "remote curator degrades, never fails")
	assert.Equal(t, "local", sel.Source)
	assert.Len(t, sel.Selected, 2)
}

func TestRemote_SelectFallsBackOnBadJSON(t *testing.T) {
	server := llmServer(t, "sorry, I cannot answer in JSON today")
	defer server.Close()

	sel, err := NewRemote(remoteCfg(server.URL)).Select(context.Background(),
		[]domain.FeedItem{{ID: "1", Kind: domain.KindEvent, Title: "A"}}, Request{})
	require.NoError(t, err)
	assert.Equal(t, "local", sel.Source)
}

func TestRemote_Summarize(t *testing.T) {
	server := llmServer(t, `{"summaries": [
		{"id": "1", "title": "Moon landing", "script": "A long time ago people flew to the moon. Read more at https://example.com today.", "reading_time_s": 0}
	]}`)
	defer server.Close()

	set, err := NewRemote(remoteCfg(server.URL)).Summarize(context.Background(),
		[]domain.FeedItem{{ID: "1", Title: "Moon landing"}}, Request{Date: "2025-01-01"})
	require.NoError(t, err)

	require.Len(t, set.Summaries, 1)
	assert.Equal(t, "llm", set.Source)
	assert.NotContains(t, set.Summaries[0].Script, "https://", "URLs stripped from scripts")
	assert.Positive(t, set.Summaries[0].ReadingTimeS, "missing reading time backfilled")
}

func TestRemote_SummarizeFallsBackOnCountMismatch(t *testing.T) {
	server := llmServer(t, `{"summaries": []}`)
	defer server.Close()

	items := []domain.FeedItem{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	set, err := NewRemote(remoteCfg(server.URL)).Summarize(context.Background(), items, Request{})
	require.NoError(t, err)
	assert.Equal(t, "local", set.Source)
	assert.Len(t, set.Summaries, 2)
}

func TestRemote_Attribution(t *testing.T) {
	server := llmServer(t, `{"attribution": "Today's stories came from Wikipedia, thank you for listening!"}`)
	defer server.Close()

	attrib, err := NewRemote(remoteCfg(server.URL)).Attribution(context.Background(), Request{Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Today's stories came from Wikipedia, thank you for listening!", attrib)
}

func TestRemote_AttributionFallsBackOnEmpty(t *testing.T) {
	server := llmServer(t, `{"attribution": "  "}`)
	defer server.Close()

	attrib, err := NewRemote(remoteCfg(server.URL)).Attribution(context.Background(), Request{})
	require.NoError(t, err)
	assert.Contains(t, attrib, "Wikipedia")
}

func TestNew_StrategyResolution(t *testing.T) {
	local := New(config.LLMConfig{Enabled: false})
	assert.IsType(t, &Local{}, local)

	remote := New(config.LLMConfig{Enabled: true, APIKey: "k", Endpoint: "http://localhost"})
	assert.IsType(t, &Remote{}, remote)

	// enabled but no key still resolves to local
	noKey := New(config.LLMConfig{Enabled: true})
	assert.IsType(t, &Local{}, noKey)
}
