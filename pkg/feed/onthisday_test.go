package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/domain"
)

func TestClient_Normalize(t *testing.T) {
	c := NewClient(Config{Offline: true})

	raw := &RawFeed{
		Events: []map[string]any{
			{
				"id": "e1", "type": "event", "text": "Sample Event", "year": float64(1969),
				"extract":      "Moon landing.",
				"content_urls": map[string]any{"desktop": map[string]any{"page": "https://en.wikipedia.org/wiki/Apollo_11"}},
			},
		},
		Births:   []map[string]any{{"text": "Famous Person", "year": float64(1920)}},
		Holidays: []map[string]any{{}}, // completely empty record
	}

	items := c.Normalize(raw)
	require.Len(t, items, 3)

	assert.Equal(t, "e1", items[0].ID)
	assert.Equal(t, domain.KindEvent, items[0].Kind)
	assert.Equal(t, "Sample Event", items[0].Title)
	assert.Equal(t, 1969, items[0].Year)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Apollo_11", items[0].SourceURL)

	// birth record without native id gets a synthetic one
	assert.Equal(t, domain.KindBirth, items[1].Kind)
	assert.NotEmpty(t, items[1].ID)

	// empty record still yields non-empty id and title
	assert.Equal(t, "Untitled", items[2].Title)
	assert.NotEmpty(t, items[2].ID)
	assert.Equal(t, domain.KindHoliday, items[2].Kind)
}

func TestClient_NormalizeStripsMarkup(t *testing.T) {
	c := NewClient(Config{Offline: true})
	raw := &RawFeed{Events: []map[string]any{
		{"id": "e1", "text": "A <b>bold</b> event", "extract": "Some <script>alert(1)</script>story."},
	}}

	items := c.Normalize(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "A bold event", items[0].Title)
	assert.Equal(t, "Some story.", items[0].Summary)
}

func TestClient_Fingerprint(t *testing.T) {
	c := NewClient(Config{Offline: true})

	raw := sampleFeed()
	h1 := c.Fingerprint(raw)
	h2 := c.Fingerprint(raw)
	assert.Equal(t, h1, h2, "identical content must hash identically")
	assert.Len(t, h1, 64)

	changed := sampleFeed()
	changed.Events[0]["extract"] = "A different story."
	assert.NotEqual(t, h1, c.Fingerprint(changed), "summary change must change the fingerprint")

	reordered := sampleFeed()
	reordered.Events[0], reordered.Events[1] = reordered.Events[1], reordered.Events[0]
	assert.NotEqual(t, h1, c.Fingerprint(reordered), "fingerprint is order-dependent")
}

func TestClient_FetchOffline(t *testing.T) {
	c := NewClient(Config{Offline: true})

	raw, err := c.Fetch(context.Background(), "en", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	items := c.Normalize(raw)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEmpty(t, item.ID)
		assert.NotEmpty(t, item.Title)
	}
}

func TestClient_Fetch(t *testing.T) {
	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("Api-User-Agent")
		resp := RawFeed{Events: []map[string]any{{"id": "x", "text": "Event", "year": float64(2000)}}}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer ts.Close()

	c := NewClient(Config{Endpoint: ts.URL, UserAgent: "daytales/1.0"})
	raw, err := c.Fetch(context.Background(), "en", time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/en/onthisday/all/03/07", gotPath)
	assert.Equal(t, "daytales/1.0", gotUA)
	require.Len(t, raw.Events, 1)
	assert.Equal(t, "Event", c.Normalize(raw)[0].Title)
}

func TestClient_FetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(Config{Endpoint: ts.URL})
	_, err := c.Fetch(context.Background(), "en", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}
