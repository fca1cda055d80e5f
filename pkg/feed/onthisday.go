package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/akarasev/daytales/pkg/domain"
)

// RawFeed is the upstream "on this day" document, grouped by record kind.
// Records are kept as loose maps because the upstream shape varies between
// languages and revisions; Normalize does best-effort field extraction.
type RawFeed struct {
	Events   []map[string]any `json:"events"`
	Births   []map[string]any `json:"births"`
	Deaths   []map[string]any `json:"deaths"`
	Holidays []map[string]any `json:"holidays"`
}

// Client fetches and normalizes the historical-events feed
type Client struct {
	endpoint  string
	userAgent string
	client    *http.Client
	sanitizer *bluemonday.Policy
	offline   bool
}

// Config holds feed client configuration
type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	Offline   bool
}

// NewClient creates a feed client. With Offline set, Fetch returns a small
// deterministic sample document and makes no network calls.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	return &Client{
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		sanitizer: bluemonday.StrictPolicy(),
		offline:   cfg.Offline,
	}
}

// Fetch retrieves the raw feed for a language and date
func (c *Client) Fetch(ctx context.Context, language string, date time.Time) (*RawFeed, error) {
	if c.offline {
		return sampleFeed(), nil
	}

	url := fmt.Sprintf("%s/%s/onthisday/all/%02d/%02d", c.endpoint, language, date.Month(), date.Day())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("make feed request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("Api-User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status %d", url, resp.StatusCode)
	}

	var raw RawFeed
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return &raw, nil
}

// Normalize flattens the grouped raw feed into a uniform item list. Missing
// fields default to empty values and a synthetic content-hash id is assigned
// when the record carries none; malformed records never cause an error.
func (c *Client) Normalize(raw *RawFeed) []domain.FeedItem {
	if raw == nil {
		return nil
	}

	groups := []struct {
		kind    string
		records []map[string]any
	}{
		{domain.KindEvent, raw.Events},
		{domain.KindBirth, raw.Births},
		{domain.KindDeath, raw.Deaths},
		{domain.KindHoliday, raw.Holidays},
	}

	var items []domain.FeedItem
	for _, g := range groups {
		for _, rec := range g.records {
			items = append(items, c.normalizeRecord(rec, g.kind))
		}
	}
	return items
}

func (c *Client) normalizeRecord(rec map[string]any, kind string) domain.FeedItem {
	item := domain.FeedItem{
		Kind:      stringField(rec, "type", "kind"),
		Title:     c.clean(stringField(rec, "text", "title")),
		Year:      intField(rec, "year"),
		Summary:   c.clean(stringField(rec, "extract", "summary")),
		SourceURL: pageURL(rec),
	}
	if item.Kind == "" {
		item.Kind = kind
	}
	if item.Title == "" {
		item.Title = "Untitled"
	}

	item.ID = stringField(rec, "pageid", "id")
	if item.ID == "" {
		// synthetic id so downstream stages can always key on it
		h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", item.Title, item.Summary, item.Year))
		item.ID = hex.EncodeToString(h[:8])
	}
	return item
}

// clean strips markup from upstream text, the narration pipeline only
// ever deals with plain sentences
func (c *Client) clean(s string) string {
	return strings.TrimSpace(c.sanitizer.Sanitize(s))
}

// Fingerprint computes a stable order-dependent hash over the normalized
// items' (id, title, summary) triples. It is a change marker for the day's
// feed content, not an integrity check.
func (c *Client) Fingerprint(raw *RawFeed) string {
	h := sha256.New()
	for _, item := range c.Normalize(raw) {
		h.Write([]byte(item.ID))
		h.Write([]byte(item.Title))
		h.Write([]byte(item.Summary))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func stringField(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := rec[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

func intField(rec map[string]any, key string) int {
	switch v := rec[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// pageURL digs the desktop page link out of the two shapes the upstream
// feed uses for content urls
func pageURL(rec map[string]any) string {
	if u := desktopPage(rec["content_urls"]); u != "" {
		return u
	}
	if pages, ok := rec["pages"].([]any); ok && len(pages) > 0 {
		if page, ok := pages[0].(map[string]any); ok {
			return desktopPage(page["content_urls"])
		}
	}
	return ""
}

func desktopPage(v any) string {
	urls, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	desktop, ok := urls["desktop"].(map[string]any)
	if !ok {
		return ""
	}
	page, _ := desktop["page"].(string)
	return page
}

// sampleFeed is the deterministic offline document, two kid-safe events
func sampleFeed() *RawFeed {
	return &RawFeed{
		Events: []map[string]any{
			{
				"id": "e1", "type": "event", "text": "Sample Event", "year": float64(1969),
				"extract":      "The moon landing.",
				"content_urls": map[string]any{"desktop": map[string]any{"page": "https://en.wikipedia.org/wiki/Apollo_11"}},
			},
			{
				"id": "e2", "type": "event", "text": "Another Event", "year": float64(1990),
				"extract":      "A kid-friendly milestone.",
				"content_urls": map[string]any{"desktop": map[string]any{"page": "https://example.com"}},
			},
		},
	}
}
