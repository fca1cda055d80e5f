// Package tts converts narration scripts to audio through an external
// text-to-speech vendor.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/akarasev/daytales/pkg/config"
)

// Client calls the TTS vendor. The contract is best-effort: vendor failures
// are logged and produce empty audio rather than an error, and the caller
// decides whether missing audio is fatal.
type Client struct {
	endpoint string
	apiKey   string
	voice    string
	client   *http.Client
}

// NewClient creates a TTS client from configuration
func NewClient(cfg config.TTSConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		voice:    cfg.Voice,
		client:   &http.Client{Timeout: timeout},
	}
}

// synthesizeRequest is the vendor request body
type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voice_id,omitempty"`
	Format  string `json:"output_format"`
}

// Synthesize converts text to audio bytes with the given voice (empty voice
// uses the configured default). Returns nil bytes, not an error, when the
// vendor is unavailable or misconfigured.
func (c *Client) Synthesize(ctx context.Context, text, voice string) []byte {
	if c.apiKey == "" || c.endpoint == "" {
		lgr.Printf("[WARN] tts not configured, no audio produced")
		return nil
	}
	if voice == "" {
		voice = c.voice
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, VoiceID: voice, Format: "mp3_44100_128"})
	if err != nil {
		lgr.Printf("[WARN] tts request marshal failed: %v", err)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/synthesize", bytes.NewReader(body))
	if err != nil {
		lgr.Printf("[WARN] tts request failed: %v", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		lgr.Printf("[WARN] tts call failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		lgr.Printf("[WARN] tts returned status %d", resp.StatusCode)
		return nil
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		lgr.Printf("[WARN] tts stream read failed: %v", err)
		return nil
	}

	lgr.Printf("[DEBUG] synthesized %d bytes for %d chars of text", len(audio), len(text))
	return audio
}

// String describes the client for logs, without leaking the key
func (c *Client) String() string {
	return fmt.Sprintf("tts client endpoint=%s voice=%s", c.endpoint, c.voice)
}
