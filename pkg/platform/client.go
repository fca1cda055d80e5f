// Package platform talks to the children's audio platform API: uploading and
// transcoding narration audio, and publishing the chapter window to a content
// card.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

// publish retry schedule, linear backoff on server errors only
const (
	publishAttempts = 5
	publishDelay    = 800 * time.Millisecond
)

// ErrPermanent marks platform responses that must not be retried (4xx)
var ErrPermanent = errors.New("permanent platform error")

// ErrTranscodeTimeout is returned when transcoding does not finish within the configured poll attempts
var ErrTranscodeTimeout = errors.New("transcode not ready after polling")

// errNotReady signals one more poll round is needed
var errNotReady = errors.New("transcode not ready")

// Client is the content platform API client
type Client struct {
	apiBase      string
	pollAttempts int
	pollDelay    time.Duration
	client       *http.Client
}

// NewClient creates a platform client from configuration
func NewClient(cfg config.PlatformConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	pollAttempts := cfg.PollAttempts
	if pollAttempts == 0 {
		pollAttempts = 30
	}
	pollDelay := cfg.PollDelay
	if pollDelay == 0 {
		pollDelay = 500 * time.Millisecond
	}
	return &Client{
		apiBase:      strings.TrimSuffix(cfg.APIBase, "/"),
		pollAttempts: pollAttempts,
		pollDelay:    pollDelay,
		client:       &http.Client{Timeout: timeout},
	}
}

// TranscodedAudio is the finalized asset metadata returned once the platform
// has transcoded an upload; ContentHash is the track reference used in
// published chapters.
type TranscodedAudio struct {
	ContentHash string  `json:"content_hash"`
	Duration    float64 `json:"duration"`
	FileSize    int64   `json:"file_size"`
	Channels    string  `json:"channels"`
	Format      string  `json:"format"`
}

// uploadURLResponse is the signed-upload handshake response
type uploadURLResponse struct {
	Upload struct {
		UploadURL string `json:"uploadUrl"`
		UploadID  string `json:"uploadId"`
	} `json:"upload"`
}

// transcodeResponse is the poll response; the hash appears only when done
type transcodeResponse struct {
	Transcode struct {
		TranscodedSHA256 string `json:"transcodedSha256"`
		TranscodedInfo   struct {
			Duration float64 `json:"duration"`
			FileSize int64   `json:"fileSize"`
			Channels string  `json:"channels"`
			Format   string  `json:"format"`
		} `json:"transcodedInfo"`
	} `json:"transcode"`
}

// UploadTranscode uploads raw audio and polls until the transcoded asset with
// its content hash is available. Polling is bounded by pollAttempts; running
// out returns ErrTranscodeTimeout.
func (c *Client) UploadTranscode(ctx context.Context, token string, audio []byte) (*TranscodedAudio, error) {
	// 1. request a signed upload url
	var urlResp uploadURLResponse
	if err := c.call(ctx, http.MethodGet, c.apiBase+"/media/transcode/audio/uploadUrl", token, nil, &urlResp); err != nil {
		return nil, fmt.Errorf("get upload url: %w", err)
	}
	if urlResp.Upload.UploadURL == "" || urlResp.Upload.UploadID == "" {
		return nil, fmt.Errorf("upload url response missing fields")
	}

	// 2. put the bytes
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, urlResp.Upload.UploadURL, bytes.NewReader(audio))
	if err != nil {
		return nil, fmt.Errorf("make upload request: %w", err)
	}
	req.Header.Set("Content-Type", "audio/mpeg")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload audio: unexpected status %d", resp.StatusCode)
	}

	// 3. poll for the transcoded asset
	var out *TranscodedAudio
	pollURL := fmt.Sprintf("%s/media/upload/%s/transcoded", c.apiBase, urlResp.Upload.UploadID)
	retrier := repeater.NewFixed(c.pollAttempts, c.pollDelay)
	err = retrier.Do(ctx, func() error {
		var tr transcodeResponse
		if err := c.call(ctx, http.MethodGet, pollURL, token, nil, &tr); err != nil {
			return err
		}
		if tr.Transcode.TranscodedSHA256 == "" {
			return errNotReady
		}
		out = &TranscodedAudio{
			ContentHash: tr.Transcode.TranscodedSHA256,
			Duration:    tr.Transcode.TranscodedInfo.Duration,
			FileSize:    tr.Transcode.TranscodedInfo.FileSize,
			Channels:    tr.Transcode.TranscodedInfo.Channels,
			Format:      tr.Transcode.TranscodedInfo.Format,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNotReady) {
			return nil, fmt.Errorf("%w: %d attempts", ErrTranscodeTimeout, c.pollAttempts)
		}
		return nil, fmt.Errorf("poll transcode: %w", err)
	}

	lgr.Printf("[DEBUG] transcoded %d bytes to %s (%.1fs)", len(audio), out.ContentHash, out.Duration)
	return out, nil
}

// PublishResult is returned by the content card upsert
type PublishResult struct {
	CardID string `json:"cardId"`
}

// publishBody is the card upsert request
type publishBody struct {
	CardID   string          `json:"cardId,omitempty"`
	Title    string          `json:"title"`
	Metadata publishMetadata `json:"metadata"`
	Content  publishContent  `json:"content"`
}

type publishMetadata struct {
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	MinAge      int      `json:"minAge"`
	MaxAge      int      `json:"maxAge"`
}

type publishContent struct {
	Chapters []domain.Chapter `json:"chapters"`
}

// Publish upserts the ordered chapter window to the user's content card,
// creating a new card when cardID is empty. Server errors are retried up to 5
// times with linearly increasing backoff; client errors fail immediately.
func (c *Client) Publish(ctx context.Context, token, cardID, language string, ageMin, ageMax int, chapters []domain.Chapter) (*PublishResult, error) {
	body := publishBody{
		CardID: cardID,
		Title:  "Today in History",
		Metadata: publishMetadata{
			Description: "Kid-friendly history stories updated daily. Sources: Wikipedia (CC BY-SA).",
			Languages:   []string{language},
			MinAge:      ageMin,
			MaxAge:      ageMax,
		},
		Content: publishContent{Chapters: chapters},
	}

	var result PublishResult
	retrier := repeater.NewBackoff(publishAttempts, publishDelay,
		repeater.WithBackoffType(repeater.BackoffLinear), repeater.WithMaxDelay(publishAttempts*publishDelay))
	err := retrier.Do(ctx, func() error {
		return c.call(ctx, http.MethodPost, c.apiBase+"/content", token, body, &result)
	}, ErrPermanent)
	if err != nil {
		return nil, fmt.Errorf("publish card: %w", err)
	}

	lgr.Printf("[INFO] published %d chapters to card %s", len(chapters), result.CardID)
	return &result, nil
}

// call performs one JSON request; 4xx responses are wrapped with ErrPermanent
// so retry loops stop on them
func (c *Client) call(ctx context.Context, method, url, token string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return fmt.Errorf("make request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s %s: server status %d", method, url, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%s %s: status %d: %w", method, url, resp.StatusCode, ErrPermanent)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
