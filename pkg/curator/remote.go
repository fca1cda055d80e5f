package curator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

// Remote is the LLM-backed curation strategy. Every operation degrades to
// the local strategy on failure: a broken or disabled LLM lowers content
// quality but never fails a build.
type Remote struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	fallback  *Local
}

// NewRemote creates the LLM curation strategy
func NewRemote(cfg config.LLMConfig) *Remote {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	return &Remote{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		fallback:  NewLocal(),
	}
}

const defaultSystemPrompt = `You are an editor for a children's audio program about historical events.
You answer with strict JSON only, no prose around it.
Content rules:
- pick stories that are positive, curious and age-appropriate
- never include violence, death, disasters or adult themes
- prefer a spread of different centuries over clusters of recent events
- narration scripts are warm, simple spoken language of about 100 words
- never include URLs in narration scripts`

var urlRe = regexp.MustCompile(`https?://\S+`)

// selectionResponse is the JSON shape expected from the selection prompt
type selectionResponse struct {
	Selected []domain.FeedItem `json:"selected"`
}

// summariesResponse is the JSON shape expected from the summarization prompt
type summariesResponse struct {
	Summaries []domain.Summary `json:"summaries"`
}

// attributionResponse is the JSON shape expected from the attribution prompt
type attributionResponse struct {
	Attribution string `json:"attribution"`
}

// Select asks the LLM for a curated subset, falling back to the local
// deterministic selection on any failure
func (r *Remote) Select(ctx context.Context, items []domain.FeedItem, req Request) (*domain.Selection, error) {
	// the safety filter applies before the LLM ever sees the feed
	filtered := SafeFilter(items)

	prompt := fmt.Sprintf(`Pick between %d and %d of the following historical items for children aged %d-%d, date %s, language %q.
Respond as {"selected": [...]} echoing the chosen items unchanged, in narration order.

ITEMS:
%s`, minSelected, maxSelected, req.AgeMin, req.AgeMax, req.Date, req.Language, mustJSON(filtered))

	var parsed selectionResponse
	if err := r.complete(ctx, prompt, &parsed); err != nil {
		lgr.Printf("[WARN] llm selection failed, using local: %v", err)
		return r.fallback.Select(ctx, items, req)
	}
	if len(parsed.Selected) < minSelected && len(parsed.Selected) < len(filtered) {
		lgr.Printf("[WARN] llm selected only %d items, using local", len(parsed.Selected))
		return r.fallback.Select(ctx, items, req)
	}
	if len(parsed.Selected) > maxSelected {
		parsed.Selected = parsed.Selected[:maxSelected]
	}

	return &domain.Selection{
		Date:     req.Date,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Source:   "llm",
		Selected: parsed.Selected,
	}, nil
}

// Summarize asks the LLM for narration scripts for all items at once
func (r *Remote) Summarize(ctx context.Context, items []domain.FeedItem, req Request) (*domain.SummarySet, error) {
	prompt := fmt.Sprintf(`Write a narration script of about %d words for each item below, for children aged %d-%d, language %q, date %s.
Respond as {"summaries": [{"id", "title", "script", "reading_time_s"}, ...]} covering every item.

ITEMS:
%s`, targetScriptWords, req.AgeMin, req.AgeMax, req.Language, req.Date, mustJSON(items))

	var parsed summariesResponse
	if err := r.complete(ctx, prompt, &parsed); err != nil {
		lgr.Printf("[WARN] llm summaries failed, using local: %v", err)
		return r.fallback.Summarize(ctx, items, req)
	}
	if len(parsed.Summaries) != len(items) {
		lgr.Printf("[WARN] llm returned %d summaries for %d items, using local", len(parsed.Summaries), len(items))
		return r.fallback.Summarize(ctx, items, req)
	}

	set := &domain.SummarySet{
		Date:     req.Date,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Source:   "llm",
	}
	for _, s := range parsed.Summaries {
		set.Summaries = append(set.Summaries, cleanSummary(s))
	}
	return set, nil
}

// SummarizeOne asks the LLM for a single narration script
func (r *Remote) SummarizeOne(ctx context.Context, item domain.FeedItem, req Request) (*domain.Summary, error) {
	set, err := r.Summarize(ctx, []domain.FeedItem{item}, req)
	if err != nil {
		return nil, err
	}
	if len(set.Summaries) == 0 {
		return r.fallback.SummarizeOne(ctx, item, req)
	}
	return &set.Summaries[0], nil
}

// Attribution asks the LLM for a short sources script
func (r *Remote) Attribution(ctx context.Context, req Request) (string, error) {
	prompt := fmt.Sprintf(`Write one or two warm spoken sentences crediting Wikipedia (CC BY-SA) as the source of today's stories, language %q, date %s.
Respond as {"attribution": "..."}.`, req.Language, req.Date)

	var parsed attributionResponse
	if err := r.complete(ctx, prompt, &parsed); err != nil {
		lgr.Printf("[WARN] llm attribution failed, using local: %v", err)
		return r.fallback.Attribution(ctx, req)
	}
	if strings.TrimSpace(parsed.Attribution) == "" {
		return r.fallback.Attribution(ctx, req)
	}
	return strings.TrimSpace(parsed.Attribution), nil
}

// complete runs one JSON-mode chat completion and unmarshals the answer into out
func (r *Remote) complete(ctx context.Context, prompt string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.config.Model,
		Temperature: float32(r.config.Temperature),
		MaxTokens:   r.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from llm")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse json response: %w", err)
	}
	return nil
}

// cleanSummary strips URLs from the script and backfills a missing reading time
func cleanSummary(s domain.Summary) domain.Summary {
	s.Script = strings.TrimSpace(urlRe.ReplaceAllString(s.Script, ""))
	if s.ReadingTimeS == 0 {
		s.ReadingTimeS = ReadingTime(s.Script)
	}
	return s
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
