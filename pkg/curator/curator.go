// Package curator picks the day's stories and turns them into kid-friendly
// narration scripts. Two strategies implement the same interface: a remote
// LLM-backed one and a deterministic local one. Configuration resolves the
// strategy once at startup; the remote strategy degrades to the local one on
// its own, so callers never need fallback handling.
package curator

import (
	"context"

	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/domain"
)

// Request carries the parameters shared by all curator operations
type Request struct {
	Date     string // ISO date, part of every prompt
	Language string
	AgeMin   int
	AgeMax   int
}

// Curator produces the selection, narration scripts and attribution for one
// day. Implementations must be safe for concurrent use: story summaries are
// requested from parallel build tasks.
type Curator interface {
	Select(ctx context.Context, items []domain.FeedItem, req Request) (*domain.Selection, error)
	Summarize(ctx context.Context, items []domain.FeedItem, req Request) (*domain.SummarySet, error)
	SummarizeOne(ctx context.Context, item domain.FeedItem, req Request) (*domain.Summary, error)
	Attribution(ctx context.Context, req Request) (string, error)
}

// New resolves the curation strategy from configuration: remote when an LLM
// endpoint and key are configured and the service is enabled, local otherwise.
func New(cfg config.LLMConfig) Curator {
	if cfg.Enabled && cfg.APIKey != "" {
		return NewRemote(cfg)
	}
	return NewLocal()
}
