package curator

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/akarasev/daytales/pkg/domain"
)

// selection bounds for one day's playlist
const (
	minSelected = 5
	maxSelected = 10
)

// targetScriptWords is the approximate narration length per story
const targetScriptWords = 100

// bannedKeywords are excluded from kids' content regardless of age band
var bannedKeywords = []string{"gore", "torture", "suicide", "massacre", "sexual"}

// Local is the deterministic curation strategy. It needs no network, always
// succeeds and produces lower-quality but valid content: safety-filtered
// year-diverse selection, template narration scripts and a fixed attribution.
type Local struct{}

// NewLocal creates the deterministic local strategy
func NewLocal() *Local { return &Local{} }

// Select picks a safety-filtered, year-diverse subset of items. Items are
// sorted by year and sampled with a fixed stride so the result spreads across
// centuries instead of clustering on the most recent entries.
func (l *Local) Select(_ context.Context, items []domain.FeedItem, req Request) (*domain.Selection, error) {
	filtered := SafeFilter(items)
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Year != filtered[j].Year {
			return filtered[i].Year < filtered[j].Year
		}
		return filtered[i].Title < filtered[j].Title
	})

	step := 1
	if len(filtered) > maxSelected {
		step = len(filtered) / maxSelected
	}
	var selected []domain.FeedItem
	for i := 0; i < len(filtered) && len(selected) < maxSelected; i += step {
		selected = append(selected, filtered[i])
	}
	if len(selected) < minSelected {
		selected = filtered
		if len(selected) > minSelected {
			selected = selected[:minSelected]
		}
	}

	return &domain.Selection{
		Date:     req.Date,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Source:   "local",
		Selected: selected,
	}, nil
}

// Summarize produces template scripts for all items
func (l *Local) Summarize(ctx context.Context, items []domain.FeedItem, req Request) (*domain.SummarySet, error) {
	set := &domain.SummarySet{
		Date:     req.Date,
		Language: req.Language,
		AgeMin:   req.AgeMin,
		AgeMax:   req.AgeMax,
		Source:   "local",
	}
	for _, item := range items {
		s, err := l.SummarizeOne(ctx, item, req)
		if err != nil {
			return nil, err
		}
		set.Summaries = append(set.Summaries, *s)
	}
	return set, nil
}

// SummarizeOne builds a template narration script padded to roughly the
// target word count, with the reading time derived at ~3 words per second
func (l *Local) SummarizeOne(_ context.Context, item domain.FeedItem, _ Request) (*domain.Summary, error) {
	title := item.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	if item.Year != 0 {
		fmt.Fprintf(&b, "%s (%d). ", title, item.Year)
	} else {
		fmt.Fprintf(&b, "%s. ", title)
	}
	if item.Summary != "" {
		b.WriteString(item.Summary)
		b.WriteString(" ")
	}

	words := strings.Fields(b.String())
	filler := strings.Fields("It shares what happened and why it matters today.")
	for len(words) < targetScriptWords {
		words = append(words, filler...)
	}
	if len(words) > targetScriptWords {
		words = words[:targetScriptWords]
	}
	script := strings.Join(words, " ")

	return &domain.Summary{
		ID:           item.ID,
		Title:        title,
		Script:       script,
		ReadingTimeS: ReadingTime(script),
	}, nil
}

// Attribution returns the fixed sources script
func (l *Local) Attribution(_ context.Context, _ Request) (string, error) {
	return "Thanks for listening! Today's stories were adapted from Wikipedia (CC BY-SA).", nil
}

// SafeFilter drops items that mention banned keywords or describe deaths
func SafeFilter(items []domain.FeedItem) []domain.FeedItem {
	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		if item.Kind == domain.KindDeath {
			continue
		}
		text := strings.ToLower(item.Title + " " + item.Summary)
		banned := false
		for _, kw := range bannedKeywords {
			if strings.Contains(text, kw) {
				banned = true
				break
			}
		}
		if !banned {
			out = append(out, item)
		}
	}
	return out
}

// ReadingTime estimates narration seconds for a script at ~3 words per second
func ReadingTime(script string) int {
	return (len(strings.Fields(script)) + 2) / 3
}
