// Package builder orchestrates one full daily build: feed fetch, curation,
// narration synthesis, upload/transcode and the rolling-window publish. All
// collaborators are injected as interfaces; every stage commits its output to
// the daily cache before the next begins, so an interrupted build resumes
// from the last committed state.
package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/akarasev/daytales/pkg/curator"
	"github.com/akarasev/daytales/pkg/domain"
	"github.com/akarasev/daytales/pkg/feed"
	"github.com/akarasev/daytales/pkg/platform"
)

//go:generate moq -out mocks/feed.go -pkg mocks -skip-ensure -fmt goimports . FeedSource
//go:generate moq -out mocks/curator.go -pkg mocks -skip-ensure -fmt goimports . Curator
//go:generate moq -out mocks/tts.go -pkg mocks -skip-ensure -fmt goimports . Synthesizer
//go:generate moq -out mocks/platform.go -pkg mocks -skip-ensure -fmt goimports . Uploader TokenEnsurer

// ErrEmptyAudio is returned when the synthesizer produced no audio for a
// script that must become a track
var ErrEmptyAudio = errors.New("synthesizer produced no audio")

// outroTitle is the fixed title of the attribution track, always last
const outroTitle = "Sources for today"

// FeedSource provides the day's historical records
type FeedSource interface {
	Fetch(ctx context.Context, language string, date time.Time) (*feed.RawFeed, error)
	Normalize(raw *feed.RawFeed) []domain.FeedItem
	Fingerprint(raw *feed.RawFeed) string
}

// Curator selects and summarizes the day's stories
type Curator interface {
	Select(ctx context.Context, items []domain.FeedItem, req curator.Request) (*domain.Selection, error)
	SummarizeOne(ctx context.Context, item domain.FeedItem, req curator.Request) (*domain.Summary, error)
	Attribution(ctx context.Context, req curator.Request) (string, error)
}

// Synthesizer converts narration scripts to audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) []byte
}

// Uploader transcodes audio and publishes chapter windows
type Uploader interface {
	UploadTranscode(ctx context.Context, token string, audio []byte) (*platform.TranscodedAudio, error)
	Publish(ctx context.Context, token, cardID, language string, ageMin, ageMax int, chapters []domain.Chapter) (*platform.PublishResult, error)
}

// TokenEnsurer keeps the user's platform token valid
type TokenEnsurer interface {
	Ensure(ctx context.Context, user *domain.User) (string, error)
}

// CacheStore persists incremental build state
type CacheStore interface {
	GetOrCreate(ctx context.Context, date time.Time, language, ageBucket string) (*domain.DailyCache, error)
	GetRange(ctx context.Context, language, ageBucket string, from, to time.Time) ([]*domain.DailyCache, error)
	UpdateFeedHash(ctx context.Context, id int64, feedHash string) error
	UpdateSelection(ctx context.Context, id int64, sel *domain.Selection) error
	UpdateSummaries(ctx context.Context, id int64, set *domain.SummarySet) error
	UpdateAttribution(ctx context.Context, id int64, script string) error
	UpdateTracks(ctx context.Context, id int64, refs []domain.AudioTrackRef) error
	ResetAudio(ctx context.Context, id int64) error
}

// TrackStore shares age-independent narration tracks between builds
type TrackStore interface {
	Get(ctx context.Context, date time.Time, language, title string) (*domain.AudioTrackRef, error)
	Put(ctx context.Context, date time.Time, language, title string, ref domain.AudioTrackRef) (*domain.AudioTrackRef, error)
}

// BuildStore records build attempts
type BuildStore interface {
	Create(ctx context.Context, userID int64, date time.Time) (*domain.BuildRun, error)
	Finish(ctx context.Context, id int64, status, errMsg string) error
}

// UserStore persists the card id adopted after the first publish
type UserStore interface {
	UpdateCardID(ctx context.Context, userID int64, cardID string) error
}

// Params holds all builder dependencies
type Params struct {
	Feed     FeedSource
	Curator  Curator
	TTS      Synthesizer
	Platform Uploader
	Tokens   TokenEnsurer
	Cache    CacheStore
	Tracks   TrackStore
	Builds   BuildStore
	Users    UserStore

	MaxStories int  // concurrent story tasks, default 3
	Offline    bool // skip synthesis, upload and publish
}

// Builder drives full builds for (user, date) pairs
type Builder struct {
	feed     FeedSource
	curator  Curator
	tts      Synthesizer
	platform Uploader
	tokens   TokenEnsurer
	cache    CacheStore
	tracks   TrackStore
	builds   BuildStore
	users    UserStore

	maxStories int
	offline    bool
}

// Result describes a completed build
type Result struct {
	BuildID  int64
	Status   string
	Chapters []domain.Chapter
}

// New creates a builder from params
func New(params Params) *Builder {
	if params.MaxStories == 0 {
		params.MaxStories = 3
	}
	return &Builder{
		feed:       params.Feed,
		curator:    params.Curator,
		tts:        params.TTS,
		platform:   params.Platform,
		tokens:     params.Tokens,
		cache:      params.Cache,
		tracks:     params.Tracks,
		builds:     params.Builds,
		users:      params.Users,
		maxStories: params.MaxStories,
		offline:    params.Offline,
	}
}

// Build runs one full build for the user and date. The build run record is
// created before any work starts and finalized exactly once; any stage error
// marks the run failed and surfaces to the caller.
func (b *Builder) Build(ctx context.Context, user *domain.User, date time.Time, reset bool) (*Result, error) {
	run, err := b.builds.Create(ctx, user.ID, date)
	if err != nil {
		return nil, fmt.Errorf("create build run: %w", err)
	}

	chapters, err := b.build(ctx, user, date, reset)
	if err != nil {
		if ferr := b.builds.Finish(ctx, run.ID, domain.BuildFailed, err.Error()); ferr != nil {
			lgr.Printf("[WARN] failed to mark run %d failed: %v", run.ID, ferr)
		}
		return nil, err
	}

	if err := b.builds.Finish(ctx, run.ID, domain.BuildSuccess, ""); err != nil {
		return nil, fmt.Errorf("finish build run: %w", err)
	}

	lgr.Printf("[INFO] build %d completed for user %d, %d chapters", run.ID, user.ID, len(chapters))
	return &Result{BuildID: run.ID, Status: domain.BuildSuccess, Chapters: chapters}, nil
}

// build runs the staged pipeline and returns the published chapter window
func (b *Builder) build(ctx context.Context, user *domain.User, date time.Time, reset bool) ([]domain.Chapter, error) {
	token, err := b.tokens.Ensure(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("ensure token: %w", err)
	}

	raw, err := b.feed.Fetch(ctx, user.Language, date)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	items := b.feed.Normalize(raw)

	cache, err := b.cache.GetOrCreate(ctx, date, user.Language, user.AgeBucket)
	if err != nil {
		return nil, fmt.Errorf("get cache row: %w", err)
	}

	// the fingerprint is a change marker only, committed for observability
	// even when it matches the previous run
	if err := b.cache.UpdateFeedHash(ctx, cache.ID, b.feed.Fingerprint(raw)); err != nil {
		return nil, fmt.Errorf("commit feed hash: %w", err)
	}

	if reset {
		if err := b.cache.ResetAudio(ctx, cache.ID); err != nil {
			return nil, fmt.Errorf("reset audio refs: %w", err)
		}
		cache.AudioRefs = nil
		lgr.Printf("[INFO] reset audio refs for cache %d", cache.ID)
	}

	req := curator.Request{
		Date:     date.Format("2006-01-02"),
		Language: user.Language,
		AgeMin:   user.AgeMin,
		AgeMax:   user.AgeMax,
	}

	// selection is committed verbatim and never retried within a build
	sel, err := b.curator.Select(ctx, items, req)
	if err != nil {
		return nil, fmt.Errorf("select stories: %w", err)
	}
	if err := b.cache.UpdateSelection(ctx, cache.ID, sel); err != nil {
		return nil, fmt.Errorf("commit selection: %w", err)
	}

	state := &buildState{refs: cache.AudioRefs, set: &domain.SummarySet{
		Date: req.Date, Language: req.Language, AgeMin: req.AgeMin, AgeMax: req.AgeMax, Source: sel.Source,
	}}

	if err := b.buildIntro(ctx, token, user, date, cache.ID, state); err != nil {
		return nil, err
	}
	if err := b.buildStories(ctx, token, user, date, cache.ID, req, sel, state); err != nil {
		return nil, err
	}
	if err := b.buildOutro(ctx, token, user, date, cache.ID, req, len(sel.Selected), state); err != nil {
		return nil, err
	}

	chapters, err := b.assembleWindow(ctx, user, date, state.refs)
	if err != nil {
		return nil, err
	}

	if err := b.publish(ctx, token, user, chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// buildState is the shared in-memory build state; mu serializes all mutation
// from the concurrent story tasks
type buildState struct {
	mu   sync.Mutex
	refs []domain.AudioTrackRef
	set  *domain.SummarySet
}

// buildIntro produces track "01", reusing the shared narration for the date
// when another bucket already built it. Runs before the concurrent section.
func (b *Builder) buildIntro(ctx context.Context, token string, user *domain.User, date time.Time, cacheID int64, state *buildState) error {
	key := domain.TrackKey(1)
	if existing := findTrack(state.refs, key); existing != nil && existing.Finalized() {
		lgr.Printf("[DEBUG] intro track already finalized, skipping")
		return nil
	}

	title := domain.ChapterTitle(date)
	script := fmt.Sprintf("Hello friends! Today is %s, %s %d. Let's hear what happened on this day in history.",
		date.Weekday(), date.Month(), date.Day())

	ref, err := b.sharedTrack(ctx, token, date, user.Language, key, title, script, domain.TrackIntro)
	if err != nil {
		return fmt.Errorf("build intro: %w", err)
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	state.refs = upsertTrack(state.refs, *ref)
	if err := b.cache.UpdateTracks(ctx, cacheID, state.refs); err != nil {
		return fmt.Errorf("commit intro track: %w", err)
	}
	return nil
}

// buildStories synthesizes one track per selected item with bounded
// concurrency. Every append to the shared state is committed immediately, so
// an observer may see summaries grow out of order while the build runs.
func (b *Builder) buildStories(ctx context.Context, token string, user *domain.User, date time.Time,
	cacheID int64, req curator.Request, sel *domain.Selection, state *buildState) error {

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.maxStories)

	for i, item := range sel.Selected {
		key := domain.TrackKey(i + 2) // "01" is the intro
		g.Go(func() error {
			sum, err := b.curator.SummarizeOne(gctx, item, req)
			if err != nil {
				return fmt.Errorf("summarize %q: %w", item.Title, err)
			}

			state.mu.Lock()
			state.set.Summaries = append(state.set.Summaries, *sum)
			err = b.cache.UpdateSummaries(gctx, cacheID, state.set)
			state.mu.Unlock()
			if err != nil {
				return fmt.Errorf("commit summary %q: %w", sum.Title, err)
			}

			// an already finalized track at this key means a prior run got
			// here; keep its audio
			state.mu.Lock()
			existing := findTrack(state.refs, key)
			state.mu.Unlock()
			if existing != nil && existing.Finalized() {
				lgr.Printf("[DEBUG] track %s already finalized, skipping synthesis", key)
				return nil
			}

			ref, err := b.makeTrack(gctx, token, date, key, sum.Title, sum.Script, domain.TrackStory)
			if err != nil {
				return err
			}

			state.mu.Lock()
			defer state.mu.Unlock()
			state.refs = upsertTrack(state.refs, *ref)
			if err := b.cache.UpdateTracks(gctx, cacheID, state.refs); err != nil {
				return fmt.Errorf("commit track %s: %w", key, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("build stories: %w", err)
	}
	return nil
}

// buildOutro produces the attribution track at the last key, shared like the
// intro. Runs after the concurrent section.
func (b *Builder) buildOutro(ctx context.Context, token string, user *domain.User, date time.Time,
	cacheID int64, req curator.Request, storyCount int, state *buildState) error {

	attribution, err := b.curator.Attribution(ctx, req)
	if err != nil {
		return fmt.Errorf("attribution: %w", err)
	}
	if err := b.cache.UpdateAttribution(ctx, cacheID, attribution); err != nil {
		return fmt.Errorf("commit attribution: %w", err)
	}

	key := domain.TrackKey(storyCount + 2)
	if existing := findTrack(state.refs, key); existing != nil && existing.Finalized() {
		lgr.Printf("[DEBUG] outro track already finalized, skipping")
		return nil
	}

	script := "Thank you for listening! " + attribution
	ref, err := b.sharedTrack(ctx, token, date, user.Language, key, outroTitle, script, domain.TrackOutro)
	if err != nil {
		return fmt.Errorf("build outro: %w", err)
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	state.refs = upsertTrack(state.refs, *ref)
	if err := b.cache.UpdateTracks(ctx, cacheID, state.refs); err != nil {
		return fmt.Errorf("commit outro track: %w", err)
	}
	return nil
}

// sharedTrack returns a track for (date, language, title), reusing the stored
// narration when one exists and registering ours otherwise. The first writer
// wins; a racing build adopts the winner's audio.
func (b *Builder) sharedTrack(ctx context.Context, token string, date time.Time,
	language, key, title, script, kind string) (*domain.AudioTrackRef, error) {

	stored, err := b.tracks.Get(ctx, date, language, title)
	if err != nil {
		return nil, fmt.Errorf("shared track lookup: %w", err)
	}
	if stored != nil && stored.ContentHash != "" {
		lgr.Printf("[DEBUG] reusing shared track %q for %s", title, date.Format("2006-01-02"))
		ref := *stored
		ref.Key, ref.Title, ref.Kind = key, title, kind
		return &ref, nil
	}

	ref, err := b.makeTrack(ctx, token, date, key, title, script, kind)
	if err != nil {
		return nil, err
	}
	canonical, err := b.tracks.Put(ctx, date, language, title, *ref)
	if err != nil {
		return nil, fmt.Errorf("share track: %w", err)
	}
	out := *canonical
	out.Key, out.Title, out.Kind = key, title, kind
	return &out, nil
}

// makeTrack synthesizes and transcodes one narration track. In offline mode a
// deterministic synthetic hash stands in for the transcoded asset, so the rest
// of the pipeline works with no network.
func (b *Builder) makeTrack(ctx context.Context, token string, date time.Time,
	key, title, script, kind string) (*domain.AudioTrackRef, error) {

	ref := &domain.AudioTrackRef{Key: key, Title: title, Kind: kind}
	if b.offline {
		ref.ContentHash = fmt.Sprintf("offline-%s-%s", date.Format("2006-01-02"), key)
		return ref, nil
	}

	audio := b.tts.Synthesize(ctx, script, "")
	if len(audio) == 0 {
		return nil, fmt.Errorf("track %s %q: %w", key, title, ErrEmptyAudio)
	}

	transcoded, err := b.platform.UploadTranscode(ctx, token, audio)
	if err != nil {
		return nil, fmt.Errorf("upload track %s: %w", key, err)
	}

	ref.ContentHash = transcoded.ContentHash
	ref.Duration = transcoded.Duration
	ref.FileSize = transcoded.FileSize
	ref.Channels = transcoded.Channels
	ref.Format = transcoded.Format
	return ref, nil
}

// assembleWindow derives the rolling publish window: today's chapter from the
// in-memory refs plus the preceding six days from cache rows, newest first,
// at most seven chapters.
func (b *Builder) assembleWindow(ctx context.Context, user *domain.User, date time.Time, todayRefs []domain.AudioTrackRef) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	if today := makeChapter(date, todayRefs); len(today.Tracks) > 0 {
		chapters = append(chapters, today)
	}

	prior, err := b.cache.GetRange(ctx, user.Language, user.AgeBucket, date.AddDate(0, 0, -6), date.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("load prior days: %w", err)
	}
	for _, row := range prior {
		if ch := makeChapter(row.Date, row.AudioRefs); len(ch.Tracks) > 0 {
			chapters = append(chapters, ch)
		}
	}

	// rows arrive newest first and today leads, but sort anyway: the order is
	// a published contract
	sortChaptersDesc(chapters)
	if len(chapters) > 7 {
		chapters = chapters[:7]
	}
	return chapters, nil
}

// publish upserts the window and adopts the returned card id on change.
// Skipped entirely in offline mode.
func (b *Builder) publish(ctx context.Context, token string, user *domain.User, chapters []domain.Chapter) error {
	if b.offline {
		lgr.Printf("[INFO] offline mode, skipping publish of %d chapters", len(chapters))
		return nil
	}

	res, err := b.platform.Publish(ctx, token, user.CardID, user.Language, user.AgeMin, user.AgeMax, chapters)
	if err != nil {
		return fmt.Errorf("publish window: %w", err)
	}
	if res.CardID != "" && res.CardID != user.CardID {
		if err := b.users.UpdateCardID(ctx, user.ID, res.CardID); err != nil {
			return fmt.Errorf("adopt card id: %w", err)
		}
		user.CardID = res.CardID
		lgr.Printf("[INFO] adopted card %s for user %d", res.CardID, user.ID)
	}
	return nil
}

// makeChapter converts finalized track refs into the published chapter shape
func makeChapter(date time.Time, refs []domain.AudioTrackRef) domain.Chapter {
	sorted := make([]domain.AudioTrackRef, len(refs))
	copy(sorted, refs)
	domain.SortTracks(sorted)

	ch := domain.Chapter{Key: date.Format("2006-01-02"), Title: domain.ChapterTitle(date)}
	for _, ref := range sorted {
		if !ref.Finalized() {
			continue
		}
		ch.Tracks = append(ch.Tracks, domain.ChapterTrack{
			Key:          ref.Key,
			Title:        ref.Title,
			TrackURL:     "yoto:#" + ref.ContentHash,
			Duration:     ref.Duration,
			FileSize:     ref.FileSize,
			Channels:     ref.Channels,
			Format:       ref.Format,
			OverlayLabel: fmt.Sprintf("%d", len(ch.Tracks)+1),
		})
	}
	return ch
}

// sortChaptersDesc orders chapters newest first by ISO date key
func sortChaptersDesc(chapters []domain.Chapter) {
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Key > chapters[j].Key })
}

// findTrack returns the ref with the key, nil when absent
func findTrack(refs []domain.AudioTrackRef, key string) *domain.AudioTrackRef {
	for i := range refs {
		if refs[i].Key == key {
			return &refs[i]
		}
	}
	return nil
}

// upsertTrack replaces or appends a ref by key and restores numeric order
func upsertTrack(refs []domain.AudioTrackRef, ref domain.AudioTrackRef) []domain.AudioTrackRef {
	replaced := false
	for i := range refs {
		if refs[i].Key == ref.Key {
			refs[i] = ref
			replaced = true
			break
		}
	}
	if !replaced {
		refs = append(refs, ref)
	}
	domain.SortTracks(refs)
	return refs
}
