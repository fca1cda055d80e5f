package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/domain"
)

// setupTestRepos creates repositories backed by an in-memory database
func setupTestRepos(t *testing.T) *Repositories {
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}

	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, repos.Close())
	})
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestRepos(t)
	require.NoError(t, repos.Ping(context.Background()))

	// a full build's worth of persistence, stage by stage
	user := &domain.User{AccessToken: "tok", RefreshToken: "ref", Language: "en", AgeBucket: domain.BucketMiddle}
	require.NoError(t, repos.User.Create(context.Background(), user))
	assert.NotZero(t, user.ID)

	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	run, err := repos.Build.Create(context.Background(), user.ID, date)
	require.NoError(t, err)
	assert.Equal(t, domain.BuildRunning, run.Status)

	cache, err := repos.Cache.GetOrCreate(context.Background(), date, "en", domain.BucketMiddle)
	require.NoError(t, err)
	assert.NotZero(t, cache.ID)
	assert.Empty(t, cache.FeedHash)

	require.NoError(t, repos.Cache.UpdateFeedHash(context.Background(), cache.ID, "deadbeef"))

	sel := &domain.Selection{Date: "2025-03-07", Language: "en", AgeMin: 5, AgeMax: 8, Source: "local",
		Selected: []domain.FeedItem{{ID: "a1", Kind: domain.KindEvent, Title: "Bell patents the telephone", Year: 1876}}}
	require.NoError(t, repos.Cache.UpdateSelection(context.Background(), cache.ID, sel))

	set := &domain.SummarySet{Date: "2025-03-07", Language: "en", Source: "local",
		Summaries: []domain.Summary{{ID: "a1", Title: "Bell patents the telephone", Script: "long ago...", ReadingTimeS: 30}}}
	require.NoError(t, repos.Cache.UpdateSummaries(context.Background(), cache.ID, set))
	require.NoError(t, repos.Cache.UpdateAttribution(context.Background(), cache.ID, "Sources: Wikipedia"))

	refs := []domain.AudioTrackRef{
		{Key: "01", Title: "March 7", ContentHash: "h1", Kind: domain.TrackIntro},
		{Key: "02", Title: "Bell patents the telephone", ContentHash: "h2", Kind: domain.TrackStory},
	}
	require.NoError(t, repos.Cache.UpdateTracks(context.Background(), cache.ID, refs))

	// everything committed so far must round-trip
	got, err := repos.Cache.Get(context.Background(), date, "en", domain.BucketMiddle)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "deadbeef", got.FeedHash)
	require.NotNil(t, got.Selection)
	assert.Equal(t, "Bell patents the telephone", got.Selection.Selected[0].Title)
	require.NotNil(t, got.Summaries)
	assert.Equal(t, 30, got.Summaries.Summaries[0].ReadingTimeS)
	assert.Equal(t, "Sources: Wikipedia", got.AttributionScript)
	require.Len(t, got.AudioRefs, 2)
	assert.True(t, got.AudioRefs[0].Finalized())

	require.NoError(t, repos.Build.Finish(context.Background(), run.ID, domain.BuildSuccess, ""))
	latest, err := repos.Build.Latest(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BuildSuccess, latest.Status)

	require.NoError(t, repos.User.UpdateCardID(context.Background(), user.ID, "card-1"))
	updated, err := repos.User.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "card-1", updated.CardID)
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	cfg := Config{
		DSN: "invalid://database/url",
	}

	_, err := NewRepositories(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRepositories_Close(t *testing.T) {
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, repos.Close())
	assert.Error(t, repos.Ping(context.Background()), "ping after close must fail")
}
