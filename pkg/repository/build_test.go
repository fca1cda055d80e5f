package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/domain"
)

func TestBuildRepository_CreateFinish(t *testing.T) {
	repos := setupTestRepos(t)
	user := &domain.User{}
	require.NoError(t, repos.User.Create(context.Background(), user))

	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	run, err := repos.Build.Create(context.Background(), user.ID, date)
	require.NoError(t, err)
	assert.NotZero(t, run.ID)
	assert.Equal(t, domain.BuildRunning, run.Status)

	require.NoError(t, repos.Build.Finish(context.Background(), run.ID, domain.BuildFailed, "feed unavailable"))

	latest, err := repos.Build.Latest(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, latest.ID)
	assert.Equal(t, domain.BuildFailed, latest.Status)
	assert.Equal(t, "feed unavailable", latest.Error)
	assert.Equal(t, date, latest.Date)
}

func TestBuildRepository_LatestMissing(t *testing.T) {
	repos := setupTestRepos(t)

	latest, err := repos.Build.Latest(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestBuildRepository_AppendOnlyLog(t *testing.T) {
	repos := setupTestRepos(t)
	user := &domain.User{}
	require.NoError(t, repos.User.Create(context.Background(), user))
	other := &domain.User{}
	require.NoError(t, repos.User.Create(context.Background(), other))

	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run, err := repos.Build.Create(context.Background(), user.ID, date)
		require.NoError(t, err)
		require.NoError(t, repos.Build.Finish(context.Background(), run.ID, domain.BuildSuccess, ""))
	}
	_, err := repos.Build.Create(context.Background(), other.ID, date)
	require.NoError(t, err)

	// every attempt is kept, newest first, scoped to the user
	runs, err := repos.Build.Recent(context.Background(), user.ID, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Greater(t, runs[1].ID, runs[2].ID)
	for _, run := range runs {
		assert.Equal(t, user.ID, run.UserID)
	}

	all, err := repos.Build.Recent(context.Background(), user.ID, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
