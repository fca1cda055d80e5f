package curator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/daytales/pkg/domain"
)

func TestSafeFilter(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "1", Kind: domain.KindEvent, Title: "Moon landing", Summary: "Apollo 11 lands."},
		{ID: "2", Kind: domain.KindEvent, Title: "Terrible massacre", Summary: "Not for kids."},
		{ID: "3", Kind: domain.KindDeath, Title: "Famous person dies", Summary: "An obituary."},
		{ID: "4", Kind: domain.KindHoliday, Title: "Festival of lights"},
	}

	out := SafeFilter(items)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].ID)
	assert.Equal(t, "4", out[1].ID)
}

func TestLocal_Select(t *testing.T) {
	req := Request{Date: "2025-01-01", Language: "en", AgeMin: 5, AgeMax: 8}

	t.Run("small feed keeps everything", func(t *testing.T) {
		items := []domain.FeedItem{
			{ID: "a", Kind: domain.KindEvent, Title: "A", Year: 1900},
			{ID: "b", Kind: domain.KindEvent, Title: "B", Year: 1950},
		}
		sel, err := NewLocal().Select(context.Background(), items, req)
		require.NoError(t, err)
		assert.Len(t, sel.Selected, 2)
		assert.Equal(t, "local", sel.Source)
		assert.Equal(t, "2025-01-01", sel.Date)
	})

	t.Run("large feed bounded and year-spread", func(t *testing.T) {
		var items []domain.FeedItem
		for i := 0; i < 40; i++ {
			items = append(items, domain.FeedItem{
				ID:    fmt.Sprintf("i%02d", i),
				Kind:  domain.KindEvent,
				Title: fmt.Sprintf("Event %02d", i),
				Year:  1800 + i*5,
			})
		}
		sel, err := NewLocal().Select(context.Background(), items, req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(sel.Selected), 5)
		assert.LessOrEqual(t, len(sel.Selected), 10)

		// stride sampling keeps years spread out
		for i := 1; i < len(sel.Selected); i++ {
			assert.Greater(t, sel.Selected[i].Year, sel.Selected[i-1].Year)
		}
	})

	t.Run("unsafe items never selected", func(t *testing.T) {
		items := []domain.FeedItem{
			{ID: "ok", Kind: domain.KindEvent, Title: "Nice event", Year: 1900},
			{ID: "bad", Kind: domain.KindEvent, Title: "gore everywhere", Year: 1910},
		}
		sel, err := NewLocal().Select(context.Background(), items, req)
		require.NoError(t, err)
		for _, it := range sel.Selected {
			assert.NotEqual(t, "bad", it.ID)
		}
	})
}

func TestLocal_SummarizeOne(t *testing.T) {
	req := Request{Date: "2025-01-01", Language: "en", AgeMin: 5, AgeMax: 8}
	item := domain.FeedItem{ID: "e1", Title: "Moon landing", Year: 1969, Summary: "Apollo 11 lands on the moon."}

	s, err := NewLocal().SummarizeOne(context.Background(), item, req)
	require.NoError(t, err)

	assert.Equal(t, "e1", s.ID)
	assert.Equal(t, "Moon landing", s.Title)
	assert.True(t, strings.HasPrefix(s.Script, "Moon landing (1969)."))
	assert.Equal(t, targetScriptWords, len(strings.Fields(s.Script)))
	assert.Equal(t, ReadingTime(s.Script), s.ReadingTimeS)
	assert.Positive(t, s.ReadingTimeS)
}

func TestLocal_SummarizeOneDefaults(t *testing.T) {
	s, err := NewLocal().SummarizeOne(context.Background(), domain.FeedItem{ID: "x"}, Request{})
	require.NoError(t, err)
	assert.Equal(t, "Untitled", s.Title)
	assert.NotEmpty(t, s.Script)
}

func TestLocal_Summarize(t *testing.T) {
	items := []domain.FeedItem{
		{ID: "1", Title: "First", Year: 1900},
		{ID: "2", Title: "Second", Year: 1950},
	}
	set, err := NewLocal().Summarize(context.Background(), items, Request{Date: "2025-01-01"})
	require.NoError(t, err)
	require.Len(t, set.Summaries, 2)
	assert.Equal(t, "local", set.Source)
	assert.Equal(t, "1", set.Summaries[0].ID)
	assert.Equal(t, "2", set.Summaries[1].ID)
}

func TestLocal_Attribution(t *testing.T) {
	attrib, err := NewLocal().Attribution(context.Background(), Request{Language: "en"})
	require.NoError(t, err)
	assert.Contains(t, attrib, "Wikipedia")
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("one two three"))
	assert.Equal(t, 2, ReadingTime("one two three four"))
}
