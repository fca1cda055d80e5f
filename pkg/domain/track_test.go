package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackKey(t *testing.T) {
	assert.Equal(t, "01", TrackKey(1))
	assert.Equal(t, "02", TrackKey(2))
	assert.Equal(t, "10", TrackKey(10))
}

func TestSortTracks(t *testing.T) {
	refs := []AudioTrackRef{
		{Key: "03", Title: "third"},
		{Key: "01", Title: "first"},
		{Key: "10", Title: "tenth"},
		{Key: "02", Title: "second"},
	}
	SortTracks(refs)

	keys := make([]string, 0, len(refs))
	for _, r := range refs {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"01", "02", "03", "10"}, keys, "numeric order, not lexicographic")
}

func TestAudioTrackRef_Finalized(t *testing.T) {
	tests := []struct {
		name string
		ref  AudioTrackRef
		want bool
	}{
		{"complete", AudioTrackRef{Key: "01", Title: "Intro", ContentHash: "abc"}, true},
		{"no hash", AudioTrackRef{Key: "01", Title: "Intro"}, false},
		{"no title", AudioTrackRef{Key: "01", ContentHash: "abc"}, false},
		{"empty", AudioTrackRef{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Finalized())
		})
	}
}

func TestChapterTitle(t *testing.T) {
	assert.Equal(t, "March 7", ChapterTitle(time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "December 31", ChapterTitle(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestAgeBounds(t *testing.T) {
	tests := []struct {
		bucket         string
		ageMin, ageMax int
	}{
		{BucketYoung, 2, 4},
		{BucketMiddle, 5, 8},
		{BucketOlder, 9, 12},
		{"unknown", 5, 8}, // defaults to middle
		{"", 5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.bucket, func(t *testing.T) {
			gotMin, gotMax := AgeBounds(tt.bucket)
			assert.Equal(t, tt.ageMin, gotMin)
			assert.Equal(t, tt.ageMax, gotMax)
		})
	}
}
