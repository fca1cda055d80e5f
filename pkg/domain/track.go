package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// track kinds
const (
	TrackIntro = "intro"
	TrackStory = "story"
	TrackOutro = "outro"
)

// AudioTrackRef is a reference to one narrated track within a daily cache
// row. It starts as a placeholder and becomes immutable once ContentHash is
// set by the upload/transcode stage (or by the offline synthetic path).
type AudioTrackRef struct {
	Key         string  `json:"key"` // 2-digit position, "01" is always the intro
	Title       string  `json:"title"`
	ContentHash string  `json:"content_hash,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // seconds
	FileSize    int64   `json:"file_size,omitempty"`
	Channels    string  `json:"channels,omitempty"`
	Format      string  `json:"format,omitempty"`
	Kind        string  `json:"kind"`
}

// Finalized reports whether the track went through upload/transcode
// (or the offline substitute) and is eligible for publishing.
func (t AudioTrackRef) Finalized() bool { return t.ContentHash != "" && t.Title != "" }

// TrackKey formats a 1-based track position as the canonical 2-digit key
func TrackKey(pos int) string { return fmt.Sprintf("%02d", pos) }

// SortTracks orders track refs ascending by numeric key, in place
func SortTracks(refs []AudioTrackRef) {
	sort.Slice(refs, func(i, j int) bool {
		a, _ := strconv.Atoi(refs[i].Key)
		b, _ := strconv.Atoi(refs[j].Key)
		return a < b
	})
}

// Chapter is one calendar day's ordered set of narrated tracks. Chapters are
// derived views assembled fresh for every publish, never stored.
type Chapter struct {
	Key    string         `json:"key"` // ISO date
	Title  string         `json:"title"`
	Tracks []ChapterTrack `json:"tracks"`
}

// ChapterTrack is the published form of a finalized AudioTrackRef
type ChapterTrack struct {
	Key          string  `json:"key"`
	Title        string  `json:"title"`
	TrackURL     string  `json:"trackUrl"`
	Duration     float64 `json:"duration,omitempty"`
	FileSize     int64   `json:"fileSize,omitempty"`
	Channels     string  `json:"channels,omitempty"`
	Format       string  `json:"format,omitempty"`
	OverlayLabel string  `json:"overlayLabel,omitempty"`
}

// ChapterTitle renders the human chapter title for a date, e.g. "August 30"
func ChapterTitle(date time.Time) string { return date.Format("January 2") }
