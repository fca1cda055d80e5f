package domain

import "time"

// DailyCache is the persistent per (date, language, age bucket) build state.
// Exactly one row exists per key. The row is created on first access and
// mutated incrementally during a build: every stage commits its output before
// the next begins, so a crash leaves the most recently committed state behind
// and a later run can resume from it.
type DailyCache struct {
	ID                int64
	Date              time.Time
	Language          string
	AgeBucket         string
	FeedHash          string
	Selection         *Selection
	Summaries         *SummarySet
	AttributionScript string
	AudioRefs         []AudioTrackRef
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// build run statuses
const (
	BuildRunning = "running"
	BuildSuccess = "success"
	BuildFailed  = "failed"
)

// BuildRun is one build attempt, created eagerly when a build starts and
// finalized exactly once. The table is an append-only audit log.
type BuildRun struct {
	ID        int64
	UserID    int64
	Date      time.Time
	Status    string
	Error     string
	CreatedAt time.Time
}

// User holds platform credentials and playlist preferences
type User struct {
	ID             int64
	AccessToken    string
	RefreshToken   string
	TokenExpiresAt time.Time
	Language       string
	AgeBucket      string
	AgeMin         int
	AgeMax         int
	CardID         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// age buckets partitioning caches and published cards
const (
	BucketYoung  = "2-4"
	BucketMiddle = "5-8"
	BucketOlder  = "9-12"
)

// AgeBounds maps an age bucket to its min/max years, defaulting to the
// middle bucket for unknown values.
func AgeBounds(bucket string) (ageMin, ageMax int) {
	switch bucket {
	case BucketYoung:
		return 2, 4
	case BucketOlder:
		return 9, 12
	default:
		return 5, 8
	}
}
