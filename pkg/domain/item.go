package domain

// FeedItem represents a single normalized historical-feed record.
// Items are ephemeral: they live only for the duration of a build and are
// never persisted beyond the derived feed fingerprint.
type FeedItem struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"` // event, birth, death or holiday
	Title     string `json:"title"`
	Year      int    `json:"year,omitempty"`
	Summary   string `json:"summary"`
	SourceURL string `json:"source_url,omitempty"`
}

// item kinds as they appear in the upstream feed
const (
	KindEvent   = "event"
	KindBirth   = "birth"
	KindDeath   = "death"
	KindHoliday = "holiday"
)

// Selection is the curated subset of feed items chosen for one date,
// language and age band, in narration order.
type Selection struct {
	Date     string     `json:"date"`
	Language string     `json:"language"`
	AgeMin   int        `json:"age_min"`
	AgeMax   int        `json:"age_max"`
	Source   string     `json:"source"` // "llm" or "local"
	Selected []FeedItem `json:"selected"`
}

// Summary is a narration script for one selected item
type Summary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Script       string `json:"script"`
	ReadingTimeS int    `json:"reading_time_s"`
}

// SummarySet groups the per-item summaries with their request metadata
type SummarySet struct {
	Date      string    `json:"date"`
	Language  string    `json:"language"`
	AgeMin    int       `json:"age_min"`
	AgeMax    int       `json:"age_max"`
	Source    string    `json:"source"`
	Summaries []Summary `json:"summaries"`
}
