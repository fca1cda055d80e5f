package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/akarasev/daytales/pkg/domain"
)

// CacheRepository handles daily cache database operations
type CacheRepository struct {
	db *sqlx.DB
}

// NewCacheRepository creates a new daily cache repository
func NewCacheRepository(database *sqlx.DB) *CacheRepository {
	return &CacheRepository{db: database}
}

// cacheSQL represents a daily cache row for SQL operations
type cacheSQL struct {
	ID                int64         `db:"id"`
	Date              string        `db:"date"`
	Language          string        `db:"language"`
	AgeBucket         string        `db:"age_bucket"`
	FeedHash          string        `db:"feed_hash"`
	Selection         *selectionSQL `db:"selection"`
	Summaries         *summariesSQL `db:"summaries"`
	AttributionScript string        `db:"attribution_script"`
	AudioRefs         audioRefsSQL  `db:"audio_refs"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

// selectionSQL stores the curated selection as a JSON column
type selectionSQL domain.Selection

// Value implements driver.Valuer for database storage
func (s *selectionSQL) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *selectionSQL) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// summariesSQL stores the narration summaries as a JSON column
type summariesSQL domain.SummarySet

// Value implements driver.Valuer for database storage
func (s *summariesSQL) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for database retrieval
func (s *summariesSQL) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// audioRefsSQL is a JSON array of track references for SQL operations
type audioRefsSQL []domain.AudioTrackRef

// Value implements driver.Valuer for database storage
func (a audioRefsSQL) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *audioRefsSQL) Scan(value interface{}) error {
	if value == nil {
		*a = audioRefsSQL{}
		return nil
	}
	return scanJSON(value, a)
}

// scanJSON decodes a TEXT or BLOB column into out
func scanJSON(value, out interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
	return json.Unmarshal(data, out)
}

// GetOrCreate returns the cache row for the key, creating an empty one when
// none exists yet. Concurrent creators converge on the same row through the
// unique key.
func (r *CacheRepository) GetOrCreate(ctx context.Context, date time.Time, language, ageBucket string) (*domain.DailyCache, error) {
	day := date.Format(dateFormat)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_cache (date, language, age_bucket) VALUES (?, ?, ?)
		 ON CONFLICT(date, language, age_bucket) DO NOTHING`,
		day, language, ageBucket)
	if err != nil {
		return nil, fmt.Errorf("create cache row: %w", err)
	}
	return r.get(ctx, day, language, ageBucket)
}

// Get retrieves the cache row for the key, nil when absent
func (r *CacheRepository) Get(ctx context.Context, date time.Time, language, ageBucket string) (*domain.DailyCache, error) {
	row, err := r.get(ctx, date.Format(dateFormat), language, ageBucket)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

// GetRange retrieves all cache rows for the language and bucket with dates in
// [from, to], newest first. Used to assemble the rolling chapter window.
func (r *CacheRepository) GetRange(ctx context.Context, language, ageBucket string, from, to time.Time) ([]*domain.DailyCache, error) {
	query := `
		SELECT * FROM daily_cache
		WHERE language = ? AND age_bucket = ? AND date >= ? AND date <= ?
		ORDER BY date DESC
	`
	var rows []cacheSQL
	err := r.db.SelectContext(ctx, &rows, query, language, ageBucket, from.Format(dateFormat), to.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("get cache range: %w", err)
	}

	caches := make([]*domain.DailyCache, 0, len(rows))
	for i := range rows {
		c, err := r.toDomainCache(&rows[i])
		if err != nil {
			return nil, err
		}
		caches = append(caches, c)
	}
	return caches, nil
}

// UpdateFeedHash commits the normalized feed fingerprint
func (r *CacheRepository) UpdateFeedHash(ctx context.Context, id int64, feedHash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET feed_hash = ? WHERE id = ?`, feedHash, id)
	if err != nil {
		return fmt.Errorf("update feed hash: %w", err)
	}
	return nil
}

// UpdateSelection commits the curated selection
func (r *CacheRepository) UpdateSelection(ctx context.Context, id int64, sel *domain.Selection) error {
	_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET selection = ? WHERE id = ?`, (*selectionSQL)(sel), id)
	if err != nil {
		return fmt.Errorf("update selection: %w", err)
	}
	return nil
}

// UpdateSummaries commits the narration summaries
func (r *CacheRepository) UpdateSummaries(ctx context.Context, id int64, set *domain.SummarySet) error {
	_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET summaries = ? WHERE id = ?`, (*summariesSQL)(set), id)
	if err != nil {
		return fmt.Errorf("update summaries: %w", err)
	}
	return nil
}

// UpdateAttribution commits the attribution outro script
func (r *CacheRepository) UpdateAttribution(ctx context.Context, id int64, script string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET attribution_script = ? WHERE id = ?`, script, id)
	if err != nil {
		return fmt.Errorf("update attribution: %w", err)
	}
	return nil
}

// UpdateTracks commits the full track reference list. This is the hot path
// during concurrent story synthesis, so lock errors are retried.
func (r *CacheRepository) UpdateTracks(ctx context.Context, id int64, refs []domain.AudioTrackRef) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET audio_refs = ? WHERE id = ?`, audioRefsSQL(refs), id)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("update tracks: %w", err)}
		}
		return nil
	})
}

// ResetAudio clears all track references so a rebuild re-synthesizes from the
// committed selection and summaries
func (r *CacheRepository) ResetAudio(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE daily_cache SET audio_refs = '[]' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("reset audio refs: %w", err)
	}
	return nil
}

// get retrieves one row by key
func (r *CacheRepository) get(ctx context.Context, day, language, ageBucket string) (*domain.DailyCache, error) {
	var row cacheSQL
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM daily_cache WHERE date = ? AND language = ? AND age_bucket = ?`,
		day, language, ageBucket)
	if err != nil {
		return nil, fmt.Errorf("get cache row: %w", err)
	}
	return r.toDomainCache(&row)
}

// toDomainCache converts cacheSQL to domain.DailyCache
func (r *CacheRepository) toDomainCache(row *cacheSQL) (*domain.DailyCache, error) {
	date, err := time.Parse(dateFormat, row.Date)
	if err != nil {
		return nil, fmt.Errorf("parse cache date %q: %w", row.Date, err)
	}
	return &domain.DailyCache{
		ID:                row.ID,
		Date:              date,
		Language:          row.Language,
		AgeBucket:         row.AgeBucket,
		FeedHash:          row.FeedHash,
		Selection:         (*domain.Selection)(row.Selection),
		Summaries:         (*domain.SummarySet)(row.Summaries),
		AttributionScript: row.AttributionScript,
		AudioRefs:         []domain.AudioTrackRef(row.AudioRefs),
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}, nil
}
