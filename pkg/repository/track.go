package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akarasev/daytales/pkg/domain"
)

// TrackRepository handles shared narration tracks. Intro and outro narrations
// depend only on (date, language, title), so builds for different age buckets
// reuse the same transcoded asset instead of synthesizing it again.
type TrackRepository struct {
	db *sqlx.DB
}

// NewTrackRepository creates a new shared track repository
func NewTrackRepository(database *sqlx.DB) *TrackRepository {
	return &TrackRepository{db: database}
}

// trackRefSQL stores one AudioTrackRef as a JSON column
type trackRefSQL domain.AudioTrackRef

// Value implements driver.Valuer for database storage
func (t trackRefSQL) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *trackRefSQL) Scan(value interface{}) error {
	return scanJSON(value, t)
}

// sharedTrackSQL represents a shared track row
type sharedTrackSQL struct {
	ID        int64       `db:"id"`
	Date      string      `db:"date"`
	Language  string      `db:"language"`
	Title     string      `db:"title"`
	TrackRef  trackRefSQL `db:"track_ref"`
	CreatedAt time.Time   `db:"created_at"`
}

// Get returns the shared track for the key, nil when none is stored yet
func (r *TrackRepository) Get(ctx context.Context, date time.Time, language, title string) (*domain.AudioTrackRef, error) {
	var row sharedTrackSQL
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM shared_tracks WHERE date = ? AND language = ? AND title = ?`,
		date.Format(dateFormat), language, title)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shared track: %w", err)
	}
	ref := domain.AudioTrackRef(row.TrackRef)
	return &ref, nil
}

// Put stores the track for the key and returns the canonical stored value.
// The first writer wins; a concurrent loser gets the winner's track back.
func (r *TrackRepository) Put(ctx context.Context, date time.Time, language, title string, ref domain.AudioTrackRef) (*domain.AudioTrackRef, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shared_tracks (date, language, title, track_ref) VALUES (?, ?, ?, ?)
		 ON CONFLICT(date, language, title) DO NOTHING`,
		date.Format(dateFormat), language, title, trackRefSQL(ref))
	if err != nil {
		return nil, fmt.Errorf("put shared track: %w", err)
	}

	stored, err := r.Get(ctx, date, language, title)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("shared track vanished after put")
	}
	return stored, nil
}
