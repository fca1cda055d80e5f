package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akarasev/daytales/pkg/domain"
)

// BuildRepository handles the append-only build run log
type BuildRepository struct {
	db *sqlx.DB
}

// NewBuildRepository creates a new build run repository
func NewBuildRepository(database *sqlx.DB) *BuildRepository {
	return &BuildRepository{db: database}
}

// buildRunSQL represents a build run row
type buildRunSQL struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Date      string    `db:"date"`
	Status    string    `db:"status"`
	Error     string    `db:"error"`
	CreatedAt time.Time `db:"created_at"`
}

// Create records a new build attempt in the running state. The record is
// created before any build work starts so a crash still leaves a trace.
func (r *BuildRepository) Create(ctx context.Context, userID int64, date time.Time) (*domain.BuildRun, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO build_runs (user_id, date, status) VALUES (?, ?, ?)`,
		userID, date.Format(dateFormat), domain.BuildRunning)
	if err != nil {
		return nil, fmt.Errorf("create build run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get insert id: %w", err)
	}

	return &domain.BuildRun{ID: id, UserID: userID, Date: date, Status: domain.BuildRunning}, nil
}

// Finish finalizes a build run with its terminal status
func (r *BuildRepository) Finish(ctx context.Context, id int64, status, errMsg string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE build_runs SET status = ?, error = ? WHERE id = ?`, status, errMsg, id)
	if err != nil {
		return fmt.Errorf("finish build run: %w", err)
	}
	return nil
}

// Latest returns the most recent build run for the user, nil when none exists
func (r *BuildRepository) Latest(ctx context.Context, userID int64) (*domain.BuildRun, error) {
	var row buildRunSQL
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM build_runs WHERE user_id = ? ORDER BY id DESC LIMIT 1`, userID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest build run: %w", err)
	}
	return r.toDomainRun(&row)
}

// Recent returns the newest build runs for the user, newest first
func (r *BuildRepository) Recent(ctx context.Context, userID int64, limit int) ([]*domain.BuildRun, error) {
	var rows []buildRunSQL
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM build_runs WHERE user_id = ? ORDER BY id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent build runs: %w", err)
	}

	runs := make([]*domain.BuildRun, 0, len(rows))
	for i := range rows {
		run, err := r.toDomainRun(&rows[i])
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// toDomainRun converts buildRunSQL to domain.BuildRun
func (r *BuildRepository) toDomainRun(row *buildRunSQL) (*domain.BuildRun, error) {
	date, err := time.Parse(dateFormat, row.Date)
	if err != nil {
		return nil, fmt.Errorf("parse build run date %q: %w", row.Date, err)
	}
	return &domain.BuildRun{
		ID:        row.ID,
		UserID:    row.UserID,
		Date:      date,
		Status:    row.Status,
		Error:     row.Error,
		CreatedAt: row.CreatedAt,
	}, nil
}
