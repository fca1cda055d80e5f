// Package scheduler runs the daily build loop: once per interval it rebuilds
// today's playlist for every registered user with a bounded worker pool, and
// exposes on-demand rebuilds for the REST API.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/akarasev/daytales/pkg/builder"
	"github.com/akarasev/daytales/pkg/domain"
)

//go:generate moq -out mocks/builder.go -pkg mocks -skip-ensure -fmt goimports . BuildService
//go:generate moq -out mocks/users.go -pkg mocks -skip-ensure -fmt goimports . UserStore

// BuildService runs one full build for a user and date
type BuildService interface {
	Build(ctx context.Context, user *domain.User, date time.Time, reset bool) (*builder.Result, error)
}

// UserStore lists and resolves users to build for
type UserStore interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

// Scheduler manages the periodic build cycle
type Scheduler struct {
	builder    BuildService
	users      UserStore
	interval   time.Duration
	maxWorkers int
	now        func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// Params holds scheduler configuration
type Params struct {
	Builder    BuildService
	Users      UserStore
	Interval   time.Duration // build cycle period, default 24h
	MaxWorkers int           // concurrent per-user builds, default 5
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.Interval == 0 {
		params.Interval = 24 * time.Hour
	}
	if params.MaxWorkers == 0 {
		params.MaxWorkers = 5
	}
	return &Scheduler{
		builder:    params.Builder,
		users:      params.Users,
		interval:   params.Interval,
		maxWorkers: params.MaxWorkers,
		now:        time.Now,
	}
}

// Start begins the build loop. The first cycle runs immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.buildWorker(ctx)

	lgr.Printf("[INFO] scheduler started with build interval %v, %d workers", s.interval, s.maxWorkers)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// BuildNow triggers an immediate build for one user
func (s *Scheduler) BuildNow(ctx context.Context, userID int64, date time.Time, reset bool) (*builder.Result, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.builder.Build(ctx, user, date, reset)
}

// buildWorker runs a build cycle every interval
func (s *Scheduler) buildWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.buildAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.buildAll(ctx)
		}
	}
}

// buildAll builds today's playlist for every user. Per-user failures are
// logged and never stop the cycle.
func (s *Scheduler) buildAll(ctx context.Context) {
	users, err := s.users.List(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list users: %v", err)
		return
	}
	if len(users) == 0 {
		return
	}

	date := s.today()
	lgr.Printf("[INFO] building %s for %d users", date.Format("2006-01-02"), len(users))

	// worker pool over users
	sem := make(chan struct{}, s.maxWorkers)
	var wg sync.WaitGroup

	for _, u := range users {
		wg.Add(1)
		go func(user *domain.User) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if _, err := s.builder.Build(ctx, user, date, false); err != nil {
				lgr.Printf("[ERROR] build failed for user %d: %v", user.ID, err)
			}
		}(u)
	}

	wg.Wait()
	lgr.Printf("[INFO] build cycle completed")
}

// today is the current calendar day truncated to midnight UTC
func (s *Scheduler) today() time.Time {
	n := s.now().UTC()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}
