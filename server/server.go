// Package server exposes the status and rebuild REST API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/akarasev/daytales/pkg/builder"
	"github.com/akarasev/daytales/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/stores.go -pkg mocks -skip-ensure -fmt goimports . BuildStore UserStore

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	scheduler Scheduler
	builds    BuildStore
	users     UserStore
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Scheduler triggers on-demand builds
type Scheduler interface {
	BuildNow(ctx context.Context, userID int64, date time.Time, reset bool) (*builder.Result, error)
}

// BuildStore reads the build run log
type BuildStore interface {
	Latest(ctx context.Context, userID int64) (*domain.BuildRun, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*domain.BuildRun, error)
}

// UserStore lists registered users
type UserStore interface {
	List(ctx context.Context) ([]*domain.User, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, scheduler Scheduler, builds BuildStore, users UserStore, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		scheduler: scheduler,
		builds:    builds,
		users:     users,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("daytales", "akarasev", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /builds/{user}", s.buildsHandler)
		r.HandleFunc("POST /rebuild/{user}", s.rebuildHandler)
	})
}

// userStatus is one user's line in the status response
type userStatus struct {
	UserID    int64    `json:"user_id"`
	Language  string   `json:"language"`
	AgeBucket string   `json:"age_bucket"`
	LastBuild *runInfo `json:"last_build,omitempty"`
}

// runInfo is the API shape of a build run
type runInfo struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// statusHandler returns server status with the latest build per user
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		RenderError(w, r, fmt.Errorf("list users: %w", err), http.StatusInternalServerError)
		return
	}

	statuses := make([]userStatus, 0, len(users))
	for _, u := range users {
		st := userStatus{UserID: u.ID, Language: u.Language, AgeBucket: u.AgeBucket}
		run, err := s.builds.Latest(r.Context(), u.ID)
		if err != nil {
			RenderError(w, r, fmt.Errorf("latest build for user %d: %w", u.ID, err), http.StatusInternalServerError)
			return
		}
		if run != nil {
			st.LastBuild = toRunInfo(run)
		}
		statuses = append(statuses, st)
	}

	RenderJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"users":   statuses,
	})
}

// buildsHandler returns the recent build runs for one user
func (s *Server) buildsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("user"), 10, 64)
	if err != nil {
		RenderError(w, r, fmt.Errorf("invalid user id"), http.StatusBadRequest)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	runs, err := s.builds.Recent(r.Context(), userID, limit)
	if err != nil {
		RenderError(w, r, fmt.Errorf("recent builds: %w", err), http.StatusInternalServerError)
		return
	}

	infos := make([]*runInfo, 0, len(runs))
	for _, run := range runs {
		infos = append(infos, toRunInfo(run))
	}
	RenderJSON(w, r, http.StatusOK, map[string]any{"user_id": userID, "builds": infos})
}

// rebuildHandler triggers a background build for a user, today by default
func (s *Server) rebuildHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("user"), 10, 64)
	if err != nil {
		RenderError(w, r, fmt.Errorf("invalid user id"), http.StatusBadRequest)
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			RenderError(w, r, fmt.Errorf("invalid date, want YYYY-MM-DD"), http.StatusBadRequest)
			return
		}
		date = parsed
	}
	reset := r.URL.Query().Get("reset") == "true"

	// the build outlives the request
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
		defer cancel()
		if _, err := s.scheduler.BuildNow(ctx, userID, date, reset); err != nil {
			lgr.Printf("[ERROR] on-demand build failed for user %d: %v", userID, err)
		}
	}()

	RenderJSON(w, r, http.StatusAccepted, map[string]any{
		"result":  "rebuild started",
		"user_id": userID,
		"date":    date.Format("2006-01-02"),
		"reset":   reset,
	})
}

// toRunInfo converts a domain run to its API shape
func toRunInfo(run *domain.BuildRun) *runInfo {
	return &runInfo{
		ID:        run.ID,
		Date:      run.Date.Format("2006-01-02"),
		Status:    run.Status,
		Error:     run.Error,
		CreatedAt: run.CreatedAt,
	}
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
