package controller

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/client"
)

// Session bundles the per-page controllers of one console session. Each
// browser session owns its own state machines, so two tabs on different
// machines never share form drafts or notifications.
type Session struct {
	ID          string
	Students    *StudentController
	Courses     *CourseController
	Enrollments *EnrollmentController

	lastSeen time.Time
}

// RegistryConfig tunes session lifetime handling.
type RegistryConfig struct {
	NotificationTTL time.Duration
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	Logger          *zap.Logger
}

// Registry hands out and expires sessions.
type Registry struct {
	api       *client.Client
	validate  *validator.Validate
	notifyTTL time.Duration
	ttl       time.Duration
	sweep     time.Duration
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	started  bool
}

// NewRegistry builds a session registry over the upstream client.
func NewRegistry(api *client.Client, cfg RegistryConfig) *Registry {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = 5 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Registry{
		api:       api,
		validate:  validator.New(),
		notifyTTL: cfg.NotificationTTL,
		ttl:       cfg.SessionTTL,
		sweep:     cfg.SweepInterval,
		logger:    cfg.Logger,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session for id, minting a fresh one when the id is
// unknown or empty. The returned ID must be handed back to the browser.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if session, ok := r.sessions[id]; ok {
			session.lastSeen = r.now()
			return session
		}
	}

	session := &Session{
		ID:          uuid.NewString(),
		Students:    NewStudentController(r.api, r.validate, r.notifyTTL, r.logger),
		Courses:     NewCourseController(r.api, r.validate, r.notifyTTL, r.logger),
		Enrollments: NewEnrollmentController(r.api, r.validate, r.notifyTTL, r.logger),
		lastSeen:    r.now(),
	}
	r.sessions[session.ID] = session
	return session
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Start launches the background sweep. Safe to call once.
func (r *Registry) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.started = true
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.sweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.evictExpired()
			}
		}
	}()
}

// Stop cancels the sweep and waits for it to exit.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Registry) evictExpired() {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		if session.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
}
