// Package controller owns the interaction state machine behind each
// console page: list snapshot, search term, form draft, delete
// confirmation and the active notification. Controllers orchestrate the
// upstream adapter and never render anything themselves.
package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/escola-admin-console/internal/models"
)

// Adapter is the upstream operation set a controller drives. Adapters
// decode drafts, validate them and issue the HTTP calls.
type Adapter[R any, K comparable] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, draft Draft) (R, error)
	Update(ctx context.Context, key K, draft Draft) (R, error)
	Delete(ctx context.Context, key K) error
}

// Messages are the user-facing notification texts of one resource page.
type Messages struct {
	LoadFailed    string
	Saved         string
	Updated       string
	SaveFailed    string
	Deleted       string
	DeleteFailed  string
	EditVanished  string
}

// Descriptor describes one resource to the generic controller.
type Descriptor[R any, K comparable] struct {
	// Name tags log lines, never the UI.
	Name string
	// Key extracts the lookup/update key of an entity.
	Key func(R) K
	// FilterText lists the fields the search box matches against.
	FilterText func(R) []string
	// ToDraft converts an entity into an editable draft.
	ToDraft func(R) Draft
	// EmptyDraft seeds the create form.
	EmptyDraft func() Draft
	// CanDelete gates the delete flow; the upstream has no delete for
	// some resources.
	CanDelete bool

	Messages Messages
}

// Controller is the generic CRUD page state machine. All exported
// methods are safe for concurrent use; upstream calls happen outside the
// lock so the page stays interactive while a request is in flight.
type Controller[R any, K comparable] struct {
	adapter   Adapter[R, K]
	desc      Descriptor[R, K]
	notifyTTL time.Duration
	now       func() time.Time
	logger    *zap.Logger

	mu           sync.Mutex
	loading      bool
	fetched      bool
	fetchGen     uint64
	list         []R
	search       string
	form         *FormState[K]
	pendingKey   *K
	submitting   bool
	notification *models.Notification
}

// New builds a controller in the Idle phase.
func New[R any, K comparable](adapter Adapter[R, K], desc Descriptor[R, K], notifyTTL time.Duration, logger *zap.Logger) *Controller[R, K] {
	if notifyTTL <= 0 {
		notifyTTL = 6 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller[R, K]{
		adapter:   adapter,
		desc:      desc,
		notifyTTL: notifyTTL,
		now:       time.Now,
		logger:    logger,
	}
}

// EnsureLoaded triggers the mount fetch exactly once; later calls are
// no-ops and the page serves the existing snapshot.
func (c *Controller[R, K]) EnsureLoaded(ctx context.Context) {
	c.mu.Lock()
	fetched := c.fetched || c.loading
	c.mu.Unlock()
	if !fetched {
		c.Refresh(ctx)
	}
}

// Refresh re-fetches the full list. The snapshot is replaced wholesale
// on success; on failure the previous list stays and an error
// notification is raised. A refresh started later supersedes this one:
// the older completion is dropped.
func (c *Controller[R, K]) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.loading = true
	c.mu.Unlock()

	list, err := c.adapter.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.fetchGen {
		// A newer fetch owns the snapshot now.
		return
	}
	c.loading = false
	c.fetched = true
	if err != nil {
		c.logger.Warn("list_fetch_failed", zap.String("resource", c.desc.Name), zap.Error(err))
		c.notifyLocked(c.desc.Messages.LoadFailed, models.SeverityError)
		return
	}
	c.list = list
}

// SetSearch stores the search term. Purely local: no upstream call, no
// phase change.
func (c *Controller[R, K]) SetSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search = term
}

// OpenCreate opens the form in create mode with an empty draft.
func (c *Controller[R, K]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingKey = nil
	c.form = &FormState[K]{Mode: FormCreate, Draft: c.desc.EmptyDraft()}
}

// OpenEdit opens the form in edit mode seeded with the entity's current
// values from the list snapshot.
func (c *Controller[R, K]) OpenEdit(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entity := range c.list {
		if c.desc.Key(entity) == key {
			c.pendingKey = nil
			c.form = &FormState[K]{Mode: FormEdit, Draft: c.desc.ToDraft(entity), Key: key}
			return
		}
	}
	// Stale snapshot: the entity is gone since the last fetch.
	c.notifyLocked(c.desc.Messages.EditVanished, models.SeverityError)
}

// CloseForm discards the open form and its draft.
func (c *Controller[R, K]) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
}

// Submit validates and persists the draft via create or update depending
// on the form mode. On success the form closes, a success notification
// shows and the list is refreshed. On failure the form stays open with
// the submitted draft intact. A second submit while one is in flight
// returns ErrSubmitInFlight and changes nothing.
func (c *Controller[R, K]) Submit(ctx context.Context, draft Draft) error {
	c.mu.Lock()
	if c.form == nil {
		c.mu.Unlock()
		return nil
	}
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.submitting = true
	mode := c.form.Mode
	key := c.form.Key
	c.form.Draft = draft.Clone()
	c.mu.Unlock()

	var err error
	if mode == FormEdit {
		_, err = c.adapter.Update(ctx, key, draft)
	} else {
		_, err = c.adapter.Create(ctx, draft)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.logger.Warn("submit_failed",
			zap.String("resource", c.desc.Name),
			zap.String("mode", string(mode)),
			zap.Error(err),
		)
		c.notifyLocked(c.desc.Messages.SaveFailed, models.SeverityError)
		c.mu.Unlock()
		return err
	}
	c.form = nil
	message := c.desc.Messages.Saved
	if mode == FormEdit {
		message = c.desc.Messages.Updated
	}
	c.notifyLocked(message, models.SeveritySuccess)
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// RequestDelete stages the confirmation gate for the given key. Nothing
// touches the upstream until ConfirmDelete.
func (c *Controller[R, K]) RequestDelete(key K) {
	if !c.desc.CanDelete {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = nil
	c.pendingKey = &key
}

// CancelDelete clears the staged confirmation.
func (c *Controller[R, K]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingKey = nil
}

// ConfirmDelete performs the staged delete. The list is left untouched
// on failure; a refresh reconciles it on success.
func (c *Controller[R, K]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingKey == nil {
		c.mu.Unlock()
		return nil
	}
	key := *c.pendingKey
	c.pendingKey = nil
	c.mu.Unlock()

	if err := c.adapter.Delete(ctx, key); err != nil {
		c.logger.Warn("delete_failed", zap.String("resource", c.desc.Name), zap.Error(err))
		c.mu.Lock()
		c.notifyLocked(c.desc.Messages.DeleteFailed, models.SeverityError)
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.notifyLocked(c.desc.Messages.Deleted, models.SeveritySuccess)
	c.mu.Unlock()

	c.Refresh(ctx)
	return nil
}

// DismissNotification removes the active notification ahead of expiry.
func (c *Controller[R, K]) DismissNotification() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notification = nil
}

// Snapshot returns the render-ready view: phase, filtered entities in
// server order, form, staged delete and the still-active notification.
func (c *Controller[R, K]) Snapshot() Snapshot[R, K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notification != nil && !c.notification.Active(c.now()) {
		c.notification = nil
	}

	snap := Snapshot[R, K]{
		Phase:    c.phaseLocked(),
		Loading:  c.loading,
		Entities: filter(c.list, c.search, c.desc.FilterText),
		Total:    len(c.list),
		Search:   c.search,
	}
	if c.form != nil {
		form := *c.form
		form.Draft = c.form.Draft.Clone()
		snap.Form = &form
	}
	if c.pendingKey != nil {
		key := *c.pendingKey
		snap.PendingKey = &key
	}
	if c.notification != nil {
		notification := *c.notification
		snap.Notification = &notification
	}
	return snap
}

func (c *Controller[R, K]) phaseLocked() Phase {
	switch {
	case c.pendingKey != nil:
		return PhasePendingConfirm
	case c.form != nil:
		return PhaseFormOpen
	case c.loading:
		return PhaseLoading
	case c.fetched:
		return PhaseLoaded
	default:
		return PhaseIdle
	}
}

func (c *Controller[R, K]) notifyLocked(message string, severity models.Severity) {
	c.notification = &models.Notification{
		Message:   message,
		Severity:  severity,
		ExpiresAt: c.now().Add(c.notifyTTL),
	}
}

// filter keeps entities whose filter fields contain the term,
// case-insensitively. An empty term keeps everything. Server order is
// preserved.
func filter[R any](list []R, term string, fields func(R) []string) []R {
	if term == "" {
		return append([]R(nil), list...)
	}
	needle := strings.ToLower(term)
	out := make([]R, 0, len(list))
	for _, entity := range list {
		for _, field := range fields(entity) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, entity)
				break
			}
		}
	}
	return out
}
