package controller

import (
	"net/http"

	"github.com/noah-isme/escola-admin-console/internal/models"
	appErrors "github.com/noah-isme/escola-admin-console/pkg/errors"
)

// Phase is the tagged state of a page's interaction machine.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseLoading        Phase = "loading"
	PhaseLoaded         Phase = "loaded"
	PhaseFormOpen       Phase = "form_open"
	PhasePendingConfirm Phase = "pending_confirm"
)

// FormMode distinguishes the create and edit variants of an open form.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// Draft maps form field names to their current text values. It is the
// unsaved, in-progress representation of a resource.
type Draft map[string]string

// Clone copies a draft so callers can hold it outside the lock.
func (d Draft) Clone() Draft {
	if d == nil {
		return nil
	}
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Get returns the draft value for a field, empty when unset.
func (d Draft) Get(field string) string {
	if d == nil {
		return ""
	}
	return d[field]
}

// FormState is the open form of a controller: its mode, the draft being
// edited, and (in edit mode) the key of the entity being edited.
type FormState[K comparable] struct {
	Mode  FormMode
	Draft Draft
	Key   K
}

// Snapshot is the render-ready view of a controller. Entities carry the
// search filter already applied, in server order.
type Snapshot[R any, K comparable] struct {
	Phase        Phase
	Loading      bool
	Entities     []R
	Total        int
	Search       string
	Form         *FormState[K]
	PendingKey   *K
	Notification *models.Notification
}

// PendingKeyValue returns the staged delete key for rendering, or an
// empty string when no confirmation is pending.
func (s Snapshot[R, K]) PendingKeyValue() interface{} {
	if s.PendingKey == nil {
		return ""
	}
	return *s.PendingKey
}

// ErrSubmitInFlight rejects a duplicate submission while one is already
// on the wire. One submit per controller instance at a time.
var ErrSubmitInFlight = appErrors.New("SUBMIT_IN_FLIGHT", http.StatusConflict, "submission already in progress")
