package models

import "time"

// Severity classifies a notification for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notification is the single active toast of a page. A newer one
// replaces it; it disappears after ExpiresAt or on explicit dismissal.
type Notification struct {
	Message   string
	Severity  Severity
	ExpiresAt time.Time
}

// Active reports whether the notification should still be shown at now.
func (n *Notification) Active(now time.Time) bool {
	return n != nil && now.Before(n.ExpiresAt)
}
