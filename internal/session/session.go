// Package session holds per-client state for the lifetime of a browser
// session: the signed-in identity, the in-progress form, the pending
// delete target, and queued notifications.
//
// The identity's password exists only in memory here. It is never logged,
// rendered, or serialized; it is handed out solely as a store credential
// and is dropped on sign-out and session expiry.
package session

import (
	"sync"
	"time"

	"cylinderlog/internal/handover"
	"cylinderlog/internal/store"
)

// Level grades a flash notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Flash is one transient notification queued for the next rendered page.
type Flash struct {
	Level Level
	Text  string
}

// FormState is the in-progress handover entry for one session. It is only
// ever touched through Session methods, which serialize access.
type FormState struct {
	Facility           string
	ReceivingPersonnel string
	Qty2M              int
	Qty4M              int
	Qty7M              int
	Checks2M           []handover.Check
	Checks4M           []handover.Check
	Checks7M           []handover.Check
}

// Checks returns the check list for a size.
func (f *FormState) Checks(s handover.Size) []handover.Check {
	switch s {
	case handover.Size2M:
		return f.Checks2M
	case handover.Size4M:
		return f.Checks4M
	default:
		return f.Checks7M
	}
}

// SetChecks replaces the check list for a size.
func (f *FormState) SetChecks(s handover.Size, checks []handover.Check) {
	switch s {
	case handover.Size2M:
		f.Checks2M = checks
	case handover.Size4M:
		f.Checks4M = checks
	default:
		f.Checks7M = checks
	}
}

func (f *FormState) clone() FormState {
	out := *f
	out.Checks2M = cloneChecks(f.Checks2M)
	out.Checks4M = cloneChecks(f.Checks4M)
	out.Checks7M = cloneChecks(f.Checks7M)
	return out
}

func cloneChecks(in []handover.Check) []handover.Check {
	if in == nil {
		return nil
	}
	out := make([]handover.Check, len(in))
	copy(out, in)
	return out
}

// Session is the state for one client. All methods are safe for
// concurrent use, though a single session's operations are expected to
// arrive one at a time.
type Session struct {
	token string

	mu            sync.Mutex
	username      string
	password      string
	authenticated bool
	form          FormState
	pendingDelete string
	flashes       []Flash
	lastSeen      time.Time
}

// Token returns the opaque cookie value identifying this session.
func (s *Session) Token() string {
	return s.token
}

// SignIn records a verified identity.
func (s *Session) SignIn(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.password = password
	s.authenticated = true
}

// SignOut clears the identity, the password, and all form state.
func (s *Session) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = ""
	s.password = ""
	s.authenticated = false
	s.form = FormState{}
	s.pendingDelete = ""
}

// Authenticated reports whether the session holds a verified identity.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Username returns the signed-in username, or "" when signed out.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// BMTInCharge returns the display name derived from the identity.
func (s *Session) BMTInCharge() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.username == "" {
		return "N/A"
	}
	return "Mr. " + s.username
}

// Credentials implements store.CredentialProvider with the session
// identity, so each store operation re-authenticates as this user.
func (s *Session) Credentials() (store.Credentials, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.username == "" || s.password == "" {
		return store.Credentials{}, false
	}
	return store.Credentials{Username: s.username, Password: s.password}, true
}

// Form returns a deep copy of the current form state for rendering.
func (s *Session) Form() FormState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.clone()
}

// UpdateForm mutates the form state under the session lock.
func (s *Session) UpdateForm(fn func(*FormState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.form)
}

// ResetForm clears quantities, checks, facility, and personnel after a
// confirmed successful submit.
func (s *Session) ResetForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = FormState{}
	s.pendingDelete = ""
}

// ArmDelete records the entry id awaiting delete confirmation.
func (s *Session) ArmDelete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = id
}

// PendingDelete returns the armed entry id, or "" when none is armed.
func (s *Session) PendingDelete() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingDelete
}

// TakePendingDelete returns and clears the armed entry id. The clear
// happens regardless of whether the subsequent delete succeeds.
func (s *Session) TakePendingDelete() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.pendingDelete
	s.pendingDelete = ""
	return id, id != ""
}

// DisarmDelete cancels a pending delete before any store call is made.
func (s *Session) DisarmDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDelete = ""
}

// Flash queues a notification for the next rendered page.
func (s *Session) Flash(level Level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes = append(s.flashes, Flash{Level: level, Text: text})
}

// PopFlashes returns and clears the queued notifications.
func (s *Session) PopFlashes() []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flashes
	s.flashes = nil
	return out
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) seenBefore(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}
