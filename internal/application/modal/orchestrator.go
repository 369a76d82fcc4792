// Package modal tracks the single overlay a leader has open on the dashboard.
package modal

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Kind names a modal view.
type Kind string

const (
	KindEvent     Kind = "event"
	KindStudent   Kind = "student"
	KindGroup     Kind = "group"
	KindVolunteer Kind = "volunteer"

	KindCreateEvent     Kind = "create-event"
	KindCreateStudent   Kind = "create-student"
	KindCreateGroup     Kind = "create-group"
	KindCreateVolunteer Kind = "create-volunteer"

	KindEditEvent     Kind = "edit-event"
	KindEditStudent   Kind = "edit-student"
	KindEditGroup     Kind = "edit-group"
	KindEditVolunteer Kind = "edit-volunteer"
)

var knownKinds = map[Kind]bool{
	KindEvent: true, KindStudent: true, KindGroup: true, KindVolunteer: true,
	KindCreateEvent: true, KindCreateStudent: true, KindCreateGroup: true, KindCreateVolunteer: true,
	KindEditEvent: true, KindEditStudent: true, KindEditGroup: true, KindEditVolunteer: true,
}

// IsCreate reports whether the kind is a create form.
func (k Kind) IsCreate() bool { return strings.HasPrefix(string(k), "create-") }

// IsEdit reports whether the kind is an edit form.
func (k Kind) IsEdit() bool { return strings.HasPrefix(string(k), "edit-") }

// Entity returns the entity the kind is about: "event", "student", "group" or "volunteer".
func (k Kind) Entity() string {
	s := string(k)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// EditKind returns the edit form for a detail kind, or "" when there is none.
func (k Kind) EditKind() Kind {
	if k.IsCreate() || k.IsEdit() {
		return ""
	}
	return Kind("edit-" + string(k))
}

// ParseKind validates a kind received from a form.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !knownKinds[k] {
		return "", ErrUnknownKind
	}
	return k, nil
}

// Modal is one open overlay.
type Modal struct {
	Kind     Kind
	EntityID int
	OpenedAt time.Time
}

var (
	ErrAlreadyOpen = errors.New("a window is already open")
	ErrUnknownKind = errors.New("unknown window")
	ErrMissingID   = errors.New("window needs an item id")
	ErrNothingOpen = errors.New("no window is open")
	ErrNotEditable = errors.New("window cannot be edited")
)

// Orchestrator holds at most one open modal per session.
// State per session: Closed -> Open -> Closed. Edit navigation is Replace,
// which closes the current modal before opening the next one.
type Orchestrator struct {
	mu   sync.Mutex
	open map[string]Modal
	now  func() time.Time
}

// NewOrchestrator creates an empty orchestrator.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{open: make(map[string]Modal), now: time.Now}
}

func validate(m Modal) error {
	if !knownKinds[m.Kind] {
		return ErrUnknownKind
	}
	if !m.Kind.IsCreate() && m.EntityID < 1 {
		return ErrMissingID
	}
	return nil
}

// Open transitions a session from Closed to Open.
// PRE: sessionID is non-empty
// POST: the modal is active, or ErrAlreadyOpen when one was already active
// INVARIANT: a session never has more than one active modal
func (o *Orchestrator) Open(sessionID string, m Modal) (Modal, error) {
	if err := validate(m); err != nil {
		return Modal{}, err
	}
	if m.Kind.IsCreate() {
		m.EntityID = 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if cur, ok := o.open[sessionID]; ok {
		slog.Info("modal_event", "event", "open_refused", "open", string(cur.Kind), "requested", string(m.Kind))
		return Modal{}, ErrAlreadyOpen
	}
	m.OpenedAt = o.now()
	o.open[sessionID] = m
	slog.Debug("modal_event", "event", "opened", "kind", string(m.Kind), "id", m.EntityID)
	return m, nil
}

// Replace closes whatever is open and opens m in its place.
// PRE: sessionID is non-empty
// POST: m is the only active modal
func (o *Orchestrator) Replace(sessionID string, m Modal) (Modal, error) {
	if err := validate(m); err != nil {
		return Modal{}, err
	}
	if m.Kind.IsCreate() {
		m.EntityID = 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.open, sessionID)
	m.OpenedAt = o.now()
	o.open[sessionID] = m
	slog.Debug("modal_event", "event", "replaced", "kind", string(m.Kind), "id", m.EntityID)
	return m, nil
}

// Edit replaces the open detail modal with its edit form.
// POST: returns ErrNothingOpen or ErrNotEditable without changing state
func (o *Orchestrator) Edit(sessionID string) (Modal, error) {
	o.mu.Lock()
	cur, ok := o.open[sessionID]
	o.mu.Unlock()
	if !ok {
		return Modal{}, ErrNothingOpen
	}
	next := cur.Kind.EditKind()
	if next == "" {
		return Modal{}, ErrNotEditable
	}
	return o.Replace(sessionID, Modal{Kind: next, EntityID: cur.EntityID})
}

// Close transitions a session back to Closed. Closing when nothing is open is a no-op.
func (o *Orchestrator) Close(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cur, ok := o.open[sessionID]; ok {
		delete(o.open, sessionID)
		slog.Debug("modal_event", "event", "closed", "kind", string(cur.Kind), "id", cur.EntityID)
	}
}

// Active returns the session's open modal, if any.
func (o *Orchestrator) Active(sessionID string) (Modal, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	m, ok := o.open[sessionID]
	return m, ok
}

// Forget drops all state for a session, used at logout.
func (o *Orchestrator) Forget(sessionID string) {
	o.Close(sessionID)
}
