package session

import (
	"context"
	"sync"
)

// Session is the client-held proof of authentication plus the user
// attributes cached at login time. A zero Session means "not signed in";
// missing fields are empty strings, never errors.
type Session struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

// IsAuthenticated reports whether a token is present. There is no
// client-side expiry; a token stays valid until the backend rejects it.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the cached role is the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == "Admin"
}

// Store persists browser sessions keyed by an opaque cookie id.
type Store interface {
	Save(ctx context.Context, id string, s Session) error
	Clear(ctx context.Context, id string) error
	// Current returns the session for id; absent or expired sessions come
	// back as the zero Session with a nil error.
	Current(ctx context.Context, id string) (Session, error)
}

// Event describes a change to a stored session.
type Event struct {
	ID      string
	Session Session
	Cleared bool
}

// Watched decorates a Store with change notifications so a navigation guard
// can react when a session is saved or cleared.
type Watched struct {
	Store

	mu   sync.Mutex
	subs []func(Event)
}

func Watch(s Store) *Watched {
	return &Watched{Store: s}
}

// Subscribe registers fn for every subsequent Save and Clear. Callbacks run
// synchronously on the mutating goroutine.
func (w *Watched) Subscribe(fn func(Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.subs = append(w.subs, fn)
}

func (w *Watched) Save(ctx context.Context, id string, s Session) error {
	if err := w.Store.Save(ctx, id, s); err != nil {
		return err
	}
	w.notify(Event{ID: id, Session: s})
	return nil
}

func (w *Watched) Clear(ctx context.Context, id string) error {
	if err := w.Store.Clear(ctx, id); err != nil {
		return err
	}
	w.notify(Event{ID: id, Cleared: true})
	return nil
}

func (w *Watched) notify(ev Event) {
	w.mu.Lock()
	subs := make([]func(Event), len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
