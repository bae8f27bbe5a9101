package session_test

import (
	"context"
	"testing"

	"github.com/garnizeh/emsportal/internal/session"
)

func TestSession_Predicates(t *testing.T) {
	var zero session.Session
	if zero.IsAuthenticated() {
		t.Fatalf("zero session should not be authenticated")
	}
	if zero.IsAdmin() {
		t.Fatalf("zero session should not be admin")
	}

	emp := session.Session{Token: "tok", Role: "Employee"}
	if !emp.IsAuthenticated() || emp.IsAdmin() {
		t.Fatalf("employee session misclassified: %+v", emp)
	}

	admin := session.Session{Token: "tok", Role: "Admin"}
	if !admin.IsAuthenticated() || !admin.IsAdmin() {
		t.Fatalf("admin session misclassified: %+v", admin)
	}
}

func TestMemoryStore_SaveClearCurrent(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	got, err := store.Current(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.IsAuthenticated() {
		t.Fatalf("missing session should be zero, got %+v", got)
	}

	want := session.Session{Token: "tok", EmployeeID: "emp-1", Username: "jdoe", Role: "Employee", Status: "Active"}
	if err := store.Save(ctx, "sid-1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = store.Current(ctx, "sid-1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != want {
		t.Fatalf("Current: got %+v want %+v", got, want)
	}

	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, _ = store.Current(ctx, "sid-1")
	if got.IsAuthenticated() {
		t.Fatalf("cleared session still present: %+v", got)
	}
}

func TestWatched_Notifications(t *testing.T) {
	ctx := context.Background()
	store := session.Watch(session.NewMemoryStore())

	var events []session.Event
	store.Subscribe(func(ev session.Event) { events = append(events, ev) })

	s := session.Session{Token: "tok", Username: "jdoe"}
	if err := store.Save(ctx, "sid-1", s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(ctx, "sid-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events: got %d want 2", len(events))
	}
	if events[0].Cleared || events[0].ID != "sid-1" || events[0].Session.Username != "jdoe" {
		t.Fatalf("save event: %+v", events[0])
	}
	if !events[1].Cleared || events[1].ID != "sid-1" {
		t.Fatalf("clear event: %+v", events[1])
	}
}
