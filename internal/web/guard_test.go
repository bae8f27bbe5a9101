package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/viewmodel"
	"github.com/garnizeh/emsportal/pkg/backend"
)

func newGuardServer(t *testing.T) *Server {
	t.Helper()

	client, err := backend.NewClient(backend.Config{BaseURL: "http://backend.invalid", Timeout: time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return NewServer(client, session.Watch(session.NewMemoryStore()), "ems_session", time.Hour)
}

func (s *Server) hasDashboard(sid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.vms[sid]
	return ok
}

func TestRequireAuth_DropsDashboardForDeadSession(t *testing.T) {
	s := newGuardServer(t)

	// dashboard state left over from a session the store no longer holds,
	// as happens when the session expires server-side
	s.mu.Lock()
	s.vms["sid-1"] = viewmodel.NewEmployeeList(nil, "admin1")
	s.mu.Unlock()

	handler := s.requireAuth(func(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
		t.Fatalf("handler ran for unauthenticated session")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "ems_session", Value: "sid-1"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d want %d", rec.Code, http.StatusSeeOther)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("redirect: got %q want %q", got, "/")
	}
	if s.hasDashboard("sid-1") {
		t.Fatalf("dashboard state kept for dead session")
	}
}

func TestClearEvent_DropsDashboard(t *testing.T) {
	s := newGuardServer(t)
	ctx := context.Background()

	sess := session.Session{Token: "tok", EmployeeID: "emp-admin", Username: "admin1", Role: "Admin"}
	if err := s.store.Save(ctx, "sid-2", sess); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.mu.Lock()
	s.vms["sid-2"] = viewmodel.NewEmployeeList(nil, "admin1")
	s.mu.Unlock()

	if err := s.store.Clear(ctx, "sid-2"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.hasDashboard("sid-2") {
		t.Fatalf("dashboard state kept after session clear")
	}
}
