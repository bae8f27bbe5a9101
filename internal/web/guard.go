package web

import (
	"errors"
	"net/http"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/pkg/backend"
)

// authedHandler is a page handler that runs with a resolved session.
type authedHandler func(w http.ResponseWriter, r *http.Request, sid string, sess session.Session)

// requireAuth redirects unauthenticated browsers to the login page.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, sess := s.currentSession(w, r)
		if !sess.IsAuthenticated() {
			// the session may have expired server-side without a Clear event
			s.dropDashboard(sid)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, sid, sess)
	}
}

// requireAdmin additionally sends non-admin users to their own profile page.
func (s *Server) requireAdmin(next authedHandler) http.HandlerFunc {
	return s.requireAuth(func(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
		if !sess.IsAdmin() {
			http.Redirect(w, r, "/employee", http.StatusSeeOther)
			return
		}
		next(w, r, sid, sess)
	})
}

// handleBackendError reacts to a failed backend call. A 401 means the token
// is no longer valid: the session is cleared and the browser is sent back to
// the login page. Returns true when the response has been written.
func (s *Server) handleBackendError(w http.ResponseWriter, r *http.Request, sid string, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, backend.ErrUnauthorized) {
		s.clearSession(r.Context(), sid)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return true
	}
	return false
}

// displayError maps a backend failure to the transient message shown on the
// page.
func displayError(err error) string {
	if errors.Is(err, backend.ErrUnreachable) {
		return "Server unreachable. Please try again."
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
