package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/viewmodel"
	"github.com/garnizeh/emsportal/pkg/backend"
)

// Server renders the portal pages and mediates between browser sessions and
// the employee backend.
type Server struct {
	client     *backend.Client
	store      *session.Watched
	cookieName string
	cookieTTL  time.Duration

	mu  sync.Mutex
	vms map[string]*viewmodel.EmployeeList // per admin session id
}

func NewServer(client *backend.Client, store *session.Watched, cookieName string, cookieTTL time.Duration) *Server {
	s := &Server{
		client:     client,
		store:      store,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		vms:        make(map[string]*viewmodel.EmployeeList),
	}

	// drop dashboard state whenever a session is cleared, regardless of who
	// cleared it
	store.Subscribe(func(ev session.Event) {
		if ev.Cleared {
			s.dropDashboard(ev.ID)
		}
	})

	return s
}

func SetupRoutes(s *Server, version, buildTime string) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(NoStoreMiddleware)

	systemHandler := &SystemHandler{}
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Open pages
	r.HandleFunc("/", s.LoginPage).Methods("GET")
	r.HandleFunc("/login", s.Login).Methods("POST")
	r.HandleFunc("/register", s.RegisterPage).Methods("GET")
	r.HandleFunc("/register", s.Register).Methods("POST")
	r.HandleFunc("/disabled-account", s.DisabledAccountPage).Methods("GET")
	r.HandleFunc("/logout", s.Logout).Methods("POST")

	// Authenticated pages
	r.HandleFunc("/employee", s.requireAuth(s.ProfilePage)).Methods("GET")
	r.HandleFunc("/employee", s.requireAuth(s.SaveProfile)).Methods("POST")

	// Admin pages
	r.HandleFunc("/admin", s.requireAdmin(s.AdminPage)).Methods("GET")
	r.HandleFunc("/admin/edit", s.requireAdmin(s.AdminBeginEdit)).Methods("POST")
	r.HandleFunc("/admin/save", s.requireAdmin(s.AdminSaveEdit)).Methods("POST")
	r.HandleFunc("/admin/cancel", s.requireAdmin(s.AdminCancelEdit)).Methods("POST")
	r.HandleFunc("/admin/status", s.requireAdmin(s.AdminToggleStatus)).Methods("POST")

	return r
}

// sessionID returns the browser session id from the request cookie, minting
// a new cookie when none exists.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(s.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.cookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// currentSession loads the stored session for the request's cookie.
func (s *Server) currentSession(w http.ResponseWriter, r *http.Request) (string, session.Session) {
	sid := s.sessionID(w, r)
	sess, err := s.store.Current(r.Context(), sid)
	if err != nil {
		logger.Error("load session", "err", err)
		return sid, session.Session{}
	}
	return sid, sess
}

// clientFor returns a backend client that sends the session's bearer token.
func (s *Server) clientFor(sess session.Session) *backend.Client {
	tok := sess.Token
	return s.client.WithToken(func() string { return tok })
}

// dashboardFor returns (creating if needed) the admin dashboard view-model
// bound to the session.
func (s *Server) dashboardFor(sid string, sess session.Session) *viewmodel.EmployeeList {
	s.mu.Lock()
	defer s.mu.Unlock()
	vm, ok := s.vms[sid]
	if !ok {
		vm = viewmodel.NewEmployeeList(s.clientFor(sess), sess.Username)
		s.vms[sid] = vm
	}
	return vm
}

// dropDashboard releases the dashboard state for a session id. Clear events
// trigger it through the store subscription; sessions that expire server-side
// never emit one, so the guard calls it directly when it turns a browser
// away.
func (s *Server) dropDashboard(sid string) {
	s.mu.Lock()
	delete(s.vms, sid)
	s.mu.Unlock()
}

func (s *Server) clearSession(ctx context.Context, sid string) {
	if err := s.store.Clear(ctx, sid); err != nil {
		logger.Error("clear session", "err", err)
	}
}
