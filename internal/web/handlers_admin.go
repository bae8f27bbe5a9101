package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/viewmodel"
	"github.com/garnizeh/emsportal/pkg/backend"
)

type adminPageData struct {
	Session    session.Session
	Query      string
	ViewMode   viewmodel.ViewMode
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Rows       []backend.Employee
	Total      int
	EditingID  string
	Buffer     backend.Employee
	Message    string
	Error      string
}

// AdminPage renders the dashboard: search box, table or grid of the current
// page, pagination controls, and the inline row editor.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	vm := s.dashboardFor(sid, sess)

	q := r.URL.Query()
	if q.Has("q") {
		vm.SetQuery(q.Get("q"))
	}
	if v := q.Get("view"); v != "" {
		vm.SetViewMode(viewmodel.ViewMode(v))
	}

	var loadErr string
	if err := vm.Load(r.Context()); err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		// keep rendering whatever was loaded before
		loadErr = displayError(err)
	}

	// page requests clamp against the freshly loaded list, so a deep link to
	// page N works on a new view-model
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			vm.SetPage(n)
		}
	}

	page := vm.Page()
	total := vm.TotalPages()
	s.render(w, "admin.html", adminPageData{
		Session:    sess,
		Query:      vm.Query(),
		ViewMode:   vm.ViewMode(),
		Page:       page,
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		Rows:       vm.Paged(),
		Total:      len(vm.Filtered()),
		EditingID:  vm.EditingID(),
		Buffer:     vm.EditBuffer(),
		Message:    vm.Message(),
		Error:      loadErr,
	})
}

func (s *Server) AdminBeginEdit(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	vm := s.dashboardFor(sid, sess)
	if !vm.BeginEdit(r.PostFormValue("id")) {
		vm.SetMessage("Employee not found")
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) AdminSaveEdit(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	vm := s.dashboardFor(sid, sess)
	vm.SetBuffer(backend.Employee{
		Name:        r.PostFormValue("name"),
		Designation: r.PostFormValue("designation"),
		Department:  r.PostFormValue("department"),
		JoiningDate: r.PostFormValue("joiningDate"),
		Skillset:    r.PostFormValue("skillset"),
		Status:      r.PostFormValue("status"),
	})

	if err := vm.CommitEdit(r.Context()); err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}

		var verr *viewmodel.ValidationError
		var rerr *viewmodel.RefreshError
		switch {
		case errors.As(err, &verr):
			vm.SetMessage(verr.Error())
		case errors.As(err, &rerr):
			// the edit itself was saved
			vm.SetMessage("Employee updated, but the list could not be refreshed: " + displayError(rerr.Err))
		default:
			vm.SetMessage("Error updating employee: " + displayError(err))
		}
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) AdminCancelEdit(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	s.dashboardFor(sid, sess).CancelEdit()
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) AdminToggleStatus(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	vm := s.dashboardFor(sid, sess)
	if err := vm.ToggleStatus(r.Context(), r.PostFormValue("id")); err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		vm.SetMessage("Error updating status: " + displayError(err))
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
