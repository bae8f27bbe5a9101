package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/validate"
	"github.com/garnizeh/emsportal/pkg/backend"
)

type loginPageData struct {
	Username    string
	Error       string
	FieldErrors map[string]string
}

// LoginPage renders the sign-in form, or forwards an already signed-in
// browser to its dashboard.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	_, sess := s.currentSession(w, r)
	if sess.IsAuthenticated() {
		http.Redirect(w, r, dashboardPath(sess), http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginPageData{})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	fieldErrs := validate.Apply(validate.LoginRules(), map[string]string{
		"username": username,
		"password": password,
	}, nil)
	if len(fieldErrs) > 0 {
		s.render(w, "login.html", loginPageData{Username: username, FieldErrors: fieldErrs})
		return
	}

	sid := s.sessionID(w, r)
	resp, err := s.client.Login(r.Context(), username, password)
	if err != nil {
		if backend.IsInactiveAccount(err) {
			s.clearSession(r.Context(), sid)
			http.Redirect(w, r, "/disabled-account", http.StatusSeeOther)
			return
		}

		msg := "Invalid username or password"
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		} else if errors.Is(err, backend.ErrUnreachable) {
			msg = displayError(err)
		}
		s.render(w, "login.html", loginPageData{Username: username, Error: msg})
		return
	}

	sess := session.Session{
		Token:      resp.Token,
		EmployeeID: resp.EmployeeID,
		Name:       resp.Name,
		Username:   resp.Username,
		Role:       resp.Role,
		Status:     resp.Status,
	}
	if err := s.store.Save(r.Context(), sid, sess); err != nil {
		logger.Error("save session", "err", err)
		s.render(w, "login.html", loginPageData{Username: username, Error: "Login failed. Please try again."})
		return
	}

	http.Redirect(w, r, dashboardPath(sess), http.StatusSeeOther)
}

func dashboardPath(sess session.Session) string {
	if sess.IsAdmin() {
		return "/admin"
	}
	return "/employee"
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sid := s.sessionID(w, r)
	s.clearSession(r.Context(), sid)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) DisabledAccountPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "disabled.html", nil)
}

type registerPageData struct {
	Form        map[string]string
	Error       string
	Success     string
	FieldErrors map[string]string
}

func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, "register.html", registerPageData{Form: map[string]string{}})
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	form, file, err := parseProfileForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form["username"] = strings.TrimSpace(form["username"])
	form["name"] = strings.TrimSpace(form["name"])

	fieldErrs := validate.Apply(validate.RegisterRules(), form, fileMeta(file))
	if len(fieldErrs) > 0 {
		s.render(w, "register.html", registerPageData{Form: form, FieldErrors: fieldErrs})
		return
	}

	req := backend.RegisterRequest{
		Name:        form["name"],
		Designation: form["designation"],
		Address:     form["address"],
		Department:  form["department"],
		JoiningDate: form["joiningDate"],
		Skillset:    form["skillset"],
		Username:    form["username"],
		Password:    form["password"],
		// defaults expected by the backend for self-service signup
		Role:      backend.RoleEmployee,
		Status:    backend.StatusActive,
		CreatedBy: "Self",
	}
	if file != nil {
		req.ProfileImage = file.base64()
	}

	if err := s.client.Register(r.Context(), req); err != nil {
		s.render(w, "register.html", registerPageData{Form: form, Error: "Registration failed: " + displayError(err)})
		return
	}

	s.render(w, "register.html", registerPageData{
		Form:    map[string]string{},
		Success: "Registration successful! Redirecting to login...",
	})
}
