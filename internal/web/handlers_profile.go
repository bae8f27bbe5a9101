package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/garnizeh/emsportal/internal/session"
	"github.com/garnizeh/emsportal/internal/validate"
	"github.com/garnizeh/emsportal/pkg/backend"
)

type profilePageData struct {
	Session     session.Session
	Employee    *backend.Employee
	Editing     bool
	Message     string
	Error       string
	FieldErrors map[string]string
	Form        map[string]string
}

// ProfilePage renders the self-service profile view. ?edit=1 switches the
// fields to their editable state.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	client := s.clientFor(sess)
	emp, err := client.Employee(r.Context(), sess.EmployeeID)
	if err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		s.render(w, "profile.html", profilePageData{Session: sess, Error: displayError(err)})
		return
	}

	s.render(w, "profile.html", profilePageData{
		Session:  sess,
		Employee: emp,
		Editing:  r.URL.Query().Get("edit") == "1",
		Message:  r.URL.Query().Get("msg"),
		Form:     profileFormValues(emp),
	})
}

// SaveProfile persists the text fields and, independently, an image
// replacement or removal, then reloads the record.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request, sid string, sess session.Session) {
	form, file, err := parseProfileForm(r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form["name"] = strings.TrimSpace(form["name"])

	client := s.clientFor(sess)
	emp, err := client.Employee(r.Context(), sess.EmployeeID)
	if err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		s.render(w, "profile.html", profilePageData{Session: sess, Error: displayError(err)})
		return
	}

	fieldErrs := validate.Apply(validate.ProfileRules(), form, fileMeta(file))
	if len(fieldErrs) > 0 {
		s.render(w, "profile.html", profilePageData{
			Session:     sess,
			Employee:    emp,
			Editing:     true,
			FieldErrors: fieldErrs,
			Form:        form,
		})
		return
	}

	updated := *emp
	updated.Name = form["name"]
	updated.Designation = form["designation"]
	updated.Address = form["address"]
	updated.Department = form["department"]
	updated.JoiningDate = form["joiningDate"]
	updated.Skillset = form["skillset"]
	updated.ModifiedBy = sess.Username

	if err := client.UpdateEmployee(r.Context(), sess.EmployeeID, updated); err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		s.render(w, "profile.html", profilePageData{
			Session: sess, Employee: emp, Editing: true,
			Error: displayError(err), Form: form,
		})
		return
	}

	// image changes go to their own endpoint; an empty payload removes the
	// current image
	switch {
	case r.PostFormValue("removeImage") == "1":
		err = client.UpdateProfileImage(r.Context(), sess.EmployeeID, "", sess.Username)
	case file != nil:
		err = client.UpdateProfileImage(r.Context(), sess.EmployeeID, file.base64(), sess.Username)
	}
	if err != nil {
		if s.handleBackendError(w, r, sid, err) {
			return
		}
		s.render(w, "profile.html", profilePageData{
			Session: sess, Employee: emp, Editing: true,
			Error: displayError(err), Form: form,
		})
		return
	}

	// the session caches the display name; keep it in sync
	if updated.Name != sess.Name {
		sess.Name = updated.Name
		if err := s.store.Save(r.Context(), sid, sess); err != nil {
			logger.Error("refresh session name", "err", err)
		}
	}

	http.Redirect(w, r, "/employee?msg="+url.QueryEscape("Profile updated successfully!"), http.StatusSeeOther)
}

func profileFormValues(e *backend.Employee) map[string]string {
	return map[string]string{
		"name":        e.Name,
		"designation": e.Designation,
		"address":     e.Address,
		"department":  e.Department,
		"joiningDate": e.JoiningDate,
		"skillset":    e.Skillset,
	}
}
