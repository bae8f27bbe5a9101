// Package viewmodel holds the admin dashboard's projection of the employee
// directory: the filtered, paginated view of the full record list plus the
// inline row-edit buffer. Filtering and pagination are pure derivations of
// (records, query, page), so the displayed subset can never drift from the
// latest loaded list.
package viewmodel

import (
	"context"
	"strings"
	"sync"

	"github.com/garnizeh/emsportal/internal/validate"
	"github.com/garnizeh/emsportal/pkg/backend"
)

// PageSize is the number of rows per dashboard page.
const PageSize = 10

// ViewMode selects the dashboard layout.
type ViewMode string

const (
	ViewTable ViewMode = "table"
	ViewGrid  ViewMode = "grid"
)

// Directory is the slice of the backend client the dashboard depends on.
type Directory interface {
	ListEmployees(ctx context.Context) ([]backend.Employee, error)
	AdminUpdateEmployee(ctx context.Context, id string, e backend.Employee) error
	UpdateEmployeeStatus(ctx context.Context, id, status, modifiedBy string) error
}

// ValidationError carries every rule violation found in an edit buffer.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, " ")
}

// RefreshError reports that an update was persisted but the follow-up list
// reload failed. The edit itself succeeded.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return "employee updated, but reloading the list failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

// EmployeeList is the admin dashboard view-model. One instance exists per
// signed-in admin browser session.
type EmployeeList struct {
	dir   Directory
	actor string // session username, attached as modifiedBy on mutations

	mu         sync.Mutex
	records    []backend.Employee
	query      string
	page       int
	viewMode   ViewMode
	editingID  string
	editBuffer backend.Employee
	message    string
	bookmark   *editBookmark
}

// editBookmark remembers the view the user came from when an edit started in
// the grid layout; editing happens in the table layout.
type editBookmark struct {
	viewMode ViewMode
	page     int
}

func NewEmployeeList(dir Directory, actor string) *EmployeeList {
	return &EmployeeList{
		dir:      dir,
		actor:    actor,
		page:     1,
		viewMode: ViewTable,
	}
}

// Load replaces the record list from the backend. On failure the previous
// records stay in place so the page keeps rendering.
func (l *EmployeeList) Load(ctx context.Context) error {
	records, err := l.dir.ListEmployees(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = records
	l.clampPage()
	return nil
}

// Filter returns the records whose name, username, or department contains
// query case-insensitively. An empty query matches everything.
func Filter(records []backend.Employee, query string) []backend.Employee {
	if query == "" {
		return records
	}

	q := strings.ToLower(query)
	var out []backend.Employee
	for _, e := range records {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Username), q) ||
			strings.Contains(strings.ToLower(e.Department), q) {
			out = append(out, e)
		}
	}
	return out
}

// SetQuery updates the search query and resets to the first page.
func (l *EmployeeList) SetQuery(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = q
	l.page = 1
	l.clampPage()
}

func (l *EmployeeList) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Filtered returns the current filtered view of the loaded records.
func (l *EmployeeList) Filtered() []backend.Employee {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Filter(l.records, l.query)
}

// Paged returns the slice of Filtered for the current page.
func (l *EmployeeList) Paged() []backend.Employee {
	l.mu.Lock()
	defer l.mu.Unlock()
	return pageOf(Filter(l.records, l.query), l.page)
}

func pageOf(filtered []backend.Employee, page int) []backend.Employee {
	start := (page - 1) * PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// TotalPages is always at least 1, even for an empty list.
func (l *EmployeeList) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return totalPages(len(Filter(l.records, l.query)))
}

func totalPages(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func (l *EmployeeList) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// SetPage moves to page n, clamped to the valid range.
func (l *EmployeeList) SetPage(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = n
	l.clampPage()
}

func (l *EmployeeList) NextPage() { l.mu.Lock(); defer l.mu.Unlock(); l.page++; l.clampPage() }
func (l *EmployeeList) PrevPage() { l.mu.Lock(); defer l.mu.Unlock(); l.page--; l.clampPage() }

// clampPage keeps page within [1, totalPages]. Callers must hold mu.
func (l *EmployeeList) clampPage() {
	max := totalPages(len(Filter(l.records, l.query)))
	if l.page > max {
		l.page = max
	}
	if l.page < 1 {
		l.page = 1
	}
}

func (l *EmployeeList) ViewMode() ViewMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewMode
}

func (l *EmployeeList) SetViewMode(m ViewMode) {
	if m != ViewTable && m != ViewGrid {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewMode = m
}

// BeginEdit starts an inline edit of the record with the given id, seeding
// the buffer from the loaded record. Starting a new edit abandons any
// unsaved one. When the edit starts from the grid layout the view switches
// to the table on the page containing the record, and the prior view is
// restored on save or cancel. Returns false if the id is not loaded.
func (l *EmployeeList) BeginEdit(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	filtered := Filter(l.records, l.query)
	idx := -1
	for i, e := range filtered {
		if e.EmployeeID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	if l.viewMode == ViewGrid {
		l.bookmark = &editBookmark{viewMode: l.viewMode, page: l.page}
		l.viewMode = ViewTable
		l.page = idx/PageSize + 1
	} else {
		l.bookmark = nil
	}

	l.editingID = id
	l.editBuffer = filtered[idx]
	l.message = ""
	return true
}

// EditingID returns the id of the record under edit, or "".
func (l *EmployeeList) EditingID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editingID
}

// EditBuffer returns a copy of the in-progress edit.
func (l *EmployeeList) EditBuffer() backend.Employee {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editBuffer
}

// SetBuffer replaces the editable fields of the buffer. Identity fields
// (employeeID, username, role) and fields the row editor does not expose
// (address, profile image, createdBy) are kept from the record the edit
// started on, so a row save never blanks them.
func (l *EmployeeList) SetBuffer(e backend.Employee) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.editingID == "" {
		return
	}

	e.EmployeeID = l.editBuffer.EmployeeID
	e.Username = l.editBuffer.Username
	e.Role = l.editBuffer.Role
	e.Address = l.editBuffer.Address
	e.ProfileImage = l.editBuffer.ProfileImage
	e.CreatedBy = l.editBuffer.CreatedBy
	l.editBuffer = e
}

// ValidateBuffer checks an edit buffer against the admin edit rules and
// returns every violation, in rule order.
func ValidateBuffer(e backend.Employee) []string {
	rules := validate.AdminEditRules()
	errs := validate.Apply(rules, map[string]string{
		"name":        e.Name,
		"status":      e.Status,
		"designation": e.Designation,
		"department":  e.Department,
		"joiningDate": e.JoiningDate,
		"skillset":    e.Skillset,
	}, nil)
	if len(errs) == 0 {
		return nil
	}

	var msgs []string
	for _, r := range rules {
		if msg, ok := errs[r.Field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// CommitEdit re-validates the buffer and submits it. Validation failures
// abort with a *ValidationError before any network call. On success the
// record list is re-fetched once, the buffer is cleared, and the pre-edit
// view is restored; if only that re-fetch fails the buffer still closes and
// the error is a *RefreshError.
func (l *EmployeeList) CommitEdit(ctx context.Context) error {
	l.mu.Lock()
	if l.editingID == "" {
		l.mu.Unlock()
		return nil
	}

	buffer := l.editBuffer
	buffer.EmployeeID = l.editingID
	buffer.ModifiedBy = l.actor
	l.mu.Unlock()

	if msgs := ValidateBuffer(buffer); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}

	if err := l.dir.AdminUpdateEmployee(ctx, buffer.EmployeeID, buffer); err != nil {
		return err
	}

	// the update is persisted from here on; a reload failure must not leave
	// the edit looking unsaved
	loadErr := l.Load(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.editingID = ""
	l.editBuffer = backend.Employee{}
	l.restoreBookmark()
	if loadErr != nil {
		l.message = ""
		return &RefreshError{Err: loadErr}
	}
	l.message = "Employee updated successfully!"
	return nil
}

// CancelEdit abandons the buffer without a network call.
func (l *EmployeeList) CancelEdit() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editingID = ""
	l.editBuffer = backend.Employee{}
	l.message = ""
	l.restoreBookmark()
}

// restoreBookmark returns to the pre-edit view. Callers must hold mu.
func (l *EmployeeList) restoreBookmark() {
	if l.bookmark == nil {
		return
	}
	l.viewMode = l.bookmark.viewMode
	l.page = l.bookmark.page
	l.bookmark = nil
	l.clampPage()
}

// ToggleStatus flips a record between Active and Inactive and re-fetches the
// list. It is a no-op while that same record is mid-edit.
func (l *EmployeeList) ToggleStatus(ctx context.Context, id string) error {
	l.mu.Lock()
	if id == l.editingID {
		l.mu.Unlock()
		return nil
	}

	var current string
	for _, e := range l.records {
		if e.EmployeeID == id {
			current = e.Status
			break
		}
	}
	l.mu.Unlock()

	if current == "" {
		return nil
	}

	next := backend.StatusInactive
	if current == backend.StatusInactive {
		next = backend.StatusActive
	}

	if err := l.dir.UpdateEmployeeStatus(ctx, id, next, l.actor); err != nil {
		return err
	}
	return l.Load(ctx)
}

// Message returns the transient status message.
func (l *EmployeeList) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message
}

func (l *EmployeeList) SetMessage(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.message = msg
}

func (l *EmployeeList) ClearMessage() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.message = ""
}
