package stub

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/emsportal/pkg/backend"
)

// Handler serves the employee backend API.
type Handler struct {
	repo          *Repo
	jwtSecret     string
	tokenDuration time.Duration
	bcryptCost    int
}

func NewHandler(repo *Repo, jwtSecret string, tokenDuration time.Duration, bcryptCost int) *Handler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Handler{repo: repo, jwtSecret: jwtSecret, tokenDuration: tokenDuration, bcryptCost: bcryptCost}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	emp, err := h.repo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading account")
		return
	}
	if emp == nil || bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	// deactivated accounts authenticate but may not sign in; the portal
	// routes this message to its disabled-account page
	if emp.Status == backend.StatusInactive {
		writeError(w, http.StatusForbidden, "Account is inactive. Contact your administrator.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"employee_id": emp.EmployeeID,
		"username":    emp.Username,
		"role":        emp.Role,
		"exp":         time.Now().Add(h.tokenDuration).Unix(),
	})
	tokenStr, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error signing token")
		return
	}

	writeJSON(w, backend.LoginResponse{
		Token:      tokenStr,
		EmployeeID: emp.EmployeeID,
		Name:       emp.Name,
		Username:   emp.Username,
		Role:       emp.Role,
		Status:     emp.Status,
	}, http.StatusOK)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	if req.Name == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	existing, err := h.repo.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error checking username")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "Username already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	role := req.Role
	if role == "" {
		role = backend.RoleEmployee
	}
	status := req.Status
	if status == "" {
		status = backend.StatusActive
	}

	emp := &employeeRow{
		Employee: backend.Employee{
			EmployeeID:   uuid.NewString(),
			Name:         req.Name,
			Username:     req.Username,
			Designation:  req.Designation,
			Department:   req.Department,
			Address:      req.Address,
			JoiningDate:  req.JoiningDate,
			Skillset:     req.Skillset,
			Status:       status,
			Role:         role,
			ProfileImage: req.ProfileImage,
			CreatedBy:    req.CreatedBy,
		},
		PasswordHash: string(hash),
	}
	if err := h.repo.Create(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Error creating employee")
		return
	}

	writeJSON(w, map[string]string{"employeeID": emp.EmployeeID}, http.StatusCreated)
}

// GetEmployee serves a single record. Employees may read only their own
// record; admins may read anyone's.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.canAccess(r, id) {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	emp, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading employee")
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}

	writeJSON(w, emp.Employee, http.StatusOK)
}

type updateRequest struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	Address     string `json:"address"`
	JoiningDate string `json:"joiningDate"`
	Skillset    string `json:"skillset"`
	Status      string `json:"status"`
	Role        string `json:"role"`
	ModifiedBy  string `json:"modifiedBy"`
}

// UpdateEmployee is the self-service update: profile fields only, status and
// role are preserved.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// AdminUpdateEmployee may change any field including status and role.
func (h *Handler) AdminUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, admin bool) {
	id := mux.Vars(r)["id"]
	if !admin && !h.canAccess(r, id) {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required.")
		return
	}
	if req.ModifiedBy == "" {
		writeError(w, http.StatusBadRequest, "modifiedBy is required")
		return
	}

	emp, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading employee")
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}

	emp.Name = req.Name
	emp.Designation = req.Designation
	emp.Department = req.Department
	emp.Address = req.Address
	emp.JoiningDate = req.JoiningDate
	emp.Skillset = req.Skillset
	emp.ModifiedBy = req.ModifiedBy
	if admin {
		if req.Status != "" {
			if req.Status != backend.StatusActive && req.Status != backend.StatusInactive {
				writeError(w, http.StatusBadRequest, "Invalid status")
				return
			}
			emp.Status = req.Status
		}
		if req.Role != "" {
			emp.Role = req.Role
		}
	}

	if err := h.repo.Update(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating employee")
		return
	}

	writeJSON(w, emp.Employee, http.StatusOK)
}

type imageRequest struct {
	Base64Image string `json:"base64Image"`
	ModifiedBy  string `json:"modifiedBy"`
}

// UpdateImage replaces the profile image; an empty base64Image removes it.
func (h *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.canAccess(r, id) {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.ModifiedBy == "" {
		writeError(w, http.StatusBadRequest, "modifiedBy is required")
		return
	}

	if err := h.repo.UpdateImage(r.Context(), id, req.Base64Image, req.ModifiedBy); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating image")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error listing employees")
		return
	}

	writeJSON(w, list, http.StatusOK)
}

type statusRequest struct {
	Status     string `json:"status"`
	ModifiedBy string `json:"modifiedBy"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Status != backend.StatusActive && req.Status != backend.StatusInactive {
		writeError(w, http.StatusBadRequest, "Status is required.")
		return
	}
	if req.ModifiedBy == "" {
		writeError(w, http.StatusBadRequest, "modifiedBy is required")
		return
	}

	emp, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading employee")
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found")
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status, req.ModifiedBy); err != nil {
		writeError(w, http.StatusInternalServerError, "Error updating status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// canAccess allows the record owner and admins.
func (h *Handler) canAccess(r *http.Request, id string) bool {
	if role, _ := r.Context().Value(CtxRole).(string); role == "Admin" {
		return true
	}
	claimID, _ := r.Context().Value(CtxEmployeeID).(string)
	return claimID != "" && claimID == id
}
