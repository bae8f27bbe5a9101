package backend

// Wire types for the employee backend REST API. Field names follow the
// backend's camelCase JSON contract.

// Role values used by the backend.
const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
)

// Status values used by the backend.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Employee is one employee's profile record as known to the backend.
type Employee struct {
	EmployeeID   string `json:"employeeID"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Designation  string `json:"designation,omitempty"`
	Department   string `json:"department,omitempty"`
	Address      string `json:"address,omitempty"`
	JoiningDate  string `json:"joiningDate,omitempty"`
	Skillset     string `json:"skillset,omitempty"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"` // raw base64, no data: prefix
	CreatedBy    string `json:"createdBy,omitempty"`
	ModifiedBy   string `json:"modifiedBy,omitempty"`
}

// LoginResponse is returned by a successful login call.
type LoginResponse struct {
	Token      string `json:"token"`
	EmployeeID string `json:"employeeID"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	Status     string `json:"status"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the self-service registration payload.
type RegisterRequest struct {
	Name         string `json:"name"`
	Designation  string `json:"designation,omitempty"`
	Address      string `json:"address,omitempty"`
	Department   string `json:"department,omitempty"`
	JoiningDate  string `json:"joiningDate,omitempty"`
	Skillset     string `json:"skillset,omitempty"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	CreatedBy    string `json:"createdBy"`
	ProfileImage string `json:"base64ProfileImage,omitempty"`
}

type imageRequest struct {
	Base64Image string `json:"base64Image"`
	ModifiedBy  string `json:"modifiedBy"`
}

type statusRequest struct {
	Status     string `json:"status"`
	ModifiedBy string `json:"modifiedBy"`
}
