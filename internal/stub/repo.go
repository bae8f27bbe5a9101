// Package stub implements the employee backend REST contract the portal
// consumes, backed by SQLite. It exists so the portal can be developed and
// tested without the production employee service.
package stub

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/garnizeh/emsportal/internal/db"
	"github.com/garnizeh/emsportal/pkg/backend"
)

const employeeSchema = `
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	designation TEXT NOT NULL DEFAULT '',
	department TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	joining_date TEXT NOT NULL DEFAULT '',
	skillset TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	role TEXT NOT NULL,
	profile_image TEXT NOT NULL DEFAULT '',
	created_by TEXT NOT NULL DEFAULT '',
	modified_by TEXT NOT NULL DEFAULT '',
	created INTEGER NOT NULL,
	updated INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_employees_username ON employees(username);
`

// employeeRow is the stored form of an employee; backend.Employee is the
// wire form.
type employeeRow struct {
	backend.Employee
	PasswordHash string
}

// Repo is the SQLite employee repository.
type Repo struct {
	conn *db.DB
}

func NewRepo(ctx context.Context, conn *db.DB) (*Repo, error) {
	if _, err := conn.Exec(ctx, employeeSchema); err != nil {
		return nil, fmt.Errorf("create employees table: %w", err)
	}
	return &Repo{conn: conn}, nil
}

func now() int64 {
	return time.Now().UTC().Unix()
}

func (r *Repo) Create(ctx context.Context, e *employeeRow) error {
	if e == nil {
		return fmt.Errorf("employee is nil")
	}

	_, err := r.conn.Exec(ctx, `
		INSERT INTO employees (id, name, username, password_hash, designation, department,
			address, joining_date, skillset, status, role, profile_image, created_by,
			modified_by, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EmployeeID, e.Name, e.Username, e.PasswordHash, e.Designation, e.Department,
		e.Address, e.JoiningDate, e.Skillset, e.Status, e.Role, e.ProfileImage,
		e.CreatedBy, e.ModifiedBy, now(), now())
	return err
}

const employeeColumns = `id, name, username, password_hash, designation, department,
	address, joining_date, skillset, status, role, profile_image, created_by, modified_by`

func scanEmployee(scan func(...any) error) (*employeeRow, error) {
	var e employeeRow
	err := scan(&e.EmployeeID, &e.Name, &e.Username, &e.PasswordHash, &e.Designation,
		&e.Department, &e.Address, &e.JoiningDate, &e.Skillset, &e.Status, &e.Role,
		&e.ProfileImage, &e.CreatedBy, &e.ModifiedBy)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}
	return &e, nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*employeeRow, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	return scanEmployee(row.Scan)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (*employeeRow, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE username = ?`, username)
	return scanEmployee(row.Scan)
}

// List returns every employee ordered by creation time. Profile images are
// not included in list responses.
func (r *Repo) List(ctx context.Context) ([]backend.Employee, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, name, username, designation, department, address, joining_date,
			skillset, status, role, created_by, modified_by
		FROM employees ORDER BY created, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []backend.Employee{}
	for rows.Next() {
		var e backend.Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.Username, &e.Designation,
			&e.Department, &e.Address, &e.JoiningDate, &e.Skillset, &e.Status,
			&e.Role, &e.CreatedBy, &e.ModifiedBy); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update writes the mutable profile fields. Admin updates may also change
// status and role; self-service updates pass the existing values through.
func (r *Repo) Update(ctx context.Context, e *employeeRow) error {
	if e == nil {
		return fmt.Errorf("employee is nil")
	}

	_, err := r.conn.Exec(ctx, `
		UPDATE employees SET name = ?, designation = ?, department = ?, address = ?,
			joining_date = ?, skillset = ?, status = ?, role = ?, modified_by = ?, updated = ?
		WHERE id = ?`,
		e.Name, e.Designation, e.Department, e.Address, e.JoiningDate, e.Skillset,
		e.Status, e.Role, e.ModifiedBy, now(), e.EmployeeID)
	return err
}

func (r *Repo) UpdateImage(ctx context.Context, id, base64Image, modifiedBy string) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE employees SET profile_image = ?, modified_by = ?, updated = ? WHERE id = ?`,
		base64Image, modifiedBy, now(), id)
	return err
}

func (r *Repo) UpdateStatus(ctx context.Context, id, status, modifiedBy string) error {
	_, err := r.conn.Exec(ctx, `
		UPDATE employees SET status = ?, modified_by = ?, updated = ? WHERE id = ?`,
		status, modifiedBy, now(), id)
	return err
}
