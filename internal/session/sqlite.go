package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/garnizeh/emsportal/internal/db"
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	name TEXT NOT NULL,
	username TEXT NOT NULL,
	role TEXT NOT NULL,
	status TEXT NOT NULL,
	expires_at INTEGER NOT NULL,
	updated INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);
`

// SQLiteStore persists sessions so signed-in users survive a portal restart.
type SQLiteStore struct {
	conn *db.DB
	ttl  time.Duration
}

func NewSQLiteStore(ctx context.Context, conn *db.DB, ttl time.Duration) (*SQLiteStore, error) {
	if _, err := conn.Exec(ctx, sessionSchema); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SQLiteStore{conn: conn, ttl: ttl}, nil
}

func (st *SQLiteStore) Save(ctx context.Context, id string, s Session) error {
	now := time.Now().UTC()
	_, err := st.conn.Exec(ctx, `
		INSERT INTO sessions (id, token, employee_id, name, username, role, status, expires_at, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			employee_id = excluded.employee_id,
			name = excluded.name,
			username = excluded.username,
			role = excluded.role,
			status = excluded.status,
			expires_at = excluded.expires_at,
			updated = excluded.updated`,
		id, s.Token, s.EmployeeID, s.Name, s.Username, s.Role, s.Status,
		now.Add(st.ttl).Unix(), now.Unix())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (st *SQLiteStore) Clear(ctx context.Context, id string) error {
	if _, err := st.conn.Exec(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (st *SQLiteStore) Current(ctx context.Context, id string) (Session, error) {
	row := st.conn.QueryRow(ctx, `
		SELECT token, employee_id, name, username, role, status, expires_at
		FROM sessions WHERE id = ?`, id)

	var s Session
	var expiresAt int64
	if err := row.Scan(&s.Token, &s.EmployeeID, &s.Name, &s.Username, &s.Role, &s.Status, &expiresAt); err != nil {
		if err == sql.ErrNoRows {
			return Session{}, nil
		}

		return Session{}, err
	}

	if time.Now().Unix() >= expiresAt {
		return Session{}, nil
	}

	return s, nil
}

// Purge removes expired rows. Callers may run it periodically; correctness
// does not depend on it because Current treats expired rows as absent.
func (st *SQLiteStore) Purge(ctx context.Context) (int64, error) {
	res, err := st.conn.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
