package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/garnizeh/emsportal/internal/config"
	"github.com/garnizeh/emsportal/internal/db"
	"github.com/garnizeh/emsportal/pkg/backend"
)

// seed_admin creates the initial admin account in the stub backend database
// so a fresh install has someone who can reach the admin dashboard.
func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	name := flag.String("name", "Administrator", "admin display name")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: seed_admin -password <password> [-username admin] [-name Administrator]")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.StubBackend.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash error: %v\n", err)
		os.Exit(1)
	}

	_, err = database.Exec(ctx, `
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
		)`)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Schema error: %v\n", err)
		os.Exit(1)
	}

	_, err = database.Exec(ctx, `
		INSERT INTO employees (id, name, username, password_hash, status, role, created_by, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, 'seed', strftime('%s','now'), strftime('%s','now'))`,
		uuid.NewString(), *name, *username, string(hash), backend.StatusActive, backend.RoleAdmin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Insert error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Admin account %q created.\n", *username)
}
