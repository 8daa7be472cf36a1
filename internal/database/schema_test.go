package database

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestEnsureSchema_Persistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Fresh database
	if err := EnsureSchema(dbPath); err != nil {
		t.Fatalf("EnsureSchema() on a new file failed: %v", err)
	}

	// Sign in once
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	_, err = db.Exec(`INSERT INTO sessions (id, token, user_json) VALUES (1, 'tok', '{}')`)
	db.Close()
	if err != nil {
		t.Fatalf("Failed to insert record: %v", err)
	}

	// Restart: the schema pass must keep existing rows
	if err := EnsureSchema(dbPath); err != nil {
		t.Fatalf("EnsureSchema() on an existing file failed: %v", err)
	}

	// The stored token is still there
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	var token string
	if err := db.QueryRow("SELECT token FROM sessions WHERE id = 1").Scan(&token); err != nil {
		t.Fatalf("Failed to query record: %v", err)
	}
	if token != "tok" {
		t.Errorf("token = %q, want %q", token, "tok")
	}
}

func TestEnsureSchema_SingleSessionRow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := EnsureSchema(dbPath); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO sessions (id, token) VALUES (2, 'other')`); err == nil {
		t.Error("expected insert of a second session row to fail")
	}
}
