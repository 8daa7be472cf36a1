package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ngmaloney/vessel-console/internal/models"
)

// Store persists the single signed-in session.
type Store struct {
	db *sql.DB
}

// NewStore wraps a database whose schema has been ensured.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the stored token and user. An empty store is not an error.
func (s *Store) Load(ctx context.Context) (string, *models.User, error) {
	var token string
	var userJSON sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT token, user_json FROM sessions WHERE id = 1`).Scan(&token, &userJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, fmt.Errorf("loading session: %w", err)
	}

	if !userJSON.Valid || userJSON.String == "" {
		return token, nil, nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(userJSON.String), &user); err != nil {
		// unreadable profile; the token alone is still usable
		return token, nil, nil
	}
	return token, &user, nil
}

// Save replaces the stored session.
func (s *Store) Save(ctx context.Context, token string, user *models.User) error {
	var userJSON sql.NullString
	if user != nil {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encoding user: %w", err)
		}
		userJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token, user_json, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json,
			updated_at = excluded.updated_at
	`, token, userJSON)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Clear removes the stored session.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
