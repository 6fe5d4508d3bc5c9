package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

const userColumns = `id, name, email, image_url, created_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, nullString(user.ImageURL), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpsertUser inserts the user or refreshes name, email and avatar of an existing one.
func (s *SQLiteStore) UpsertUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   email = excluded.email,
		   image_url = excluded.image_url`,
		user.ID, user.Name, user.Email, nullString(user.ImageURL), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	// Report the stored creation time back to the caller.
	if err := s.db.QueryRowContext(ctx, "SELECT created_at FROM users WHERE id = ?", user.ID).Scan(&user.CreatedAt); err != nil {
		return fmt.Errorf("failed to read upserted user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by their ID.
func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	return getUsersByIDs(ctx, s.db, ids)
}

func getUsersByIDs(ctx context.Context, q querier, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id IN (`+placeholders(len(ids))+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	var imageURL sql.NullString
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &imageURL, &user.CreatedAt); err != nil {
		return nil, err
	}
	user.ImageURL = imageURL.String
	return user, nil
}
