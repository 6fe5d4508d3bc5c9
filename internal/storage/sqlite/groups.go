package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup persists a new group and its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO groups (id, name, description, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, group.Name, nullString(group.Description), group.CreatedBy, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		for i := range group.Members {
			m := &group.Members[i]
			if m.JoinedAt == 0 {
				m.JoinedAt = group.CreatedAt
			}
			if m.Role == "" {
				m.Role = models.RoleMember
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
				group.ID, m.UserID, string(m.Role), m.JoinedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
		return nil
	})
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return getGroup(ctx, s.db, groupID)
}

func getGroup(ctx context.Context, q querier, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var description sql.NullString
	err := q.QueryRowContext(ctx,
		"SELECT id, name, description, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &description, &group.CreatedBy, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("group", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.Description = description.String

	members, err := listMembers(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

func listMembers(ctx context.Context, q querier, groupID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT user_id, role, joined_at FROM group_members WHERE group_id = ? ORDER BY joined_at, user_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var role string
		if err := rows.Scan(&m.UserID, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.Role = models.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// ListGroupsForUser retrieves all groups the user belongs to, by name.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id FROM groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.user_id = ?
		 ORDER BY g.name, g.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := getGroup(ctx, s.db, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// AddGroupMembers adds users to a group. Users already in the group are left unchanged.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error {
	joinedAt := time.Now().Unix()
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("group", groupID)
		}
		if err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}

		for _, userID := range userIDs {
			_, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO group_members (group_id, user_id, role, joined_at) VALUES (?, ?, ?, ?)",
				groupID, userID, string(models.RoleMember), joinedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to add group member: %w", err)
			}
		}
		return nil
	})
}

// DeleteGroup removes a group. Members, expenses and settlements cascade.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("group", groupID)
	}
	return nil
}
