package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

const settlementColumns = `id, amount, note, date, paid_by_user_id, received_by_user_id, group_id, created_by, created_at`

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	// Generate ID if not set
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Date == 0 {
		settlement.Date = settlement.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (`+settlementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.Amount.Minor(), nullString(settlement.Note), settlement.Date,
		settlement.PaidByUserID, settlement.ReceivedByUserID, nullString(settlement.GroupID),
		settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := scanSettlement(s.db.QueryRowContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE id = ?`, settlementID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("settlement", settlementID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	return settlement, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return listSettlements(ctx, s.db, "group_id = ?", groupID)
}

// DeleteSettlement removes a settlement by ID.
func (s *SQLiteStore) DeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM settlements WHERE id = ?", settlementID)
	if err != nil {
		return fmt.Errorf("failed to delete settlement: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("settlement", settlementID)
	}
	return nil
}

func listSettlements(ctx context.Context, q querier, where string, args ...any) ([]*models.Settlement, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+settlementColumns+` FROM settlements WHERE `+where+` ORDER BY date DESC, created_at DESC, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

func scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note, groupID sql.NullString
	var amount int64
	if err := row.Scan(&settlement.ID, &amount, &note, &settlement.Date, &settlement.PaidByUserID,
		&settlement.ReceivedByUserID, &groupID, &settlement.CreatedBy, &settlement.CreatedAt); err != nil {
		return nil, err
	}
	settlement.Amount = money.Amount(amount)
	settlement.Note = note.String
	settlement.GroupID = groupID.String
	return settlement, nil
}
