package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
)

const expenseColumns = `e.id, e.description, e.amount, e.category, e.date, e.paid_by_user_id, e.split_type, e.group_id, e.created_by, e.created_at`

// CreateExpense persists a new expense and its splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Date == 0 {
		expense.Date = expense.CreatedAt
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, description, amount, category, date, paid_by_user_id, split_type, group_id, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.Description, expense.Amount.Minor(), nullString(expense.Category), expense.Date,
			expense.PaidByUserID, expense.SplitType, nullString(expense.GroupID), expense.CreatedBy, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, split := range expense.Splits {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_splits (expense_id, user_id, amount, paid, position) VALUES (?, ?, ?, ?, ?)",
				expense.ID, split.UserID, split.Amount.Minor(), split.Paid, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expenses, err := listExpenses(ctx, s.db, "e.id = ?", expenseID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, notFound("expense", expenseID)
	}
	return expenses[0], nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, "e.group_id = ?", groupID)
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return notFound("expense", expenseID)
	}
	return nil
}

// listExpenses loads the expenses matching where, then their splits in a second query.
func listExpenses(ctx context.Context, q querier, where string, args ...any) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses e WHERE `+where+` ORDER BY e.date DESC, e.created_at DESC, e.id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	var expenses []*models.Expense
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		e := &models.Expense{}
		var category, groupID sql.NullString
		var amount int64
		if err := rows.Scan(&e.ID, &e.Description, &amount, &category, &e.Date, &e.PaidByUserID,
			&e.SplitType, &groupID, &e.CreatedBy, &e.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = money.Amount(amount)
		e.Category = category.String
		e.GroupID = groupID.String
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.user_id, s.amount, s.paid
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE `+where+` ORDER BY s.expense_id, s.position`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID string
		var split models.Split
		var amount int64
		if err := splitRows.Scan(&expenseID, &split.UserID, &amount, &split.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split.Amount = money.Amount(amount)
		if e, ok := byID[expenseID]; ok {
			e.Splits = append(e.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, nil
}
