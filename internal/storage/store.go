// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Snapshot is a consistent read of the records behind one balance computation.
type Snapshot struct {
	// Group is nil for the personal scope.
	Group       *models.Group
	Users       map[string]*models.User
	Expenses    []*models.Expense
	Settlements []*models.Settlement
}

// Store defines the interface for expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. CreatedAt is set if zero.
	CreateUser(ctx context.Context, user *models.User) error

	// UpsertUser creates the user or refreshes its profile fields.
	UpsertUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUsersByIDs retrieves users keyed by ID. Unknown IDs are omitted.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a new group with its members.
	// The group.ID and CreatedAt fields will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser retrieves the groups userID is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers adds users to a group as plain members. Existing members are skipped.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// DeleteGroup removes a group along with its expenses and settlements.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense with its splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// GetSettlement retrieves a settlement by ID.
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)

	// ListSettlementsByGroup retrieves a group's settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// GroupSnapshot reads a group, its members' profiles, expenses and
	// settlements in one read transaction.
	GroupSnapshot(ctx context.Context, groupID string) (*Snapshot, error)

	// PersonalSnapshot reads all expenses and settlements without a group,
	// plus the profiles of every user they reference, in one read transaction.
	PersonalSnapshot(ctx context.Context) (*Snapshot, error)

	// Close releases any resources held by the store.
	Close() error
}
