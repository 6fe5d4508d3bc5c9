package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/money"
)

// Expense is an amount paid by one user and split among participants.
type Expense struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	Amount       money.Amount `json:"amount"`
	Category     string       `json:"category,omitempty"`
	Date         int64        `json:"date"`
	PaidByUserID string       `json:"paidByUserId"`
	SplitType    string       `json:"splitType"`
	Splits       []*Split     `json:"splits"`
	GroupID      string       `json:"groupId,omitempty"`
	CreatedBy    string       `json:"createdBy"`
	CreatedAt    int64        `json:"createdAt"`
}

// Split is one participant's share of an expense.
type Split struct {
	UserID string       `json:"userId"`
	Amount money.Amount `json:"amount"`
	Paid   bool         `json:"paid"`
}

// Share is one participant's input to a split: Percentage for percentage
// splits, Amount for exact splits, nothing for equal splits.
type Share struct {
	UserID     string          `json:"userId"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     money.Amount    `json:"amount,omitempty"`
}

// Settlement is a direct payment between two users.
type Settlement struct {
	ID               string       `json:"id"`
	Amount           money.Amount `json:"amount"`
	Note             string       `json:"note,omitempty"`
	Date             int64        `json:"date"`
	PaidByUserID     string       `json:"paidByUserId"`
	ReceivedByUserID string       `json:"receivedByUserId"`
	GroupID          string       `json:"groupId,omitempty"`
	CreatedBy        string       `json:"createdBy"`
	CreatedAt        int64        `json:"createdAt"`
}

type CalculateSplitRequest struct {
	Amount    money.Amount `json:"amount"`
	SplitType string       `json:"splitType"`
	Shares    []*Share     `json:"shares"`
}

type CalculateSplitResponse struct {
	Splits []*Split `json:"splits"`
}

// CreateExpenseRequest records an expense. Splits are derived from Shares
// according to SplitType; the payer's own split is stored as paid.
type CreateExpenseRequest struct {
	Description  string       `json:"description"`
	Amount       money.Amount `json:"amount"`
	Category     string       `json:"category,omitempty"`
	Date         int64        `json:"date,omitempty"`
	PaidByUserID string       `json:"paidByUserId"`
	SplitType    string       `json:"splitType"`
	Shares       []*Share     `json:"shares"`
	GroupID      string       `json:"groupId,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

type CreateSettlementRequest struct {
	Amount           money.Amount `json:"amount"`
	Note             string       `json:"note,omitempty"`
	Date             int64        `json:"date,omitempty"`
	PaidByUserID     string       `json:"paidByUserId"`
	ReceivedByUserID string       `json:"receivedByUserId"`
	GroupID          string       `json:"groupId,omitempty"`
}

type CreateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type ListGroupSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupSettlementsResponse struct {
	Settlements []*Settlement `json:"settlements"`
}

type DeleteSettlementRequest struct {
	SettlementID string `json:"settlementId"`
}

type DeleteSettlementResponse struct{}

// GetPersonBalanceRequest asks for the caller's personal balance with UserID.
type GetPersonBalanceRequest struct {
	UserID string `json:"userId"`
}

// GetPersonBalanceResponse carries the net position: positive when the
// other user owes the caller.
type GetPersonBalanceResponse struct {
	User        *User         `json:"user"`
	Balance     money.Amount  `json:"balance"`
	Expenses    []*Expense    `json:"expenses"`
	Settlements []*Settlement `json:"settlements"`
}

type GetOutstandingDebtsRequest struct{}

// UserDebts lists what one user owes from personal (non-group) records.
type UserDebts struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Debts  []*Debt `json:"debts"`
}

type GetOutstandingDebtsResponse struct {
	Users []*UserDebts `json:"users"`
}
