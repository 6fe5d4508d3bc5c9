package models

import "github.com/mmynk/splitledger/internal/money"

// Expense is an amount paid by one user on behalf of a set of participants.
// Expenses are immutable once created; they can only be deleted.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is what the money was spent on.
	Description string

	// Amount is the total paid.
	Amount money.Amount

	// Category is a free-form tag (e.g., "food", "travel").
	Category string

	// Date is the Unix timestamp the expense was incurred.
	Date int64

	// PaidByUserID is the user who paid.
	PaidByUserID string

	// SplitType records how the splits were derived: equal, percentage or exact.
	SplitType string

	// Splits are the participants' shares. They should add up to Amount.
	Splits []Split

	// GroupID is empty for personal expenses.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Split is one participant's share of an expense.
type Split struct {
	UserID string
	Amount money.Amount

	// Paid is true when the share is already settled, e.g. the payer's own share.
	Paid bool
}

// Involves reports whether userID paid for or takes part in the expense.
func (e *Expense) Involves(userID string) bool {
	if e.PaidByUserID == userID {
		return true
	}
	for _, s := range e.Splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns the payer followed by every split user, without duplicates.
func (e *Expense) ParticipantIDs() []string {
	seen := map[string]bool{e.PaidByUserID: true}
	ids := []string{e.PaidByUserID}
	for _, s := range e.Splits {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}
	return ids
}
