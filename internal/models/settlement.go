package models

import "github.com/mmynk/splitledger/internal/money"

// Settlement represents a direct payment from one user to another.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the payment amount.
	Amount money.Amount

	// Note is an optional description for the settlement.
	Note string

	// Date is the Unix timestamp of the payment.
	Date int64

	// PaidByUserID is the user who paid (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received payment (creditor being paid).
	ReceivedByUserID string

	// GroupID is empty for personal settlements.
	GroupID string

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}

// Between reports whether the settlement is between users a and b, in either direction.
func (s *Settlement) Between(a, b string) bool {
	return (s.PaidByUserID == a && s.ReceivedByUserID == b) ||
		(s.PaidByUserID == b && s.ReceivedByUserID == a)
}
