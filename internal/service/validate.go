package service

import (
	"fmt"
	"strings"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/pkg/api"
)

// buildSplits derives split amounts from the request shares. The payer's
// own share is marked paid.
func buildSplits(total money.Amount, splitType calculator.SplitType, shares []*api.Share, payerID string) ([]models.Split, error) {
	calcShares := make([]calculator.Share, 0, len(shares))
	seen := make(map[string]bool, len(shares))
	for _, sh := range shares {
		if sh == nil || sh.UserID == "" {
			return nil, fmt.Errorf("every share needs a user_id")
		}
		if seen[sh.UserID] {
			return nil, fmt.Errorf("user %s appears in more than one share", sh.UserID)
		}
		seen[sh.UserID] = true
		calcShares = append(calcShares, calculator.Share{
			MemberID:   sh.UserID,
			Percentage: sh.Percentage,
			Amount:     sh.Amount,
		})
	}

	amounts, err := calculator.CalculateSplit(total, splitType, calcShares)
	if err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(calcShares))
	for i, sh := range calcShares {
		splits[i] = models.Split{
			UserID: sh.MemberID,
			Amount: amounts[i],
			Paid:   sh.MemberID == payerID,
		}
	}
	return splits, nil
}

// validateExpense checks a new expense before it is stored. group is nil
// for personal expenses.
func validateExpense(e *models.Expense, group *models.Group) error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("description required")
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", e.Amount)
	}
	if e.PaidByUserID == "" {
		return fmt.Errorf("paid_by_user_id required")
	}
	if len(e.Splits) == 0 {
		return fmt.Errorf("at least one split required")
	}

	amounts := make([]money.Amount, len(e.Splits))
	for i, s := range e.Splits {
		if s.Amount < 0 {
			return fmt.Errorf("split for %s is negative", s.UserID)
		}
		amounts[i] = s.Amount
	}
	if err := calculator.ValidateSplitSum(e.Amount, amounts); err != nil {
		return err
	}

	if group != nil {
		for _, id := range e.ParticipantIDs() {
			if !group.HasMember(id) {
				return fmt.Errorf("user %s is not a member of the group", id)
			}
		}
	}
	return nil
}

// validateSettlement checks a new settlement before it is stored. group is
// nil for personal settlements.
func validateSettlement(s *models.Settlement, group *models.Group) error {
	if !s.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", s.Amount)
	}
	if s.PaidByUserID == "" || s.ReceivedByUserID == "" {
		return fmt.Errorf("paid_by_user_id and received_by_user_id required")
	}
	if s.PaidByUserID == s.ReceivedByUserID {
		return fmt.Errorf("cannot settle with yourself")
	}
	if group != nil {
		for _, id := range []string{s.PaidByUserID, s.ReceivedByUserID} {
			if !group.HasMember(id) {
				return fmt.Errorf("user %s is not a member of the group", id)
			}
		}
	}
	return nil
}
