package service

import (
	"sort"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

// toAPIGroup fills member names from users; members without a profile
// show their ID.
func toAPIGroup(g *models.Group, users map[string]*models.User) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = &api.Member{UserID: m.UserID, Name: m.UserID, Role: string(m.Role)}
		if u, ok := users[m.UserID]; ok {
			members[i].Name = u.Name
			members[i].ImageURL = u.ImageURL
		}
	}
	return &api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   g.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &api.Split{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid}
	}
	return &api.Expense{
		ID:           e.ID,
		Description:  e.Description,
		Amount:       e.Amount,
		Category:     e.Category,
		Date:         e.Date,
		PaidByUserID: e.PaidByUserID,
		SplitType:    e.SplitType,
		Splits:       splits,
		GroupID:      e.GroupID,
		CreatedBy:    e.CreatedBy,
		CreatedAt:    e.CreatedAt,
	}
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

func toAPISettlement(s *models.Settlement) *api.Settlement {
	return &api.Settlement{
		ID:               s.ID,
		Amount:           s.Amount,
		Note:             s.Note,
		Date:             s.Date,
		PaidByUserID:     s.PaidByUserID,
		ReceivedByUserID: s.ReceivedByUserID,
		GroupID:          s.GroupID,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.CreatedAt,
	}
}

func toAPISettlements(settlements []*models.Settlement) []*api.Settlement {
	out := make([]*api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = toAPISettlement(s)
	}
	return out
}

// toAPIDebts converts engine debts, largest amount first.
func toAPIDebts(debts []calculator.Debt, users map[string]*models.User) []*api.Debt {
	out := make([]*api.Debt, len(debts))
	for i, d := range debts {
		out[i] = &api.Debt{UserID: d.MemberID, Name: displayName(d.MemberID, users), Amount: d.Amount, Since: d.Since}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func toAPIBalance(b calculator.MemberBalance, users map[string]*models.User) *api.MemberBalance {
	return &api.MemberBalance{
		Member: api.Member{
			UserID:   b.ID,
			Name:     b.Name,
			ImageURL: b.ImageURL,
			Role:     b.Role,
		},
		TotalBalance: b.TotalBalance,
		Owes:         toAPIDebts(b.Owes, users),
		OwedBy:       toAPIDebts(b.OwedBy, users),
	}
}

func displayName(userID string, users map[string]*models.User) string {
	if u, ok := users[userID]; ok && u.Name != "" {
		return u.Name
	}
	return userID
}
