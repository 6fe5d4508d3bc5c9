package service

import (
	"sort"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const (
	scopeGroup    = "group"
	scopePersonal = "personal"
	scopePair     = "pair"
)

// computeBalances runs the engine and records the run.
func computeBalances(scopeName string, scope calculator.Scope) (*calculator.Report, error) {
	report, err := calculator.CalculateBalances(scope)
	metrics.ObserveComputation(scopeName, len(scope.Members), err)
	return report, err
}

// groupScope uses the group's membership as the member set.
func groupScope(snap *storage.Snapshot) calculator.Scope {
	members := make([]calculator.Member, len(snap.Group.Members))
	for i, m := range snap.Group.Members {
		members[i] = scopeMember(m.UserID, snap.Users)
		members[i].Role = string(m.Role)
	}
	return calculator.Scope{
		Members:     members,
		Expenses:    expensesForBalance(snap.Expenses),
		Settlements: settlementsForBalance(snap.Settlements),
	}
}

// personalScope uses every user referenced by the personal records.
func personalScope(snap *storage.Snapshot) calculator.Scope {
	return calculator.Scope{
		Members:     scopeMembers(participants(snap.Expenses, snap.Settlements), snap.Users),
		Expenses:    expensesForBalance(snap.Expenses),
		Settlements: settlementsForBalance(snap.Settlements),
	}
}

// pairScope keeps the personal expenses both users take part in and the
// settlements between them. Other participants of those expenses join the
// member set so their shares still resolve.
func pairScope(snap *storage.Snapshot, userID, otherID string) (calculator.Scope, []*models.Expense, []*models.Settlement) {
	var expenses []*models.Expense
	for _, e := range snap.Expenses {
		if e.Involves(userID) && e.Involves(otherID) {
			expenses = append(expenses, e)
		}
	}
	var settlements []*models.Settlement
	for _, s := range snap.Settlements {
		if s.Between(userID, otherID) {
			settlements = append(settlements, s)
		}
	}

	ids := participants(expenses, settlements)
	ids = appendMissing(ids, userID, otherID)
	sort.Strings(ids)

	scope := calculator.Scope{
		Members:     scopeMembers(ids, snap.Users),
		Expenses:    expensesForBalance(expenses),
		Settlements: settlementsForBalance(settlements),
	}
	return scope, expenses, settlements
}

// participants returns the sorted IDs of every payer, split user and
// settlement party.
func participants(expenses []*models.Expense, settlements []*models.Settlement) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range expenses {
		for _, id := range e.ParticipantIDs() {
			add(id)
		}
	}
	for _, s := range settlements {
		add(s.PaidByUserID)
		add(s.ReceivedByUserID)
	}
	sort.Strings(ids)
	return ids
}

func appendMissing(ids []string, extra ...string) []string {
	for _, id := range extra {
		found := false
		for _, existing := range ids {
			if existing == id {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, id)
		}
	}
	return ids
}

func scopeMembers(ids []string, users map[string]*models.User) []calculator.Member {
	members := make([]calculator.Member, len(ids))
	for i, id := range ids {
		members[i] = scopeMember(id, users)
	}
	return members
}

func scopeMember(id string, users map[string]*models.User) calculator.Member {
	m := calculator.Member{ID: id, Name: id}
	if u, ok := users[id]; ok {
		m.Name = u.Name
		m.ImageURL = u.ImageURL
	}
	return m
}

func expensesForBalance(expenses []*models.Expense) []calculator.ExpenseForBalance {
	out := make([]calculator.ExpenseForBalance, len(expenses))
	for i, e := range expenses {
		splits := make([]calculator.SplitForBalance, len(e.Splits))
		for j, s := range e.Splits {
			splits[j] = calculator.SplitForBalance{MemberID: s.UserID, Amount: s.Amount, Paid: s.Paid}
		}
		out[i] = calculator.ExpenseForBalance{
			ID:      e.ID,
			PayerID: e.PaidByUserID,
			Amount:  e.Amount,
			Splits:  splits,
			Date:    e.Date,
		}
	}
	return out
}

func settlementsForBalance(settlements []*models.Settlement) []calculator.SettlementForBalance {
	out := make([]calculator.SettlementForBalance, len(settlements))
	for i, s := range settlements {
		out[i] = calculator.SettlementForBalance{
			ID:         s.ID,
			PayerID:    s.PaidByUserID,
			ReceiverID: s.ReceivedByUserID,
			Amount:     s.Amount,
		}
	}
	return out
}
