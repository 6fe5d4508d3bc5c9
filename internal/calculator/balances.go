package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mmynk/splitledger/internal/money"
)

var (
	// ErrInvalidScope is returned when a record references a member outside the scope.
	ErrInvalidScope = errors.New("record references a member outside the scope")

	// ErrNonPositiveAmount is returned for non-positive totals or negative split amounts.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// Member identifies a participant of a balance computation.
type Member struct {
	ID       string
	Name     string
	ImageURL string
	Role     string
}

// SplitForBalance is one participant's share of an expense.
type SplitForBalance struct {
	MemberID string
	Amount   money.Amount
	Paid     bool // already settled, contributes nothing
}

// ExpenseForBalance represents an expense with the minimal information needed for balance calculations.
type ExpenseForBalance struct {
	ID      string
	PayerID string
	Amount  money.Amount
	Splits  []SplitForBalance
	Date    int64
}

// SettlementForBalance represents a settlement with the minimal information needed for balance calculations.
type SettlementForBalance struct {
	ID         string
	PayerID    string // Who paid (debtor settling up)
	ReceiverID string // Who received (creditor being paid)
	Amount     money.Amount
}

// Scope is the fixed input set of one computation: a group, or the
// participants of personal expenses.
type Scope struct {
	Members     []Member
	Expenses    []ExpenseForBalance
	Settlements []SettlementForBalance
}

// Debt is one netted obligation as seen from a member.
// MemberID is the counterparty. Since is the date of the oldest expense
// behind the obligation, zero when it stems from settlements alone.
type Debt struct {
	MemberID string
	Amount   money.Amount
	Since    int64
}

// MemberBalance is one member's line of a Report.
type MemberBalance struct {
	Member
	TotalBalance money.Amount // Positive = owed money, Negative = owes money
	Owes         []Debt
	OwedBy       []Debt
}

// Report is the output of CalculateBalances, one entry per member in input order.
type Report struct {
	Balances []MemberBalance
}

// Balance returns the entry for a member ID.
func (r *Report) Balance(memberID string) (MemberBalance, bool) {
	for _, b := range r.Balances {
		if b.ID == memberID {
			return b, true
		}
	}
	return MemberBalance{}, false
}

// Between returns the net amount other owes memberID; negative when
// memberID owes other.
func (r *Report) Between(memberID, other string) money.Amount {
	b, ok := r.Balance(memberID)
	if !ok {
		return 0
	}
	for _, d := range b.OwedBy {
		if d.MemberID == other {
			return d.Amount
		}
	}
	for _, d := range b.Owes {
		if d.MemberID == other {
			return -d.Amount
		}
	}
	return 0
}

// CalculateBalances computes net balances and netted pairwise debts for a scope.
// It returns money.ErrOutOfRange when the scope moves more than an int64 of
// minor units in total.
//
// Algorithm:
//   - Ledger: each unpaid split not owned by the payer adds to ledger[debtor][payer]
//     and moves the amount from the debtor's total to the payer's total
//   - Settlements: reduce ledger[payer][receiver], possibly below zero, and
//     move the amount from the receiver's total to the payer's total
//   - Netting: each pair collapses to at most one non-zero direction
//
// All records are checked before anything is computed, so an error never
// comes with a partial report.
func CalculateBalances(scope Scope) (*Report, error) {
	index, err := indexMembers(scope.Members)
	if err != nil {
		return nil, err
	}
	if err := validateScope(scope, index); err != nil {
		return nil, err
	}

	n := len(index.ids)
	l := newLedger(n)
	totals := make([]money.Amount, n)

	for _, exp := range scope.Expenses {
		payer := index.pos[exp.PayerID]
		for _, split := range exp.Splits {
			if split.MemberID == exp.PayerID || split.Paid {
				continue
			}
			debtor := index.pos[split.MemberID]
			totals[payer] += split.Amount
			totals[debtor] -= split.Amount
			l.add(debtor, payer, split.Amount)
			l.touch(debtor, payer, exp.Date)
		}
	}

	for _, s := range scope.Settlements {
		payer := index.pos[s.PayerID]
		receiver := index.pos[s.ReceiverID]
		totals[payer] += s.Amount
		totals[receiver] -= s.Amount
		l.add(payer, receiver, -s.Amount)
	}

	l.net()

	report := &Report{Balances: make([]MemberBalance, 0, len(scope.Members))}
	for _, m := range scope.Members {
		me := index.pos[m.ID]
		bal := MemberBalance{Member: m, TotalBalance: totals[me]}
		for other := 0; other < n; other++ {
			if other == me {
				continue
			}
			if amt := l.get(me, other); amt > 0 {
				bal.Owes = append(bal.Owes, Debt{MemberID: index.ids[other], Amount: amt, Since: l.sinceOf(me, other)})
			}
			if amt := l.get(other, me); amt > 0 {
				bal.OwedBy = append(bal.OwedBy, Debt{MemberID: index.ids[other], Amount: amt, Since: l.sinceOf(other, me)})
			}
		}
		report.Balances = append(report.Balances, bal)
	}

	return report, nil
}

// memberIndex assigns each member a position by sorted ID.
type memberIndex struct {
	ids []string
	pos map[string]int
}

func indexMembers(members []Member) (*memberIndex, error) {
	ids := make([]string, 0, len(members))
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("member with empty id: %w", ErrInvalidScope)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("duplicate member %s: %w", m.ID, ErrInvalidScope)
		}
		seen[m.ID] = true
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)

	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return &memberIndex{ids: ids, pos: pos}, nil
}

func (idx *memberIndex) has(id string) bool {
	_, ok := idx.pos[id]
	return ok
}

// validateScope also bounds the sum of every amount that moves between
// members. Totals and ledger cells are partial sums of those amounts, so
// none of them can overflow once the bound holds.
func validateScope(scope Scope, index *memberIndex) error {
	var flow money.Amount
	var err error

	for _, exp := range scope.Expenses {
		if !exp.Amount.IsPositive() {
			return fmt.Errorf("expense %s amount %s: %w", exp.ID, exp.Amount, ErrNonPositiveAmount)
		}
		if !index.has(exp.PayerID) {
			return fmt.Errorf("expense %s payer %s: %w", exp.ID, exp.PayerID, ErrInvalidScope)
		}
		for _, split := range exp.Splits {
			if split.Amount < 0 {
				return fmt.Errorf("expense %s split for %s amount %s: %w", exp.ID, split.MemberID, split.Amount, ErrNonPositiveAmount)
			}
			if !index.has(split.MemberID) {
				return fmt.Errorf("expense %s split member %s: %w", exp.ID, split.MemberID, ErrInvalidScope)
			}
			if split.MemberID == exp.PayerID || split.Paid {
				continue
			}
			if flow, err = money.Add(flow, split.Amount); err != nil {
				return fmt.Errorf("expense %s: %w", exp.ID, err)
			}
		}
	}

	for _, s := range scope.Settlements {
		if !s.Amount.IsPositive() {
			return fmt.Errorf("settlement %s amount %s: %w", s.ID, s.Amount, ErrNonPositiveAmount)
		}
		if !index.has(s.PayerID) {
			return fmt.Errorf("settlement %s payer %s: %w", s.ID, s.PayerID, ErrInvalidScope)
		}
		if !index.has(s.ReceiverID) {
			return fmt.Errorf("settlement %s receiver %s: %w", s.ID, s.ReceiverID, ErrInvalidScope)
		}
		if s.PayerID == s.ReceiverID {
			return fmt.Errorf("settlement %s pays its own payer %s: %w", s.ID, s.PayerID, ErrInvalidScope)
		}
		if flow, err = money.Add(flow, s.Amount); err != nil {
			return fmt.Errorf("settlement %s: %w", s.ID, err)
		}
	}

	return nil
}
