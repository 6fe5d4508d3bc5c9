package service

import (
	"testing"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

func TestPairScope(t *testing.T) {
	snap := &storage.Snapshot{
		Users: map[string]*models.User{"bob": {ID: "bob", Name: "Bob"}},
		Expenses: []*models.Expense{
			{ID: "e1", PaidByUserID: "alice", Amount: 3000, Splits: []models.Split{
				{UserID: "alice", Amount: 1000, Paid: true}, {UserID: "bob", Amount: 1000}, {UserID: "carol", Amount: 1000},
			}},
			{ID: "e2", PaidByUserID: "carol", Amount: 1000, Splits: []models.Split{{UserID: "alice", Amount: 1000}}},
		},
		Settlements: []*models.Settlement{
			{ID: "s1", PaidByUserID: "bob", ReceivedByUserID: "alice", Amount: 500},
			{ID: "s2", PaidByUserID: "carol", ReceivedByUserID: "alice", Amount: 500},
		},
	}

	scope, expenses, settlements := pairScope(snap, "alice", "bob")

	if len(expenses) != 1 || expenses[0].ID != "e1" {
		t.Errorf("expenses: got %d, want only e1", len(expenses))
	}
	if len(settlements) != 1 || settlements[0].ID != "s1" {
		t.Errorf("settlements: got %d, want only s1", len(settlements))
	}

	var ids []string
	for _, m := range scope.Members {
		ids = append(ids, m.ID)
	}
	if len(ids) != 3 || ids[0] != "alice" || ids[1] != "bob" || ids[2] != "carol" {
		t.Errorf("members: got %v", ids)
	}
	if scope.Members[1].Name != "Bob" || scope.Members[2].Name != "carol" {
		t.Errorf("member names: got %q and %q", scope.Members[1].Name, scope.Members[2].Name)
	}

	report, err := calculator.CalculateBalances(scope)
	if err != nil {
		t.Fatalf("CalculateBalances() error: %v", err)
	}
	if got := report.Between("alice", "bob"); got != 500 {
		t.Errorf("Between(alice, bob) = %s, want 5.00", got)
	}
}

func TestPairScope_NoSharedRecords(t *testing.T) {
	scope, expenses, settlements := pairScope(&storage.Snapshot{}, "alice", "bob")
	if len(expenses) != 0 || len(settlements) != 0 {
		t.Errorf("expected no records, got %d expenses and %d settlements", len(expenses), len(settlements))
	}
	if len(scope.Members) != 2 {
		t.Errorf("members: expected the two users, got %d", len(scope.Members))
	}
}

func TestToAPIDebts_LargestFirst(t *testing.T) {
	debts := []calculator.Debt{
		{MemberID: "a", Amount: 100},
		{MemberID: "c", Amount: 300},
		{MemberID: "b", Amount: 300},
	}
	got := toAPIDebts(debts, nil)
	want := []string{"b", "c", "a"}
	for i, d := range got {
		if d.UserID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], d.UserID)
		}
		if d.Name != d.UserID {
			t.Errorf("name without profile: expected %s, got %s", d.UserID, d.Name)
		}
	}
}
