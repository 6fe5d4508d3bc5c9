package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestCalculateSplit_EqualSplit(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.expenses.CalculateSplit(context.Background(), as("alice", &api.CalculateSplitRequest{
		Amount:    amt("10"),
		SplitType: "equal",
		Shares:    equalShares("alice", "bob", "charlie"),
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}

	want := []string{"3.34", "3.33", "3.33"}
	if len(resp.Msg.Splits) != len(want) {
		t.Fatalf("splits: expected %d, got %d", len(want), len(resp.Msg.Splits))
	}
	for i, s := range resp.Msg.Splits {
		if s.Amount.String() != want[i] {
			t.Errorf("%s: expected %s, got %s", s.UserID, want[i], s.Amount)
		}
	}
}

func TestCalculateSplit_Percentage(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.expenses.CalculateSplit(context.Background(), as("alice", &api.CalculateSplitRequest{
		Amount:    amt("200"),
		SplitType: "percentage",
		Shares: []*api.Share{
			{UserID: "alice", Percentage: decimal.NewFromInt(75)},
			{UserID: "bob", Percentage: decimal.NewFromInt(25)},
		},
	}))
	if err != nil {
		t.Fatalf("CalculateSplit failed: %v", err)
	}
	if resp.Msg.Splits[0].Amount != amt("150") || resp.Msg.Splits[1].Amount != amt("50") {
		t.Errorf("got %s and %s", resp.Msg.Splits[0].Amount, resp.Msg.Splits[1].Amount)
	}
}

func TestCalculateSplit_InvalidInput(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name string
		req  *api.CalculateSplitRequest
	}{
		{
			name: "no participants",
			req:  &api.CalculateSplitRequest{Amount: amt("10")},
		},
		{
			name: "percentages not adding to 100",
			req: &api.CalculateSplitRequest{
				Amount:    amt("10"),
				SplitType: "percentage",
				Shares: []*api.Share{
					{UserID: "alice", Percentage: decimal.NewFromInt(60)},
					{UserID: "bob", Percentage: decimal.NewFromInt(30)},
				},
			},
		},
		{
			name: "duplicate participant",
			req:  &api.CalculateSplitRequest{Amount: amt("10"), Shares: equalShares("alice", "alice")},
		},
		{
			name: "unknown split type",
			req:  &api.CalculateSplitRequest{Amount: amt("10"), SplitType: "shares", Shares: equalShares("alice")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.expenses.CalculateSplit(context.Background(), as("alice", tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestCreateExpense_And_GetExpense(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	created := createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      amt("25"),
		Category:    "food",
		SplitType:   "exact",
		Shares: []*api.Share{
			{UserID: "alice", Amount: amt("20")},
			{UserID: "bob", Amount: amt("5")},
		},
		GroupID: group.ID,
	})
	if created.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if created.PaidByUserID != "alice" {
		t.Errorf("payer: expected alice, got %s", created.PaidByUserID)
	}
	if created.Date == 0 {
		t.Error("expected date to default to creation time")
	}

	resp, err := c.expenses.GetExpense(context.Background(), as("bob", &api.GetExpenseRequest{ExpenseID: created.ID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	got := resp.Msg.Expense
	if got.Description != "Dinner" || got.Category != "food" || got.SplitType != "exact" {
		t.Errorf("got %+v", got)
	}
	if got.Amount != amt("25") {
		t.Errorf("amount: expected 25.00, got %s", got.Amount)
	}
	if len(got.Splits) != 2 {
		t.Fatalf("splits: expected 2, got %d", len(got.Splits))
	}
	// The payer's own share is already paid
	if !got.Splits[0].Paid || got.Splits[0].UserID != "alice" {
		t.Errorf("alice split: got %+v", got.Splits[0])
	}
	if got.Splits[1].Paid || got.Splits[1].Amount != amt("5") {
		t.Errorf("bob split: got %+v", got.Splits[1])
	}
}

func TestCreateExpense_InvalidInput(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	tests := []struct {
		name string
		req  *api.CreateExpenseRequest
	}{
		{
			name: "missing description",
			req:  &api.CreateExpenseRequest{Amount: amt("10"), Shares: equalShares("alice", "bob"), GroupID: group.ID},
		},
		{
			name: "zero amount",
			req:  &api.CreateExpenseRequest{Description: "x", Shares: equalShares("alice", "bob"), GroupID: group.ID},
		},
		{
			name: "participant outside the group",
			req:  &api.CreateExpenseRequest{Description: "x", Amount: amt("10"), Shares: equalShares("alice", "zoe"), GroupID: group.ID},
		},
		{
			name: "payer outside the group",
			req: &api.CreateExpenseRequest{
				Description:  "x",
				Amount:       amt("10"),
				PaidByUserID: "zoe",
				Shares:       equalShares("alice", "bob"),
				GroupID:      group.ID,
			},
		},
		{
			name: "exact split off by more than a cent",
			req: &api.CreateExpenseRequest{
				Description: "x",
				Amount:      amt("10"),
				SplitType:   "exact",
				Shares:      []*api.Share{{UserID: "alice", Amount: amt("3")}, {UserID: "bob", Amount: amt("3")}},
				GroupID:     group.ID,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.expenses.CreateExpense(context.Background(), as("alice", tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestCreateExpense_Permissions(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	// Not a member of the group
	_, err := c.expenses.CreateExpense(context.Background(), as("mallory", &api.CreateExpenseRequest{
		Description: "x",
		Amount:      amt("10"),
		Shares:      equalShares("alice", "bob"),
		GroupID:     group.ID,
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	// Personal expense the caller takes no part in
	_, err = c.expenses.CreateExpense(context.Background(), as("alice", &api.CreateExpenseRequest{
		Description:  "x",
		Amount:       amt("10"),
		PaidByUserID: "bob",
		Shares:       equalShares("bob", "charlie"),
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description: "x",
		Amount:      amt("10"),
		Shares:      equalShares("alice"),
	}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetExpense_Visibility(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	personal := createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Coffee",
		Amount:      amt("8"),
		Shares:      equalShares("alice", "bob"),
	})

	if _, err := c.expenses.GetExpense(context.Background(), as("bob", &api.GetExpenseRequest{ExpenseID: personal.ID})); err != nil {
		t.Errorf("participant could not read the expense: %v", err)
	}

	_, err := c.expenses.GetExpense(context.Background(), as("charlie", &api.GetExpenseRequest{ExpenseID: personal.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.expenses.GetExpense(context.Background(), as("alice", &api.GetExpenseRequest{ExpenseID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListGroupExpensesAndSettlements(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Older", Amount: amt("10"), Date: 1700000000, Shares: equalShares("alice", "bob"), GroupID: group.ID,
	})
	createExpense(t, c, "bob", &api.CreateExpenseRequest{
		Description: "Newer", Amount: amt("12"), Date: 1700500000, Shares: equalShares("alice", "bob"), GroupID: group.ID,
	})
	// Personal expenses are not listed for the group
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Personal", Amount: amt("4"), Shares: equalShares("alice", "bob"),
	})
	createSettlement(t, c, "bob", &api.CreateSettlementRequest{
		Amount: amt("5"), ReceivedByUserID: "alice", GroupID: group.ID,
	})

	expResp, err := c.expenses.ListGroupExpenses(context.Background(), as("alice", &api.ListGroupExpensesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("ListGroupExpenses failed: %v", err)
	}
	if len(expResp.Msg.Expenses) != 2 {
		t.Fatalf("expenses: expected 2, got %d", len(expResp.Msg.Expenses))
	}
	if expResp.Msg.Expenses[0].Description != "Newer" {
		t.Errorf("expected newest first, got %s", expResp.Msg.Expenses[0].Description)
	}

	setResp, err := c.expenses.ListGroupSettlements(context.Background(), as("bob", &api.ListGroupSettlementsRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("ListGroupSettlements failed: %v", err)
	}
	if len(setResp.Msg.Settlements) != 1 {
		t.Fatalf("settlements: expected 1, got %d", len(setResp.Msg.Settlements))
	}
	if s := setResp.Msg.Settlements[0]; s.PaidByUserID != "bob" || s.ReceivedByUserID != "alice" || s.Amount != amt("5") {
		t.Errorf("got %+v", s)
	}

	_, err = c.expenses.ListGroupExpenses(context.Background(), as("mallory", &api.ListGroupExpensesRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestDeleteExpense(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	expense := createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Tickets",
		Amount:      amt("40"),
		Shares:      equalShares("alice", "bob"),
	})

	// Bob takes part but neither created nor paid
	_, err := c.expenses.DeleteExpense(context.Background(), as("bob", &api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := c.expenses.DeleteExpense(context.Background(), as("alice", &api.DeleteExpenseRequest{ExpenseID: expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	_, err = c.expenses.GetExpense(context.Background(), as("alice", &api.GetExpenseRequest{ExpenseID: expense.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.expenses.DeleteExpense(context.Background(), as("alice", &api.DeleteExpenseRequest{ExpenseID: expense.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestCreateSettlement_InvalidInput(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	tests := []struct {
		name string
		req  *api.CreateSettlementRequest
		code connect.Code
	}{
		{
			name: "zero amount",
			req:  &api.CreateSettlementRequest{ReceivedByUserID: "bob"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "paying yourself",
			req:  &api.CreateSettlementRequest{Amount: amt("5"), ReceivedByUserID: "alice"},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "receiver outside the group",
			req:  &api.CreateSettlementRequest{Amount: amt("5"), ReceivedByUserID: "zoe", GroupID: group.ID},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "caller is not a party",
			req:  &api.CreateSettlementRequest{Amount: amt("5"), PaidByUserID: "bob", ReceivedByUserID: "charlie"},
			code: connect.CodePermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.expenses.CreateSettlement(context.Background(), as("alice", tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestDeleteSettlement(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	settlement := createSettlement(t, c, "alice", &api.CreateSettlementRequest{
		Amount:           amt("15"),
		PaidByUserID:     "bob",
		ReceivedByUserID: "alice",
		Note:             "cash",
	})
	if settlement.CreatedBy != "alice" || settlement.Note != "cash" {
		t.Errorf("got %+v", settlement)
	}

	// Only the creator may delete, even the payer cannot
	_, err := c.expenses.DeleteSettlement(context.Background(), as("bob", &api.DeleteSettlementRequest{SettlementID: settlement.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := c.expenses.DeleteSettlement(context.Background(), as("alice", &api.DeleteSettlementRequest{SettlementID: settlement.ID})); err != nil {
		t.Fatalf("DeleteSettlement failed: %v", err)
	}

	_, err = c.expenses.DeleteSettlement(context.Background(), as("alice", &api.DeleteSettlementRequest{SettlementID: settlement.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

// seedPersonal records personal expenses between alice, bob and charlie:
//
//	alice pays 60 split three ways (20 each)
//	bob pays 10 split with alice (5 each)
//	bob pays alice 5
//
// plus a group expense that personal views must ignore.
func seedPersonal(t *testing.T, c *testClients) {
	t.Helper()

	syncUsers(t, c, "alice", "bob", "charlie")
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Concert", Amount: amt("60"), Date: 1700000000, Shares: equalShares("alice", "bob", "charlie"),
	})
	createExpense(t, c, "bob", &api.CreateExpenseRequest{
		Description: "Snacks", Amount: amt("10"), Date: 1700100000, Shares: equalShares("alice", "bob"),
	})
	createSettlement(t, c, "bob", &api.CreateSettlementRequest{
		Amount: amt("5"), ReceivedByUserID: "alice", Date: 1700200000,
	})

	group := createGroup(t, c, "alice", "bob")
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Rent", Amount: amt("100"), Shares: equalShares("bob"), GroupID: group.ID,
	})
}

func TestGetPersonBalance(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	seedPersonal(t, c)

	resp, err := c.expenses.GetPersonBalance(context.Background(), as("alice", &api.GetPersonBalanceRequest{UserID: "bob"}))
	if err != nil {
		t.Fatalf("GetPersonBalance failed: %v", err)
	}
	// bob owes 20 - 5 settled, alice owes 5: net 10 to alice
	if resp.Msg.Balance != amt("10") {
		t.Errorf("balance: expected 10.00, got %s", resp.Msg.Balance)
	}
	if resp.Msg.User.ID != "bob" || resp.Msg.User.Name != "Bob" {
		t.Errorf("user: got %+v", resp.Msg.User)
	}
	if len(resp.Msg.Expenses) != 2 {
		t.Errorf("expenses: expected 2, got %d", len(resp.Msg.Expenses))
	}
	if len(resp.Msg.Settlements) != 1 {
		t.Errorf("settlements: expected 1, got %d", len(resp.Msg.Settlements))
	}

	// Same relationship seen from the other side
	resp, err = c.expenses.GetPersonBalance(context.Background(), as("bob", &api.GetPersonBalanceRequest{UserID: "alice"}))
	if err != nil {
		t.Fatalf("GetPersonBalance failed: %v", err)
	}
	if resp.Msg.Balance != amt("-10") {
		t.Errorf("balance: expected -10.00, got %s", resp.Msg.Balance)
	}

	// Charlie only shares the concert with bob, where alice paid
	resp, err = c.expenses.GetPersonBalance(context.Background(), as("charlie", &api.GetPersonBalanceRequest{UserID: "bob"}))
	if err != nil {
		t.Fatalf("GetPersonBalance failed: %v", err)
	}
	if resp.Msg.Balance != 0 || len(resp.Msg.Expenses) != 1 {
		t.Errorf("charlie/bob: got balance %s with %d expenses", resp.Msg.Balance, len(resp.Msg.Expenses))
	}
}

func TestGetPersonBalance_InvalidInput(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.expenses.GetPersonBalance(context.Background(), as("alice", &api.GetPersonBalanceRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.expenses.GetPersonBalance(context.Background(), as("alice", &api.GetPersonBalanceRequest{UserID: "alice"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.expenses.GetPersonBalance(context.Background(), as("alice", &api.GetPersonBalanceRequest{UserID: "nobody"}))
	assertCode(t, err, connect.CodeNotFound)
}

// outstandingDebts calls GetOutstandingDebts as userID.
func outstandingDebts(t *testing.T, c *testClients, userID string) []*api.UserDebts {
	t.Helper()

	resp, err := c.expenses.GetOutstandingDebts(context.Background(), as(userID, &api.GetOutstandingDebtsRequest{}))
	if err != nil {
		t.Fatalf("GetOutstandingDebts as %s failed: %v", userID, err)
	}
	return resp.Msg.Users
}

func TestGetOutstandingDebts(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	seedPersonal(t, c)

	bob := outstandingDebts(t, c, "bob")
	if len(bob) != 1 || bob[0].UserID != "bob" {
		t.Fatalf("bob: expected only his own entry, got %+v", bob)
	}
	if len(bob[0].Debts) != 1 {
		t.Fatalf("bob debts: expected 1, got %d", len(bob[0].Debts))
	}
	// The group rent does not count here
	if bob[0].Debts[0].UserID != "alice" || bob[0].Debts[0].Amount != amt("10") {
		t.Errorf("bob debt: got %s %s", bob[0].Debts[0].UserID, bob[0].Debts[0].Amount)
	}
	if bob[0].Email != "bob@example.com" {
		t.Errorf("bob email: got %q", bob[0].Email)
	}

	charlie := outstandingDebts(t, c, "charlie")
	if len(charlie) != 1 || len(charlie[0].Debts) != 1 {
		t.Fatalf("charlie: got %+v", charlie)
	}
	if charlie[0].Debts[0].Amount != amt("20") || charlie[0].Debts[0].Since != 1700000000 {
		t.Errorf("charlie debt: got %s since %d", charlie[0].Debts[0].Amount, charlie[0].Debts[0].Since)
	}

	// alice is only owed money
	if alice := outstandingDebts(t, c, "alice"); len(alice) != 0 {
		t.Errorf("alice: expected no entry, got %+v", alice)
	}
}

func TestGetOutstandingDebts_HidesOtherUsers(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	seedPersonal(t, c)

	for _, caller := range []string{"mallory", "alice"} {
		for _, entry := range outstandingDebts(t, c, caller) {
			if entry.UserID != caller {
				t.Errorf("%s received the debts of %s (%s)", caller, entry.UserID, entry.Email)
			}
		}
	}
}

func TestGetOutstandingDebts_Empty(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.expenses.GetOutstandingDebts(context.Background(), as("alice", &api.GetOutstandingDebtsRequest{}))
	if err != nil {
		t.Fatalf("GetOutstandingDebts failed: %v", err)
	}
	if len(resp.Msg.Users) != 0 {
		t.Errorf("expected no debtors, got %d", len(resp.Msg.Users))
	}
}
