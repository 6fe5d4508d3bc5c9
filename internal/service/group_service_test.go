package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

func TestCreateGroup(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{
		Name:      "Roommates",
		MemberIDs: []string{"bob", "charlie", "bob", "alice"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	group := resp.Msg.Group
	if group == nil {
		t.Fatal("expected group in response")
	}
	if group.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if group.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", group.Name)
	}
	if len(group.Members) != 3 {
		t.Fatalf("members: expected 3, got %d", len(group.Members))
	}
	if group.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	for _, m := range group.Members {
		wantRole := "member"
		if m.UserID == "alice" {
			wantRole = "admin"
		}
		if m.Role != wantRole {
			t.Errorf("%s role: expected %s, got %s", m.UserID, wantRole, m.Role)
		}
	}
}

func TestCreateGroup_EmptyName(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.groups.CreateGroup(context.Background(), as("alice", &api.CreateGroupRequest{Name: "   "}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroup(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	syncUsers(t, c, "diana")
	created := createGroup(t, c, "diana", "eve")

	resp, err := c.groups.GetGroup(context.Background(), as("eve", &api.GetGroupRequest{GroupID: created.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if resp.Msg.Group.Name != "Trip" {
		t.Errorf("name: expected 'Trip', got '%s'", resp.Msg.Group.Name)
	}

	names := map[string]string{}
	for _, m := range resp.Msg.Group.Members {
		names[m.UserID] = m.Name
	}
	// Synced users carry their profile name, others show their ID
	if names["diana"] != "Diana" || names["eve"] != "eve" {
		t.Errorf("member names: got %v", names)
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.groups.GetGroup(context.Background(), as("alice", &api.GetGroupRequest{GroupID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetGroup_NonMember(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	_, err := c.groups.GetGroup(context.Background(), as("mallory", &api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestListGroups(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	createGroup(t, c, "alice", "bob")
	createGroup(t, c, "alice")

	resp, err := c.groups.ListGroups(context.Background(), as("alice", &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Errorf("alice groups: expected 2, got %d", len(resp.Msg.Groups))
	}

	resp, err = c.groups.ListGroups(context.Background(), as("bob", &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 1 {
		t.Errorf("bob groups: expected 1, got %d", len(resp.Msg.Groups))
	}
}

func TestListGroups_Empty(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.groups.ListGroups(context.Background(), as("alice", &api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(resp.Msg.Groups))
	}
}

func TestAddGroupMembers(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	resp, err := c.groups.AddGroupMembers(context.Background(), as("bob", &api.AddGroupMembersRequest{
		GroupID: group.ID,
		UserIDs: []string{"charlie", "alice"},
	}))
	if err != nil {
		t.Fatalf("AddGroupMembers failed: %v", err)
	}
	if len(resp.Msg.Group.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(resp.Msg.Group.Members))
	}

	if _, err := c.groups.GetGroup(context.Background(), as("charlie", &api.GetGroupRequest{GroupID: group.ID})); err != nil {
		t.Errorf("new member could not read the group: %v", err)
	}

	_, err = c.groups.AddGroupMembers(context.Background(), as("mallory", &api.AddGroupMembersRequest{
		GroupID: group.ID,
		UserIDs: []string{"mallory"},
	}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.groups.AddGroupMembers(context.Background(), as("alice", &api.AddGroupMembersRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestDeleteGroup(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Dinner",
		Amount:      amt("20"),
		Shares:      equalShares("alice", "bob"),
		GroupID:     group.ID,
	})

	// Only admins can delete
	_, err := c.groups.DeleteGroup(context.Background(), as("bob", &api.DeleteGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	if _, err := c.groups.DeleteGroup(context.Background(), as("alice", &api.DeleteGroupRequest{GroupID: group.ID})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = c.groups.GetGroup(context.Background(), as("alice", &api.GetGroupRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteGroup_NotFound(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.groups.DeleteGroup(context.Background(), as("alice", &api.DeleteGroupRequest{GroupID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestGetGroupBalances(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	syncUsers(t, c, "alice", "bob", "charlie")
	group := createGroup(t, c, "alice", "bob", "charlie")

	// Alice pays 90 for everyone; each owes 30
	createExpense(t, c, "alice", &api.CreateExpenseRequest{
		Description: "Groceries",
		Amount:      amt("90"),
		Date:        1700000000,
		Shares:      equalShares("alice", "bob", "charlie"),
		GroupID:     group.ID,
	})
	// Bob pays 30 for himself and Alice
	createExpense(t, c, "bob", &api.CreateExpenseRequest{
		Description: "Taxi",
		Amount:      amt("30"),
		Date:        1700100000,
		Shares:      equalShares("alice", "bob"),
		GroupID:     group.ID,
	})
	// Charlie pays Alice back 10
	createSettlement(t, c, "charlie", &api.CreateSettlementRequest{
		Amount:           amt("10"),
		ReceivedByUserID: "alice",
		GroupID:          group.ID,
	})

	resp, err := c.groups.GetGroupBalances(context.Background(), as("bob", &api.GetGroupBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	balances := map[string]*api.MemberBalance{}
	for _, b := range resp.Msg.Balances {
		balances[b.UserID] = b
	}
	if len(balances) != 3 {
		t.Fatalf("balances: expected 3, got %d", len(balances))
	}

	want := map[string]string{"alice": "35.00", "bob": "-15.00", "charlie": "-20.00"}
	for id, total := range want {
		if got := balances[id].TotalBalance.String(); got != total {
			t.Errorf("%s total: expected %s, got %s", id, total, got)
		}
	}

	alice := balances["alice"]
	if alice.Name != "Alice" || alice.Role != "admin" {
		t.Errorf("alice: got name %q role %q", alice.Name, alice.Role)
	}
	if len(alice.Owes) != 0 {
		t.Errorf("alice owes: expected none, got %d", len(alice.Owes))
	}
	if len(alice.OwedBy) != 2 {
		t.Fatalf("alice owedBy: expected 2, got %d", len(alice.OwedBy))
	}
	// Largest debt first
	if alice.OwedBy[0].UserID != "charlie" || alice.OwedBy[0].Amount != amt("20") {
		t.Errorf("first owedBy: got %s %s", alice.OwedBy[0].UserID, alice.OwedBy[0].Amount)
	}
	if alice.OwedBy[1].UserID != "bob" || alice.OwedBy[1].Amount != amt("15") {
		t.Errorf("second owedBy: got %s %s", alice.OwedBy[1].UserID, alice.OwedBy[1].Amount)
	}
	if alice.OwedBy[0].Since != 1700000000 {
		t.Errorf("charlie since: expected 1700000000, got %d", alice.OwedBy[0].Since)
	}

	bob := balances["bob"]
	if len(bob.Owes) != 1 || bob.Owes[0].UserID != "alice" || bob.Owes[0].Name != "Alice" {
		t.Errorf("bob owes: got %+v", bob.Owes)
	}
	if len(bob.OwedBy) != 0 {
		t.Errorf("bob owedBy: expected none, got %d", len(bob.OwedBy))
	}
}

func TestGetGroupBalances_NoExpenses(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	resp, err := c.groups.GetGroupBalances(context.Background(), as("alice", &api.GetGroupBalancesRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	if len(resp.Msg.Balances) != 2 {
		t.Fatalf("balances: expected 2, got %d", len(resp.Msg.Balances))
	}
	for _, b := range resp.Msg.Balances {
		if b.TotalBalance != 0 || len(b.Owes) != 0 || len(b.OwedBy) != 0 {
			t.Errorf("%s: expected a zero balance, got %+v", b.UserID, b)
		}
	}
}

func TestGetGroupBalances_Errors(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	group := createGroup(t, c, "alice", "bob")

	_, err := c.groups.GetGroupBalances(context.Background(), as("mallory", &api.GetGroupBalancesRequest{GroupID: group.ID}))
	assertCode(t, err, connect.CodePermissionDenied)

	_, err = c.groups.GetGroupBalances(context.Background(), as("alice", &api.GetGroupBalancesRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.groups.GetGroupBalances(context.Background(), as("alice", &api.GetGroupBalancesRequest{GroupID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)
}
