package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor sets the identity named by the X-Test-User header.
// Requests without the header stay unauthenticated.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID := req.Header().Get(testUserHeader); userID != "" {
				ctx = middleware.WithIdentity(ctx, userID, userID+"@example.com", strings.ToUpper(userID[:1])+userID[1:])
			}
			return next(ctx, req)
		}
	}
}

type testClients struct {
	users    *apiconnect.UserServiceClient
	groups   *apiconnect.GroupServiceClient
	expenses *apiconnect.ExpenseServiceClient
}

// setupTestServer creates a test server over a temporary SQLite database
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	// Create services and handlers with test auth interceptor
	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	userPath, userHandler := apiconnect.NewUserServiceHandler(NewUserService(store), authInterceptor)
	groupPath, groupHandler := apiconnect.NewGroupServiceHandler(NewGroupService(store), authInterceptor)
	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(NewExpenseService(store), authInterceptor)

	mux := http.NewServeMux()
	mux.Handle(userPath, userHandler)
	mux.Handle(groupPath, groupHandler)
	mux.Handle(expensePath, expenseHandler)

	server := httptest.NewServer(mux)

	clients := &testClients{
		users:    apiconnect.NewUserServiceClient(http.DefaultClient, server.URL),
		groups:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses: apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}

	return clients, cleanup
}

// as builds a request sent on behalf of userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func syncUsers(t *testing.T, c *testClients, userIDs ...string) {
	t.Helper()
	for _, id := range userIDs {
		if _, err := c.users.SyncUser(context.Background(), as(id, &api.SyncUserRequest{})); err != nil {
			t.Fatalf("SyncUser(%s) failed: %v", id, err)
		}
	}
}

func createGroup(t *testing.T, c *testClients, owner string, members ...string) *api.Group {
	t.Helper()
	resp, err := c.groups.CreateGroup(context.Background(), as(owner, &api.CreateGroupRequest{
		Name:      "Trip",
		MemberIDs: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

// equalShares returns one share per user for an equal split.
func equalShares(userIDs ...string) []*api.Share {
	shares := make([]*api.Share, len(userIDs))
	for i, id := range userIDs {
		shares[i] = &api.Share{UserID: id}
	}
	return shares
}

func createExpense(t *testing.T, c *testClients, caller string, req *api.CreateExpenseRequest) *api.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), as(caller, req))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func createSettlement(t *testing.T, c *testClients, caller string, req *api.CreateSettlementRequest) *api.Settlement {
	t.Helper()
	resp, err := c.expenses.CreateSettlement(context.Background(), as(caller, req))
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}
	return resp.Msg.Settlement
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("code: expected %v, got %v (%v)", want, got, err)
	}
}

func amt(s string) money.Amount {
	return money.MustParse(s)
}
