package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// ExpenseService implements the Connect ExpenseService
type ExpenseService struct {
	apiconnect.UnimplementedExpenseServiceHandler
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CalculateSplit previews how an amount divides among participants.
func (s *ExpenseService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	slog.Debug("CalculateSplit request received",
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"shares_count", len(req.Msg.Shares),
	)

	splits, err := buildSplits(req.Msg.Amount, calculator.SplitType(req.Msg.SplitType), req.Msg.Shares, "")
	if err != nil {
		slog.Error("CalculateSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	apiSplits := make([]*api.Split, len(splits))
	for i, sp := range splits {
		apiSplits[i] = &api.Split{UserID: sp.UserID, Amount: sp.Amount}
	}

	return connect.NewResponse(&api.CalculateSplitResponse{Splits: apiSplits}), nil
}

// CreateExpense records an expense in a group or between people directly.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"split_type", req.Msg.SplitType,
		"shares_count", len(req.Msg.Shares),
	)

	payerID := req.Msg.PaidByUserID
	if payerID == "" {
		payerID = userID
	}
	splitType := calculator.SplitType(req.Msg.SplitType)
	if splitType == "" {
		splitType = calculator.SplitEqual
	}

	splits, err := buildSplits(req.Msg.Amount, splitType, req.Msg.Shares, payerID)
	if err != nil {
		slog.Error("CreateExpense split calculation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	expense := &models.Expense{
		Description:  req.Msg.Description,
		Amount:       req.Msg.Amount,
		Category:     req.Msg.Category,
		Date:         req.Msg.Date,
		PaidByUserID: payerID,
		SplitType:    string(splitType),
		Splits:       splits,
		GroupID:      req.Msg.GroupID,
		CreatedBy:    userID,
	}

	var group *models.Group
	if expense.GroupID != "" {
		if group, err = loadMemberGroup(ctx, s.store, "CreateExpense", expense.GroupID); err != nil {
			return nil, err
		}
	} else if !expense.Involves(userID) {
		return nil, permissionDenied("you must take part in a personal expense you record")
	}

	if err := validateExpense(expense, group); err != nil {
		slog.Error("CreateExpense validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storageError("CreateExpense", err)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", expense.GroupID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// GetExpense retrieves an expense. Group expenses are visible to members,
// personal ones to their participants.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.visibleExpense(ctx, "GetExpense", req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListGroupExpenses retrieves a group's expenses, newest first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	slog.Info("ListGroupExpenses request received", "group_id", req.Msg.GroupID)

	group, err := loadMemberGroup(ctx, s.store, "ListGroupExpenses", req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, group.ID)
	if err != nil {
		return nil, storageError("ListGroupExpenses", err, "group_id", group.ID)
	}

	slog.Info("ListGroupExpenses successful", "group_id", group.ID, "count", len(expenses))

	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// DeleteExpense removes an expense. Only its creator or payer may delete it.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if req.Msg.ExpenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storageError("DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}
	if expense.CreatedBy != userID && expense.PaidByUserID != userID {
		return nil, permissionDenied("only the creator or payer can delete this expense")
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		return nil, storageError("DeleteExpense", err, "expense_id", expense.ID)
	}

	slog.Info("Expense deleted", "expense_id", expense.ID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// CreateSettlement records a payment. The caller must be one of the parties.
func (s *ExpenseService) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateSettlement request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"received_by", req.Msg.ReceivedByUserID,
	)

	settlement := &models.Settlement{
		Amount:           req.Msg.Amount,
		Note:             req.Msg.Note,
		Date:             req.Msg.Date,
		PaidByUserID:     req.Msg.PaidByUserID,
		ReceivedByUserID: req.Msg.ReceivedByUserID,
		GroupID:          req.Msg.GroupID,
		CreatedBy:        userID,
	}
	if settlement.PaidByUserID == "" {
		settlement.PaidByUserID = userID
	}
	if settlement.PaidByUserID != userID && settlement.ReceivedByUserID != userID {
		return nil, permissionDenied("you must be the payer or receiver of a settlement you record")
	}

	var group *models.Group
	if settlement.GroupID != "" {
		if group, err = loadMemberGroup(ctx, s.store, "CreateSettlement", settlement.GroupID); err != nil {
			return nil, err
		}
	}

	if err := validateSettlement(settlement, group); err != nil {
		slog.Error("CreateSettlement validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, storageError("CreateSettlement", err)
	}

	slog.Info("Settlement created", "settlement_id", settlement.ID, "group_id", settlement.GroupID)

	return connect.NewResponse(&api.CreateSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListGroupSettlements retrieves a group's settlements, newest first.
func (s *ExpenseService) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	slog.Info("ListGroupSettlements request received", "group_id", req.Msg.GroupID)

	group, err := loadMemberGroup(ctx, s.store, "ListGroupSettlements", req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		return nil, storageError("ListGroupSettlements", err, "group_id", group.ID)
	}

	return connect.NewResponse(&api.ListGroupSettlementsResponse{Settlements: toAPISettlements(settlements)}), nil
}

// DeleteSettlement removes a settlement. Only its creator may delete it.
func (s *ExpenseService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteSettlement request received", "settlement_id", req.Msg.SettlementID)

	if req.Msg.SettlementID == "" {
		return nil, invalidArgument("settlement_id required")
	}

	settlement, err := s.store.GetSettlement(ctx, req.Msg.SettlementID)
	if err != nil {
		return nil, storageError("DeleteSettlement", err, "settlement_id", req.Msg.SettlementID)
	}
	if settlement.CreatedBy != userID {
		return nil, permissionDenied("only the creator can delete this settlement")
	}

	if err := s.store.DeleteSettlement(ctx, settlement.ID); err != nil {
		return nil, storageError("DeleteSettlement", err, "settlement_id", settlement.ID)
	}

	slog.Info("Settlement deleted", "settlement_id", settlement.ID)

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// GetPersonBalance returns the caller's net position with another user
// across their personal expenses and settlements.
func (s *ExpenseService) GetPersonBalance(ctx context.Context, req *connect.Request[api.GetPersonBalanceRequest]) (*connect.Response[api.GetPersonBalanceResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	otherID := req.Msg.UserID
	slog.Info("GetPersonBalance request received", "user_id", userID, "other_user_id", otherID)

	if otherID == "" {
		return nil, invalidArgument("user_id required")
	}
	if otherID == userID {
		return nil, invalidArgument("cannot compute a balance with yourself")
	}

	snap, err := s.store.PersonalSnapshot(ctx)
	if err != nil {
		return nil, storageError("GetPersonBalance", err)
	}

	other, ok := snap.Users[otherID]
	if !ok {
		if other, err = s.store.GetUser(ctx, otherID); err != nil {
			return nil, storageError("GetPersonBalance", err, "other_user_id", otherID)
		}
	}

	scope, expenses, settlements := pairScope(snap, userID, otherID)
	report, err := computeBalances(scopePair, scope)
	if err != nil {
		return nil, balanceError("GetPersonBalance", err, "other_user_id", otherID)
	}
	balance := report.Between(userID, otherID)

	slog.Info("GetPersonBalance successful",
		"other_user_id", otherID,
		"balance", balance,
		"expenses_count", len(expenses),
		"settlements_count", len(settlements),
	)

	return connect.NewResponse(&api.GetPersonBalanceResponse{
		User:        toAPIUser(other),
		Balance:     balance,
		Expenses:    toAPIExpenses(expenses),
		Settlements: toAPISettlements(settlements),
	}), nil
}

// GetOutstandingDebts lists whom the caller owes on personal expenses and
// since when. Group expenses are not included, and other users' debts are
// never returned: the response holds at most the caller's own entry.
func (s *ExpenseService) GetOutstandingDebts(ctx context.Context, req *connect.Request[api.GetOutstandingDebtsRequest]) (*connect.Response[api.GetOutstandingDebtsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetOutstandingDebts request received")

	snap, err := s.store.PersonalSnapshot(ctx)
	if err != nil {
		return nil, storageError("GetOutstandingDebts", err)
	}

	report, err := computeBalances(scopePersonal, personalScope(snap))
	if err != nil {
		return nil, balanceError("GetOutstandingDebts", err)
	}

	users := make([]*api.UserDebts, 0, 1)
	if b, ok := report.Balance(userID); ok && len(b.Owes) > 0 {
		entry := &api.UserDebts{
			UserID: b.ID,
			Name:   b.Name,
			Debts:  toAPIDebts(b.Owes, snap.Users),
		}
		if u, ok := snap.Users[b.ID]; ok {
			entry.Email = u.Email
		}
		users = append(users, entry)
	}

	slog.Info("GetOutstandingDebts successful", "debts_count", countDebts(users))

	return connect.NewResponse(&api.GetOutstandingDebtsResponse{Users: users}), nil
}

func countDebts(users []*api.UserDebts) int {
	n := 0
	for _, u := range users {
		n += len(u.Debts)
	}
	return n
}

// visibleExpense loads an expense the caller may see.
func (s *ExpenseService) visibleExpense(ctx context.Context, op, expenseID string) (*models.Expense, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if expenseID == "" {
		return nil, invalidArgument("expense_id required")
	}

	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, storageError(op, err, "expense_id", expenseID)
	}

	if expense.GroupID != "" {
		if _, err := loadMemberGroup(ctx, s.store, op, expense.GroupID); err != nil {
			return nil, err
		}
		return expense, nil
	}
	if !expense.Involves(userID) {
		return nil, permissionDenied("you must take part in this expense")
	}
	return expense, nil
}
