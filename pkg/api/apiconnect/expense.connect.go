package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "splitledger.v1.ExpenseService"

const (
	ExpenseServiceCalculateSplitProcedure       = "/splitledger.v1.ExpenseService/CalculateSplit"
	ExpenseServiceCreateExpenseProcedure        = "/splitledger.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure           = "/splitledger.v1.ExpenseService/GetExpense"
	ExpenseServiceListGroupExpensesProcedure    = "/splitledger.v1.ExpenseService/ListGroupExpenses"
	ExpenseServiceDeleteExpenseProcedure        = "/splitledger.v1.ExpenseService/DeleteExpense"
	ExpenseServiceCreateSettlementProcedure     = "/splitledger.v1.ExpenseService/CreateSettlement"
	ExpenseServiceListGroupSettlementsProcedure = "/splitledger.v1.ExpenseService/ListGroupSettlements"
	ExpenseServiceDeleteSettlementProcedure     = "/splitledger.v1.ExpenseService/DeleteSettlement"
	ExpenseServiceGetPersonBalanceProcedure     = "/splitledger.v1.ExpenseService/GetPersonBalance"
	ExpenseServiceGetOutstandingDebtsProcedure  = "/splitledger.v1.ExpenseService/GetOutstandingDebts"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error)
	ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error)
	DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error)
	GetPersonBalance(context.Context, *connect.Request[api.GetPersonBalanceRequest]) (*connect.Response[api.GetPersonBalanceResponse], error)
	GetOutstandingDebts(context.Context, *connect.Request[api.GetOutstandingDebtsRequest]) (*connect.Response[api.GetOutstandingDebtsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	calculateSplit := connect.NewUnaryHandler(ExpenseServiceCalculateSplitProcedure, svc.CalculateSplit, opts...)
	createExpense := connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	getExpense := connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...)
	listGroupExpenses := connect.NewUnaryHandler(ExpenseServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...)
	deleteExpense := connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	createSettlement := connect.NewUnaryHandler(ExpenseServiceCreateSettlementProcedure, svc.CreateSettlement, opts...)
	listGroupSettlements := connect.NewUnaryHandler(ExpenseServiceListGroupSettlementsProcedure, svc.ListGroupSettlements, opts...)
	deleteSettlement := connect.NewUnaryHandler(ExpenseServiceDeleteSettlementProcedure, svc.DeleteSettlement, opts...)
	getPersonBalance := connect.NewUnaryHandler(ExpenseServiceGetPersonBalanceProcedure, svc.GetPersonBalance, opts...)
	getOutstandingDebts := connect.NewUnaryHandler(ExpenseServiceGetOutstandingDebtsProcedure, svc.GetOutstandingDebts, opts...)
	return "/" + ExpenseServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceCalculateSplitProcedure:
			calculateSplit.ServeHTTP(w, r)
		case ExpenseServiceCreateExpenseProcedure:
			createExpense.ServeHTTP(w, r)
		case ExpenseServiceGetExpenseProcedure:
			getExpense.ServeHTTP(w, r)
		case ExpenseServiceListGroupExpensesProcedure:
			listGroupExpenses.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			deleteExpense.ServeHTTP(w, r)
		case ExpenseServiceCreateSettlementProcedure:
			createSettlement.ServeHTTP(w, r)
		case ExpenseServiceListGroupSettlementsProcedure:
			listGroupSettlements.ServeHTTP(w, r)
		case ExpenseServiceDeleteSettlementProcedure:
			deleteSettlement.ServeHTTP(w, r)
		case ExpenseServiceGetPersonBalanceProcedure:
			getPersonBalance.ServeHTTP(w, r)
		case ExpenseServiceGetOutstandingDebtsProcedure:
			getOutstandingDebts.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ExpenseServiceClient is a client for ExpenseService.
type ExpenseServiceClient struct {
	calculateSplit       *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	createExpense        *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense           *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listGroupExpenses    *connect.Client[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse]
	deleteExpense        *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	createSettlement     *connect.Client[api.CreateSettlementRequest, api.CreateSettlementResponse]
	listGroupSettlements *connect.Client[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse]
	deleteSettlement     *connect.Client[api.DeleteSettlementRequest, api.DeleteSettlementResponse]
	getPersonBalance     *connect.Client[api.GetPersonBalanceRequest, api.GetPersonBalanceResponse]
	getOutstandingDebts  *connect.Client[api.GetOutstandingDebtsRequest, api.GetOutstandingDebtsResponse]
}

// NewExpenseServiceClient constructs a client for the service at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ExpenseServiceClient{
		calculateSplit:       connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](httpClient, baseURL+ExpenseServiceCalculateSplitProcedure, opts...),
		createExpense:        connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:           connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listGroupExpenses:    connect.NewClient[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse](httpClient, baseURL+ExpenseServiceListGroupExpensesProcedure, opts...),
		deleteExpense:        connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		createSettlement:     connect.NewClient[api.CreateSettlementRequest, api.CreateSettlementResponse](httpClient, baseURL+ExpenseServiceCreateSettlementProcedure, opts...),
		listGroupSettlements: connect.NewClient[api.ListGroupSettlementsRequest, api.ListGroupSettlementsResponse](httpClient, baseURL+ExpenseServiceListGroupSettlementsProcedure, opts...),
		deleteSettlement:     connect.NewClient[api.DeleteSettlementRequest, api.DeleteSettlementResponse](httpClient, baseURL+ExpenseServiceDeleteSettlementProcedure, opts...),
		getPersonBalance:     connect.NewClient[api.GetPersonBalanceRequest, api.GetPersonBalanceResponse](httpClient, baseURL+ExpenseServiceGetPersonBalanceProcedure, opts...),
		getOutstandingDebts:  connect.NewClient[api.GetOutstandingDebtsRequest, api.GetOutstandingDebtsResponse](httpClient, baseURL+ExpenseServiceGetOutstandingDebtsProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) CreateSettlement(ctx context.Context, req *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return c.createSettlement.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListGroupSettlements(ctx context.Context, req *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	return c.listGroupSettlements.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return c.deleteSettlement.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetPersonBalance(ctx context.Context, req *connect.Request[api.GetPersonBalanceRequest]) (*connect.Response[api.GetPersonBalanceResponse], error) {
	return c.getPersonBalance.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetOutstandingDebts(ctx context.Context, req *connect.Request[api.GetOutstandingDebtsRequest]) (*connect.Response[api.GetOutstandingDebtsResponse], error) {
	return c.getOutstandingDebts.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.CalculateSplit is not implemented"))
}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.CreateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.GetExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListGroupExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.DeleteExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) CreateSettlement(context.Context, *connect.Request[api.CreateSettlementRequest]) (*connect.Response[api.CreateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.CreateSettlement is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListGroupSettlements(context.Context, *connect.Request[api.ListGroupSettlementsRequest]) (*connect.Response[api.ListGroupSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListGroupSettlements is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteSettlement(context.Context, *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.DeleteSettlement is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetPersonBalance(context.Context, *connect.Request[api.GetPersonBalanceRequest]) (*connect.Response[api.GetPersonBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.GetPersonBalance is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetOutstandingDebts(context.Context, *connect.Request[api.GetOutstandingDebtsRequest]) (*connect.Response[api.GetOutstandingDebtsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.GetOutstandingDebts is not implemented"))
}
