package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// UserServiceName is the fully-qualified name of the UserService service.
const UserServiceName = "splitledger.v1.UserService"

const (
	UserServiceSyncUserProcedure     = "/splitledger.v1.UserService/SyncUser"
	UserServiceGetUserProcedure      = "/splitledger.v1.UserService/GetUser"
	UserServiceListContactsProcedure = "/splitledger.v1.UserService/ListContacts"
)

// UserServiceHandler is implemented by the server side of UserService.
type UserServiceHandler interface {
	SyncUser(context.Context, *connect.Request[api.SyncUserRequest]) (*connect.Response[api.SyncUserResponse], error)
	GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error)
	ListContacts(context.Context, *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error)
}

// NewUserServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewUserServiceHandler(svc UserServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	syncUser := connect.NewUnaryHandler(UserServiceSyncUserProcedure, svc.SyncUser, opts...)
	getUser := connect.NewUnaryHandler(UserServiceGetUserProcedure, svc.GetUser, opts...)
	listContacts := connect.NewUnaryHandler(UserServiceListContactsProcedure, svc.ListContacts, opts...)
	return "/" + UserServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case UserServiceSyncUserProcedure:
			syncUser.ServeHTTP(w, r)
		case UserServiceGetUserProcedure:
			getUser.ServeHTTP(w, r)
		case UserServiceListContactsProcedure:
			listContacts.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UserServiceClient is a client for UserService.
type UserServiceClient struct {
	syncUser     *connect.Client[api.SyncUserRequest, api.SyncUserResponse]
	getUser      *connect.Client[api.GetUserRequest, api.GetUserResponse]
	listContacts *connect.Client[api.ListContactsRequest, api.ListContactsResponse]
}

// NewUserServiceClient constructs a client for the service at baseURL.
func NewUserServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *UserServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &UserServiceClient{
		syncUser:     connect.NewClient[api.SyncUserRequest, api.SyncUserResponse](httpClient, baseURL+UserServiceSyncUserProcedure, opts...),
		getUser:      connect.NewClient[api.GetUserRequest, api.GetUserResponse](httpClient, baseURL+UserServiceGetUserProcedure, opts...),
		listContacts: connect.NewClient[api.ListContactsRequest, api.ListContactsResponse](httpClient, baseURL+UserServiceListContactsProcedure, opts...),
	}
}

func (c *UserServiceClient) SyncUser(ctx context.Context, req *connect.Request[api.SyncUserRequest]) (*connect.Response[api.SyncUserResponse], error) {
	return c.syncUser.CallUnary(ctx, req)
}

func (c *UserServiceClient) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return c.getUser.CallUnary(ctx, req)
}

func (c *UserServiceClient) ListContacts(ctx context.Context, req *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	return c.listContacts.CallUnary(ctx, req)
}

// UnimplementedUserServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedUserServiceHandler struct{}

func (UnimplementedUserServiceHandler) SyncUser(context.Context, *connect.Request[api.SyncUserRequest]) (*connect.Response[api.SyncUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.SyncUser is not implemented"))
}

func (UnimplementedUserServiceHandler) GetUser(context.Context, *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.GetUser is not implemented"))
}

func (UnimplementedUserServiceHandler) ListContacts(context.Context, *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.UserService.ListContacts is not implemented"))
}
