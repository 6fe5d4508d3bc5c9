package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "splitledger.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure      = "/splitledger.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure         = "/splitledger.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure       = "/splitledger.v1.GroupService/ListGroups"
	GroupServiceAddGroupMembersProcedure  = "/splitledger.v1.GroupService/AddGroupMembers"
	GroupServiceDeleteGroupProcedure      = "/splitledger.v1.GroupService/DeleteGroup"
	GroupServiceGetGroupBalancesProcedure = "/splitledger.v1.GroupService/GetGroupBalances"
)

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	createGroup := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroup := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listGroups := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	addGroupMembers := connect.NewUnaryHandler(GroupServiceAddGroupMembersProcedure, svc.AddGroupMembers, opts...)
	deleteGroup := connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	getGroupBalances := connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroup.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroup.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroups.ServeHTTP(w, r)
		case GroupServiceAddGroupMembersProcedure:
			addGroupMembers.ServeHTTP(w, r)
		case GroupServiceDeleteGroupProcedure:
			deleteGroup.ServeHTTP(w, r)
		case GroupServiceGetGroupBalancesProcedure:
			getGroupBalances.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceClient is a client for GroupService.
type GroupServiceClient struct {
	createGroup      *connect.Client[api.CreateGroupRequest, api.CreateGroupResponse]
	getGroup         *connect.Client[api.GetGroupRequest, api.GetGroupResponse]
	listGroups       *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addGroupMembers  *connect.Client[api.AddGroupMembersRequest, api.AddGroupMembersResponse]
	deleteGroup      *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
}

// NewGroupServiceClient constructs a client for the service at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &GroupServiceClient{
		createGroup:      connect.NewClient[api.CreateGroupRequest, api.CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:         connect.NewClient[api.GetGroupRequest, api.GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:       connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addGroupMembers:  connect.NewClient[api.AddGroupMembersRequest, api.AddGroupMembersResponse](httpClient, baseURL+GroupServiceAddGroupMembersProcedure, opts...),
		deleteGroup:      connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		getGroupBalances: connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	return c.addGroupMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

// UnimplementedGroupServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroupServiceHandler struct{}

func (UnimplementedGroupServiceHandler) CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.CreateGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.GetGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.ListGroups is not implemented"))
}

func (UnimplementedGroupServiceHandler) AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.AddGroupMembers is not implemented"))
}

func (UnimplementedGroupServiceHandler) DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.DeleteGroup is not implemented"))
}

func (UnimplementedGroupServiceHandler) GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.GroupService.GetGroupBalances is not implemented"))
}
