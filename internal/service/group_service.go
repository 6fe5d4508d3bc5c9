package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. The caller becomes its admin.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberIDs),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedBy:   userID,
		Members:     []models.Member{{UserID: userID, Role: models.RoleAdmin}},
	}
	seen := map[string]bool{userID: true}
	for _, id := range req.Msg.MemberIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		group.Members = append(group.Members, models.Member{UserID: id, Role: models.RoleMember})
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storageError("CreateGroup", err)
	}

	slog.Info("Group created", "group_id", group.ID)

	return groupResponse(ctx, s.store, group, func(g *api.Group) *api.CreateGroupResponse {
		return &api.CreateGroupResponse{Group: g}
	})
}

// GetGroup retrieves a group by ID. Only members may read it.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.memberGroup(ctx, "GetGroup", req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	return groupResponse(ctx, s.store, group, func(g *api.Group) *api.GetGroupResponse {
		return &api.GetGroupResponse{Group: g}
	})
}

// ListGroups retrieves the caller's groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListGroups request received", "user_id", userID)

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, storageError("ListGroups", err, "user_id", userID)
	}

	var ids []string
	for _, g := range groups {
		ids = append(ids, g.MemberIDs()...)
	}
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storageError("ListGroups", err, "user_id", userID)
	}

	apiGroups := make([]*api.Group, len(groups))
	for i, g := range groups {
		apiGroups[i] = toAPIGroup(g, users)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: apiGroups}), nil
}

// AddGroupMembers adds users to a group. Any member may add others.
func (s *GroupService) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.AddGroupMembersResponse], error) {
	slog.Info("AddGroupMembers request received",
		"group_id", req.Msg.GroupID,
		"members_count", len(req.Msg.UserIDs),
	)

	var userIDs []string
	for _, id := range req.Msg.UserIDs {
		if id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		return nil, invalidArgument("at least one user_id required")
	}

	group, err := s.memberGroup(ctx, "AddGroupMembers", req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, userIDs); err != nil {
		return nil, storageError("AddGroupMembers", err, "group_id", group.ID)
	}

	// Fetch updated group to get the new memberships
	group, err = s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, storageError("AddGroupMembers", err, "group_id", req.Msg.GroupID)
	}

	slog.Info("Group members added", "group_id", group.ID, "members_count", len(group.Members))

	return groupResponse(ctx, s.store, group, func(g *api.Group) *api.AddGroupMembersResponse {
		return &api.AddGroupMembersResponse{Group: g}
	})
}

// DeleteGroup removes a group with its expenses and settlements. Admins only.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.memberGroup(ctx, "DeleteGroup", req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if m, _ := group.Member(middleware.GetUserID(ctx)); m.Role != models.RoleAdmin {
		return nil, permissionDenied("only a group admin can delete the group")
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		return nil, storageError("DeleteGroup", err, "group_id", group.ID)
	}

	slog.Info("Group deleted", "group_id", group.ID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// GetGroupBalances computes every member's net balance and netted debts
// from the group's expenses and settlements.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	snap, err := s.store.GroupSnapshot(ctx, groupID)
	if err != nil {
		return nil, storageError("GetGroupBalances", err, "group_id", groupID)
	}
	if !snap.Group.HasMember(userID) {
		return nil, permissionDenied("you must be a member of this group")
	}

	report, err := computeBalances(scopeGroup, groupScope(snap))
	if err != nil {
		return nil, balanceError("GetGroupBalances", err, "group_id", groupID)
	}

	balances := make([]*api.MemberBalance, len(report.Balances))
	for i, b := range report.Balances {
		balances[i] = toAPIBalance(b, snap.Users)
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"expenses_count", len(snap.Expenses),
		"settlements_count", len(snap.Settlements),
		"members_count", len(balances),
	)

	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Group:    toAPIGroup(snap.Group, snap.Users),
		Balances: balances,
	}), nil
}

// memberGroup loads a group the caller belongs to.
func (s *GroupService) memberGroup(ctx context.Context, op, groupID string) (*models.Group, error) {
	return loadMemberGroup(ctx, s.store, op, groupID)
}

// groupResponse resolves member profiles and wraps the group in a response.
func groupResponse[T any](ctx context.Context, store storage.Store, group *models.Group, wrap func(*api.Group) *T) (*connect.Response[T], error) {
	users, err := store.GetUsersByIDs(ctx, group.MemberIDs())
	if err != nil {
		return nil, storageError("GetUsersByIDs", err, "group_id", group.ID)
	}
	return connect.NewResponse(wrap(toAPIGroup(group, users))), nil
}

// loadMemberGroup loads groupID and checks the caller is a member.
func loadMemberGroup(ctx context.Context, store storage.Store, op, groupID string) (*models.Group, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if groupID == "" {
		return nil, invalidArgument("group_id required")
	}

	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storageError(op, err, "group_id", groupID)
	}
	if !group.HasMember(userID) {
		return nil, permissionDenied("you must be a member of this group")
	}
	return group, nil
}
