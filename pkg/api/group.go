package api

import "github.com/mmynk/splitledger/internal/money"

// Group is a set of users sharing expenses.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	Members     []*Member `json:"members"`
	CreatedAt   int64     `json:"createdAt"`
}

// Member is a group member with profile details.
type Member struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Role     string `json:"role"`
}

// Debt is one netted obligation; UserID is the counterparty.
type Debt struct {
	UserID string       `json:"userId"`
	Name   string       `json:"name,omitempty"`
	Amount money.Amount `json:"amount"`
	Since  int64        `json:"since,omitempty"`
}

// MemberBalance is a member's net position in a group.
// TotalBalance is positive when the member is owed money.
type MemberBalance struct {
	Member
	TotalBalance money.Amount `json:"totalBalance"`
	Owes         []*Debt      `json:"owes"`
	OwedBy       []*Debt      `json:"owedBy"`
}

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MemberIDs   []string `json:"memberIds"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type AddGroupMembersRequest struct {
	GroupID string   `json:"groupId"`
	UserIDs []string `json:"userIds"`
}

type AddGroupMembersResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	Group    *Group           `json:"group"`
	Balances []*MemberBalance `json:"balances"`
}
