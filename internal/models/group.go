package models

// Role is a member's role within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Group represents a set of users sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Trip to Goa").
	Name string

	// Description is optional free text.
	Description string

	// CreatedBy is the user ID of the group's creator, who becomes an admin.
	CreatedBy string

	// Members is the current membership list.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a user's membership in a group.
type Member struct {
	UserID   string
	Role     Role
	JoinedAt int64
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// Member returns the membership of userID.
func (g *Group) Member(userID string) (Member, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// MemberIDs returns the user IDs of all members in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
