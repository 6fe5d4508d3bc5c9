package api

// User is a person known to the system.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImageURL  string `json:"imageUrl,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// SyncUserRequest upserts the caller's profile from their token claims.
type SyncUserRequest struct {
	ImageURL string `json:"imageUrl,omitempty"`
}

type SyncUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"userId"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

type ListContactsRequest struct{}

// GroupSummary is a group as listed among the caller's contacts.
type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"memberCount"`
}

// ListContactsResponse holds the people the caller shares personal
// expenses with and the caller's groups, each sorted by name.
type ListContactsResponse struct {
	Users  []*User         `json:"users"`
	Groups []*GroupSummary `json:"groups"`
}
