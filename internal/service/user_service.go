package service

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api"
	"github.com/mmynk/splitledger/pkg/api/apiconnect"
)

// UserService implements the Connect UserService.
type UserService struct {
	apiconnect.UnimplementedUserServiceHandler
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// SyncUser creates or refreshes the caller's profile from their token claims.
func (s *UserService) SyncUser(ctx context.Context, req *connect.Request[api.SyncUserRequest]) (*connect.Response[api.SyncUserResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("SyncUser request received", "user_id", userID)

	email := middleware.GetEmail(ctx)
	if email == "" {
		return nil, invalidArgument("token carries no email")
	}
	name := middleware.GetName(ctx)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user := models.NewUser(userID, name, email)
	user.ImageURL = req.Msg.ImageURL
	if err := s.store.UpsertUser(ctx, user); err != nil {
		return nil, storageError("SyncUser", err, "user_id", userID)
	}

	slog.Info("User synced", "user_id", userID)

	return connect.NewResponse(&api.SyncUserResponse{User: toAPIUser(user)}), nil
}

// GetUser retrieves a user by ID, or the caller when no ID is given.
func (s *UserService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.GetUserResponse], error) {
	callerID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	userID := req.Msg.UserID
	if userID == "" {
		userID = callerID
	}
	slog.Info("GetUser request received", "user_id", userID)

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storageError("GetUser", err, "user_id", userID)
	}

	return connect.NewResponse(&api.GetUserResponse{User: toAPIUser(user)}), nil
}

// ListContacts returns the users the caller shares personal expenses with
// and the caller's groups. Both lists are sorted by name. Participants who
// never synced a profile are left out.
func (s *UserService) ListContacts(ctx context.Context, req *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListContacts request received")

	snap, err := s.store.PersonalSnapshot(ctx)
	if err != nil {
		return nil, storageError("ListContacts", err)
	}

	seen := map[string]bool{userID: true}
	users := make([]*api.User, 0)
	for _, e := range snap.Expenses {
		ids := e.ParticipantIDs()
		if !slices.Contains(ids, userID) {
			continue
		}
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if u, ok := snap.Users[id]; ok {
				users = append(users, toAPIUser(u))
			}
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})

	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		return nil, storageError("ListContacts", err)
	}
	summaries := make([]*api.GroupSummary, len(groups))
	for i, g := range groups {
		summaries[i] = &api.GroupSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			MemberCount: len(g.Members),
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].ID < summaries[j].ID
	})

	slog.Info("ListContacts successful", "users_count", len(users), "groups_count", len(summaries))

	return connect.NewResponse(&api.ListContactsResponse{Users: users, Groups: summaries}), nil
}
