package sqlite

import (
	"context"
	"database/sql"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// GroupSnapshot reads a group and everything its balances depend on in one transaction.
func (s *SQLiteStore) GroupSnapshot(ctx context.Context, groupID string) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		group, err := getGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		snap.Group = group

		if snap.Expenses, err = listExpenses(ctx, tx, "e.group_id = ?", groupID); err != nil {
			return err
		}
		if snap.Settlements, err = listSettlements(ctx, tx, "group_id = ?", groupID); err != nil {
			return err
		}

		snap.Users, err = getUsersByIDs(ctx, tx, group.MemberIDs())
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// PersonalSnapshot reads every expense and settlement without a group, and
// the users they reference, in one transaction.
func (s *SQLiteStore) PersonalSnapshot(ctx context.Context) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if snap.Expenses, err = listExpenses(ctx, tx, "e.group_id IS NULL"); err != nil {
			return err
		}
		if snap.Settlements, err = listSettlements(ctx, tx, "group_id IS NULL"); err != nil {
			return err
		}

		snap.Users, err = getUsersByIDs(ctx, tx, referencedUserIDs(snap.Expenses, snap.Settlements))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func referencedUserIDs(expenses []*models.Expense, settlements []*models.Settlement) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, e := range expenses {
		for _, id := range e.ParticipantIDs() {
			add(id)
		}
	}
	for _, st := range settlements {
		add(st.PaidByUserID)
		add(st.ReceivedByUserID)
	}
	return ids
}
