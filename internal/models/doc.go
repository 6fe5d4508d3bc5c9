// Package models defines the persisted domain records for splitledger.
//
// # Records
//
//   - User: a person known to the system, identified by the auth provider's subject
//   - Group: a named set of members sharing expenses
//   - Member: a user's membership in a group, with a role
//   - Expense: an amount paid by one user and divided into splits
//   - Split: one participant's share of an expense
//   - Settlement: a direct payment between two users
//
// Expenses and settlements without a GroupID are personal: they belong to
// the two-party relationship between the users involved.
//
// Relationships use ID strings rather than pointers. Amounts are
// money.Amount (minor units); timestamps are Unix seconds.
package models
