// Package api defines the request and response messages of the
// splitledger RPC services. Messages travel as JSON; amounts are
// money.Amount values encoded as decimal numbers.
package api
