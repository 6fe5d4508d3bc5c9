package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/money"
	"github.com/mmynk/splitledger/internal/storage"
)

var errBalances = errors.New("could not compute balances")

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, fmt.Errorf("authentication required"))
	}
	return userID, nil
}

// storageError maps a storage failure to NotFound or Internal and logs it.
func storageError(op string, err error, attrs ...any) error {
	slog.Error(op+" failed", append(attrs, "error", err)...)
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// balanceError maps an engine failure. The engine's detail is logged, not returned.
func balanceError(op string, err error, attrs ...any) error {
	slog.Error(op+" failed - calculation error", append(attrs, "error", err)...)
	if errors.Is(err, calculator.ErrInvalidScope) || errors.Is(err, calculator.ErrNonPositiveAmount) || errors.Is(err, money.ErrOutOfRange) {
		return connect.NewError(connect.CodeFailedPrecondition, errBalances)
	}
	return connect.NewError(connect.CodeInternal, errBalances)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func permissionDenied(format string, args ...any) error {
	return connect.NewError(connect.CodePermissionDenied, fmt.Errorf(format, args...))
}
