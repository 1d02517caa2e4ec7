package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/db"
)

// TransferStatusStore defines the database operations needed for changing a transfer's status
type TransferStatusStore interface {
	GetTransferEvent(ctx context.Context, id string) (*db.KitTransferEvent, error)
	UpdateTransferStatus(ctx context.Context, id, status string) error
	SetKitLocation(ctx context.Context, scenarioID string, kitNumber int, storeID string) error
}

// UpdateTransferStatus sets a transfer event's status. Completing a transfer moves
// the kit's recorded location to the destination store.
func UpdateTransferStatus(
	ctx context.Context,
	database TransferStatusStore,
	logger *zap.Logger,
	eventID string,
	status string,
) (*db.KitTransferEvent, error) {
	if !db.IsValidTransferStatus(status) {
		return nil, fmt.Errorf("%w %q: must be one of pending, completed, cancelled", ErrInvalidStatus, status)
	}

	event, err := database.GetTransferEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer event: %w", err)
	}

	if event.Status == status {
		logger.Debug("Transfer status unchanged", zap.String("id", eventID), zap.String("status", status))
		return event, nil
	}

	if err := database.UpdateTransferStatus(ctx, eventID, status); err != nil {
		return nil, fmt.Errorf("failed to update transfer status: %w", err)
	}

	if status == db.TransferStatusCompleted {
		if err := database.SetKitLocation(ctx, event.ScenarioID, event.KitNumber, event.ToStoreID); err != nil {
			return nil, fmt.Errorf("failed to move kit to destination: %w", err)
		}
		logger.Info("Kit moved",
			zap.String("scenario_id", event.ScenarioID),
			zap.Int("kit_number", event.KitNumber),
			zap.String("to_store_id", event.ToStoreID))
	}

	logger.Info("Transfer status updated",
		zap.String("id", eventID),
		zap.String("from", event.Status),
		zap.String("to", status))

	updated := *event
	updated.Status = status
	return &updated, nil
}

// CancelPendingTransfersStore defines the database operations needed for bulk cancellation
type CancelPendingTransfersStore interface {
	CancelPendingTransfers(ctx context.Context, start, end string) (int64, error)
}

// CancelPendingTransfers cancels every pending transfer dated from start to end inclusive
func CancelPendingTransfers(
	ctx context.Context,
	database CancelPendingTransfersStore,
	logger *zap.Logger,
	start, end string,
) (int64, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return 0, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return 0, err
	}
	if endDate.Before(startDate) {
		return 0, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDate, end, start)
	}

	count, err := database.CancelPendingTransfers(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel pending transfers: %w", err)
	}

	logger.Info("Cancelled pending transfers",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int64("count", count))

	return count, nil
}
