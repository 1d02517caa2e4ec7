package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// ConfirmTransfersStore defines the database operations needed for confirming transfers
type ConfirmTransfersStore interface {
	InsertTransferEvents(ctx context.Context, events []db.KitTransferEvent) error
}

// ConfirmTransfers records suggestions as pending transfer events, keeping the reason as notes
func ConfirmTransfers(
	ctx context.Context,
	database ConfirmTransfersStore,
	logger *zap.Logger,
	suggestions []kitplan.KitTransferSuggestion,
) ([]db.KitTransferEvent, error) {
	if len(suggestions) == 0 {
		logger.Info("No transfers to confirm")
		return nil, nil
	}

	events := make([]db.KitTransferEvent, 0, len(suggestions))
	for _, s := range suggestions {
		events = append(events, db.KitTransferEvent{
			ID:           uuid.New().String(),
			ScenarioID:   s.ScenarioID,
			KitNumber:    s.KitNumber,
			FromStoreID:  s.FromStoreID,
			ToStoreID:    s.ToStoreID,
			TransferDate: s.TransferDate,
			Status:       db.TransferStatusPending,
			Notes:        s.Reason,
		})
	}

	if err := database.InsertTransferEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to save transfer events: %w", err)
	}

	logger.Info("Confirmed kit transfers", zap.Int("count", len(events)))
	return events, nil
}
