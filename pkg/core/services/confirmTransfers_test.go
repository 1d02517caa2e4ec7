package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

func TestConfirmTransfers_SavesPendingEvents(t *testing.T) {
	store := &mockKitStore{}
	suggestions := []kitplan.KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, FromStoreID: "store-1", ToStoreID: "store-2", TransferDate: "2025-11-06", Reason: "Performance at Shinjuku on 11/10"},
		{ScenarioID: "beta", KitNumber: 2, FromStoreID: "store-2", ToStoreID: "store-1", TransferDate: "2025-11-10", Reason: "Performance at Shibuya on 11/11"},
	}

	events, err := ConfirmTransfers(context.Background(), store, zap.NewNop(), suggestions)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, events, store.insertedEvents)
	assert.NotEqual(t, events[0].ID, events[1].ID)

	for i, event := range events {
		_, err := uuid.Parse(event.ID)
		assert.NoError(t, err)
		assert.Equal(t, db.TransferStatusPending, event.Status)
		assert.Equal(t, suggestions[i].ScenarioID, event.ScenarioID)
		assert.Equal(t, suggestions[i].KitNumber, event.KitNumber)
		assert.Equal(t, suggestions[i].FromStoreID, event.FromStoreID)
		assert.Equal(t, suggestions[i].ToStoreID, event.ToStoreID)
		assert.Equal(t, suggestions[i].TransferDate, event.TransferDate)
		assert.Equal(t, suggestions[i].Reason, event.Notes)
	}
}

func TestConfirmTransfers_NothingToConfirm(t *testing.T) {
	store := &mockKitStore{insertEventsErr: errors.New("should not be called")}

	events, err := ConfirmTransfers(context.Background(), store, zap.NewNop(), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestConfirmTransfers_InsertError(t *testing.T) {
	store := &mockKitStore{insertEventsErr: errors.New("unique violation")}

	_, err := ConfirmTransfers(context.Background(), store, zap.NewNop(), []kitplan.KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, TransferDate: "2025-11-06"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save transfer events")
}
