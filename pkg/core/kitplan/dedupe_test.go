package kitplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicateTransfers_LastWinsAtFirstPosition(t *testing.T) {
	suggestions := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, FromStoreID: "a", ToStoreID: "b", TransferDate: "2025-11-13"},
		{ScenarioID: "beta", KitNumber: 1, FromStoreID: "a", ToStoreID: "c", TransferDate: "2025-11-13"},
		{ScenarioID: "alpha", KitNumber: 1, FromStoreID: "b", ToStoreID: "c", TransferDate: "2025-11-13"},
	}

	result := DeduplicateTransfers(suggestions)

	require.Len(t, result, 2)
	assert.Equal(t, "alpha", result[0].ScenarioID)
	assert.Equal(t, "b", result[0].FromStoreID)
	assert.Equal(t, "c", result[0].ToStoreID)
	assert.Equal(t, "beta", result[1].ScenarioID)
}

func TestDeduplicateTransfers_KeepsDistinctKeys(t *testing.T) {
	suggestions := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, TransferDate: "2025-11-10"},
		{ScenarioID: "alpha", KitNumber: 1, TransferDate: "2025-11-13"},
		{ScenarioID: "alpha", KitNumber: 2, TransferDate: "2025-11-10"},
	}

	assert.Equal(t, suggestions, DeduplicateTransfers(suggestions))
}

func TestDeduplicateTransfers_Idempotent(t *testing.T) {
	suggestions := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "b", TransferDate: "2025-11-10"},
		{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "c", TransferDate: "2025-11-10"},
		{ScenarioID: "beta", KitNumber: 2, ToStoreID: "a", TransferDate: "2025-11-13"},
		{ScenarioID: "beta", KitNumber: 2, ToStoreID: "b", TransferDate: "2025-11-13"},
		{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "a", TransferDate: "2025-11-10"},
	}

	once := DeduplicateTransfers(suggestions)
	twice := DeduplicateTransfers(once)

	assert.Equal(t, once, twice)
	require.Len(t, once, 2)
	assert.Equal(t, "a", once[0].ToStoreID)
	assert.Equal(t, "b", once[1].ToStoreID)
}

func TestDeduplicateTransfers_Empty(t *testing.T) {
	assert.Empty(t, DeduplicateTransfers(nil))
}
