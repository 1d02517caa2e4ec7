package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

func TestPlanWeek_MovesKitToPerformance(t *testing.T) {
	store := testCatalog()
	store.locations = []db.KitLocation{{ScenarioID: "alpha", KitNumber: 1, StoreID: "store-1"}}
	store.performances = []db.Performance{
		{ID: "p1", Date: "2025-11-10", StoreID: "store-2", ScenarioID: "alpha"},
		// Scenario without kits is ignored by both planning and validation
		{ID: "p2", Date: "2025-11-11", StoreID: "store-1", ScenarioID: "nokits"},
	}

	plan, err := PlanWeek(context.Background(), store, nil, zap.NewNop(), "2025-11-10")
	require.NoError(t, err)

	assert.Equal(t, [2]string{"2025-11-10", "2025-11-16"}, store.performanceRange)
	assert.Equal(t, "2025-11-10", plan.WeekStart)
	assert.Equal(t, "2025-11-16", plan.WeekEnd)
	assert.Len(t, plan.Demands, 2)

	require.Len(t, plan.Transfers, 1)
	assert.Equal(t, kitplan.KitTransferSuggestion{
		ScenarioID:    "alpha",
		ScenarioTitle: "Alpha",
		KitNumber:     1,
		FromStoreID:   "store-1",
		FromStoreName: "Shibuya",
		ToStoreID:     "store-2",
		ToStoreName:   "Shinjuku",
		TransferDate:  "2025-11-06",
		Reason:        "Performance at Shinjuku on 11/10",
	}, plan.Transfers[0])

	assert.Equal(t, kitplan.KitState{"alpha": {1: "store-2"}}, plan.FinalState)
	assert.True(t, plan.Validation.Valid)
}

func TestPlanWeek_UsesConfiguredTransferDays(t *testing.T) {
	store := testCatalog()
	store.locations = []db.KitLocation{{ScenarioID: "alpha", KitNumber: 1, StoreID: "store-1"}}
	store.performances = []db.Performance{{ID: "p1", Date: "2025-11-10", StoreID: "store-2", ScenarioID: "alpha"}}

	cfg := &config.Config{TransferDays: "FREQ=WEEKLY;BYDAY=SA"}

	plan, err := PlanWeek(context.Background(), store, cfg, zap.NewNop(), "2025-11-10")
	require.NoError(t, err)

	require.Len(t, plan.Transfers, 1)
	assert.Equal(t, "2025-11-08", plan.Transfers[0].TransferDate)
}

func TestPlanWeek_ReportsShortage(t *testing.T) {
	store := testCatalog()
	store.locations = []db.KitLocation{{ScenarioID: "alpha", KitNumber: 1, StoreID: "store-1"}}
	store.performances = []db.Performance{
		{ID: "p1", Date: "2025-11-10", StoreID: "store-2", ScenarioID: "alpha"},
		{ID: "p2", Date: "2025-11-10", StoreID: "store-1", ScenarioID: "alpha"},
	}

	plan, err := PlanWeek(context.Background(), store, nil, zap.NewNop(), "2025-11-10")
	require.NoError(t, err)

	assert.Empty(t, plan.Transfers)
	assert.False(t, plan.Validation.Valid)
	require.Len(t, plan.Validation.Shortages, 1)
	assert.Equal(t, "store-2", plan.Validation.Shortages[0].StoreID)
	assert.Equal(t, "2025-11-10: Alpha is short 1 kit(s) at store store-2", plan.Validation.Shortages[0].Description)
}

func TestPlanWeek_InvalidWeekStart(t *testing.T) {
	_, err := PlanWeek(context.Background(), testCatalog(), nil, zap.NewNop(), "next monday")
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestPlanWeek_StoreErrors(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name    string
		mutate  func(m *mockKitStore)
		wantErr string
	}{
		{"locations", func(m *mockKitStore) { m.getLocationsErr = boom }, "failed to fetch kit locations"},
		{"stores", func(m *mockKitStore) { m.getStoresErr = boom }, "failed to fetch stores"},
		{"scenarios", func(m *mockKitStore) { m.getScenariosErr = boom }, "failed to fetch scenarios"},
		{"performances", func(m *mockKitStore) { m.getPerformancesErr = boom }, "failed to fetch performances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testCatalog()
			tt.mutate(store)

			_, err := PlanWeek(context.Background(), store, nil, zap.NewNop(), "2025-11-10")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, boom))
		})
	}
}
