package services

import (
	"context"
	"fmt"

	"github.com/mdvenues/kitplanner/pkg/clients/sheetsclient"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// mockKitStore implements db.Database for testing
type mockKitStore struct {
	stores       []db.Store
	scenarios    []db.Scenario
	performances []db.Performance
	locations    []db.KitLocation
	events       []db.KitTransferEvent

	insertedEvents []db.KitTransferEvent
	setLocations   []db.KitLocation
	conditions     []db.KitLocation
	statusUpdates  map[string]string
	cancelledCount int64

	performanceRange [2]string
	eventRange       [2]string
	cancelRange      [2]string

	getStoresErr       error
	getScenariosErr    error
	getPerformancesErr error
	getLocationsErr    error
	insertEventsErr    error
	updateStatusErr    error
	setLocationErr     error
}

func (m *mockKitStore) GetStores(ctx context.Context) ([]db.Store, error) {
	if m.getStoresErr != nil {
		return nil, m.getStoresErr
	}
	return m.stores, nil
}

func (m *mockKitStore) GetScenarios(ctx context.Context) ([]db.Scenario, error) {
	if m.getScenariosErr != nil {
		return nil, m.getScenariosErr
	}
	return m.scenarios, nil
}

func (m *mockKitStore) GetPerformances(ctx context.Context, start, end string) ([]db.Performance, error) {
	m.performanceRange = [2]string{start, end}
	if m.getPerformancesErr != nil {
		return nil, m.getPerformancesErr
	}
	return m.performances, nil
}

func (m *mockKitStore) GetKitLocations(ctx context.Context) ([]db.KitLocation, error) {
	if m.getLocationsErr != nil {
		return nil, m.getLocationsErr
	}
	return m.locations, nil
}

func (m *mockKitStore) SetKitLocation(ctx context.Context, scenarioID string, kitNumber int, storeID string) error {
	if m.setLocationErr != nil {
		return m.setLocationErr
	}
	m.setLocations = append(m.setLocations, db.KitLocation{ScenarioID: scenarioID, KitNumber: kitNumber, StoreID: storeID})
	return nil
}

func (m *mockKitStore) UpdateKitCondition(ctx context.Context, scenarioID string, kitNumber int, condition, notes string) error {
	m.conditions = append(m.conditions, db.KitLocation{ScenarioID: scenarioID, KitNumber: kitNumber, Condition: condition, ConditionNotes: notes})
	return nil
}

func (m *mockKitStore) GetTransferEvents(ctx context.Context, start, end string) ([]db.KitTransferEvent, error) {
	m.eventRange = [2]string{start, end}
	return m.events, nil
}

func (m *mockKitStore) GetTransferEvent(ctx context.Context, id string) (*db.KitTransferEvent, error) {
	for i := range m.events {
		if m.events[i].ID == id {
			event := m.events[i]
			return &event, nil
		}
	}
	return nil, fmt.Errorf("transfer event %s: %w", id, db.ErrNotFound)
}

func (m *mockKitStore) InsertTransferEvents(ctx context.Context, events []db.KitTransferEvent) error {
	if m.insertEventsErr != nil {
		return m.insertEventsErr
	}
	m.insertedEvents = append(m.insertedEvents, events...)
	return nil
}

func (m *mockKitStore) UpdateTransferStatus(ctx context.Context, id, status string) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[string]string)
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *mockKitStore) CancelPendingTransfers(ctx context.Context, start, end string) (int64, error) {
	m.cancelRange = [2]string{start, end}
	return m.cancelledCount, nil
}

var _ db.Database = (*mockKitStore)(nil)

// mockPublisher implements ChecklistPublisher for testing
type mockPublisher struct {
	spreadsheetID string
	checklist     *sheetsclient.TransferChecklist
	publishErr    error
}

func (m *mockPublisher) PublishTransferChecklist(spreadsheetID string, checklist *sheetsclient.TransferChecklist) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.spreadsheetID = spreadsheetID
	m.checklist = checklist
	return nil
}

// testCatalog returns two active stores and a scenario with one kit plus one without kits
func testCatalog() *mockKitStore {
	return &mockKitStore{
		stores: []db.Store{
			{ID: "store-1", Name: "Shibuya", Status: "active"},
			{ID: "store-2", Name: "Shinjuku", Status: "active"},
		},
		scenarios: []db.Scenario{
			{ID: "alpha", Title: "Alpha", KitCount: 1},
			{ID: "nokits", Title: "No Kits", KitCount: 0},
		},
	}
}
