package db

import "context"

// CatalogStore defines the interface for store and scenario catalog reads
type CatalogStore interface {
	GetStores(ctx context.Context) ([]Store, error)
	GetScenarios(ctx context.Context) ([]Scenario, error)
}

// ScheduleStore defines the interface for reading scheduled performances
type ScheduleStore interface {
	// GetPerformances returns non-cancelled performances with a scenario, start and end inclusive
	GetPerformances(ctx context.Context, start, end string) ([]Performance, error)
}

// KitLocationStore defines the interface for kit location operations
type KitLocationStore interface {
	GetKitLocations(ctx context.Context) ([]KitLocation, error)
	SetKitLocation(ctx context.Context, scenarioID string, kitNumber int, storeID string) error
	UpdateKitCondition(ctx context.Context, scenarioID string, kitNumber int, condition, notes string) error
}

// TransferEventStore defines the interface for kit transfer event operations
type TransferEventStore interface {
	GetTransferEvents(ctx context.Context, start, end string) ([]KitTransferEvent, error)
	GetTransferEvent(ctx context.Context, id string) (*KitTransferEvent, error)
	InsertTransferEvents(ctx context.Context, events []KitTransferEvent) error
	UpdateTransferStatus(ctx context.Context, id, status string) error
	CancelPendingTransfers(ctx context.Context, start, end string) (int64, error)
}

// Database defines the interface for all database operations.
// postgres.DB implements this interface.
type Database interface {
	CatalogStore
	ScheduleStore
	KitLocationStore
	TransferEventStore
}
