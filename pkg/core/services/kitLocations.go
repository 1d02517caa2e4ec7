package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/db"
)

// KitLocationView is one numbered kit with its store and condition.
// StoreID is empty for kits that have never been placed.
type KitLocationView struct {
	ScenarioID     string    `json:"scenario_id"`
	ScenarioTitle  string    `json:"scenario_title"`
	KitNumber      int       `json:"kit_number"`
	StoreID        string    `json:"store_id"`
	StoreName      string    `json:"store_name"`
	Condition      string    `json:"condition,omitempty"`
	ConditionNotes string    `json:"condition_notes,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitzero"`
}

// ListKitLocationsStore defines the database operations needed for listing kits
type ListKitLocationsStore interface {
	GetStores(ctx context.Context) ([]db.Store, error)
	GetScenarios(ctx context.Context) ([]db.Scenario, error)
	GetKitLocations(ctx context.Context) ([]db.KitLocation, error)
}

// ListKitLocations lists every kit of every scenario that has kits, ordered by
// scenario title then kit number, including kits not yet placed
func ListKitLocations(ctx context.Context, database ListKitLocationsStore, logger *zap.Logger) ([]KitLocationView, error) {
	stores, err := database.GetStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}

	scenarios, err := database.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	locations, err := database.GetKitLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kit locations: %w", err)
	}

	type kitKey struct {
		scenarioID string
		kitNumber  int
	}
	byKit := make(map[kitKey]db.KitLocation, len(locations))
	for _, loc := range locations {
		byKit[kitKey{loc.ScenarioID, loc.KitNumber}] = loc
	}

	withKits := scenariosWithKits(scenarios)
	sort.SliceStable(withKits, func(i, j int) bool {
		return withKits[i].Title < withKits[j].Title
	})

	var views []KitLocationView
	for _, scenario := range withKits {
		for kitNumber := 1; kitNumber <= scenario.KitCount; kitNumber++ {
			view := KitLocationView{
				ScenarioID:    scenario.ID,
				ScenarioTitle: scenario.Title,
				KitNumber:     kitNumber,
			}
			if loc, ok := byKit[kitKey{scenario.ID, kitNumber}]; ok {
				view.StoreID = loc.StoreID
				view.Condition = loc.Condition
				view.ConditionNotes = loc.ConditionNotes
				view.UpdatedAt = loc.UpdatedAt
				if store, ok := findStore(stores, loc.StoreID); ok {
					view.StoreName = store.Name
				}
			}
			views = append(views, view)
		}
	}

	logger.Debug("Listed kit locations", zap.Int("kits", len(views)), zap.Int("placed", len(locations)))
	return views, nil
}

// SetKitLocationStore defines the database operations needed for placing a kit
type SetKitLocationStore interface {
	GetStores(ctx context.Context) ([]db.Store, error)
	GetScenarios(ctx context.Context) ([]db.Scenario, error)
	SetKitLocation(ctx context.Context, scenarioID string, kitNumber int, storeID string) error
}

// SetKitLocation records that a kit is at a store. The scenario and store must exist
// and the kit number must be within 1..kit_count.
func SetKitLocation(
	ctx context.Context,
	database SetKitLocationStore,
	logger *zap.Logger,
	scenarioID string,
	kitNumber int,
	storeID string,
) error {
	scenarios, err := database.GetScenarios(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch scenarios: %w", err)
	}
	scenario, ok := findScenario(scenarios, scenarioID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScenario, scenarioID)
	}
	if kitNumber < 1 || kitNumber > scenario.KitCount {
		return fmt.Errorf("%w: %s has %d kit(s), got kit %d", ErrKitNumberOutOfRange, scenario.Title, scenario.KitCount, kitNumber)
	}

	stores, err := database.GetStores(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch stores: %w", err)
	}
	if _, ok := findStore(stores, storeID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStore, storeID)
	}

	if err := database.SetKitLocation(ctx, scenarioID, kitNumber, storeID); err != nil {
		return fmt.Errorf("failed to set kit location: %w", err)
	}

	logger.Info("Kit location set",
		zap.String("scenario", scenario.Title),
		zap.Int("kit_number", kitNumber),
		zap.String("store_id", storeID))
	return nil
}

// UpdateKitConditionStore defines the database operations needed for recording kit condition
type UpdateKitConditionStore interface {
	UpdateKitCondition(ctx context.Context, scenarioID string, kitNumber int, condition, notes string) error
}

// UpdateKitCondition records the condition of a placed kit
func UpdateKitCondition(
	ctx context.Context,
	database UpdateKitConditionStore,
	logger *zap.Logger,
	scenarioID string,
	kitNumber int,
	condition string,
	notes string,
) error {
	if !db.IsValidKitCondition(condition) {
		return fmt.Errorf("%w %q: must be one of excellent, good, fair, poor, damaged", ErrInvalidCondition, condition)
	}

	if err := database.UpdateKitCondition(ctx, scenarioID, kitNumber, condition, notes); err != nil {
		return fmt.Errorf("failed to update kit condition: %w", err)
	}

	logger.Info("Kit condition updated",
		zap.String("scenario_id", scenarioID),
		zap.Int("kit_number", kitNumber),
		zap.String("condition", condition))
	return nil
}
