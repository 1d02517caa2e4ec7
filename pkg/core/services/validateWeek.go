package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// WeekValidation reports whether the confirmed transfers cover a week's performances
type WeekValidation struct {
	WeekStart        string                          `json:"week_start"`
	WeekEnd          string                          `json:"week_end"`
	PendingTransfers []kitplan.KitTransferSuggestion `json:"pending_transfers"`
	Validation       kitplan.PlanValidation          `json:"validation"`
}

// ValidateWeekStore defines the database operations needed for validating a week
type ValidateWeekStore interface {
	GetScenarios(ctx context.Context) ([]db.Scenario, error)
	GetPerformances(ctx context.Context, start, end string) ([]db.Performance, error)
	GetKitLocations(ctx context.Context) ([]db.KitLocation, error)
	GetTransferEvents(ctx context.Context, start, end string) ([]db.KitTransferEvent, error)
}

// ValidateWeek replays pending transfer events on top of the current kit locations and
// reports the week's performances left without a kit. Events are read from one week
// before weekStart, since moves for early-week shows happen in the previous week.
// Completed events are already reflected in the kit locations and are not replayed.
func ValidateWeek(
	ctx context.Context,
	database ValidateWeekStore,
	logger *zap.Logger,
	weekStart string,
) (*WeekValidation, error) {
	week, err := resolveWeek(weekStart)
	if err != nil {
		return nil, err
	}
	start, _ := parseDate(week.Start)
	lookbackStart := start.AddDate(0, 0, -daysPerWeek).Format(kitplan.DateLayout)

	logger.Debug("Starting validateWeek", zap.String("week_start", week.Start), zap.String("events_from", lookbackStart))

	locations, err := database.GetKitLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kit locations: %w", err)
	}

	scenarios, err := database.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	performances, err := database.GetPerformances(ctx, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performances: %w", err)
	}

	events, err := database.GetTransferEvents(ctx, lookbackStart, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer events: %w", err)
	}

	pending := pendingTransfers(events)
	kitScenarios := scenariosWithKits(scenarios)

	validation := kitplan.ValidateTransferPlan(
		buildKitState(locations),
		pending,
		demandsForScenarios(buildDemands(performances), kitScenarios),
		kitScenarios,
	)

	logger.Info("Validated week",
		zap.String("week_start", week.Start),
		zap.Int("pending_transfers", len(pending)),
		zap.Bool("valid", validation.Valid),
		zap.Int("shortages", len(validation.Shortages)))

	return &WeekValidation{
		WeekStart:        week.Start,
		WeekEnd:          week.End,
		PendingTransfers: pending,
		Validation:       validation,
	}, nil
}

// pendingTransfers converts pending events to planner transfers, keeping their order
func pendingTransfers(events []db.KitTransferEvent) []kitplan.KitTransferSuggestion {
	transfers := make([]kitplan.KitTransferSuggestion, 0, len(events))
	for _, e := range events {
		if e.Status != db.TransferStatusPending {
			continue
		}
		transfers = append(transfers, kitplan.KitTransferSuggestion{
			ScenarioID:   e.ScenarioID,
			KitNumber:    e.KitNumber,
			FromStoreID:  e.FromStoreID,
			ToStoreID:    e.ToStoreID,
			TransferDate: e.TransferDate,
			Reason:       e.Notes,
		})
	}
	return transfers
}
