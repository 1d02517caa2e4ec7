package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// WeekPlan is the suggested kit movement for one planning week
type WeekPlan struct {
	WeekStart  string                          `json:"week_start"`
	WeekEnd    string                          `json:"week_end"`
	Demands    []kitplan.Demand                `json:"demands"`
	Transfers  []kitplan.KitTransferSuggestion `json:"transfers"`
	FinalState kitplan.KitState                `json:"final_state"`
	Validation kitplan.PlanValidation          `json:"validation"`
}

// PlanWeekStore defines the database operations needed for planning a week
type PlanWeekStore interface {
	GetStores(ctx context.Context) ([]db.Store, error)
	GetScenarios(ctx context.Context) ([]db.Scenario, error)
	GetPerformances(ctx context.Context, start, end string) ([]db.Performance, error)
	GetKitLocations(ctx context.Context) ([]db.KitLocation, error)
}

// PlanWeek computes the kit transfers needed to supply every performance in the
// 7 days starting at weekStart, then checks the plan for remaining shortages.
// Only scenarios with at least one kit take part.
func PlanWeek(
	ctx context.Context,
	database PlanWeekStore,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*WeekPlan, error) {
	week, err := resolveWeek(weekStart)
	if err != nil {
		return nil, err
	}

	logger.Debug("Starting planWeek", zap.String("week_start", week.Start), zap.String("week_end", week.End))

	locations, err := database.GetKitLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch kit locations: %w", err)
	}
	logger.Debug("Found kit locations", zap.Int("count", len(locations)))

	stores, err := database.GetStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}

	scenarios, err := database.GetScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenarios: %w", err)
	}

	performances, err := database.GetPerformances(ctx, week.Start, week.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch performances: %w", err)
	}
	logger.Debug("Found performances", zap.Int("count", len(performances)))

	kitScenarios := scenariosWithKits(scenarios)
	initialState := buildKitState(locations)
	demands := buildDemands(performances)

	weekly := kitplan.OptimizeWeeklyTransfers(kitplan.PlanConfig{
		InitialState:        initialState,
		Demands:             demands,
		Scenarios:           kitScenarios,
		Stores:              plannerStores(stores),
		AllowedTransferDays: allowedTransferDays(cfg),
	})

	validation := kitplan.ValidateTransferPlan(
		initialState,
		weekly.Transfers,
		demandsForScenarios(demands, kitScenarios),
		kitScenarios,
	)

	logger.Info("Planned kit transfers",
		zap.String("week_start", week.Start),
		zap.Int("demands", len(demands)),
		zap.Int("transfers", len(weekly.Transfers)),
		zap.Int("shortages", len(validation.Shortages)))

	for _, shortage := range validation.Shortages {
		logger.Warn("Unresolved kit shortage", zap.String("detail", shortage.Description))
	}

	return &WeekPlan{
		WeekStart:  week.Start,
		WeekEnd:    week.End,
		Demands:    demands,
		Transfers:  weekly.Transfers,
		FinalState: weekly.FinalState,
		Validation: validation,
	}, nil
}
