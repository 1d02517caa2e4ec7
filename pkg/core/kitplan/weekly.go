package kitplan

// WeeklyPlan is the outcome of planning a week of performances
type WeeklyPlan struct {
	// Transfers are the suggested kit moves, in the order they were planned
	Transfers []KitTransferSuggestion `json:"transfers"`

	// FinalState is the kit placement once every transfer has been carried out
	FinalState KitState `json:"final_state"`
}

// OptimizeWeeklyTransfers plans the transfers for a set of demands and computes
// where every kit ends up once they are applied. It performs no optimisation
// beyond CalculateKitTransfers.
func OptimizeWeeklyTransfers(cfg PlanConfig) WeeklyPlan {
	transfers := CalculateKitTransfers(cfg)

	finalState := cfg.InitialState.Clone()
	for _, transfer := range transfers {
		finalState.Apply(transfer)
	}

	return WeeklyPlan{
		Transfers:  transfers,
		FinalState: finalState,
	}
}
