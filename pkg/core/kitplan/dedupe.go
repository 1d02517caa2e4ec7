package kitplan

// transferKey identifies a kit being moved on a given date
type transferKey struct {
	ScenarioID   string
	KitNumber    int
	TransferDate string
}

// DeduplicateTransfers keeps one suggestion per kit per transfer date.
// When the same kit is moved more than once on the same date the last suggestion wins,
// and it takes the position where that kit and date first appeared.
func DeduplicateTransfers(suggestions []KitTransferSuggestion) []KitTransferSuggestion {
	positions := make(map[transferKey]int, len(suggestions))
	result := make([]KitTransferSuggestion, 0, len(suggestions))

	for _, suggestion := range suggestions {
		key := transferKey{
			ScenarioID:   suggestion.ScenarioID,
			KitNumber:    suggestion.KitNumber,
			TransferDate: suggestion.TransferDate,
		}

		if idx, seen := positions[key]; seen {
			result[idx] = suggestion
			continue
		}

		positions[key] = len(result)
		result = append(result, suggestion)
	}

	return result
}
