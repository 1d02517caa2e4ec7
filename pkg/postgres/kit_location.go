package postgres

import (
	"context"
	"fmt"

	"github.com/mdvenues/kitplanner/pkg/db"
)

// GetKitLocations retrieves the current location of every placed kit
func (d *DB) GetKitLocations(ctx context.Context) ([]db.KitLocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT scenario_id, kit_number, store_id, condition, condition_notes, updated_at
		FROM scenario_kit_locations
		WHERE organization_id = $1
		ORDER BY scenario_id, kit_number
	`, d.orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kit locations: %w", err)
	}
	defer rows.Close()

	var locations []db.KitLocation
	for rows.Next() {
		var l db.KitLocation
		var notes *string
		if err := rows.Scan(&l.ScenarioID, &l.KitNumber, &l.StoreID, &l.Condition, &notes, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan kit location: %w", err)
		}
		l.ConditionNotes = stringValue(notes)
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating kit locations: %w", err)
	}

	return locations, nil
}

// SetKitLocation places a kit at a store, creating the location record if needed
func (d *DB) SetKitLocation(ctx context.Context, scenarioID string, kitNumber int, storeID string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO scenario_kit_locations (organization_id, scenario_id, kit_number, store_id, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (organization_id, scenario_id, kit_number)
		DO UPDATE SET store_id = EXCLUDED.store_id, updated_at = NOW()
	`, d.orgID, scenarioID, kitNumber, storeID)
	if err != nil {
		return fmt.Errorf("failed to set kit location: %w", err)
	}
	return nil
}

// UpdateKitCondition records the condition of a placed kit
func (d *DB) UpdateKitCondition(ctx context.Context, scenarioID string, kitNumber int, condition, notes string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE scenario_kit_locations
		SET condition = $4, condition_notes = $5, updated_at = NOW()
		WHERE organization_id = $1 AND scenario_id = $2 AND kit_number = $3
	`, d.orgID, scenarioID, kitNumber, condition, nullableString(notes))
	if err != nil {
		return fmt.Errorf("failed to update kit condition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("kit %s #%d has no location: %w", scenarioID, kitNumber, db.ErrNotFound)
	}
	return nil
}
