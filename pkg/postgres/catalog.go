package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mdvenues/kitplanner/pkg/db"
)

// GetStores retrieves the organization's stores in catalog order
func (d *DB) GetStores(ctx context.Context) ([]db.Store, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, short_name, status
		FROM stores
		WHERE organization_id = $1
		ORDER BY created_at, id
	`, d.orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []db.Store
	for rows.Next() {
		var s db.Store
		var shortName *string
		if err := rows.Scan(&s.ID, &s.Name, &shortName, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		s.ShortName = stringValue(shortName)
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}

	return stores, nil
}

// GetScenarios retrieves the organization's scenarios
func (d *DB) GetScenarios(ctx context.Context) ([]db.Scenario, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, title, kit_count
		FROM scenarios
		WHERE organization_id = $1
		ORDER BY title
	`, d.orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []db.Scenario
	for rows.Next() {
		var s db.Scenario
		if err := rows.Scan(&s.ID, &s.Title, &s.KitCount); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	return scenarios, nil
}

// GetPerformances retrieves non-cancelled performances with a scenario between start and end inclusive
func (d *DB) GetPerformances(ctx context.Context, start, end string) ([]db.Performance, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, date, store_id, scenario_id
		FROM schedule_events
		WHERE organization_id = $1
		  AND date >= $2 AND date <= $3
		  AND is_cancelled = FALSE
		  AND scenario_id IS NOT NULL
		ORDER BY date, created_at, id
	`, d.orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query performances: %w", err)
	}
	defer rows.Close()

	var performances []db.Performance
	for rows.Next() {
		var p db.Performance
		var date time.Time
		if err := rows.Scan(&p.ID, &date, &p.StoreID, &p.ScenarioID); err != nil {
			return nil, fmt.Errorf("failed to scan performance: %w", err)
		}
		p.Date = date.Format(dateLayout)
		performances = append(performances, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performances: %w", err)
	}

	return performances, nil
}
