package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mdvenues/kitplanner/pkg/db"
)

const transferEventColumns = `id, scenario_id, kit_number, from_store_id, to_store_id, transfer_date, status, notes, created_at`

// GetTransferEvents retrieves transfer events dated between start and end inclusive
func (d *DB) GetTransferEvents(ctx context.Context, start, end string) ([]db.KitTransferEvent, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+transferEventColumns+`
		FROM kit_transfer_events
		WHERE organization_id = $1 AND transfer_date >= $2 AND transfer_date <= $3
		ORDER BY transfer_date, created_at
	`, d.orgID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer events: %w", err)
	}
	defer rows.Close()

	var events []db.KitTransferEvent
	for rows.Next() {
		event, err := scanTransferEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer events: %w", err)
	}

	return events, nil
}

// GetTransferEvent retrieves a single transfer event, returning db.ErrNotFound if it does not exist
func (d *DB) GetTransferEvent(ctx context.Context, id string) (*db.KitTransferEvent, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT `+transferEventColumns+`
		FROM kit_transfer_events
		WHERE organization_id = $1 AND id = $2
	`, d.orgID, id)

	event, err := scanTransferEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transfer event %s: %w", id, db.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// InsertTransferEvents inserts transfer events in a single transaction
func (d *DB) InsertTransferEvents(ctx context.Context, events []db.KitTransferEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range events {
		_, err := tx.Exec(ctx, `
			INSERT INTO kit_transfer_events
				(id, organization_id, scenario_id, kit_number, from_store_id, to_store_id, transfer_date, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, e.ID, d.orgID, e.ScenarioID, e.KitNumber, e.FromStoreID, e.ToStoreID, e.TransferDate, e.Status, nullableString(e.Notes))
		if err != nil {
			return fmt.Errorf("failed to insert transfer event: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// UpdateTransferStatus sets the status of a transfer event
func (d *DB) UpdateTransferStatus(ctx context.Context, id, status string) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE kit_transfer_events SET status = $3
		WHERE organization_id = $1 AND id = $2
	`, d.orgID, id, status)
	if err != nil {
		return fmt.Errorf("failed to update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transfer event %s: %w", id, db.ErrNotFound)
	}
	return nil
}

// CancelPendingTransfers cancels every pending transfer dated between start and end inclusive
// and returns how many were cancelled
func (d *DB) CancelPendingTransfers(ctx context.Context, start, end string) (int64, error) {
	tag, err := d.pool.Exec(ctx, `
		UPDATE kit_transfer_events SET status = $4
		WHERE organization_id = $1
		  AND status = $5
		  AND transfer_date >= $2 AND transfer_date <= $3
	`, d.orgID, start, end, db.TransferStatusCancelled, db.TransferStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel pending transfers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanTransferEvent(row pgx.Row) (*db.KitTransferEvent, error) {
	var e db.KitTransferEvent
	var transferDate time.Time
	var notes *string
	err := row.Scan(&e.ID, &e.ScenarioID, &e.KitNumber, &e.FromStoreID, &e.ToStoreID,
		&transferDate, &e.Status, &notes, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transfer event: %w", err)
	}
	e.TransferDate = transferDate.Format(dateLayout)
	e.Notes = stringValue(notes)
	return &e, nil
}
