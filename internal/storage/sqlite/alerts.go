package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

// AddAlert inserts a single alert, stamping CreatedAt at write time. The
// caller assigns the ID; inserting an ID that already exists is a
// constraint violation and surfaces as an error (use BulkSyncAlerts for
// skip-if-exists semantics).
func (s *SQLiteStorage) AddAlert(ctx context.Context, a *types.AdvisoryAlert) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if a.PillarID != nil {
		if err := s.pillarExists(ctx, *a.PillarID); err != nil {
			return err
		}
	}
	a.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO advisory_alerts (id, severity, pillar_id, title, message, action, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Severity, nullInt64(a.PillarID), a.Title, a.Message, a.Action, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add alert: %w", err)
	}

	s.publish(storage.TableAlerts)
	return nil
}

// GetAlert retrieves an alert by ID, or (nil, nil) if absent.
func (s *SQLiteStorage) GetAlert(ctx context.Context, id string) (*types.AdvisoryAlert, error) {
	reactive.Touch(ctx, storage.TableAlerts)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, severity, pillar_id, title, message, action, dismissed_at, created_at
		FROM advisory_alerts
		WHERE id = ?
	`, id)

	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return a, nil
}

// ListAlerts returns alerts matching the filter, newest first. Dismissed
// alerts are excluded unless the filter includes them.
func (s *SQLiteStorage) ListAlerts(ctx context.Context, filter types.AlertFilter) ([]types.AdvisoryAlert, error) {
	reactive.Touch(ctx, storage.TableAlerts)

	query := `
		SELECT id, severity, pillar_id, title, message, action, dismissed_at, created_at
		FROM advisory_alerts`
	var conds []string
	var args []any
	if filter.PillarID != nil {
		conds = append(conds, "pillar_id = ?")
		args = append(args, *filter.PillarID)
	}
	if filter.Severity != nil {
		conds = append(conds, "severity = ?")
		args = append(args, *filter.Severity)
	}
	if !filter.IncludeDismissed {
		conds = append(conds, "dismissed_at IS NULL")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var alerts []types.AdvisoryAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

// DismissAlert stamps DismissedAt. Dismissing an already-dismissed alert
// is a no-op that keeps the original timestamp. Returns ErrNotFound if
// the ID does not exist.
func (s *SQLiteStorage) DismissAlert(ctx context.Context, id string) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var dismissedAt sql.NullTime
		err := conn.QueryRowContext(ctx, `SELECT dismissed_at FROM advisory_alerts WHERE id = ?`, id).Scan(&dismissedAt)
		if err == sql.ErrNoRows {
			return fmt.Errorf("alert %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load alert: %w", err)
		}
		if dismissedAt.Valid {
			return nil
		}

		_, err = conn.ExecContext(ctx, `UPDATE advisory_alerts SET dismissed_at = ? WHERE id = ?`, time.Now(), id)
		if err != nil {
			return fmt.Errorf("failed to dismiss alert: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableAlerts)
	return nil
}

// BulkSyncAlerts inserts, in one transaction, only the alerts whose ID
// is not already present. Existing rows are left completely untouched:
// re-syncing an alert that was already dismissed never resets its
// DismissedAt. Returns the number inserted.
func (s *SQLiteStorage) BulkSyncAlerts(ctx context.Context, alerts []types.AdvisoryAlert) (int, error) {
	for i := range alerts {
		if err := alerts[i].Validate(); err != nil {
			return 0, fmt.Errorf("validation failed for alert %s: %w", alerts[i].ID, err)
		}
	}

	inserted := 0
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		now := time.Now()
		for i := range alerts {
			a := &alerts[i]
			var one int
			err := conn.QueryRowContext(ctx, `SELECT 1 FROM advisory_alerts WHERE id = ?`, a.ID).Scan(&one)
			if err == nil {
				continue
			}
			if err != sql.ErrNoRows {
				return fmt.Errorf("failed to look up alert %s: %w", a.ID, err)
			}

			createdAt := a.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			_, err = conn.ExecContext(ctx, `
				INSERT INTO advisory_alerts (id, severity, pillar_id, title, message, action, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, a.ID, a.Severity, nullInt64(a.PillarID), a.Title, a.Message, a.Action, createdAt)
			if err != nil {
				return fmt.Errorf("failed to insert alert %s: %w", a.ID, err)
			}
			a.CreatedAt = createdAt
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		s.publish(storage.TableAlerts)
	}
	return inserted, nil
}

// ClearDismissed removes every alert whose DismissedAt is set and
// returns the number removed.
func (s *SQLiteStorage) ClearDismissed(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM advisory_alerts WHERE dismissed_at IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear dismissed alerts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if n > 0 {
		s.publish(storage.TableAlerts)
	}
	return int(n), nil
}

// DeleteAlert removes an alert regardless of dismissal state. Returns
// ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) DeleteAlert(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM advisory_alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %s: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableAlerts)
	return nil
}

func scanAlert(row rowScanner) (*types.AdvisoryAlert, error) {
	var a types.AdvisoryAlert
	var pillarID sql.NullInt64
	var dismissedAt sql.NullTime

	err := row.Scan(&a.ID, &a.Severity, &pillarID, &a.Title, &a.Message, &a.Action,
		&dismissedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.PillarID = int64Ptr(pillarID)
	if dismissedAt.Valid {
		a.DismissedAt = &dismissedAt.Time
	}
	return &a, nil
}
