package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

// SaveSnapshot upserts by (pillarID, period): a second save for the same
// pillar and month updates the existing row in place, preserving its ID,
// with the new field values winning. The find-then-branch runs inside
// one transaction; under the single-writer model this is equivalent to
// the unguarded sequence, but it stays correct if that assumption is
// ever relaxed.
func (s *SQLiteStorage) SaveSnapshot(ctx context.Context, snap *types.PerformanceSnapshot) (int64, error) {
	if err := snap.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.pillarExists(ctx, snap.PillarID); err != nil {
		return 0, err
	}

	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var existingID int64
		err := conn.QueryRowContext(ctx, `
			SELECT id FROM performance_snapshots WHERE pillar_id = ? AND period = ?
		`, snap.PillarID, snap.Period).Scan(&existingID)
		switch {
		case err == sql.ErrNoRows:
			res, err := conn.ExecContext(ctx, `
				INSERT INTO performance_snapshots
					(pillar_id, period, alignment_state, score, observed, target, note)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, snap.PillarID, snap.Period, snap.AlignmentState, snap.Score,
				snap.Observed, snap.Target, snap.Note)
			if err != nil {
				return fmt.Errorf("failed to insert snapshot: %w", err)
			}
			snap.ID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read snapshot id: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to look up snapshot: %w", err)
		default:
			_, err = conn.ExecContext(ctx, `
				UPDATE performance_snapshots
				SET alignment_state = ?, score = ?, observed = ?, target = ?, note = ?
				WHERE id = ?
			`, snap.AlignmentState, snap.Score, snap.Observed, snap.Target, snap.Note, existingID)
			if err != nil {
				return fmt.Errorf("failed to update snapshot: %w", err)
			}
			snap.ID = existingID
			return nil
		}
	})
	if err != nil {
		return 0, err
	}

	s.publish(storage.TableSnapshots)
	return snap.ID, nil
}

// GetSnapshot retrieves one pillar's snapshot for one month, or
// (nil, nil) if absent.
func (s *SQLiteStorage) GetSnapshot(ctx context.Context, pillarID int64, period types.Month) (*types.PerformanceSnapshot, error) {
	reactive.Touch(ctx, storage.TableSnapshots)

	var snap types.PerformanceSnapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pillar_id, period, alignment_state, score, observed, target, note
		FROM performance_snapshots
		WHERE pillar_id = ? AND period = ?
	`, pillarID, period).Scan(&snap.ID, &snap.PillarID, &snap.Period, &snap.AlignmentState,
		&snap.Score, &snap.Observed, &snap.Target, &snap.Note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snap, nil
}

// ListSnapshots returns snapshots matching the filter, newest period
// first.
func (s *SQLiteStorage) ListSnapshots(ctx context.Context, filter types.SnapshotFilter) ([]types.PerformanceSnapshot, error) {
	reactive.Touch(ctx, storage.TableSnapshots)

	query := `
		SELECT id, pillar_id, period, alignment_state, score, observed, target, note
		FROM performance_snapshots`
	var conds []string
	var args []any
	if filter.PillarID != nil {
		conds = append(conds, "pillar_id = ?")
		args = append(args, *filter.PillarID)
	}
	if filter.From != nil {
		conds = append(conds, "period >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conds = append(conds, "period <= ?")
		args = append(args, *filter.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY period DESC, pillar_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snaps []types.PerformanceSnapshot
	for rows.Next() {
		var snap types.PerformanceSnapshot
		if err := rows.Scan(&snap.ID, &snap.PillarID, &snap.Period, &snap.AlignmentState,
			&snap.Score, &snap.Observed, &snap.Target, &snap.Note); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// DeleteSnapshot removes a snapshot. Returns ErrNotFound if the ID does
// not exist.
func (s *SQLiteStorage) DeleteSnapshot(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM performance_snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableSnapshots)
	return nil
}
