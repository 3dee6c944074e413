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

// CreateHabit inserts a new habit and returns its store-assigned ID.
func (s *SQLiteStorage) CreateHabit(ctx context.Context, h *types.Habit) (int64, error) {
	if h.Frequency == "" {
		h.Frequency = types.FrequencyDaily
	}
	if err := h.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	if h.PillarID != nil {
		if err := s.pillarExists(ctx, *h.PillarID); err != nil {
			return 0, err
		}
	}
	h.CreatedAt = time.Now()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (pillar_id, title, description, frequency,
		                    target_days_per_week, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, nullInt64(h.PillarID), h.Title, h.Description, h.Frequency,
		h.TargetDaysPerWeek, h.Color, h.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create habit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read habit id: %w", err)
	}
	h.ID = id

	s.publish(storage.TableHabits)
	return id, nil
}

// GetHabit retrieves a habit by ID, or (nil, nil) if absent. Archived
// habits are still returned by point lookup.
func (s *SQLiteStorage) GetHabit(ctx context.Context, id int64) (*types.Habit, error) {
	reactive.Touch(ctx, storage.TableHabits)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, pillar_id, title, description, frequency,
		       target_days_per_week, color, archived_at, created_at
		FROM habits
		WHERE id = ?
	`, id)

	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

// ListHabits returns habits matching the filter. Archived habits are
// excluded unless the filter includes them.
func (s *SQLiteStorage) ListHabits(ctx context.Context, filter types.HabitFilter) ([]types.Habit, error) {
	reactive.Touch(ctx, storage.TableHabits)

	query := `
		SELECT id, pillar_id, title, description, frequency,
		       target_days_per_week, color, archived_at, created_at
		FROM habits`
	var conds []string
	var args []any
	if filter.PillarID != nil {
		conds = append(conds, "pillar_id = ?")
		args = append(args, *filter.PillarID)
	}
	if !filter.IncludeArchived {
		conds = append(conds, "archived_at IS NULL")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []types.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// UpdateHabit merges fields into a habit. Returns ErrNotFound if the ID
// does not exist.
func (s *SQLiteStorage) UpdateHabit(ctx context.Context, id int64, upd types.HabitUpdate) error {
	if upd.PillarID != nil && *upd.PillarID != nil {
		if err := s.pillarExists(ctx, **upd.PillarID); err != nil {
			return err
		}
	}

	err := s.withTx(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, pillar_id, title, description, frequency,
			       target_days_per_week, color, archived_at, created_at
			FROM habits
			WHERE id = ?
		`, id)

		h, err := scanHabit(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}

		if upd.PillarID != nil {
			h.PillarID = *upd.PillarID
		}
		if upd.Title != nil {
			h.Title = *upd.Title
		}
		if upd.Description != nil {
			h.Description = *upd.Description
		}
		if upd.Frequency != nil {
			h.Frequency = *upd.Frequency
		}
		if upd.TargetDaysPerWeek != nil {
			h.TargetDaysPerWeek = *upd.TargetDaysPerWeek
		}
		if upd.Color != nil {
			h.Color = *upd.Color
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		_, err = conn.ExecContext(ctx, `
			UPDATE habits
			SET pillar_id = ?, title = ?, description = ?, frequency = ?,
			    target_days_per_week = ?, color = ?
			WHERE id = ?
		`, nullInt64(h.PillarID), h.Title, h.Description, h.Frequency,
			h.TargetDaysPerWeek, h.Color, id)
		if err != nil {
			return fmt.Errorf("failed to update habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableHabits)
	return nil
}

// ArchiveHabit soft-deletes a habit by stamping ArchivedAt. Archiving an
// already-archived habit is a no-op that keeps the original timestamp.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) ArchiveHabit(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var archivedAt sql.NullTime
		err := conn.QueryRowContext(ctx, `SELECT archived_at FROM habits WHERE id = ?`, id).Scan(&archivedAt)
		if err == sql.ErrNoRows {
			return fmt.Errorf("habit %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load habit: %w", err)
		}
		if archivedAt.Valid {
			return nil
		}

		_, err = conn.ExecContext(ctx, `UPDATE habits SET archived_at = ? WHERE id = ?`, time.Now(), id)
		if err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableHabits)
	return nil
}

// DeleteHabit removes the habit and its logs in one transaction. Returns
// ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) DeleteHabit(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete habit logs: %w", err)
		}
		res, err := conn.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete habit: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("habit %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableHabits, storage.TableHabitLogs)
	return nil
}

// LogHabit records a habit for one calendar day, upserting by
// (habitID, date): a log for a day that already has one updates in place
// rather than duplicating, preserving the row ID.
func (s *SQLiteStorage) LogHabit(ctx context.Context, log *types.HabitLog) (int64, error) {
	if err := log.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	h, err := s.GetHabit(ctx, log.HabitID)
	if err != nil {
		return 0, err
	}
	if h == nil {
		return 0, fmt.Errorf("habit %d does not exist", log.HabitID)
	}

	err = s.withTx(ctx, func(conn *sql.Conn) error {
		var existingID int64
		err := conn.QueryRowContext(ctx, `
			SELECT id FROM habit_logs WHERE habit_id = ? AND date = ?
		`, log.HabitID, log.Date).Scan(&existingID)
		switch {
		case err == sql.ErrNoRows:
			res, err := conn.ExecContext(ctx, `
				INSERT INTO habit_logs (habit_id, date, completed, note)
				VALUES (?, ?, ?, ?)
			`, log.HabitID, log.Date, log.Completed, log.Note)
			if err != nil {
				return fmt.Errorf("failed to insert habit log: %w", err)
			}
			log.ID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read habit log id: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to look up habit log: %w", err)
		default:
			_, err = conn.ExecContext(ctx, `
				UPDATE habit_logs SET completed = ?, note = ? WHERE id = ?
			`, log.Completed, log.Note, existingID)
			if err != nil {
				return fmt.Errorf("failed to update habit log: %w", err)
			}
			log.ID = existingID
			return nil
		}
	})
	if err != nil {
		return 0, err
	}

	s.publish(storage.TableHabitLogs)
	return log.ID, nil
}

// GetHabitLog retrieves the log for one habit on one day, or (nil, nil)
// if that day has no log.
func (s *SQLiteStorage) GetHabitLog(ctx context.Context, habitID int64, date types.Day) (*types.HabitLog, error) {
	reactive.Touch(ctx, storage.TableHabitLogs)

	var l types.HabitLog
	err := s.db.QueryRowContext(ctx, `
		SELECT id, habit_id, date, completed, note
		FROM habit_logs
		WHERE habit_id = ? AND date = ?
	`, habitID, date).Scan(&l.ID, &l.HabitID, &l.Date, &l.Completed, &l.Note)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}
	return &l, nil
}

// ListHabitLogs returns logs matching the filter, ordered by date.
func (s *SQLiteStorage) ListHabitLogs(ctx context.Context, filter types.HabitLogFilter) ([]types.HabitLog, error) {
	reactive.Touch(ctx, storage.TableHabitLogs)

	query := `
		SELECT id, habit_id, date, completed, note
		FROM habit_logs`
	var conds []string
	var args []any
	if filter.HabitID != nil {
		conds = append(conds, "habit_id = ?")
		args = append(args, *filter.HabitID)
	}
	if filter.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conds = append(conds, "date <= ?")
		args = append(args, *filter.To)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, habit_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var logs []types.HabitLog
	for rows.Next() {
		var l types.HabitLog
		if err := rows.Scan(&l.ID, &l.HabitID, &l.Date, &l.Completed, &l.Note); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// DeleteHabitLog removes a single log row. Returns ErrNotFound if the ID
// does not exist.
func (s *SQLiteStorage) DeleteHabitLog(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit log %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableHabitLogs)
	return nil
}

func scanHabit(row rowScanner) (*types.Habit, error) {
	var h types.Habit
	var pillarID sql.NullInt64
	var archivedAt sql.NullTime

	err := row.Scan(&h.ID, &pillarID, &h.Title, &h.Description, &h.Frequency,
		&h.TargetDaysPerWeek, &h.Color, &archivedAt, &h.CreatedAt)
	if err != nil {
		return nil, err
	}

	h.PillarID = int64Ptr(pillarID)
	if archivedAt.Valid {
		h.ArchivedAt = &archivedAt.Time
	}
	return &h, nil
}
