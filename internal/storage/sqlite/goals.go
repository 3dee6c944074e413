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

// CreateGoal inserts a new goal and returns its store-assigned ID. A nil
// PillarID makes the goal unaffiliated; a non-nil one must reference an
// existing pillar.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, g *types.Goal) (int64, error) {
	if err := g.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	if g.PillarID != nil {
		if err := s.pillarExists(ctx, *g.PillarID); err != nil {
			return 0, err
		}
	}
	if g.Status == "" {
		g.Status = types.GoalActive
	}
	g.CreatedAt = time.Now()

	var targetDate sql.NullString
	if g.TargetDate != nil {
		targetDate = sql.NullString{String: string(*g.TargetDate), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (pillar_id, title, description, target_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, nullInt64(g.PillarID), g.Title, g.Description, targetDate, g.Status, g.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to create goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read goal id: %w", err)
	}
	g.ID = id

	s.publish(storage.TableGoals)
	return id, nil
}

// GetGoal retrieves a goal by ID, or (nil, nil) if absent.
func (s *SQLiteStorage) GetGoal(ctx context.Context, id int64) (*types.Goal, error) {
	reactive.Touch(ctx, storage.TableGoals)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, pillar_id, title, description, target_date, status, created_at
		FROM goals
		WHERE id = ?
	`, id)

	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

// ListGoals returns goals matching the filter, newest first.
func (s *SQLiteStorage) ListGoals(ctx context.Context, filter types.GoalFilter) ([]types.Goal, error) {
	reactive.Touch(ctx, storage.TableGoals)

	query := `
		SELECT id, pillar_id, title, description, target_date, status, created_at
		FROM goals`
	var conds []string
	var args []any
	if filter.PillarID != nil {
		conds = append(conds, "pillar_id = ?")
		args = append(args, *filter.PillarID)
	}
	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *filter.Status)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []types.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

// UpdateGoal merges fields into a goal. Returns ErrNotFound if the ID
// does not exist.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, id int64, upd types.GoalUpdate) error {
	if upd.PillarID != nil && *upd.PillarID != nil {
		if err := s.pillarExists(ctx, **upd.PillarID); err != nil {
			return err
		}
	}

	err := s.withTx(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, pillar_id, title, description, target_date, status, created_at
			FROM goals
			WHERE id = ?
		`, id)

		g, err := scanGoal(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("goal %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load goal: %w", err)
		}

		if upd.PillarID != nil {
			g.PillarID = *upd.PillarID
		}
		if upd.Title != nil {
			g.Title = *upd.Title
		}
		if upd.Description != nil {
			g.Description = *upd.Description
		}
		if upd.TargetDate != nil {
			g.TargetDate = *upd.TargetDate
		}
		if upd.Status != nil {
			g.Status = *upd.Status
		}
		if err := g.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		var targetDate sql.NullString
		if g.TargetDate != nil {
			targetDate = sql.NullString{String: string(*g.TargetDate), Valid: true}
		}
		_, err = conn.ExecContext(ctx, `
			UPDATE goals
			SET pillar_id = ?, title = ?, description = ?, target_date = ?, status = ?
			WHERE id = ?
		`, nullInt64(g.PillarID), g.Title, g.Description, targetDate, g.Status, id)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableGoals)
	return nil
}

// DeleteGoal removes the goal and its milestones in one transaction.
// Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `DELETE FROM milestones WHERE goal_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete milestones: %w", err)
		}
		res, err := conn.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("goal %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableGoals, storage.TableMilestones)
	return nil
}

// AddMilestone inserts a milestone under a goal. A milestone created
// already-completed gets its CompletedAt stamped now.
func (s *SQLiteStorage) AddMilestone(ctx context.Context, m *types.Milestone) (int64, error) {
	if m.Title == "" {
		return 0, fmt.Errorf("milestone title cannot be empty")
	}
	g, err := s.GetGoal(ctx, m.GoalID)
	if err != nil {
		return 0, err
	}
	if g == nil {
		return 0, fmt.Errorf("goal %d does not exist", m.GoalID)
	}

	var completedAt sql.NullTime
	if m.Completed {
		now := time.Now()
		m.CompletedAt = &now
		completedAt = sql.NullTime{Time: now, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO milestones (goal_id, title, completed, completed_at)
		VALUES (?, ?, ?, ?)
	`, m.GoalID, m.Title, m.Completed, completedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to add milestone: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read milestone id: %w", err)
	}
	m.ID = id

	s.publish(storage.TableMilestones)
	return id, nil
}

// ListMilestones returns a goal's milestones in creation order.
func (s *SQLiteStorage) ListMilestones(ctx context.Context, goalID int64) ([]types.Milestone, error) {
	reactive.Touch(ctx, storage.TableMilestones)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, goal_id, title, completed, completed_at
		FROM milestones
		WHERE goal_id = ?
		ORDER BY id
	`, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var milestones []types.Milestone
	for rows.Next() {
		var m types.Milestone
		var completedAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.GoalID, &m.Title, &m.Completed, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		if completedAt.Valid {
			m.CompletedAt = &completedAt.Time
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// SetMilestoneCompleted flips the completed flag. CompletedAt is stamped
// exactly when the flag transitions to true and cleared when it goes
// back to false; re-completing an already-completed milestone keeps the
// original timestamp.
func (s *SQLiteStorage) SetMilestoneCompleted(ctx context.Context, id int64, completed bool) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var current bool
		err := conn.QueryRowContext(ctx, `SELECT completed FROM milestones WHERE id = ?`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return fmt.Errorf("milestone %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load milestone: %w", err)
		}
		if current == completed {
			return nil
		}

		var completedAt sql.NullTime
		if completed {
			completedAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
		_, err = conn.ExecContext(ctx, `
			UPDATE milestones SET completed = ?, completed_at = ? WHERE id = ?
		`, completed, completedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update milestone: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableMilestones)
	return nil
}

// DeleteMilestone removes a milestone. Returns ErrNotFound if the ID
// does not exist.
func (s *SQLiteStorage) DeleteMilestone(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("milestone %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableMilestones)
	return nil
}

func scanGoal(row rowScanner) (*types.Goal, error) {
	var g types.Goal
	var pillarID sql.NullInt64
	var targetDate sql.NullString

	err := row.Scan(&g.ID, &pillarID, &g.Title, &g.Description, &targetDate, &g.Status, &g.CreatedAt)
	if err != nil {
		return nil, err
	}

	g.PillarID = int64Ptr(pillarID)
	if targetDate.Valid {
		d := types.Day(targetDate.String)
		g.TargetDate = &d
	}
	return &g, nil
}
