package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

// CreatePillar inserts a new pillar and returns its store-assigned ID.
func (s *SQLiteStorage) CreatePillar(ctx context.Context, p *types.Pillar) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	if p.IdentityID == 0 {
		p.IdentityID = identityRowID
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pillars (identity_id, name, description, color, display_order)
		VALUES (?, ?, ?, ?, ?)
	`, p.IdentityID, p.Name, p.Description, p.Color, p.Order)
	if err != nil {
		return 0, fmt.Errorf("failed to create pillar: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read pillar id: %w", err)
	}
	p.ID = id

	s.publish(storage.TablePillars)
	return id, nil
}

// GetPillar retrieves a pillar by ID, or (nil, nil) if absent.
func (s *SQLiteStorage) GetPillar(ctx context.Context, id int64) (*types.Pillar, error) {
	reactive.Touch(ctx, storage.TablePillars)

	var p types.Pillar
	err := s.db.QueryRowContext(ctx, `
		SELECT id, identity_id, name, description, color, display_order
		FROM pillars
		WHERE id = ?
	`, id).Scan(&p.ID, &p.IdentityID, &p.Name, &p.Description, &p.Color, &p.Order)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pillar: %w", err)
	}
	return &p, nil
}

// ListPillars returns the identity's pillars in display order.
func (s *SQLiteStorage) ListPillars(ctx context.Context, identityID int64) ([]types.Pillar, error) {
	reactive.Touch(ctx, storage.TablePillars)
	if identityID == 0 {
		identityID = identityRowID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, identity_id, name, description, color, display_order
		FROM pillars
		WHERE identity_id = ?
		ORDER BY display_order, id
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pillars: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pillars []types.Pillar
	for rows.Next() {
		var p types.Pillar
		if err := rows.Scan(&p.ID, &p.IdentityID, &p.Name, &p.Description, &p.Color, &p.Order); err != nil {
			return nil, fmt.Errorf("failed to scan pillar: %w", err)
		}
		pillars = append(pillars, p)
	}
	return pillars, rows.Err()
}

// UpdatePillar merges fields into a pillar. Returns ErrNotFound if the
// ID does not exist.
func (s *SQLiteStorage) UpdatePillar(ctx context.Context, id int64, upd types.PillarUpdate) error {
	if upd.Name != nil && *upd.Name == "" {
		return fmt.Errorf("pillar name cannot be empty")
	}

	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var p types.Pillar
		err := conn.QueryRowContext(ctx, `
			SELECT id, identity_id, name, description, color, display_order
			FROM pillars
			WHERE id = ?
		`, id).Scan(&p.ID, &p.IdentityID, &p.Name, &p.Description, &p.Color, &p.Order)
		if err == sql.ErrNoRows {
			return fmt.Errorf("pillar %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load pillar: %w", err)
		}

		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Description != nil {
			p.Description = *upd.Description
		}
		if upd.Color != nil {
			p.Color = *upd.Color
		}
		if upd.Order != nil {
			p.Order = *upd.Order
		}

		_, err = conn.ExecContext(ctx, `
			UPDATE pillars
			SET name = ?, description = ?, color = ?, display_order = ?
			WHERE id = ?
		`, p.Name, p.Description, p.Color, p.Order, id)
		if err != nil {
			return fmt.Errorf("failed to update pillar: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TablePillars)
	return nil
}

// DeletePillar removes the pillar and every standard referencing it in
// one transaction: a pillar must never outlive orphaned standards, and a
// failure leaves both tables untouched.
func (s *SQLiteStorage) DeletePillar(ctx context.Context, id int64) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, `DELETE FROM standards WHERE pillar_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete standards: %w", err)
		}
		res, err := conn.ExecContext(ctx, `DELETE FROM pillars WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete pillar: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("pillar %d: %w", id, storage.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TablePillars, storage.TableStandards)
	return nil
}

// AddStandard inserts a new standard under a pillar. The metric slug is
// derived from the label; an empty label or non-positive target rejects
// the write.
func (s *SQLiteStorage) AddStandard(ctx context.Context, std *types.Standard) (int64, error) {
	std.Metric = types.MetricSlug(std.Label)
	if err := std.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	if err := s.pillarExists(ctx, std.PillarID); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO standards (pillar_id, label, metric, target, unit)
		VALUES (?, ?, ?, ?, ?)
	`, std.PillarID, std.Label, std.Metric, std.Target, std.Unit)
	if err != nil {
		return 0, fmt.Errorf("failed to add standard: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read standard id: %w", err)
	}
	std.ID = id

	s.publish(storage.TableStandards)
	return id, nil
}

// GetStandard retrieves a standard by ID, or (nil, nil) if absent.
func (s *SQLiteStorage) GetStandard(ctx context.Context, id int64) (*types.Standard, error) {
	reactive.Touch(ctx, storage.TableStandards)

	var std types.Standard
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pillar_id, label, metric, target, unit
		FROM standards
		WHERE id = ?
	`, id).Scan(&std.ID, &std.PillarID, &std.Label, &std.Metric, &std.Target, &std.Unit)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get standard: %w", err)
	}
	return &std, nil
}

// ListStandards returns a pillar's standards.
func (s *SQLiteStorage) ListStandards(ctx context.Context, pillarID int64) ([]types.Standard, error) {
	reactive.Touch(ctx, storage.TableStandards)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pillar_id, label, metric, target, unit
		FROM standards
		WHERE pillar_id = ?
		ORDER BY id
	`, pillarID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var standards []types.Standard
	for rows.Next() {
		var std types.Standard
		if err := rows.Scan(&std.ID, &std.PillarID, &std.Label, &std.Metric, &std.Target, &std.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan standard: %w", err)
		}
		standards = append(standards, std)
	}
	return standards, rows.Err()
}

// UpdateStandard merges fields into a standard. A new label re-derives
// the metric slug. Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) UpdateStandard(ctx context.Context, id int64, upd types.StandardUpdate) error {
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var std types.Standard
		err := conn.QueryRowContext(ctx, `
			SELECT id, pillar_id, label, metric, target, unit
			FROM standards
			WHERE id = ?
		`, id).Scan(&std.ID, &std.PillarID, &std.Label, &std.Metric, &std.Target, &std.Unit)
		if err == sql.ErrNoRows {
			return fmt.Errorf("standard %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load standard: %w", err)
		}

		if upd.Label != nil {
			std.Label = *upd.Label
			std.Metric = types.MetricSlug(std.Label)
		}
		if upd.Target != nil {
			std.Target = *upd.Target
		}
		if upd.Unit != nil {
			std.Unit = *upd.Unit
		}
		if err := std.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		_, err = conn.ExecContext(ctx, `
			UPDATE standards
			SET label = ?, metric = ?, target = ?, unit = ?
			WHERE id = ?
		`, std.Label, std.Metric, std.Target, std.Unit, id)
		if err != nil {
			return fmt.Errorf("failed to update standard: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableStandards)
	return nil
}

// DeleteStandard removes a single standard. Independent of the pillar
// cascade. Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) DeleteStandard(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM standards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete standard: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("standard %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableStandards)
	return nil
}
