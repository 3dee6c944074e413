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

// SaveReflection upserts by (type, date): saving a reflection for a slot
// that already has one replaces its answers in place, preserving the row
// ID and CreatedAt.
func (s *SQLiteStorage) SaveReflection(ctx context.Context, r *types.Reflection) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}
	answers, err := marshalJSON(r.Answers)
	if err != nil {
		return 0, err
	}

	err = s.withTx(ctx, func(conn *sql.Conn) error {
		var existingID int64
		var createdAt time.Time
		err := conn.QueryRowContext(ctx, `
			SELECT id, created_at FROM reflections WHERE type = ? AND date = ?
		`, r.Type, r.Date).Scan(&existingID, &createdAt)
		switch {
		case err == sql.ErrNoRows:
			r.CreatedAt = time.Now()
			res, err := conn.ExecContext(ctx, `
				INSERT INTO reflections (type, date, answers, energy_level, mood, note, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, r.Type, r.Date, answers, r.EnergyLevel, r.Mood, r.Note, r.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert reflection: %w", err)
			}
			r.ID, err = res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read reflection id: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("failed to look up reflection: %w", err)
		default:
			_, err = conn.ExecContext(ctx, `
				UPDATE reflections SET answers = ?, energy_level = ?, mood = ?, note = ?
				WHERE id = ?
			`, answers, r.EnergyLevel, r.Mood, r.Note, existingID)
			if err != nil {
				return fmt.Errorf("failed to update reflection: %w", err)
			}
			r.ID = existingID
			r.CreatedAt = createdAt
			return nil
		}
	})
	if err != nil {
		return 0, err
	}

	s.publish(storage.TableReflections)
	return r.ID, nil
}

// GetReflection retrieves the reflection for one slot on one day, or
// (nil, nil) if absent.
func (s *SQLiteStorage) GetReflection(ctx context.Context, typ types.ReflectionType, date types.Day) (*types.Reflection, error) {
	reactive.Touch(ctx, storage.TableReflections)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, date, answers, energy_level, mood, note, created_at
		FROM reflections
		WHERE type = ? AND date = ?
	`, typ, date)

	r, err := scanReflection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reflection: %w", err)
	}
	return r, nil
}

// ListReflections returns reflections matching the filter, newest day
// first.
func (s *SQLiteStorage) ListReflections(ctx context.Context, filter types.ReflectionFilter) ([]types.Reflection, error) {
	reactive.Touch(ctx, storage.TableReflections)

	query := `
		SELECT id, type, date, answers, energy_level, mood, note, created_at
		FROM reflections`
	var conds []string
	var args []any
	if filter.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, *filter.Type)
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
	query += " ORDER BY date DESC, type"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reflections []types.Reflection
	for rows.Next() {
		r, err := scanReflection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reflection: %w", err)
		}
		reflections = append(reflections, *r)
	}
	return reflections, rows.Err()
}

// DeleteReflection removes a reflection. Returns ErrNotFound if the ID
// does not exist.
func (s *SQLiteStorage) DeleteReflection(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reflections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reflection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reflection %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableReflections)
	return nil
}

func scanReflection(row rowScanner) (*types.Reflection, error) {
	var r types.Reflection
	var answers string

	err := row.Scan(&r.ID, &r.Type, &r.Date, &answers, &r.EnergyLevel, &r.Mood, &r.Note, &r.CreatedAt)
	if err != nil {
		return nil, err
	}

	r.Answers, err = unmarshalStringMap(answers)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
