package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aretehq/arete/internal/reactive"
	"github.com/aretehq/arete/internal/storage"
	"github.com/aretehq/arete/internal/types"
)

// SeedResources bulk-inserts the default library, but only when the
// table is empty: any existing rows make the whole call a no-op, so it
// is safe to run on every application start. Returns the number
// inserted.
func (s *SQLiteStorage) SeedResources(ctx context.Context, defaults []types.Resource) (int, error) {
	for i := range defaults {
		if err := defaults[i].Validate(); err != nil {
			return 0, fmt.Errorf("validation failed for resource %q: %w", defaults[i].Title, err)
		}
	}

	inserted := 0
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var count int
		if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM resources`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count resources: %w", err)
		}
		if count > 0 {
			return nil
		}

		for i := range defaults {
			r := &defaults[i]
			id, err := insertResource(ctx, conn, r)
			if err != nil {
				return err
			}
			r.ID = id
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		s.publish(storage.TableResources)
	}
	return inserted, nil
}

// CreateResource inserts a single resource and returns its
// store-assigned ID.
func (s *SQLiteStorage) CreateResource(ctx context.Context, r *types.Resource) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	var id int64
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		var err error
		id, err = insertResource(ctx, conn, r)
		return err
	})
	if err != nil {
		return 0, err
	}
	r.ID = id

	s.publish(storage.TableResources)
	return id, nil
}

// GetResource retrieves a resource by ID, or (nil, nil) if absent.
func (s *SQLiteStorage) GetResource(ctx context.Context, id int64) (*types.Resource, error) {
	reactive.Touch(ctx, storage.TableResources)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, author, type, summary, key_principles, relevant_pillar_ids, unlocked_at
		FROM resources
		WHERE id = ?
	`, id)

	r, err := scanResource(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return r, nil
}

// ListResources returns the whole library in insertion order.
func (s *SQLiteStorage) ListResources(ctx context.Context) ([]types.Resource, error) {
	reactive.Touch(ctx, storage.TableResources)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, type, summary, key_principles, relevant_pillar_ids, unlocked_at
		FROM resources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var resources []types.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, *r)
	}
	return resources, rows.Err()
}

// UnlockResource stamps UnlockedAt to now. Unlocking an already-unlocked
// resource re-stamps the timestamp, which is acceptable rather than an
// error. Returns ErrNotFound if the ID does not exist.
func (s *SQLiteStorage) UnlockResource(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE resources SET unlocked_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to unlock resource: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resource %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableResources)
	return nil
}

// DeleteResource removes a resource. Returns ErrNotFound if the ID does
// not exist.
func (s *SQLiteStorage) DeleteResource(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("resource %d: %w", id, storage.ErrNotFound)
	}

	s.publish(storage.TableResources)
	return nil
}

func insertResource(ctx context.Context, conn *sql.Conn, r *types.Resource) (int64, error) {
	principles, err := marshalJSON(r.KeyPrinciples)
	if err != nil {
		return 0, err
	}
	pillarIDs, err := marshalJSON(r.RelevantPillarIDs)
	if err != nil {
		return 0, err
	}
	var unlockedAt sql.NullTime
	if r.UnlockedAt != nil {
		unlockedAt = sql.NullTime{Time: *r.UnlockedAt, Valid: true}
	}

	res, err := conn.ExecContext(ctx, `
		INSERT INTO resources (title, author, type, summary, key_principles, relevant_pillar_ids, unlocked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Title, r.Author, r.Type, r.Summary, principles, pillarIDs, unlockedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert resource: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read resource id: %w", err)
	}
	return id, nil
}

func scanResource(row rowScanner) (*types.Resource, error) {
	var r types.Resource
	var principles, pillarIDs string
	var unlockedAt sql.NullTime

	err := row.Scan(&r.ID, &r.Title, &r.Author, &r.Type, &r.Summary,
		&principles, &pillarIDs, &unlockedAt)
	if err != nil {
		return nil, err
	}

	r.KeyPrinciples, err = unmarshalStrings(principles)
	if err != nil {
		return nil, err
	}
	r.RelevantPillarIDs, err = unmarshalInt64s(pillarIDs)
	if err != nil {
		return nil, err
	}
	if unlockedAt.Valid {
		r.UnlockedAt = &unlockedAt.Time
	}
	return &r, nil
}
