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

// identityRowID pins the singleton row. The schema's CHECK (id = 1)
// makes a second row a constraint violation rather than a silent extra.
const identityRowID = 1

// GetIdentity retrieves the singleton identity, or (nil, nil) if the
// user has not created one yet.
func (s *SQLiteStorage) GetIdentity(ctx context.Context) (*types.Identity, error) {
	reactive.Touch(ctx, storage.TableIdentity)

	row := s.db.QueryRowContext(ctx, `
		SELECT id, vision, mission, life_view, work_view, core_values,
		       personality_type, coach_tone, updated_at
		FROM identity
		WHERE id = ?
	`, identityRowID)

	identity, err := scanIdentity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	return identity, nil
}

// SaveIdentity upserts the singleton: creates the row if absent, merges
// the update into it otherwise. UpdatedAt is bumped either way. Returns
// the resulting identity.
func (s *SQLiteStorage) SaveIdentity(ctx context.Context, upd types.IdentityUpdate) (*types.Identity, error) {
	if upd.CoreValues != nil && len(*upd.CoreValues) > types.MaxCoreValues {
		return nil, fmt.Errorf("at most %d core values are allowed", types.MaxCoreValues)
	}

	var result *types.Identity
	err := s.withTx(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, vision, mission, life_view, work_view, core_values,
			       personality_type, coach_tone, updated_at
			FROM identity
			WHERE id = ?
		`, identityRowID)

		existing, err := scanIdentity(row)
		if err == sql.ErrNoRows {
			existing = &types.Identity{ID: identityRowID}
		} else if err != nil {
			return fmt.Errorf("failed to load identity: %w", err)
		}

		applyIdentityUpdate(existing, upd)
		existing.UpdatedAt = time.Now()
		if err := writeIdentity(ctx, conn, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(storage.TableIdentity)
	return result, nil
}

// UpdateIdentity merges fields into the existing singleton and bumps
// UpdatedAt. Returns ErrNotFound if no identity exists yet.
func (s *SQLiteStorage) UpdateIdentity(ctx context.Context, upd types.IdentityUpdate) error {
	if upd.CoreValues != nil && len(*upd.CoreValues) > types.MaxCoreValues {
		return fmt.Errorf("at most %d core values are allowed", types.MaxCoreValues)
	}

	err := s.withTx(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, `
			SELECT id, vision, mission, life_view, work_view, core_values,
			       personality_type, coach_tone, updated_at
			FROM identity
			WHERE id = ?
		`, identityRowID)

		existing, err := scanIdentity(row)
		if err == sql.ErrNoRows {
			return fmt.Errorf("identity: %w", storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to load identity: %w", err)
		}

		applyIdentityUpdate(existing, upd)
		existing.UpdatedAt = time.Now()
		return writeIdentity(ctx, conn, existing)
	})
	if err != nil {
		return err
	}

	s.publish(storage.TableIdentity)
	return nil
}

func applyIdentityUpdate(id *types.Identity, upd types.IdentityUpdate) {
	if upd.Vision != nil {
		id.Vision = *upd.Vision
	}
	if upd.Mission != nil {
		id.Mission = *upd.Mission
	}
	if upd.LifeView != nil {
		id.LifeView = *upd.LifeView
	}
	if upd.WorkView != nil {
		id.WorkView = *upd.WorkView
	}
	if upd.CoreValues != nil {
		id.CoreValues = append([]string(nil), *upd.CoreValues...)
	}
	if upd.PersonalityType != nil {
		id.PersonalityType = *upd.PersonalityType
	}
	if upd.CoachTone != nil {
		id.CoachTone = *upd.CoachTone
	}
}

func writeIdentity(ctx context.Context, conn *sql.Conn, id *types.Identity) error {
	values, err := marshalJSON(id.CoreValues)
	if err != nil {
		return err
	}
	var personality sql.NullString
	if id.PersonalityType != "" {
		personality = sql.NullString{String: id.PersonalityType, Valid: true}
	}

	_, err = conn.ExecContext(ctx, `
		INSERT INTO identity (id, vision, mission, life_view, work_view,
		                      core_values, personality_type, coach_tone, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			vision = excluded.vision,
			mission = excluded.mission,
			life_view = excluded.life_view,
			work_view = excluded.work_view,
			core_values = excluded.core_values,
			personality_type = excluded.personality_type,
			coach_tone = excluded.coach_tone,
			updated_at = excluded.updated_at
	`, id.ID, id.Vision, id.Mission, id.LifeView, id.WorkView,
		values, personality, id.CoachTone, id.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row rowScanner) (*types.Identity, error) {
	var id types.Identity
	var values string
	var personality sql.NullString

	err := row.Scan(&id.ID, &id.Vision, &id.Mission, &id.LifeView, &id.WorkView,
		&values, &personality, &id.CoachTone, &id.UpdatedAt)
	if err != nil {
		return nil, err
	}

	id.CoreValues, err = unmarshalStrings(values)
	if err != nil {
		return nil, err
	}
	if personality.Valid {
		id.PersonalityType = personality.String
	}
	return &id, nil
}
