package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/monster"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

// CreateMonster inserts the monster and advances the game's monster sequence
// in one transaction, so no two spawns can reuse an id.
func (s *Store) CreateMonster(ctx context.Context, m monster.Account, cfg game.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(m.GameID) == "" {
		return fmt.Errorf("game id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		// Advance the sequence first: losing the id race must abort before
		// the insert can collide on the primary key.
		if err := advanceGameTx(ctx, tx, cfg); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO monsters (game_id, id, hp, max_hp, level, loot_kind, alive, slain_by, spawned_at, slain_at, updated_at, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
			m.GameID,
			int64(m.ID),
			int64(m.HP),
			int64(m.MaxHP),
			int64(m.Level),
			string(m.Loot),
			boolToInt(m.Alive),
			m.SlainBy,
			toMillis(m.SpawnedAt),
			toNullMillis(m.SlainAt),
			toMillis(m.SpawnedAt),
			int64(m.Version),
		); err != nil {
			return fmt.Errorf("insert monster: %w", err)
		}
		return nil
	})
}

// GetMonster fetches a monster account by game key and sequence id.
func (s *Store) GetMonster(ctx context.Context, gameID string, id uint64) (monster.Account, error) {
	if err := ctx.Err(); err != nil {
		return monster.Account{}, err
	}
	if s == nil || s.sqlDB == nil {
		return monster.Account{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(gameID) == "" {
		return monster.Account{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT game_id, id, hp, max_hp, level, loot_kind, alive, slain_by, spawned_at, slain_at, updated_at, version
FROM monsters WHERE game_id = ? AND id = ?
`, gameID, int64(id))

	var m monster.Account
	var monsterID, hp, maxHP, level, alive, spawnedAt, updatedAt, version int64
	var lootKind string
	var slainAt sql.NullInt64
	if err := row.Scan(&m.GameID, &monsterID, &hp, &maxHP, &level, &lootKind, &alive, &m.SlainBy, &spawnedAt, &slainAt, &updatedAt, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return monster.Account{}, storage.ErrNotFound
		}
		return monster.Account{}, fmt.Errorf("get monster: %w", err)
	}

	m.ID = uint64(monsterID)
	m.HP = int(hp)
	m.MaxHP = int(maxHP)
	m.Level = int(level)
	m.Loot = rules.ItemKind(lootKind)
	m.Alive = alive != 0
	m.SpawnedAt = fromMillis(spawnedAt)
	m.UpdatedAt = fromMillis(updatedAt)
	m.SlainAt = fromNullMillis(slainAt)
	m.Version = uint64(version)
	return m, nil
}

// CommitAttack writes the attacker and the monster in one transaction.
// Either record failing its version check aborts the whole commit, so a
// concurrent attack can never be silently lost.
func (s *Store) CommitAttack(ctx context.Context, acct player.Account, m monster.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := putPlayerTx(ctx, tx, acct); err != nil {
			return err
		}
		return putMonsterTx(ctx, tx, m)
	})
}

func putMonsterTx(ctx context.Context, tx *sql.Tx, m monster.Account) error {
	res, err := tx.ExecContext(ctx, `
UPDATE monsters
SET hp = ?, alive = ?, slain_by = ?, slain_at = ?, updated_at = ?, version = version + 1
WHERE game_id = ? AND id = ? AND version = ?
`,
		int64(m.HP),
		boolToInt(m.Alive),
		m.SlainBy,
		toNullMillis(m.SlainAt),
		toMillis(m.UpdatedAt),
		m.GameID,
		int64(m.ID),
		int64(m.Version),
	)
	if err != nil {
		return fmt.Errorf("update monster: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update monster rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM monsters WHERE game_id = ? AND id = ?", m.GameID, int64(m.ID)).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("check monster presence: %w", err)
		}
		return storage.ErrVersionConflict
	}
	return nil
}
