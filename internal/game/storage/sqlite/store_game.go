package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// CreateGame inserts a fresh game config. A second create for the same key
// fails with storage.ErrGameExists and leaves the existing record untouched.
func (s *Store) CreateGame(ctx context.Context, cfg game.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(cfg.ID) == "" {
		return fmt.Errorf("game id is required")
	}

	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO games (id, admin, max_items_per_player, monster_sequence, player_count, created_at, updated_at, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING
`,
		cfg.ID,
		cfg.Admin,
		int64(cfg.MaxItemsPerPlayer),
		int64(cfg.MonsterSequence),
		int64(cfg.PlayerCount),
		toMillis(cfg.CreatedAt),
		toMillis(cfg.UpdatedAt),
		int64(cfg.Version),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert game rows: %w", err)
	}
	if affected == 0 {
		return storage.ErrGameExists
	}
	return nil
}

// GetGame fetches a game config by its game key.
func (s *Store) GetGame(ctx context.Context, id string) (game.Config, error) {
	if err := ctx.Err(); err != nil {
		return game.Config{}, err
	}
	if s == nil || s.sqlDB == nil {
		return game.Config{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return game.Config{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, admin, max_items_per_player, monster_sequence, player_count, created_at, updated_at, version
FROM games WHERE id = ?
`, id)

	var cfg game.Config
	var maxItems, monsterSeq, playerCount, createdAt, updatedAt, version int64
	if err := row.Scan(&cfg.ID, &cfg.Admin, &maxItems, &monsterSeq, &playerCount, &createdAt, &updatedAt, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return game.Config{}, storage.ErrNotFound
		}
		return game.Config{}, fmt.Errorf("get game: %w", err)
	}

	cfg.MaxItemsPerPlayer = int(maxItems)
	cfg.MonsterSequence = uint64(monsterSeq)
	cfg.PlayerCount = uint64(playerCount)
	cfg.CreatedAt = fromMillis(createdAt)
	cfg.UpdatedAt = fromMillis(updatedAt)
	cfg.Version = uint64(version)
	return cfg, nil
}

// advanceGameTx conditionally writes the game counters inside tx. The stored
// version must still match cfg.Version or the caller's operation lost a race.
func advanceGameTx(ctx context.Context, tx *sql.Tx, cfg game.Config) error {
	res, err := tx.ExecContext(ctx, `
UPDATE games
SET monster_sequence = ?, player_count = ?, updated_at = ?, version = version + 1
WHERE id = ? AND version = ?
`,
		int64(cfg.MonsterSequence),
		int64(cfg.PlayerCount),
		toMillis(cfg.UpdatedAt),
		cfg.ID,
		int64(cfg.Version),
	)
	if err != nil {
		return fmt.Errorf("advance game counters: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance game counters rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM games WHERE id = ?", cfg.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("check game presence: %w", err)
		}
		return storage.ErrVersionConflict
	}
	return nil
}
