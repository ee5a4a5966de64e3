package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

func marshalInventory(inv player.Inventory) (string, error) {
	items := inv.Items
	if items == nil {
		items = []player.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal inventory: %w", err)
	}
	return string(raw), nil
}

func unmarshalInventory(raw string, capacity int) (player.Inventory, error) {
	inv := player.Inventory{Capacity: capacity}
	if strings.TrimSpace(raw) == "" {
		return inv, nil
	}
	if err := json.Unmarshal([]byte(raw), &inv.Items); err != nil {
		return player.Inventory{}, fmt.Errorf("unmarshal inventory: %w", err)
	}
	return inv, nil
}

// CreatePlayer inserts the account and advances the game's player counter in
// one transaction. A duplicate owner fails with storage.ErrPlayerExists; a
// stale game version fails with storage.ErrVersionConflict.
func (s *Store) CreatePlayer(ctx context.Context, acct player.Account, cfg game.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(acct.GameID) == "" || strings.TrimSpace(acct.Owner) == "" {
		return fmt.Errorf("game id and owner are required")
	}

	inventoryJSON, err := marshalInventory(acct.Inventory)
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO players (game_id, owner, hp, max_hp, level, action_points, last_collected_at, inventory_capacity, inventory_json, created_at, updated_at, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id, owner) DO NOTHING
`,
			acct.GameID,
			acct.Owner,
			int64(acct.HP),
			int64(acct.MaxHP),
			int64(acct.Level),
			int64(acct.Ledger.Balance),
			toMillis(acct.Ledger.LastCollectedAt),
			int64(acct.Inventory.Capacity),
			inventoryJSON,
			toMillis(acct.CreatedAt),
			toMillis(acct.UpdatedAt),
			int64(acct.Version),
		)
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert player rows: %w", err)
		}
		if affected == 0 {
			return storage.ErrPlayerExists
		}

		return advanceGameTx(ctx, tx, cfg)
	})
}

// GetPlayer fetches a player account by game key and owner identity.
func (s *Store) GetPlayer(ctx context.Context, gameID, owner string) (player.Account, error) {
	if err := ctx.Err(); err != nil {
		return player.Account{}, err
	}
	if s == nil || s.sqlDB == nil {
		return player.Account{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(gameID) == "" || strings.TrimSpace(owner) == "" {
		return player.Account{}, fmt.Errorf("game id and owner are required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT game_id, owner, hp, max_hp, level, action_points, last_collected_at, inventory_capacity, inventory_json, created_at, updated_at, version
FROM players WHERE game_id = ? AND owner = ?
`, gameID, owner)

	var acct player.Account
	var hp, maxHP, level, balance, lastCollected, capacity, createdAt, updatedAt, version int64
	var inventoryJSON string
	if err := row.Scan(&acct.GameID, &acct.Owner, &hp, &maxHP, &level, &balance, &lastCollected, &capacity, &inventoryJSON, &createdAt, &updatedAt, &version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return player.Account{}, storage.ErrNotFound
		}
		return player.Account{}, fmt.Errorf("get player: %w", err)
	}

	inv, err := unmarshalInventory(inventoryJSON, int(capacity))
	if err != nil {
		return player.Account{}, err
	}

	acct.HP = int(hp)
	acct.MaxHP = int(maxHP)
	acct.Level = int(level)
	acct.Ledger = player.Ledger{
		Balance:         uint64(balance),
		LastCollectedAt: fromMillis(lastCollected),
	}
	acct.Inventory = inv
	acct.CreatedAt = fromMillis(createdAt)
	acct.UpdatedAt = fromMillis(updatedAt)
	acct.Version = uint64(version)
	return acct, nil
}

// PutPlayer conditionally writes the account. The stored version must still
// match acct.Version or storage.ErrVersionConflict is returned.
func (s *Store) PutPlayer(ctx context.Context, acct player.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return putPlayerTx(ctx, tx, acct)
	})
}

func putPlayerTx(ctx context.Context, tx *sql.Tx, acct player.Account) error {
	inventoryJSON, err := marshalInventory(acct.Inventory)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
UPDATE players
SET hp = ?, max_hp = ?, level = ?, action_points = ?, last_collected_at = ?, inventory_json = ?, updated_at = ?, version = version + 1
WHERE game_id = ? AND owner = ? AND version = ?
`,
		int64(acct.HP),
		int64(acct.MaxHP),
		int64(acct.Level),
		int64(acct.Ledger.Balance),
		toMillis(acct.Ledger.LastCollectedAt),
		inventoryJSON,
		toMillis(acct.UpdatedAt),
		acct.GameID,
		acct.Owner,
		int64(acct.Version),
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT 1 FROM players WHERE game_id = ? AND owner = ?", acct.GameID, acct.Owner).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("check player presence: %w", err)
		}
		return storage.ErrVersionConflict
	}
	return nil
}
