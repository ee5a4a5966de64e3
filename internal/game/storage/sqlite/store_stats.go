package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// GetGameStatistics returns aggregate counters for one game.
func (s *Store) GetGameStatistics(ctx context.Context, gameID string) (storage.GameStatistics, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameStatistics{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GameStatistics{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(gameID) == "" {
		return storage.GameStatistics{}, fmt.Errorf("game id is required")
	}

	var stats storage.GameStatistics
	if err := s.sqlDB.QueryRowContext(ctx,
		"SELECT player_count FROM games WHERE id = ?", gameID,
	).Scan(&stats.PlayerCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.GameStatistics{}, storage.ErrNotFound
		}
		return storage.GameStatistics{}, fmt.Errorf("count players: %w", err)
	}

	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN alive = 0 THEN 1 ELSE 0 END), 0)
FROM monsters WHERE game_id = ?
`, gameID).Scan(&stats.MonstersSpawned, &stats.MonstersSlain); err != nil {
		return storage.GameStatistics{}, fmt.Errorf("count monsters: %w", err)
	}

	if err := s.sqlDB.QueryRowContext(ctx, `
SELECT COALESCE(SUM(json_array_length(inventory_json)), 0)
FROM players WHERE game_id = ?
`, gameID).Scan(&stats.ItemsHeld); err != nil {
		return storage.GameStatistics{}, fmt.Errorf("count items: %w", err)
	}

	return stats, nil
}
