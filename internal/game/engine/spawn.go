package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/monster"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// SpawnMonster allocates the next monster id from the game's sequence and
// creates a live monster whose stats derive deterministically from that id.
// Any player in the game may trigger a spawn. The id allocation and the
// monster insert commit as one atomic unit, so concurrent spawns can never
// collide on an id: the loser observes a concurrent-modification error and
// retries against the advanced sequence.
func (e *Engine) SpawnMonster(ctx context.Context, gameID, caller string) (m monster.Account, err error) {
	ctx, span := e.startSpan(ctx, "engine.SpawnMonster", gameID, caller)
	defer func() { finishSpan(span, err) }()

	cfg, err := e.store.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return monster.Account{}, game.ErrGameNotFound
		}
		return monster.Account{}, fmt.Errorf("load game %s: %w", gameID, err)
	}

	// Spawns are player actions: the caller needs an account in this game.
	if _, err = e.store.GetPlayer(ctx, gameID, caller); err != nil {
		return monster.Account{}, fmt.Errorf("load player %s: %w", caller, err)
	}

	now := e.now()
	id := cfg.NextMonsterID(now)
	m = monster.Spawn(gameID, id, now)

	if err = e.store.CreateMonster(ctx, m, cfg); err != nil {
		return monster.Account{}, fmt.Errorf("create monster %d: %w", id, err)
	}

	e.journal(ctx, span, storage.TelemetryEvent{
		Operation:  "spawn_monster",
		GameID:     gameID,
		Actor:      caller,
		EntityType: "monster",
		EntityID:   strconv.FormatUint(id, 10),
	}, map[string]any{"hp": m.HP, "level": m.Level})
	return m, nil
}
