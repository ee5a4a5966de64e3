package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// CreateGame initializes the game config for a fresh game key. The caller
// becomes the admin. A second create for the same key fails with the
// already-initialized error and leaves the existing config untouched.
func (e *Engine) CreateGame(ctx context.Context, gameID, admin string, maxItemsPerPlayer int) (cfg game.Config, err error) {
	ctx, span := e.startSpan(ctx, "engine.CreateGame", gameID, admin)
	defer func() { finishSpan(span, err) }()

	cfg, err = game.New(gameID, admin, maxItemsPerPlayer, e.now())
	if err != nil {
		return game.Config{}, err
	}

	if err = e.store.CreateGame(ctx, cfg); err != nil {
		return game.Config{}, fmt.Errorf("create game %s: %w", gameID, err)
	}

	e.journal(ctx, span, storage.TelemetryEvent{
		Operation: "create_game",
		GameID:    gameID,
		Actor:     admin,
	}, map[string]any{"max_items_per_player": maxItemsPerPlayer})
	return cfg, nil
}

// CreatePlayer creates the caller's player account in an existing game and
// advances the game's player counter. Exactly one account may exist per
// owner identity per game.
func (e *Engine) CreatePlayer(ctx context.Context, gameID, owner string) (acct player.Account, err error) {
	ctx, span := e.startSpan(ctx, "engine.CreatePlayer", gameID, owner)
	defer func() { finishSpan(span, err) }()

	cfg, err := e.store.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return player.Account{}, game.ErrGameNotFound
		}
		return player.Account{}, fmt.Errorf("load game %s: %w", gameID, err)
	}

	now := e.now()
	acct = player.NewAccount(gameID, owner, cfg.MaxItemsPerPlayer, now)
	cfg.RecordPlayerJoin(now)

	if err = e.store.CreatePlayer(ctx, acct, cfg); err != nil {
		return player.Account{}, fmt.Errorf("create player %s: %w", owner, err)
	}

	e.journal(ctx, span, storage.TelemetryEvent{
		Operation:  "create_player",
		GameID:     gameID,
		Actor:      owner,
		EntityType: "player",
		EntityID:   owner,
	}, map[string]any{"player_count": strconv.FormatUint(cfg.PlayerCount, 10)})
	return acct, nil
}
