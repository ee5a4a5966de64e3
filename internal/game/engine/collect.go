package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// CollectResult reports an action-point accrual.
type CollectResult struct {
	Accrued uint64
	Balance uint64
}

// CollectActionPoints credits the caller's regeneration for the time elapsed
// since the last accrual and advances the accrual anchor to now. This is the
// system's only faucet for action points. A call with no elapsed time is a
// designed no-op that succeeds with zero accrual, so retries and replays of
// the same now are always safe. A zero now uses the engine clock.
func (e *Engine) CollectActionPoints(ctx context.Context, gameID, owner string, now time.Time) (result CollectResult, err error) {
	ctx, span := e.startSpan(ctx, "engine.CollectActionPoints", gameID, owner)
	defer func() { finishSpan(span, err) }()

	if now.IsZero() {
		now = e.now()
	}
	now = now.UTC()

	acct, err := e.store.GetPlayer(ctx, gameID, owner)
	if err != nil {
		return CollectResult{}, fmt.Errorf("load player %s: %w", owner, err)
	}

	anchorBefore := acct.Ledger.LastCollectedAt
	accrued := acct.Ledger.Accrue(now)
	result = CollectResult{Accrued: accrued, Balance: acct.Ledger.Balance}

	// Nothing elapsed, nothing accrued: succeed without touching storage.
	if acct.Ledger.LastCollectedAt.Equal(anchorBefore) {
		return result, nil
	}

	acct.UpdatedAt = now
	if err = e.store.PutPlayer(ctx, acct); err != nil {
		return CollectResult{}, fmt.Errorf("commit collect for %s: %w", owner, err)
	}

	e.journal(ctx, span, storage.TelemetryEvent{
		Operation:  "collect_action_points",
		GameID:     gameID,
		Actor:      owner,
		EntityType: "player",
		EntityID:   owner,
	}, map[string]any{"accrued": accrued, "balance": acct.Ledger.Balance})
	return result, nil
}
