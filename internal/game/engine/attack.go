package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/monster"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// AttackResult reports the outcome of one resolved attack.
type AttackResult struct {
	Damage    int
	MonsterHP int
	Killed    bool
	// Loot is the granted item when the attack killed the monster and the
	// attacker had inventory room.
	Loot *player.Item
	// LootDropped reports a kill whose loot was discarded because the
	// attacker's inventory was full.
	LootDropped  bool
	BalanceAfter uint64
}

// AttackMonster resolves one attack: debit the fixed action-point cost,
// apply damage derived from the attacker's level, and on a kill transition
// the monster to its terminal state and grant loot. Loot grants against a
// full inventory are dropped rather than failing the attack, because combat
// resolution must not be blocked by inventory fullness. All writes commit
// atomically; every precondition failure leaves state untouched.
func (e *Engine) AttackMonster(ctx context.Context, gameID, caller string, monsterID uint64) (result AttackResult, err error) {
	ctx, span := e.startSpan(ctx, "engine.AttackMonster", gameID, caller)
	defer func() { finishSpan(span, err) }()

	acct, err := e.store.GetPlayer(ctx, gameID, caller)
	if err != nil {
		return AttackResult{}, fmt.Errorf("load player %s: %w", caller, err)
	}
	m, err := e.store.GetMonster(ctx, gameID, monsterID)
	if err != nil {
		return AttackResult{}, fmt.Errorf("load monster %d: %w", monsterID, err)
	}

	if !m.Alive {
		return AttackResult{}, monster.ErrMonsterDead
	}
	if acct.Defeated() {
		return AttackResult{}, player.ErrPlayerDefeated
	}
	if err = acct.Ledger.Spend(rules.AttackCost); err != nil {
		return AttackResult{}, err
	}

	now := e.now()
	damage := rules.Damage(acct.Level)
	killed, err := m.ApplyDamage(damage, caller, now)
	if err != nil {
		return AttackResult{}, err
	}

	result = AttackResult{
		Damage:       damage,
		MonsterHP:    m.HP,
		Killed:       killed,
		BalanceAfter: acct.Ledger.Balance,
	}

	if killed {
		item := player.Item{Kind: m.Loot, MonsterID: m.ID, AcquiredAt: now}
		switch appendErr := acct.Inventory.Append(item); {
		case appendErr == nil:
			result.Loot = &item
		case errors.Is(appendErr, player.ErrCapacityExceeded):
			// Designed soft-drop: the kill stands, the loot does not.
			result.LootDropped = true
		default:
			return AttackResult{}, appendErr
		}
	}

	acct.UpdatedAt = now
	if err = e.store.CommitAttack(ctx, acct, m); err != nil {
		return AttackResult{}, fmt.Errorf("commit attack on monster %d: %w", monsterID, err)
	}

	e.journal(ctx, span, storage.TelemetryEvent{
		Operation:  "attack_monster",
		GameID:     gameID,
		Actor:      caller,
		EntityType: "monster",
		EntityID:   strconv.FormatUint(monsterID, 10),
	}, map[string]any{
		"damage":       damage,
		"monster_hp":   m.HP,
		"killed":       killed,
		"loot_dropped": result.LootDropped,
	})
	return result, nil
}
