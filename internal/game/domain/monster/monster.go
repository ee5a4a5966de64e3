// Package monster defines spawned monster combat state.
package monster

import (
	"time"

	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
)

// ErrMonsterDead indicates an attack against a terminal monster account.
var ErrMonsterDead = apperrors.New(apperrors.CodeMonsterDead, "monster is already dead")

// Account is a spawned monster's combat state. Once Alive flips to false
// the account is terminal: no further hp mutation is allowed.
type Account struct {
	GameID string
	// ID is the sequence number allocated from the game config.
	ID    uint64
	HP    int
	MaxHP int
	Level int
	// Loot is the reward granted to the killing player, fixed at spawn.
	Loot      rules.ItemKind
	Alive     bool
	SpawnedAt time.Time
	UpdatedAt time.Time
	SlainBy   string
	SlainAt   *time.Time
	// Version guards conditional writes; the store bumps it on commit.
	Version uint64
}

// Spawn creates a live monster whose stats and loot derive deterministically
// from its sequence id.
func Spawn(gameID string, id uint64, now time.Time) Account {
	hp, level := rules.MonsterStats(id)
	return Account{
		GameID:    gameID,
		ID:        id,
		HP:        hp,
		MaxHP:     hp,
		Level:     level,
		Loot:      rules.LootFor(id),
		Alive:     true,
		SpawnedAt: now.UTC(),
		UpdatedAt: now.UTC(),
		Version:   1,
	}
}

// ApplyDamage subtracts damage from hp, flooring at zero. When hp reaches
// zero the monster transitions to its terminal dead state and the attacker
// is recorded as the slayer. Returns whether this hit was the kill.
func (m *Account) ApplyDamage(damage int, attacker string, now time.Time) (killed bool, err error) {
	if !m.Alive {
		return false, ErrMonsterDead
	}
	if damage < 0 {
		damage = 0
	}

	m.UpdatedAt = now.UTC()
	m.HP -= damage
	if m.HP > 0 {
		return false, nil
	}

	m.HP = 0
	m.Alive = false
	m.SlainBy = attacker
	slainAt := now.UTC()
	m.SlainAt = &slainAt
	return true, nil
}
