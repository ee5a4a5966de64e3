// Package player defines the per-owner player account, its inventory, and
// its action-point ledger.
package player

import (
	"time"

	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
)

var (
	// ErrDuplicatePlayer indicates an account already exists for this owner.
	ErrDuplicatePlayer = apperrors.New(apperrors.CodeDuplicatePlayer, "player account already exists for owner")
	// ErrPlayerDefeated indicates the player has no hit points left.
	ErrPlayerDefeated = apperrors.New(apperrors.CodePlayerDefeated, "player is defeated")
)

// Account is a player's combat stats, inventory, and action-point ledger.
// Exactly one account exists per owner identity per game.
type Account struct {
	GameID    string
	Owner     string
	HP        int
	MaxHP     int
	Level     int
	Inventory Inventory
	Ledger    Ledger
	CreatedAt time.Time
	UpdatedAt time.Time
	// Version guards conditional writes; the store bumps it on commit.
	Version uint64
}

// NewAccount creates a player at full health with an empty inventory sized
// by the game's capacity setting and a zero ledger anchored at now.
func NewAccount(gameID, owner string, inventoryCapacity int, now time.Time) Account {
	now = now.UTC()
	return Account{
		GameID:    gameID,
		Owner:     owner,
		HP:        rules.PlayerBaseHP,
		MaxHP:     rules.PlayerBaseHP,
		Level:     rules.PlayerBaseLevel,
		Inventory: NewInventory(inventoryCapacity),
		Ledger:    NewLedger(now),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// Defeated reports whether the player is out of hit points. A defeated
// account persists but cannot attack until healed.
func (a Account) Defeated() bool {
	return a.HP <= 0
}
