package player

import (
	"fmt"
	"time"

	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
)

// ErrCapacityExceeded indicates an append against a full inventory. Combat
// loot grants soft-drop instead of surfacing this; direct grant paths fail
// hard with it.
var ErrCapacityExceeded = apperrors.New(apperrors.CodeCapacityExceeded, "inventory is at capacity")

// Item is a single inventory record. MonsterID tracks provenance for loot.
type Item struct {
	Kind       rules.ItemKind `json:"kind"`
	MonsterID  uint64         `json:"monster_id"`
	AcquiredAt time.Time      `json:"acquired_at"`
}

// Inventory is an ordered, fixed-capacity bag of items. Capacity comes from
// the game config at player creation and never changes afterwards.
type Inventory struct {
	Capacity int
	Items    []Item
}

// NewInventory creates an empty inventory with the given capacity.
func NewInventory(capacity int) Inventory {
	return Inventory{Capacity: capacity}
}

// Len returns the number of held items.
func (inv Inventory) Len() int {
	return len(inv.Items)
}

// Full reports whether another item would exceed capacity.
func (inv Inventory) Full() bool {
	return len(inv.Items) >= inv.Capacity
}

// Append adds an item, failing with ErrCapacityExceeded when full.
func (inv *Inventory) Append(item Item) error {
	if inv.Full() {
		return apperrors.WithMetadata(apperrors.CodeCapacityExceeded, "inventory is at capacity",
			map[string]string{"capacity": fmt.Sprintf("%d", inv.Capacity)})
	}
	inv.Items = append(inv.Items, item)
	return nil
}
