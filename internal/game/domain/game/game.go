// Package game defines the per-instance game configuration record.
package game

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
)

var (
	// ErrInvalidConfig indicates a rejected capacity argument.
	ErrInvalidConfig = apperrors.New(apperrors.CodeInvalidConfig, "max items per player must be between 1 and 255")
	// ErrAlreadyInitialized indicates a second create for the same game key.
	ErrAlreadyInitialized = apperrors.New(apperrors.CodeAlreadyInitialized, "game is already initialized")
	// ErrGameNotFound indicates a missing or uninitialized game config.
	ErrGameNotFound = apperrors.New(apperrors.CodeGameNotFound, "game config not found")
)

// Config is the per-game-instance configuration record. It is immutable
// after creation except for the counters, which only increase.
type Config struct {
	ID                string
	Admin             string
	MaxItemsPerPlayer int
	// MonsterSequence is the next monster id to allocate.
	MonsterSequence uint64
	PlayerCount     uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	// Version guards conditional writes; the store bumps it on commit.
	Version uint64
}

// New validates the capacity argument and builds a fresh game config with
// zeroed counters.
func New(id, admin string, maxItemsPerPlayer int, now time.Time) (Config, error) {
	if strings.TrimSpace(id) == "" {
		return Config{}, fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(admin) == "" {
		return Config{}, fmt.Errorf("admin identity is required")
	}
	if maxItemsPerPlayer <= 0 || maxItemsPerPlayer > rules.MaxItemsCeiling {
		return Config{}, apperrors.WithMetadata(apperrors.CodeInvalidConfig,
			"max items per player must be between 1 and 255",
			map[string]string{"max_items_per_player": fmt.Sprintf("%d", maxItemsPerPlayer)})
	}

	now = now.UTC()
	return Config{
		ID:                id,
		Admin:             admin,
		MaxItemsPerPlayer: maxItemsPerPlayer,
		CreatedAt:         now,
		UpdatedAt:         now,
		Version:           1,
	}, nil
}

// NextMonsterID returns the id for the next spawn and advances the sequence.
// The caller must persist the config in the same transaction as the monster
// record so ids are never reused.
func (c *Config) NextMonsterID(now time.Time) uint64 {
	id := c.MonsterSequence
	c.MonsterSequence++
	c.UpdatedAt = now.UTC()
	return id
}

// RecordPlayerJoin advances the player counter.
func (c *Config) RecordPlayerJoin(now time.Time) {
	c.PlayerCount++
	c.UpdatedAt = now.UTC()
}
