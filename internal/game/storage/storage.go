// Package storage defines the persistence boundary for game state. Each
// entity is a separately addressable record: the game config by its game
// key, players by (game, owner), monsters by (game, sequence id).
package storage

import (
	"context"
	"time"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/monster"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use this to differentiate legitimate "no such entity" states from
// transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrVersionConflict indicates a conditional write lost an optimistic
// concurrency race: the record changed since it was read. The operation had
// no effect and is safe to retry blindly.
var ErrVersionConflict = apperrors.New(apperrors.CodeConcurrentModification, "record changed since read")

// ErrGameExists indicates a create against an already-initialized game key.
var ErrGameExists = apperrors.New(apperrors.CodeAlreadyInitialized, "game is already initialized")

// ErrPlayerExists indicates a create against an owner who already has an
// account in this game.
var ErrPlayerExists = apperrors.New(apperrors.CodeDuplicatePlayer, "player account already exists for owner")

// GameStore owns the singleton game config record per game key.
type GameStore interface {
	// CreateGame inserts a fresh config, failing with ErrGameExists when
	// the key is already initialized.
	CreateGame(ctx context.Context, cfg game.Config) error
	GetGame(ctx context.Context, id string) (game.Config, error)
}

// PlayerStore owns player account records keyed by (game, owner).
type PlayerStore interface {
	// CreatePlayer inserts the account and commits the game's player-count
	// advance in the same transaction. Fails with ErrPlayerExists on a
	// duplicate owner and ErrVersionConflict when the game config moved.
	CreatePlayer(ctx context.Context, acct player.Account, cfg game.Config) error
	GetPlayer(ctx context.Context, gameID, owner string) (player.Account, error)
	// PutPlayer conditionally writes the account: the stored version must
	// still match acct.Version or ErrVersionConflict is returned.
	PutPlayer(ctx context.Context, acct player.Account) error
}

// MonsterStore owns monster account records keyed by (game, sequence id).
type MonsterStore interface {
	// CreateMonster inserts the monster and commits the game's sequence
	// advance in the same transaction, so ids are never reused even under
	// concurrent spawns. Fails with ErrVersionConflict when the game
	// config moved since it was read.
	CreateMonster(ctx context.Context, m monster.Account, cfg game.Config) error
	GetMonster(ctx context.Context, gameID string, id uint64) (monster.Account, error)
	// CommitAttack writes the attacker and the monster in one transaction.
	// Either record failing its version check aborts the whole commit with
	// ErrVersionConflict.
	CommitAttack(ctx context.Context, acct player.Account, m monster.Account) error
}

// TelemetryEvent captures one committed operation for audits.
type TelemetryEvent struct {
	Timestamp      time.Time
	Operation      string
	Severity       string
	GameID         string
	Actor          string
	EntityType     string
	EntityID       string
	AttributesJSON []byte
}

// TelemetryStore persists the append-only operation journal.
type TelemetryStore interface {
	AppendTelemetryEvent(ctx context.Context, evt TelemetryEvent) error
}

// GameStatistics contains per-game aggregate counters.
type GameStatistics struct {
	PlayerCount     int64
	MonstersSpawned int64
	MonstersSlain   int64
	ItemsHeld       int64
}

// StatisticsStore centralizes aggregate count queries.
type StatisticsStore interface {
	GetGameStatistics(ctx context.Context, gameID string) (GameStatistics, error)
}

// Store is the composite persistence interface the engine runs against.
type Store interface {
	GameStore
	PlayerStore
	MonsterStore
	TelemetryStore
	StatisticsStore
	Close() error
}
