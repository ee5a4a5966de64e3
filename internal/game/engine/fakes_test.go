package engine

import (
	"context"
	"fmt"

	"github.com/ngocht-dev/anchor-game/internal/game/domain/game"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/monster"
	"github.com/ngocht-dev/anchor-game/internal/game/domain/player"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
)

// fakeStore is an in-memory storage.Store that mirrors the sqlite store's
// version-guard semantics, with error injection for conflict paths.
type fakeStore struct {
	games    map[string]game.Config
	players  map[string]player.Account
	monsters map[string]monster.Account

	telemetry []storage.TelemetryEvent

	putPlayerCalls int

	failCommitAttack error
	failPutPlayer    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:    map[string]game.Config{},
		players:  map[string]player.Account{},
		monsters: map[string]monster.Account{},
	}
}

func playerKey(gameID, owner string) string {
	return gameID + "/" + owner
}

func monsterKey(gameID string, id uint64) string {
	return fmt.Sprintf("%s/%d", gameID, id)
}

func (f *fakeStore) CreateGame(_ context.Context, cfg game.Config) error {
	if _, ok := f.games[cfg.ID]; ok {
		return storage.ErrGameExists
	}
	f.games[cfg.ID] = cfg
	return nil
}

func (f *fakeStore) GetGame(_ context.Context, id string) (game.Config, error) {
	cfg, ok := f.games[id]
	if !ok {
		return game.Config{}, storage.ErrNotFound
	}
	return cfg, nil
}

// advanceGame applies the same conditional-write rule as the sqlite store.
func (f *fakeStore) advanceGame(cfg game.Config) error {
	stored, ok := f.games[cfg.ID]
	if !ok {
		return storage.ErrNotFound
	}
	if stored.Version != cfg.Version {
		return storage.ErrVersionConflict
	}
	cfg.Version++
	f.games[cfg.ID] = cfg
	return nil
}

func (f *fakeStore) CreatePlayer(_ context.Context, acct player.Account, cfg game.Config) error {
	key := playerKey(acct.GameID, acct.Owner)
	if _, ok := f.players[key]; ok {
		return storage.ErrPlayerExists
	}
	if err := f.advanceGame(cfg); err != nil {
		return err
	}
	f.players[key] = acct
	return nil
}

func (f *fakeStore) GetPlayer(_ context.Context, gameID, owner string) (player.Account, error) {
	acct, ok := f.players[playerKey(gameID, owner)]
	if !ok {
		return player.Account{}, storage.ErrNotFound
	}
	return acct, nil
}

func (f *fakeStore) putPlayer(acct player.Account) error {
	key := playerKey(acct.GameID, acct.Owner)
	stored, ok := f.players[key]
	if !ok {
		return storage.ErrNotFound
	}
	if stored.Version != acct.Version {
		return storage.ErrVersionConflict
	}
	acct.Version++
	f.players[key] = acct
	return nil
}

func (f *fakeStore) PutPlayer(_ context.Context, acct player.Account) error {
	f.putPlayerCalls++
	if f.failPutPlayer != nil {
		return f.failPutPlayer
	}
	return f.putPlayer(acct)
}

func (f *fakeStore) CreateMonster(_ context.Context, m monster.Account, cfg game.Config) error {
	if err := f.advanceGame(cfg); err != nil {
		return err
	}
	key := monsterKey(m.GameID, m.ID)
	if _, ok := f.monsters[key]; ok {
		return fmt.Errorf("monster id %d already exists", m.ID)
	}
	f.monsters[key] = m
	return nil
}

func (f *fakeStore) GetMonster(_ context.Context, gameID string, id uint64) (monster.Account, error) {
	m, ok := f.monsters[monsterKey(gameID, id)]
	if !ok {
		return monster.Account{}, storage.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) CommitAttack(_ context.Context, acct player.Account, m monster.Account) error {
	if f.failCommitAttack != nil {
		return f.failCommitAttack
	}
	if err := f.putPlayer(acct); err != nil {
		return err
	}
	key := monsterKey(m.GameID, m.ID)
	stored, ok := f.monsters[key]
	if !ok {
		return storage.ErrNotFound
	}
	if stored.Version != m.Version {
		return storage.ErrVersionConflict
	}
	m.Version++
	f.monsters[key] = m
	return nil
}

func (f *fakeStore) AppendTelemetryEvent(_ context.Context, evt storage.TelemetryEvent) error {
	f.telemetry = append(f.telemetry, evt)
	return nil
}

func (f *fakeStore) GetGameStatistics(_ context.Context, gameID string) (storage.GameStatistics, error) {
	cfg, ok := f.games[gameID]
	if !ok {
		return storage.GameStatistics{}, storage.ErrNotFound
	}
	stats := storage.GameStatistics{PlayerCount: int64(cfg.PlayerCount)}
	for _, m := range f.monsters {
		if m.GameID != gameID {
			continue
		}
		stats.MonstersSpawned++
		if !m.Alive {
			stats.MonstersSlain++
		}
	}
	for _, acct := range f.players {
		if acct.GameID == gameID {
			stats.ItemsHeld += int64(acct.Inventory.Len())
		}
	}
	return stats, nil
}

func (f *fakeStore) Close() error { return nil }
