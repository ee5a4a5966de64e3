// Package game implements the game command: a small CLI over the engine for
// operating a game database directly.
package game

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ngocht-dev/anchor-game/internal/game/engine"
	"github.com/ngocht-dev/anchor-game/internal/game/storage"
	"github.com/ngocht-dev/anchor-game/internal/game/storage/sqlite"
	"github.com/ngocht-dev/anchor-game/internal/telemetry"
)

// Config holds game command configuration.
type Config struct {
	DBPath   string `env:"ANCHOR_GAME_DB"        envDefault:"anchor-game.db"`
	GameID   string `env:"ANCHOR_GAME_ID"        envDefault:"default"`
	Actor    string `env:"ANCHOR_GAME_ACTOR"`
	MaxItems int    `env:"ANCHOR_GAME_MAX_ITEMS" envDefault:"16"`

	Monster uint64
	Command string
}

// ParseConfig parses environment defaults and flags into a Config. The first
// remaining argument selects the subcommand.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the game database")
	fs.StringVar(&cfg.GameID, "game", cfg.GameID, "game key to operate on")
	fs.StringVar(&cfg.Actor, "as", cfg.Actor, "acting identity (admin or player owner)")
	fs.IntVar(&cfg.MaxItems, "max-items", cfg.MaxItems, "per-player inventory capacity for create-game")
	fs.Uint64Var(&cfg.Monster, "monster", 0, "monster id for attack")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Command = fs.Arg(0)
	return cfg, nil
}

// Usage describes the available subcommands.
const Usage = `usage: game [flags] <command>

commands:
  create-game    initialize the game config (-as names the admin)
  create-player  create a player account for the acting identity
  spawn-monster  spawn the next monster in the sequence
  attack         attack a monster (-monster selects the target)
  collect        collect regenerated action points
  stats          print aggregate game statistics`

// Run executes the game command against the configured database.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		fmt.Fprintln(errOut, Usage)
		return errors.New("command is required")
	}
	if command != "stats" && strings.TrimSpace(cfg.Actor) == "" {
		return errors.New("acting identity is required (-as or ANCHOR_GAME_ACTOR)")
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	eng := engine.New(store, engine.WithTelemetry(telemetry.NewEmitter(store)))

	switch command {
	case "create-game":
		created, err := eng.CreateGame(ctx, cfg.GameID, cfg.Actor, cfg.MaxItems)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "game %s created: admin=%s max_items_per_player=%d\n",
			created.ID, created.Admin, created.MaxItemsPerPlayer)
		return nil

	case "create-player":
		acct, err := eng.CreatePlayer(ctx, cfg.GameID, cfg.Actor)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "player %s created: hp=%d level=%d inventory_capacity=%d\n",
			acct.Owner, acct.HP, acct.Level, acct.Inventory.Capacity)
		return nil

	case "spawn-monster":
		m, err := eng.SpawnMonster(ctx, cfg.GameID, cfg.Actor)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "monster %d spawned: hp=%d level=%d loot=%s\n",
			m.ID, m.HP, m.Level, m.Loot)
		return nil

	case "attack":
		result, err := eng.AttackMonster(ctx, cfg.GameID, cfg.Actor, cfg.Monster)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "hit monster %d for %d: hp=%d balance=%d\n",
			cfg.Monster, result.Damage, result.MonsterHP, result.BalanceAfter)
		if result.Killed {
			switch {
			case result.LootDropped:
				fmt.Fprintf(out, "monster %d slain; loot dropped, inventory full\n", cfg.Monster)
			case result.Loot != nil:
				fmt.Fprintf(out, "monster %d slain; looted %s\n", cfg.Monster, result.Loot.Kind)
			}
		}
		return nil

	case "collect":
		result, err := eng.CollectActionPoints(ctx, cfg.GameID, cfg.Actor, time.Time{})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "collected %d action points: balance=%d\n", result.Accrued, result.Balance)
		return nil

	case "stats":
		stats, err := store.GetGameStatistics(ctx, cfg.GameID)
		if err != nil {
			return err
		}
		printStats(out, cfg.GameID, stats)
		return nil

	default:
		fmt.Fprintln(errOut, Usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printStats(out io.Writer, gameID string, stats storage.GameStatistics) {
	fmt.Fprintf(out, "game %s:\n", gameID)
	fmt.Fprintf(out, "  players:          %d\n", stats.PlayerCount)
	fmt.Fprintf(out, "  monsters spawned: %d\n", stats.MonstersSpawned)
	fmt.Fprintf(out, "  monsters slain:   %d\n", stats.MonstersSlain)
	fmt.Fprintf(out, "  items held:       %d\n", stats.ItemsHeld)
}
