// Package rules holds the deterministic game math: fixed tuning constants
// and pure functions over recorded state. Nothing here reads a clock, a
// random source, or storage, so every outcome is reproducible from the
// arguments alone.
package rules

const (
	// AttackCost is the action-point price of a single attack.
	AttackCost uint64 = 5
	// RegenRatePerSecond is how many action points accrue per elapsed second.
	RegenRatePerSecond uint64 = 1
	// MaxActionPoints caps a ledger balance so idle players cannot
	// accumulate without bound.
	MaxActionPoints uint64 = 100

	// PlayerBaseHP is the starting (and max) hit points for a new player.
	PlayerBaseHP = 100
	// PlayerBaseLevel is the starting level for a new player.
	PlayerBaseLevel = 1

	// MaxItemsCeiling bounds the per-game inventory capacity setting.
	MaxItemsCeiling = 255

	baseDamage     = 10
	damagePerLevel = 2

	monsterBaseHP      = 50
	monsterHPPerSpawn  = 10
	monsterLevelStride = 5
)

// ItemKind names a loot item category.
type ItemKind string

const (
	ItemFang   ItemKind = "fang"
	ItemHide   ItemKind = "hide"
	ItemClaw   ItemKind = "claw"
	ItemRelic  ItemKind = "relic"
	ItemTrophy ItemKind = "trophy"
)

var lootCycle = [...]ItemKind{ItemFang, ItemHide, ItemClaw, ItemRelic, ItemTrophy}

// Damage returns the damage a player of the given level deals per attack.
// Levels below the base clamp to the base so the curve never underflows.
func Damage(level int) int {
	if level < PlayerBaseLevel {
		level = PlayerBaseLevel
	}
	return baseDamage + damagePerLevel*(level-PlayerBaseLevel)
}

// MonsterStats derives hit points and level from a monster's sequence id.
// The curve is strictly monotonic in id so later spawns are always harder,
// and replaying the same id reproduces the same monster.
func MonsterStats(id uint64) (hp int, level int) {
	hp = monsterBaseHP + monsterHPPerSpawn*int(id)
	level = 1 + int(id)/monsterLevelStride
	return hp, level
}

// LootFor picks the loot an attacker earns for slaying the monster with the
// given sequence id. The pick is a pure function of the id.
func LootFor(id uint64) ItemKind {
	return lootCycle[id%uint64(len(lootCycle))]
}

// Accrue computes a new ledger balance after elapsedSeconds of regeneration.
// Accrual saturates instead of wrapping and the balance never exceeds
// MaxActionPoints. Non-positive elapsed time accrues nothing.
func Accrue(balance uint64, elapsedSeconds int64) (newBalance, accrued uint64) {
	if elapsedSeconds <= 0 {
		return balance, 0
	}
	if balance >= MaxActionPoints {
		return balance, 0
	}

	headroom := MaxActionPoints - balance
	earned := uint64(elapsedSeconds)
	if earned > headroom/RegenRatePerSecond {
		return MaxActionPoints, headroom
	}
	earned *= RegenRatePerSecond
	return balance + earned, earned
}
