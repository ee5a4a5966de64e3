package player

import (
	"fmt"
	"time"

	apperrors "github.com/ngocht-dev/anchor-game/internal/platform/errors"
	"github.com/ngocht-dev/anchor-game/internal/game/rules"
)

// ErrInsufficientActionPoints indicates a spend larger than the balance.
var ErrInsufficientActionPoints = apperrors.New(apperrors.CodeInsufficientActionPoints, "action point balance is too low")

// Ledger tracks a player's spendable action points and the last accrual time.
// The balance never goes negative and accrual is monotonic in time.
type Ledger struct {
	Balance         uint64
	LastCollectedAt time.Time
}

// NewLedger creates an empty ledger anchored at now.
func NewLedger(now time.Time) Ledger {
	return Ledger{LastCollectedAt: now.UTC()}
}

// Accrue credits regeneration for the time elapsed since the last accrual
// and advances the accrual anchor to now. Replaying the same now is a no-op
// because the anchor already advanced. Returns the points accrued.
func (l *Ledger) Accrue(now time.Time) uint64 {
	now = now.UTC()
	elapsed := int64(now.Sub(l.LastCollectedAt) / time.Second)
	if elapsed <= 0 {
		return 0
	}
	balance, accrued := rules.Accrue(l.Balance, elapsed)
	l.Balance = balance
	l.LastCollectedAt = now
	return accrued
}

// Spend debits cost from the balance, failing without mutation when the
// balance is too low.
func (l *Ledger) Spend(cost uint64) error {
	if l.Balance < cost {
		return apperrors.WithMetadata(apperrors.CodeInsufficientActionPoints, "action point balance is too low",
			map[string]string{
				"balance": fmt.Sprintf("%d", l.Balance),
				"cost":    fmt.Sprintf("%d", cost),
			})
	}
	l.Balance -= cost
	return nil
}
