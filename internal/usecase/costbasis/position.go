package costbasis

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

// Position is the running state of one asset during an engine run.
// It is a value: Apply returns the next state and never mutates the receiver.
type Position struct {
	Shares    decimal.Decimal
	AvgCost   decimal.Decimal // Weighted average; zero while no shares are held
	Dividends decimal.Decimal // Cumulative dividends and interest received
}

// Invested returns the capital committed to the position at average cost
func (p Position) Invested() decimal.Decimal {
	return p.AvgCost.Mul(p.Shares)
}

// Value returns the liquidation value at the given close, dividends included
func (p Position) Value(closePrice decimal.Decimal) decimal.Decimal {
	return p.Shares.Mul(closePrice).Add(p.Dividends)
}

// Apply returns the position after replaying a single ledger event.
// Dividends only accumulate; trades move shares and re-weight the average cost.
func (p Position) Apply(event *domain.LedgerEvent) (Position, error) {
	delta := event.ShareDelta()

	if delta.IsZero() {
		if !event.IsDividend() {
			return p, &domain.UnexpectedZeroDeltaError{
				EventID: event.ID,
				Asset:   event.Asset,
				Kind:    event.Kind,
			}
		}
		p.Dividends = p.Dividends.Add(event.Total)
		return p, nil
	}

	after := p.Shares.Add(delta)
	if after.IsZero() {
		// Position closed: the average is undefined until the next purchase
		// overwrites it, since it is always weighted by zero shares.
		p.AvgCost = decimal.Zero
	} else {
		p.AvgCost = p.AvgCost.Mul(p.Shares).Sub(event.Total).Div(after)
	}
	p.Shares = after

	return p, nil
}
