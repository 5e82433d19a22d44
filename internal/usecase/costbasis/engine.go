// Package costbasis merges one asset's ledger events with its daily price bars
// into an invested-capital series and a liquidation-value series.
package costbasis

import (
	"slices"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

// Result holds the two aligned series produced for one asset
type Result struct {
	Asset    string
	Invested domain.Series // Capital at average cost, sampled around every trade
	Basis    domain.Series // Shares * close + dividends, sampled on every held day
	Position Position      // State after the last bar
}

// Compute runs the cost-basis engine for one (account, asset) pair.
//
// Bars are walked in day order. Every event that happened before the end of a
// bar's day and has not been replayed yet is replayed on that bar, in timestamp
// order. A trade emits an invested point with the pre-trade amount (when shares
// were held) and one with the post-trade amount, both stamped with the bar's day.
// After draining, a basis point is emitted if shares are held. A final invested
// point on the last bar's day extends the line to the right edge.
//
// The caller's slices are not modified.
func Compute(asset string, events []*domain.LedgerEvent, bars []*domain.PriceBar) (*Result, error) {
	if len(events) == 0 {
		return nil, &domain.EmptyInputError{Asset: asset, What: "ledger events"}
	}
	if len(bars) == 0 {
		return nil, &domain.EmptyInputError{Asset: asset, What: "price bars"}
	}

	events = sortedEvents(events)
	bars = sortedBars(bars)

	if err := checkCoverage(asset, events, bars); err != nil {
		return nil, err
	}

	result := &Result{
		Asset:    asset,
		Invested: make(domain.Series, 0, 2*len(events)+1),
		Basis:    make(domain.Series, 0, len(bars)),
	}

	var pos Position
	next := 0
	for _, bar := range bars {
		day := bar.Day()
		cutoff := bar.Cutoff()

		for next < len(events) && events[next].Timestamp.Before(cutoff) {
			event := events[next]
			if err := event.Validate(); err != nil {
				return nil, &domain.InvalidLedgerEventError{EventID: event.ID, Asset: asset, Err: err}
			}

			trade := !event.ShareDelta().IsZero()
			if trade && !pos.Shares.IsZero() {
				result.Invested.Append(day, pos.Invested())
			}

			updated, err := pos.Apply(event)
			if err != nil {
				return nil, err
			}
			pos = updated

			if trade {
				result.Invested.Append(day, pos.Invested())
			}
			next++
		}

		if !pos.Shares.IsZero() {
			result.Basis.Append(day, pos.Value(bar.Close))
		}
	}

	result.Invested.Append(bars[len(bars)-1].Day(), pos.Invested())
	result.Position = pos

	return result, nil
}

// checkCoverage verifies that the first bar's day starts no later than the
// first event and that the last event happens before the last bar's day ends
func checkCoverage(asset string, events []*domain.LedgerEvent, bars []*domain.PriceBar) error {
	first, last := events[0], events[len(events)-1]
	firstBar, lastBar := bars[0], bars[len(bars)-1]

	if firstBar.Day().After(first.Timestamp) || !last.Timestamp.Before(lastBar.Cutoff()) {
		return &domain.CoverageError{
			Asset:      asset,
			FirstEvent: first.Timestamp,
			LastEvent:  last.Timestamp,
			FirstBar:   firstBar.Day(),
			LastBar:    lastBar.Day(),
		}
	}
	return nil
}

func sortedEvents(events []*domain.LedgerEvent) []*domain.LedgerEvent {
	out := slices.Clone(events)
	slices.SortStableFunc(out, func(a, b *domain.LedgerEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}

func sortedBars(bars []*domain.PriceBar) []*domain.PriceBar {
	out := slices.Clone(bars)
	slices.SortStableFunc(out, func(a, b *domain.PriceBar) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
