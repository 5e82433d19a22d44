// Package portfolio sums per-asset cost-basis results into an account-level
// "Total" view.
package portfolio

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/costbasis"
)

// Total is the portfolio-level pair of series for one account
type Total struct {
	Invested domain.Series
	Basis    domain.Series
	Assets   []string // Assets that contributed, in input order
}

// Aggregate merges the per-asset results by date.
//
// Liquidation values are snapshots, so samples that share a date are summed;
// an asset without a sample on a date contributes nothing to that date.
// Invested values are running totals per asset, so only their increments are
// summed across assets, then re-accumulated in date order. The invested output
// repeats the previous total before every change to keep its step shape, and
// ends on the last liquidation date.
func Aggregate(results []*costbasis.Result) *Total {
	basisByDate := newDateBuckets()
	investedByDate := newDateBuckets()
	total := &Total{Assets: make([]string, 0, len(results))}

	for _, r := range results {
		if r == nil {
			continue
		}
		total.Assets = append(total.Assets, r.Asset)

		for _, p := range r.Basis {
			basisByDate.add(p.Time, p.Value)
		}

		running := decimal.Zero
		for _, p := range r.Invested {
			increment := p.Value.Sub(running)
			running = p.Value
			if increment.IsZero() {
				continue
			}
			investedByDate.add(p.Time, increment)
		}
	}

	total.Basis = make(domain.Series, 0, basisByDate.len())
	for _, b := range basisByDate.sorted() {
		total.Basis.Append(b.time, b.value)
	}

	total.Invested = make(domain.Series, 0, 2*investedByDate.len()+1)
	running := decimal.Zero
	for _, b := range investedByDate.sorted() {
		if !running.IsZero() {
			total.Invested.Append(b.time, running)
		}
		running = running.Add(b.value)
		total.Invested.Append(b.time, running)
	}

	if last, ok := total.Basis.Last(); ok {
		total.Invested.Append(last.Time, running)
	}

	return total
}

type dateBucket struct {
	time  time.Time
	value decimal.Decimal
}

// dateBuckets accumulates values keyed by instant
type dateBuckets map[int64]*dateBucket

func newDateBuckets() dateBuckets {
	return make(dateBuckets)
}

func (d dateBuckets) add(t time.Time, v decimal.Decimal) {
	key := t.UnixNano()
	if b, ok := d[key]; ok {
		b.value = b.value.Add(v)
		return
	}
	d[key] = &dateBucket{time: t, value: v}
}

func (d dateBuckets) len() int {
	return len(d)
}

func (d dateBuckets) sorted() []*dateBucket {
	out := make([]*dateBucket, 0, len(d))
	for _, b := range d {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *dateBucket) int {
		return a.time.Compare(b.time)
	})
	return out
}
