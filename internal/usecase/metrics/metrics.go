// Package metrics derives dollar and percent gain/loss for every liquidation
// sample of a view.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Sample is the gain/loss at one liquidation-value sample
type Sample struct {
	Time     time.Time
	Value    decimal.Decimal // Liquidation value
	Invested decimal.Decimal // Contemporaneous invested capital
	Dollar   decimal.Decimal
	Percent  decimal.NullDecimal // Invalid when Invested is zero
}

// PercentGainLoss returns the percent metric, or an UndefinedPercentError when
// the contemporaneous invested capital is zero
func (s Sample) PercentGainLoss() (decimal.Decimal, error) {
	if !s.Percent.Valid {
		return decimal.Zero, &domain.UndefinedPercentError{Time: s.Time}
	}
	return s.Percent.Decimal, nil
}

// Derive computes one Sample per basis point, aligned index-for-index with basis.
//
// An index into invested only moves forward: for each basis sample it advances
// while the next invested point is not after the sample, but never past the
// second-to-last invested point. A zero invested value leaves the sample's
// percent undefined without failing the run.
func Derive(invested, basis domain.Series) ([]Sample, error) {
	if len(basis) == 0 {
		return nil, nil
	}
	if len(invested) == 0 {
		return nil, &domain.EmptyInputError{Asset: "view", What: "invested samples"}
	}

	samples := make([]Sample, 0, len(basis))
	idx := 0
	limit := len(invested) - 2
	for _, b := range basis {
		for idx < limit && !invested[idx+1].Time.After(b.Time) {
			idx++
		}

		contemporaneous := invested[idx].Value
		dollar := b.Value.Sub(contemporaneous)
		sample := Sample{
			Time:     b.Time,
			Value:    b.Value,
			Invested: contemporaneous,
			Dollar:   dollar,
		}
		if !contemporaneous.IsZero() {
			sample.Percent = decimal.NullDecimal{
				Decimal: dollar.Mul(hundred).Div(contemporaneous),
				Valid:   true,
			}
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

// Undefined returns an UndefinedPercentError for every sample whose percent
// gain/loss could not be computed
func Undefined(samples []Sample) []error {
	var errs []error
	for _, s := range samples {
		if _, err := s.PercentGainLoss(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
