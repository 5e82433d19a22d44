package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar represents one asset's OHLCV summary for one trading day
type PriceBar struct {
	Asset  string
	Date   time.Time // Day granular
	Open   decimal.Decimal
	Close  decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Volume int64
}

// Validate ensures the price bar adheres to domain rules
func (b *PriceBar) Validate() error {
	if b.Asset == "" {
		return errors.New("price bar asset cannot be empty")
	}
	if b.Date.IsZero() {
		return errors.New("price bar date cannot be zero")
	}
	if b.Open.IsNegative() || b.Close.IsNegative() || b.High.IsNegative() || b.Low.IsNegative() {
		return errors.New("price bar prices must be non-negative")
	}
	if b.Low.GreaterThan(b.High) {
		return errors.New("price bar low must not exceed high")
	}
	if b.Volume < 0 {
		return errors.New("price bar volume must be non-negative")
	}
	return nil
}

// Day returns the calendar day of the bar, in the bar's own location
func (b *PriceBar) Day() time.Time {
	return Day(b.Date)
}

// Cutoff returns the end of the bar's trading day. Ledger events strictly
// before the cutoff settle into this bar or an earlier one, so a trade made
// during a day is valued at that day's close rather than the next day's.
func (b *PriceBar) Cutoff() time.Time {
	return b.Day().AddDate(0, 0, 1)
}

// Day truncates t to midnight of its calendar day, keeping its location
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
