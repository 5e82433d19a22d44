package costbasis

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

const testAccount = "123456789"

var day0 = time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC) // a Monday

func day(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

// at returns hour h of day n, the way broker timestamps carry time-of-day
func at(n, h int) time.Time {
	return day(n).Add(time.Duration(h) * time.Hour)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func trade(ts time.Time, qty, price, total string) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		ID:          uuid.New(),
		AccountID:   testAccount,
		Asset:       "VTI",
		Timestamp:   ts,
		Quantity:    dec(qty),
		Price:       dec(price),
		Total:       dec(total),
		Description: "TRADE",
		Kind:        domain.TransactionKindTrade,
	}
}

func dividend(ts time.Time, total string) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		ID:          uuid.New(),
		AccountID:   testAccount,
		Asset:       "VTI",
		Timestamp:   ts,
		Quantity:    decimal.Zero,
		Price:       decimal.Zero,
		Total:       dec(total),
		Description: "ORDINARY DIVIDEND",
		Kind:        domain.TransactionKindDividendOrInterest,
	}
}

// bars builds one bar per entry of closes, starting on day0, skipping
// days whose close is empty
func bars(closes ...string) []*domain.PriceBar {
	out := make([]*domain.PriceBar, 0, len(closes))
	for i, c := range closes {
		if c == "" {
			continue
		}
		out = append(out, &domain.PriceBar{
			Asset:  "VTI",
			Date:   day(i),
			Open:   dec(c),
			Close:  dec(c),
			High:   dec(c),
			Low:    dec(c),
			Volume: 1000,
		})
	}
	return out
}
