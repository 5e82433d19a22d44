package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestErrors_MatchSentinels(t *testing.T) {
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		err      error
		sentinel error
		errMsg   string
	}{
		{
			name:     "Coverage",
			err:      &CoverageError{Asset: "VTI", FirstBar: day, LastBar: day, FirstEvent: day, LastEvent: day.AddDate(0, 0, 10)},
			sentinel: ErrCoverage,
			errMsg:   "price history for VTI",
		},
		{
			name:     "Zero delta",
			err:      &UnexpectedZeroDeltaError{EventID: uuid.New(), Asset: "VTI", Kind: TransactionKindTrade},
			sentinel: ErrUnexpectedZeroDelta,
			errMsg:   "changes no shares but has kind TRADE",
		},
		{
			name:     "Undefined percent",
			err:      &UndefinedPercentError{Time: day},
			sentinel: ErrUndefinedPercent,
			errMsg:   "invested capital is zero",
		},
		{
			name:     "Empty input",
			err:      &EmptyInputError{Asset: "VTI", What: "price bars"},
			sentinel: ErrEmptyInput,
			errMsg:   "no price bars for VTI",
		},
		{
			name:     "Invalid ledger event",
			err:      &InvalidLedgerEventError{Asset: "VTI", Err: errors.New("ledger event price must be non-negative")},
			sentinel: ErrInvalidLedgerEvent,
			errMsg:   "price must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("compute: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Contains(t, wrapped.Error(), tt.errMsg)

			for _, other := range []error{ErrCoverage, ErrUnexpectedZeroDelta, ErrUndefinedPercent, ErrEmptyInput, ErrInvalidLedgerEvent} {
				if other != tt.sentinel {
					assert.False(t, errors.Is(wrapped, other))
				}
			}
		})
	}
}
