package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentinels matched by the typed errors below via errors.Is
var (
	ErrCoverage            = errors.New("price history does not cover ledger")
	ErrUnexpectedZeroDelta = errors.New("unexpected zero share delta")
	ErrUndefinedPercent    = errors.New("undefined percent gain/loss")
	ErrEmptyInput          = errors.New("empty input")
	ErrInvalidLedgerEvent  = errors.New("invalid ledger event")
)

// CoverageError reports that an asset's price bars do not span its ledger events.
// Fatal for the asset.
type CoverageError struct {
	Asset      string
	FirstEvent time.Time
	LastEvent  time.Time
	FirstBar   time.Time
	LastBar    time.Time
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("price history for %s (%s..%s) does not cover ledger events (%s..%s)",
		e.Asset,
		e.FirstBar.Format(time.DateOnly), e.LastBar.Format(time.DateOnly),
		e.FirstEvent.Format(time.RFC3339), e.LastEvent.Format(time.RFC3339))
}

func (e *CoverageError) Is(target error) bool { return target == ErrCoverage }

// UnexpectedZeroDeltaError reports a ledger event that changes no shares
// but is not dividend or interest income. Fatal for the asset.
type UnexpectedZeroDeltaError struct {
	EventID uuid.UUID
	Asset   string
	Kind    TransactionKind
}

func (e *UnexpectedZeroDeltaError) Error() string {
	return fmt.Sprintf("ledger event %s for %s changes no shares but has kind %s", e.EventID, e.Asset, e.Kind)
}

func (e *UnexpectedZeroDeltaError) Is(target error) bool { return target == ErrUnexpectedZeroDelta }

// UndefinedPercentError reports a zero contemporaneous invested value while
// computing percent gain/loss. Recoverable: only that sample loses its percent.
type UndefinedPercentError struct {
	Time time.Time
}

func (e *UndefinedPercentError) Error() string {
	return fmt.Sprintf("percent gain/loss undefined at %s: invested capital is zero", e.Time.Format(time.DateOnly))
}

func (e *UndefinedPercentError) Is(target error) bool { return target == ErrUndefinedPercent }

// EmptyInputError reports that no ledger events or no price bars exist for an asset
type EmptyInputError struct {
	Asset string
	What  string // "ledger events" or "price bars"
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("no %s for %s", e.What, e.Asset)
}

func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

// InvalidLedgerEventError reports a stored ledger event that fails validation.
// Fatal for the asset.
type InvalidLedgerEventError struct {
	EventID uuid.UUID
	Asset   string
	Err     error
}

func (e *InvalidLedgerEventError) Error() string {
	return fmt.Sprintf("ledger event %s for %s: %v", e.EventID, e.Asset, e.Err)
}

func (e *InvalidLedgerEventError) Unwrap() error { return e.Err }

func (e *InvalidLedgerEventError) Is(target error) bool { return target == ErrInvalidLedgerEvent }
