package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the broker classification of a ledger event
type TransactionKind string

const (
	TransactionKindTrade              TransactionKind = "TRADE"
	TransactionKindFundTransfer       TransactionKind = "ELECTRONIC_FUND"
	TransactionKindDividendOrInterest TransactionKind = "DIVIDEND_OR_INTEREST"
	TransactionKindSecurityTransfer   TransactionKind = "RECEIVE_AND_DELIVER"
)

// Valid reports whether k is one of the known transaction kinds
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindTrade,
		TransactionKindFundTransfer,
		TransactionKindDividendOrInterest,
		TransactionKindSecurityTransfer:
		return true
	}
	return false
}

// CashAsset is the pseudo-asset that carries fund transfers and cash interest.
// It never appears in asset listings or in the portfolio total.
const CashAsset = "$CASH$"

// TotalSelection selects the portfolio-level view of an account
const TotalSelection = "Total"

// LedgerEvent represents a single transaction affecting one asset in one account.
// Events are immutable once ingested.
type LedgerEvent struct {
	ID          uuid.UUID
	AccountID   string
	Asset       string
	Timestamp   time.Time
	Quantity    decimal.Decimal // ABSOLUTE VALUE (Always Positive), direction comes from Total
	Price       decimal.Decimal
	Total       decimal.Decimal // Negative = cash out (purchase), Positive = cash in (sale, dividend)
	Description string
	Kind        TransactionKind
}

// Validate ensures the ledger event adheres to domain rules
func (e *LedgerEvent) Validate() error {
	if e.AccountID == "" {
		return errors.New("ledger event account id cannot be empty")
	}
	if e.Asset == "" {
		return errors.New("ledger event asset cannot be empty")
	}
	if e.Timestamp.IsZero() {
		return errors.New("ledger event timestamp cannot be zero")
	}
	if !e.Kind.Valid() {
		return errors.New("ledger event has invalid transaction kind " + string(e.Kind))
	}
	if e.Quantity.IsNegative() {
		return errors.New("ledger event quantity must be non-negative")
	}
	if e.Price.IsNegative() {
		return errors.New("ledger event price must be non-negative")
	}
	return nil
}

// ShareDelta returns the signed change in shares held caused by the event.
// A non-positive cash effect is a purchase (or an in-kind receipt), anything
// else is a sale. A zero cash effect with a non-zero quantity counts as a purchase.
func (e *LedgerEvent) ShareDelta() decimal.Decimal {
	if e.Total.IsPositive() {
		return e.Quantity.Neg()
	}
	return e.Quantity
}

// IsDividend reports whether the event is tagged as dividend or interest income
func (e *LedgerEvent) IsDividend() bool {
	return e.Kind == TransactionKindDividendOrInterest
}
