package domain

import (
	"context"
	"time"
)

// LedgerRepository defines the interface for ledger event persistence operations
type LedgerRepository interface {
	// Create stores a ledger event; an event whose ID is already stored
	// is left unchanged
	Create(ctx context.Context, event *LedgerEvent) error

	// ListByAsset retrieves all events of an (account, asset) pair
	// ordered by ascending timestamp
	ListByAsset(ctx context.Context, accountID, asset string) ([]*LedgerEvent, error)

	// ListAssets retrieves the distinct assets that appear in an account's ledger
	ListAssets(ctx context.Context, accountID string) ([]string, error)

	// ListAccounts retrieves every account that has ledger events
	ListAccounts(ctx context.Context) ([]string, error)
}

// PriceRepository defines the interface for daily price bar persistence operations
type PriceRepository interface {
	// Upsert stores a bar, replacing any bar for the same asset and day
	Upsert(ctx context.Context, bar *PriceBar) error

	// ListBars retrieves the bars of an asset on or after from, ordered by day
	ListBars(ctx context.Context, asset string, from time.Time) ([]*PriceBar, error)
}
