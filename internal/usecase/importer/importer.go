// Package importer loads broker snapshots into the ledger and price stores
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/logging"
)

// Summary counts what an import wrote
type Summary struct {
	Events      int
	Bars        int
	SkippedBars int // Bars of assets absent from every stored ledger
}

// Importer writes snapshots through the repositories
type Importer struct {
	ledgerRepo domain.LedgerRepository
	priceRepo  domain.PriceRepository
	logger     *logging.Logger
}

// NewImporter creates a new Importer instance
func NewImporter(ledgerRepo domain.LedgerRepository, priceRepo domain.PriceRepository, logger *logging.Logger) *Importer {
	return &Importer{
		ledgerRepo: ledgerRepo,
		priceRepo:  priceRepo,
		logger:     logger,
	}
}

// Import validates the whole snapshot, then stores its events and the bars of
// every security present in the stored ledger. Nothing is written when any
// record is invalid.
// Events already stored are left as they are and bars replace the stored bar
// of the same day, so importing the same snapshot twice is harmless.
func (i *Importer) Import(ctx context.Context, snap *Snapshot) (*Summary, error) {
	events, bars, err := convert(snap)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, event := range events {
		if err := i.ledgerRepo.Create(ctx, event); err != nil {
			return summary, fmt.Errorf("failed to store event %s: %w", event.ID, err)
		}
		summary.Events++
	}

	traded, err := i.tradedAssets(ctx)
	if err != nil {
		return summary, err
	}

	for _, bar := range bars {
		if !traded[bar.Asset] {
			summary.SkippedBars++
			i.logger.Debug().
				Str("asset", bar.Asset).
				Time("day", bar.Day()).
				Msg("skipping bar of untraded asset")
			continue
		}
		if err := i.priceRepo.Upsert(ctx, bar); err != nil {
			return summary, fmt.Errorf("failed to store %s bar for %s: %w", bar.Asset, bar.Day().Format("2006-01-02"), err)
		}
		summary.Bars++
	}

	i.logger.Info().
		Int("events", summary.Events).
		Int("bars", summary.Bars).
		Int("skipped_bars", summary.SkippedBars).
		Msg("snapshot imported")

	return summary, nil
}

// tradedAssets returns every security held in any account's ledger
func (i *Importer) tradedAssets(ctx context.Context) (map[string]bool, error) {
	accounts, err := i.ledgerRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	traded := make(map[string]bool)
	for _, account := range accounts {
		assets, err := i.ledgerRepo.ListAssets(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to list assets of account %s: %w", account, err)
		}
		for _, asset := range assets {
			traded[asset] = true
		}
	}
	delete(traded, domain.CashAsset)

	return traded, nil
}

func convert(snap *Snapshot) ([]*domain.LedgerEvent, []*domain.PriceBar, error) {
	var errs []error

	events := make([]*domain.LedgerEvent, 0, len(snap.Events))
	for n, record := range snap.Events {
		event := record.LedgerEvent()
		if err := event.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", n, err))
			continue
		}
		events = append(events, event)
	}

	bars := make([]*domain.PriceBar, 0, len(snap.Bars))
	for n, record := range snap.Bars {
		bar := record.PriceBar()
		if err := bar.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("bar %d: %w", n, err))
			continue
		}
		bars = append(bars, bar)
	}

	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("invalid snapshot: %w", errors.Join(errs...))
	}
	return events, bars, nil
}
