package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/logging"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/costbasis"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/metrics"
	"github.com/simaogato/wealthflow-costbasis/internal/usecase/portfolio"
)

// priceLookbackDays widens the price query before the first ledger event so
// that an event on a weekend or holiday still has a preceding bar
const priceLookbackDays = 7

// View is everything the presentation layer needs for one selection
type View struct {
	Account    string
	Selection  string
	Invested   domain.Series // Step series, ready to chart
	Raw        domain.Series // Invested with one point per timestamp
	Basis      domain.Series
	Samples    []metrics.Sample // Aligned index-for-index with Basis
	Underwater bool             // Final invested capital exceeds final liquidation value
	Excluded   map[string]error // "Total" only: assets left out of the sums
}

// DashboardService answers (account, asset-or-"Total") selections
type DashboardService struct {
	LedgerRepo  domain.LedgerRepository
	PriceRepo   domain.PriceRepository
	Logger      *logging.Logger
	Concurrency int
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(
	ledgerRepo domain.LedgerRepository,
	priceRepo domain.PriceRepository,
	logger *logging.Logger,
	concurrency int,
) *DashboardService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &DashboardService{
		LedgerRepo:  ledgerRepo,
		PriceRepo:   priceRepo,
		Logger:      logger,
		Concurrency: concurrency,
	}
}

// ListAccounts returns every account with ledger activity
func (s *DashboardService) ListAccounts(ctx context.Context) ([]string, error) {
	accounts, err := s.LedgerRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	slices.Sort(accounts)
	return accounts, nil
}

// ListAssets returns the selectable assets of an account: every asset that
// appears in its ledger except cash, sorted, followed by "Total"
func (s *DashboardService) ListAssets(ctx context.Context, accountID string) ([]string, error) {
	held, err := s.heldAssets(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return append(held, domain.TotalSelection), nil
}

func (s *DashboardService) heldAssets(ctx context.Context, accountID string) ([]string, error) {
	assets, err := s.LedgerRepo.ListAssets(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for account %s: %w", accountID, err)
	}

	held := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset == domain.CashAsset || asset == domain.TotalSelection {
			continue
		}
		held = append(held, asset)
	}
	slices.Sort(held)
	held = slices.Compact(held)

	if len(held) == 0 {
		return nil, fmt.Errorf("no assets found for account %s", accountID)
	}
	return held, nil
}

// GetView computes the invested and liquidation series of a selection, then
// the gain/loss metrics over them.
//
// A single asset fails with the engine's error. "Total" runs every held asset,
// leaves failed assets out of the sums and reports them in Excluded; it only
// fails when no asset could be computed.
func (s *DashboardService) GetView(ctx context.Context, accountID, selection string) (*View, error) {
	if accountID == "" {
		return nil, errors.New("invalid account: account id cannot be empty")
	}
	if selection == "" {
		return nil, errors.New("invalid selection: asset cannot be empty")
	}
	if selection == domain.CashAsset {
		return nil, fmt.Errorf("invalid selection: %s is not a security", domain.CashAsset)
	}

	view := &View{Account: accountID, Selection: selection}

	if selection == domain.TotalSelection {
		total, excluded, err := s.total(ctx, accountID)
		if err != nil {
			return nil, err
		}
		view.Invested = total.Invested
		view.Basis = total.Basis
		view.Excluded = excluded
	} else {
		result, err := s.computeAsset(ctx, accountID, selection)
		if err != nil {
			return nil, err
		}
		view.Invested = result.Invested
		view.Basis = result.Basis
	}

	samples, err := metrics.Derive(view.Invested, view.Basis)
	if err != nil {
		return nil, fmt.Errorf("failed to derive gain/loss for %s: %w", selection, err)
	}
	view.Samples = samples
	view.Raw = view.Invested.Collapse()

	for _, undefined := range metrics.Undefined(samples) {
		s.Logger.Debug().
			Str("account", accountID).
			Str("selection", selection).
			Err(undefined).
			Msg("percent gain/loss suppressed")
	}

	lastInvested, okInvested := view.Invested.Last()
	lastBasis, okBasis := view.Basis.Last()
	view.Underwater = okInvested && okBasis && lastInvested.Value.GreaterThan(lastBasis.Value)

	return view, nil
}

// total computes every held asset of the account, at most Concurrency at a time
func (s *DashboardService) total(ctx context.Context, accountID string) (*portfolio.Total, map[string]error, error) {
	assets, err := s.heldAssets(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*costbasis.Result, len(assets))
	failures := make([]error, len(assets))

	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			results[i], failures[i] = s.computeAsset(ctx, accountID, asset)
			return nil
		})
	}
	_ = g.Wait()

	excluded := make(map[string]error)
	for i, asset := range assets {
		if failures[i] == nil {
			continue
		}
		excluded[asset] = failures[i]
		s.Logger.Warn().
			Str("account", accountID).
			Str("asset", asset).
			Err(failures[i]).
			Msg("asset excluded from total")
	}

	if len(excluded) == len(assets) {
		return nil, nil, fmt.Errorf("no asset of account %s could be computed: %w", accountID, errors.Join(failures...))
	}

	return portfolio.Aggregate(results), excluded, nil
}

// computeAsset loads one asset's ledger and prices and runs the engine
func (s *DashboardService) computeAsset(ctx context.Context, accountID, asset string) (*costbasis.Result, error) {
	events, err := s.LedgerRepo.ListByAsset(ctx, accountID, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger for %s: %w", asset, err)
	}
	if len(events) == 0 {
		return nil, &domain.EmptyInputError{Asset: asset, What: "ledger events"}
	}

	from := domain.Day(events[0].Timestamp).AddDate(0, 0, -priceLookbackDays)
	bars, err := s.PriceRepo.ListBars(ctx, asset, from)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices for %s: %w", asset, err)
	}

	result, err := costbasis.Compute(asset, events, bars)
	if err != nil {
		return nil, fmt.Errorf("cost basis for %s: %w", asset, err)
	}

	s.Logger.Debug().
		Str("account", accountID).
		Str("asset", asset).
		Int("events", len(events)).
		Int("bars", len(bars)).
		Msg("cost basis computed")

	return result, nil
}
