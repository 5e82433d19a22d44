package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

// priceRepository implements domain.PriceRepository
type priceRepository struct {
	db *DB
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(db *DB) domain.PriceRepository {
	return &priceRepository{db: db}
}

// Upsert stores a bar, replacing any bar of the same asset and day
func (r *priceRepository) Upsert(ctx context.Context, bar *domain.PriceBar) error {
	if err := bar.Validate(); err != nil {
		return fmt.Errorf("invalid price bar: %w", err)
	}

	query := `
		INSERT INTO price_bars (asset, bar_date, open, close, high, low, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (asset, bar_date) DO UPDATE
		SET open = EXCLUDED.open, close = EXCLUDED.close, high = EXCLUDED.high,
		    low = EXCLUDED.low, volume = EXCLUDED.volume
	`

	_, err := r.db.ExecContext(ctx, query,
		bar.Asset,
		bar.Day().Format(time.DateOnly),
		bar.Open.String(),
		bar.Close.String(),
		bar.High.String(),
		bar.Low.String(),
		bar.Volume,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert price bar: %w", err)
	}

	return nil
}

// ListBars retrieves an asset's bars on or after from, ordered by day
func (r *priceRepository) ListBars(ctx context.Context, asset string, from time.Time) ([]*domain.PriceBar, error) {
	query := `
		SELECT asset, bar_date, open, close, high, low, volume
		FROM price_bars
		WHERE asset = $1 AND bar_date >= $2
		ORDER BY bar_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, asset, domain.Day(from).Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to query price bars: %w", err)
	}
	defer rows.Close()

	var bars []*domain.PriceBar
	for rows.Next() {
		var bar domain.PriceBar
		var openStr, closeStr, highStr, lowStr string

		err := rows.Scan(
			&bar.Asset,
			&bar.Date,
			&openStr,
			&closeStr,
			&highStr,
			&lowStr,
			&bar.Volume,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price bar: %w", err)
		}

		// Parse NUMERIC columns
		prices := []*decimal.Decimal{&bar.Open, &bar.Close, &bar.High, &bar.Low}
		for i, s := range []string{openStr, closeStr, highStr, lowStr} {
			v, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("failed to parse price of %s on %s: %w", bar.Asset, bar.Date.Format(time.DateOnly), err)
			}
			*prices[i] = v
		}

		bars = append(bars, &bar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price bars: %w", err)
	}

	return bars, nil
}
