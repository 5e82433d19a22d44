package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

// ledgerRepository implements domain.LedgerRepository
type ledgerRepository struct {
	db *DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *DB) domain.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Create stores a ledger event. Re-importing a stored event is a no-op.
func (r *ledgerRepository) Create(ctx context.Context, event *domain.LedgerEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid ledger event: %w", err)
	}

	query := `
		INSERT INTO ledger_events (id, account_id, asset, occurred_at, quantity, price, total, description, kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.AccountID,
		event.Asset,
		event.Timestamp,
		event.Quantity.String(),
		event.Price.String(),
		event.Total.String(),
		event.Description,
		string(event.Kind),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger event: %w", err)
	}

	return nil
}

// ListByAsset retrieves all events of an (account, asset) pair in time order
func (r *ledgerRepository) ListByAsset(ctx context.Context, accountID, asset string) ([]*domain.LedgerEvent, error) {
	query := `
		SELECT id, account_id, asset, occurred_at, quantity, price, total, description, kind
		FROM ledger_events
		WHERE account_id = $1 AND asset = $2
		ORDER BY occurred_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger events: %w", err)
	}
	defer rows.Close()

	var events []*domain.LedgerEvent
	for rows.Next() {
		var event domain.LedgerEvent
		var quantityStr, priceStr, totalStr, kind string

		err := rows.Scan(
			&event.ID,
			&event.AccountID,
			&event.Asset,
			&event.Timestamp,
			&quantityStr,
			&priceStr,
			&totalStr,
			&event.Description,
			&kind,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger event: %w", err)
		}
		event.Kind = domain.TransactionKind(kind)

		// Parse NUMERIC columns
		if event.Quantity, err = decimal.NewFromString(quantityStr); err != nil {
			return nil, fmt.Errorf("failed to parse quantity of event %s: %w", event.ID, err)
		}
		if event.Price, err = decimal.NewFromString(priceStr); err != nil {
			return nil, fmt.Errorf("failed to parse price of event %s: %w", event.ID, err)
		}
		if event.Total, err = decimal.NewFromString(totalStr); err != nil {
			return nil, fmt.Errorf("failed to parse total of event %s: %w", event.ID, err)
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger events: %w", err)
	}

	return events, nil
}

// ListAssets retrieves the distinct assets of an account's ledger
func (r *ledgerRepository) ListAssets(ctx context.Context, accountID string) ([]string, error) {
	query := `
		SELECT DISTINCT asset
		FROM ledger_events
		WHERE account_id = $1
		ORDER BY asset
	`
	return r.listStrings(ctx, query, accountID)
}

// ListAccounts retrieves every account with ledger events
func (r *ledgerRepository) ListAccounts(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT account_id
		FROM ledger_events
		ORDER BY account_id
	`
	return r.listStrings(ctx, query)
}

func (r *ledgerRepository) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return out, nil
}
