package importer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
)

// Snapshot is a broker export: ledger events and daily bars in one TOML document.
//
//	[[events]]
//	id = "6f1c..."
//	account_id = "123456789"
//	asset = "VTI"
//	timestamp = 2021-03-01T15:04:05Z
//	quantity = "10"
//	price = "100"
//	total = "-1000"
//	kind = "TRADE"
//
//	[[bars]]
//	asset = "VTI"
//	date = 2021-03-01T00:00:00Z
//	open = "99.5"
//	close = "100"
//	high = "101"
//	low = "99"
//	volume = 1200
type Snapshot struct {
	Events []EventRecord `toml:"events"`
	Bars   []BarRecord   `toml:"bars"`
}

// EventRecord is the file form of a ledger event
type EventRecord struct {
	ID          uuid.UUID       `toml:"id"`
	AccountID   string          `toml:"account_id"`
	Asset       string          `toml:"asset"`
	Timestamp   time.Time       `toml:"timestamp"`
	Quantity    decimal.Decimal `toml:"quantity"`
	Price       decimal.Decimal `toml:"price"`
	Total       decimal.Decimal `toml:"total"`
	Description string          `toml:"description"`
	Kind        string          `toml:"kind"`
}

// BarRecord is the file form of a daily price bar
type BarRecord struct {
	Asset  string          `toml:"asset"`
	Date   time.Time       `toml:"date"`
	Open   decimal.Decimal `toml:"open"`
	Close  decimal.Decimal `toml:"close"`
	High   decimal.Decimal `toml:"high"`
	Low    decimal.Decimal `toml:"low"`
	Volume int64           `toml:"volume"`
}

// ParseSnapshot decodes a TOML snapshot
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := toml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}

// LoadSnapshot reads and decodes a TOML snapshot file
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	return ParseSnapshot(data)
}

// eventNamespace scopes the name-based IDs of events exported without one
var eventNamespace = uuid.MustParse("8f0b6c52-3d1e-4c8a-9a57-2e6d4b1f0c93")

// LedgerEvent converts the record. A record without an ID gets one derived from
// its contents, so the same record always maps to the same stored event.
func (r EventRecord) LedgerEvent() *domain.LedgerEvent {
	id := r.ID
	if id == uuid.Nil {
		id = r.derivedID()
	}
	return &domain.LedgerEvent{
		ID:          id,
		AccountID:   r.AccountID,
		Asset:       r.Asset,
		Timestamp:   r.Timestamp,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Total:       r.Total,
		Description: r.Description,
		Kind:        domain.TransactionKind(r.Kind),
	}
}

// derivedID hashes the fields that identify a transaction. Two exports of the
// same broker transaction agree on all of them.
func (r EventRecord) derivedID() uuid.UUID {
	key := strings.Join([]string{
		r.AccountID,
		r.Asset,
		r.Timestamp.UTC().Format(time.RFC3339Nano),
		r.Quantity.String(),
		r.Price.String(),
		r.Total.String(),
		r.Kind,
	}, "|")
	return uuid.NewSHA1(eventNamespace, []byte(key))
}

// PriceBar converts the record
func (r BarRecord) PriceBar() *domain.PriceBar {
	return &domain.PriceBar{
		Asset:  r.Asset,
		Date:   r.Date,
		Open:   r.Open,
		Close:  r.Close,
		High:   r.High,
		Low:    r.Low,
		Volume: r.Volume,
	}
}
