package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/wealthflow-costbasis/internal/domain"
	"github.com/simaogato/wealthflow-costbasis/internal/logging"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, event *domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListByAsset(ctx context.Context, accountID, asset string) ([]*domain.LedgerEvent, error) {
	args := m.Called(ctx, accountID, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LedgerEvent), args.Error(1)
}

func (m *MockLedgerRepository) ListAssets(ctx context.Context, accountID string) ([]string, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLedgerRepository) ListAccounts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockPriceRepository is a mock implementation of PriceRepository
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) Upsert(ctx context.Context, bar *domain.PriceBar) error {
	args := m.Called(ctx, bar)
	return args.Error(0)
}

func (m *MockPriceRepository) ListBars(ctx context.Context, asset string, from time.Time) ([]*domain.PriceBar, error) {
	args := m.Called(ctx, asset, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PriceBar), args.Error(1)
}

const sampleSnapshot = `
[[events]]
id = "3b241101-e2bb-4255-8caf-4136c566a962"
account_id = "123456789"
asset = "VTI"
timestamp = 2021-03-01T15:00:00Z
quantity = "10"
price = "100"
total = "-1000"
description = "BOUGHT 10 VTI"
kind = "TRADE"

[[events]]
account_id = "123456789"
asset = "$CASH$"
timestamp = 2021-02-26T12:00:00Z
quantity = "0"
price = "0"
total = "5000"
kind = "ELECTRONIC_FUND"

[[bars]]
asset = "VTI"
date = 2021-03-01T00:00:00Z
open = "99.5"
close = "100"
high = "101"
low = "99"
volume = 1200

[[bars]]
asset = "GME"
date = 2021-03-01T00:00:00Z
open = "100"
close = "120"
high = "130"
low = "95"
volume = 9000
`

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	require.Len(t, snap.Events, 2)
	first := snap.Events[0]
	assert.Equal(t, uuid.MustParse("3b241101-e2bb-4255-8caf-4136c566a962"), first.ID)
	assert.Equal(t, "VTI", first.Asset)
	assert.True(t, first.Timestamp.Equal(time.Date(2021, 3, 1, 15, 0, 0, 0, time.UTC)))
	assert.True(t, first.Total.Equal(decimal.NewFromInt(-1000)))
	assert.Equal(t, "TRADE", first.Kind)

	require.Len(t, snap.Bars, 2)
	assert.True(t, snap.Bars[0].Close.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, int64(1200), snap.Bars[0].Volume)
}

func TestParseSnapshot_Malformed(t *testing.T) {
	_, err := ParseSnapshot([]byte(`[[events]]
quantity = "ten"`))

	assert.ErrorContains(t, err, "failed to parse snapshot")
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSnapshot), 0o600))

	snap, err := LoadSnapshot(path)

	require.NoError(t, err)
	assert.Len(t, snap.Events, 2)

	_, err = LoadSnapshot(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read snapshot")
}

func TestEventRecord_DerivesStableID(t *testing.T) {
	const idless = `
[[events]]
account_id = "123456789"
asset = "VTI"
timestamp = 2021-03-01T15:00:00Z
quantity = "10"
price = "100"
total = "-1000"
kind = "TRADE"
`
	first, err := ParseSnapshot([]byte(idless))
	require.NoError(t, err)
	second, err := ParseSnapshot([]byte(idless))
	require.NoError(t, err)

	firstEvents, _, err := convert(first)
	require.NoError(t, err)
	secondEvents, _, err := convert(second)
	require.NoError(t, err)

	require.Len(t, firstEvents, 1)
	require.Len(t, secondEvents, 1)
	assert.NotEqual(t, uuid.Nil, firstEvents[0].ID)
	assert.Equal(t, firstEvents[0].ID, secondEvents[0].ID, "same record maps to the same stored event")

	// Same instant in another zone and an equal amount written differently
	record := first.Events[0]
	record.Timestamp = record.Timestamp.In(time.FixedZone("EST", -5*3600))
	record.Quantity = decimal.RequireFromString("10.00")
	assert.Equal(t, firstEvents[0].ID, record.LedgerEvent().ID)

	// A different transaction gets a different ID
	record.Total = decimal.NewFromInt(-1001)
	assert.NotEqual(t, firstEvents[0].ID, record.LedgerEvent().ID)
}

func TestEventRecord_KeepsExplicitID(t *testing.T) {
	id := uuid.New()

	event := EventRecord{ID: id, AccountID: "a", Asset: "VTI"}.LedgerEvent()

	assert.Equal(t, id, event.ID)
}

func TestImporter_Import(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	priceRepo := new(MockPriceRepository)
	importer := NewImporter(ledgerRepo, priceRepo, logging.NewSilent())

	snap, err := ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	ledgerRepo.On("Create", ctx, mock.AnythingOfType("*domain.LedgerEvent")).Return(nil).Twice()
	ledgerRepo.On("ListAccounts", ctx).Return([]string{"123456789"}, nil)
	ledgerRepo.On("ListAssets", ctx, "123456789").Return([]string{"$CASH$", "VTI"}, nil)
	priceRepo.On("Upsert", ctx, mock.MatchedBy(func(bar *domain.PriceBar) bool {
		return bar.Asset == "VTI"
	})).Return(nil).Once()

	summary, err := importer.Import(ctx, snap)

	require.NoError(t, err)
	assert.Equal(t, &Summary{Events: 2, Bars: 1, SkippedBars: 1}, summary)
	ledgerRepo.AssertExpectations(t)
	priceRepo.AssertExpectations(t)
	priceRepo.AssertNotCalled(t, "Upsert", ctx, mock.MatchedBy(func(bar *domain.PriceBar) bool {
		return bar.Asset == "GME"
	}))
}

func TestImporter_Import_InvalidRecordsWriteNothing(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	priceRepo := new(MockPriceRepository)
	importer := NewImporter(ledgerRepo, priceRepo, logging.NewSilent())

	snap := &Snapshot{
		Events: []EventRecord{
			{AccountID: "a", Asset: "VTI", Timestamp: time.Now(), Kind: "SHORT_SALE"},
		},
		Bars: []BarRecord{
			{Asset: "VTI", Date: time.Now(), Low: decimal.NewFromInt(2), High: decimal.NewFromInt(1)},
		},
	}

	summary, err := importer.Import(ctx, snap)

	assert.Nil(t, summary)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid snapshot")
	assert.Contains(t, err.Error(), "event 0")
	assert.Contains(t, err.Error(), "bar 0")
	ledgerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	priceRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestImporter_Import_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	ledgerRepo := new(MockLedgerRepository)
	priceRepo := new(MockPriceRepository)
	importer := NewImporter(ledgerRepo, priceRepo, logging.NewSilent())

	snap, err := ParseSnapshot([]byte(sampleSnapshot))
	require.NoError(t, err)

	ledgerRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	ledgerRepo.On("Create", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	summary, err := importer.Import(ctx, snap)

	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, 1, summary.Events)
	priceRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
