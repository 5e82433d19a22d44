package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPriceBar_Validate(t *testing.T) {
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bar     PriceBar
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid bar should pass",
			bar: PriceBar{
				Asset: "VTI", Date: day,
				Open: decimal.NewFromInt(99), Close: decimal.NewFromInt(100),
				High: decimal.NewFromInt(101), Low: decimal.NewFromInt(98),
				Volume: 1_000_000,
			},
			wantErr: false,
		},
		{
			name:    "Empty asset should fail",
			bar:     PriceBar{Date: day},
			wantErr: true,
			errMsg:  "asset cannot be empty",
		},
		{
			name:    "Zero date should fail",
			bar:     PriceBar{Asset: "VTI"},
			wantErr: true,
			errMsg:  "date cannot be zero",
		},
		{
			name: "Negative close should fail",
			bar: PriceBar{
				Asset: "VTI", Date: day, Close: decimal.NewFromInt(-1),
			},
			wantErr: true,
			errMsg:  "prices must be non-negative",
		},
		{
			name: "Low above high should fail",
			bar: PriceBar{
				Asset: "VTI", Date: day,
				High: decimal.NewFromInt(10), Low: decimal.NewFromInt(11),
			},
			wantErr: true,
			errMsg:  "low must not exceed high",
		},
		{
			name: "Negative volume should fail",
			bar: PriceBar{
				Asset: "VTI", Date: day, Volume: -5,
			},
			wantErr: true,
			errMsg:  "volume must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bar.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPriceBar_DayAndCutoff(t *testing.T) {
	bar := PriceBar{Asset: "VTI", Date: time.Date(2021, 3, 1, 21, 0, 0, 0, time.UTC)}

	assert.Equal(t, time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), bar.Day())
	assert.Equal(t, time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC), bar.Cutoff())
}
