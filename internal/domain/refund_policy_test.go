package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeRefund_Bands(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	price := int64(150000)

	tests := []struct {
		name        string
		lead        time.Duration
		wantBand    RefundBand
		wantRefund  int64
	}{
		{
			name:       "far in the future gives full refund",
			lead:       72 * time.Hour,
			wantBand:   RefundBandFull,
			wantRefund: 150000,
		},
		{
			name:       "exactly 48h gives full refund",
			lead:       48 * time.Hour,
			wantBand:   RefundBandFull,
			wantRefund: 150000,
		},
		{
			name:       "just under 48h gives half refund",
			lead:       48*time.Hour - time.Minute,
			wantBand:   RefundBandHalf,
			wantRefund: 75000,
		},
		{
			name:       "30h gives half refund",
			lead:       30 * time.Hour,
			wantBand:   RefundBandHalf,
			wantRefund: 75000,
		},
		{
			name:       "exactly 24h gives half refund",
			lead:       24 * time.Hour,
			wantBand:   RefundBandHalf,
			wantRefund: 75000,
		},
		{
			name:       "just under 24h gives no refund",
			lead:       24*time.Hour - time.Minute,
			wantBand:   RefundBandNone,
			wantRefund: 0,
		},
		{
			name:       "10h gives no refund",
			lead:       10 * time.Hour,
			wantBand:   RefundBandNone,
			wantRefund: 0,
		},
		{
			name:       "session already started gives no refund",
			lead:       -time.Hour,
			wantBand:   RefundBandNone,
			wantRefund: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := ComputeRefund(now.Add(tt.lead), now, price)

			assert.Equal(t, tt.wantBand, decision.Band)
			assert.Equal(t, tt.wantRefund, decision.RefundPaise)
		})
	}
}

func TestComputeRefund_HalfRoundsDown(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	decision := ComputeRefund(now.Add(30*time.Hour), now, 101)

	assert.Equal(t, RefundBandHalf, decision.Band)
	assert.Equal(t, int64(50), decision.RefundPaise)
}
