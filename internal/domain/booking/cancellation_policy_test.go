package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTieredCancellationPolicyFee(t *testing.T) {
	policy := NewTieredCancellationPolicy()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		pickup time.Time
		price  int64
		want   int64
	}{
		{
			name:   "pickup already passed charges full price",
			pickup: now.Add(-2 * time.Hour),
			price:  100000,
			want:   100000,
		},
		{
			name:   "less than one day before pickup charges half",
			pickup: now.Add(12 * time.Hour),
			price:  100000,
			want:   50000,
		},
		{
			name:   "less than seven days before pickup charges a fifth",
			pickup: now.Add(3 * 24 * time.Hour),
			price:  100000,
			want:   20000,
		},
		{
			name:   "seven days or more is free",
			pickup: now.Add(10 * 24 * time.Hour),
			price:  100000,
			want:   0,
		},
		{
			name:   "exactly seven days is free",
			pickup: now.Add(7 * 24 * time.Hour),
			price:  100000,
			want:   0,
		},
		{
			name:   "exactly one day falls into the week tier",
			pickup: now.Add(24 * time.Hour),
			price:  100000,
			want:   20000,
		},
		{
			name:   "pickup at this instant charges half",
			pickup: now,
			price:  100000,
			want:   50000,
		},
		{
			name:   "fractional day before pickup charges half",
			pickup: now.Add(90 * time.Minute),
			price:  100000,
			want:   50000,
		},
		{
			name:   "zero price yields zero fee",
			pickup: now.Add(-1 * time.Hour),
			price:  0,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Fee(tt.pickup, tt.price, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTieredCancellationPolicyFeeNeverExceedsPrice(t *testing.T) {
	policy := NewTieredCancellationPolicy()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	price := int64(77700)

	offsets := []time.Duration{
		-30 * 24 * time.Hour,
		-1 * time.Hour,
		0,
		6 * time.Hour,
		36 * time.Hour,
		6 * 24 * time.Hour,
		30 * 24 * time.Hour,
	}
	for _, offset := range offsets {
		fee := policy.Fee(now.Add(offset), price, now)
		assert.GreaterOrEqual(t, fee, int64(0))
		assert.LessOrEqual(t, fee, price)
	}
}

func TestTieredCancellationPolicyFeeMonotonic(t *testing.T) {
	policy := NewTieredCancellationPolicy()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	price := int64(100000)

	// The closer the pickup, the higher (or equal) the fee.
	far := policy.Fee(now.Add(14*24*time.Hour), price, now)
	near := policy.Fee(now.Add(2*24*time.Hour), price, now)
	imminent := policy.Fee(now.Add(2*time.Hour), price, now)
	passed := policy.Fee(now.Add(-2*time.Hour), price, now)

	assert.LessOrEqual(t, far, near)
	assert.LessOrEqual(t, near, imminent)
	assert.LessOrEqual(t, imminent, passed)
}
