package booking

import "time"

// CancellationPolicy computes the fee charged when a booking is cancelled.
type CancellationPolicy interface {
	// Fee returns the cancellation fee in cents for a booking with the given
	// pickup date and price, as of now.
	Fee(pickupDate time.Time, priceCents int64, now time.Time) int64
}

// TieredCancellationPolicy implements the standard fee schedule:
//
//   - pickup already passed (no-show): 100% of the price
//   - less than 1 day before pickup:    50%
//   - less than 7 days before pickup:   20%
//   - 7 or more days before pickup:     free
type TieredCancellationPolicy struct{}

// NewTieredCancellationPolicy creates the standard cancellation policy.
func NewTieredCancellationPolicy() *TieredCancellationPolicy {
	return &TieredCancellationPolicy{}
}

// Fee applies the fee schedule. The day count is fractional, not rounded:
// cancelling 36 hours ahead is 1.5 days and lands in the 20% tier.
func (p *TieredCancellationPolicy) Fee(pickupDate time.Time, priceCents int64, now time.Time) int64 {
	daysBeforePickup := pickupDate.Sub(now).Hours() / 24

	switch {
	case daysBeforePickup < 0:
		return priceCents
	case daysBeforePickup < 1:
		return priceCents / 2
	case daysBeforePickup < 7:
		return priceCents / 5
	default:
		return 0
	}
}
