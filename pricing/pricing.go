// Package pricing computes token allocations on the launchpad bonding curve.
//
// The marginal price is a linear function of cumulative demand:
//
//	price = totalSold*slope + ratio
//
// A slope of zero yields a fixed-price sale. Allocation is integer-exact:
// the contribution buys floor(contribution / price) tokens, remainder
// retained by the sale (no fractional allocations).
package pricing

import (
	"errors"

	"github.com/holiman/uint256"
)

// ErrInvalidPrice is returned when the marginal price evaluates to zero.
var ErrInvalidPrice = errors.New("pricing: marginal price is zero")

// Quote returns the token allocation for a contribution given the sale's
// cumulative sold amount before this call, the base exchange ratio, and the
// price slope. Pure; callers pass the pre-update totalSold so price depends
// only on demand observed at call time.
func Quote(totalSold, ratio, slope, contribution *uint256.Int) (*uint256.Int, error) {
	denom := new(uint256.Int).Mul(totalSold, slope)
	denom.Add(denom, ratio)
	if denom.IsZero() {
		return nil, ErrInvalidPrice
	}
	return new(uint256.Int).Div(contribution, denom), nil
}

// MarginalPrice returns the current per-token price without allocating.
func MarginalPrice(totalSold, ratio, slope *uint256.Int) *uint256.Int {
	p := new(uint256.Int).Mul(totalSold, slope)
	return p.Add(p, ratio)
}
