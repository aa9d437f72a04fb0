// Package vesting computes the claimable fraction of a sale allocation over
// time: nothing before the token generation event (TGE), a fixed percentage
// between TGE and the cliff, then linear daily accrual until fully unlocked.
//
// All percentage arithmetic is integer division truncating toward zero,
// matching the allocation rounding used by the pricing curve.
package vesting

import "github.com/holiman/uint256"

// Day is one day in milliseconds, the unit of linear accrual.
const Day uint64 = 86_400_000

// Schedule holds the vesting parameters of a sale. Times are absolute
// millisecond timestamps supplied by the ledger's time collaborator.
type Schedule struct {
	TGETime    uint64 // when the TGE percentage unlocks
	CliffTime  uint64 // when linear daily accrual begins
	TGEPercent uint64 // percentage unlocked at TGE, 0..100
	// DailyPercent is the percentage of the total allocation that unlocks per
	// day after the cliff. Zero means nothing unlocks beyond the TGE share.
	DailyPercent uint64
	Duration     uint64 // total linear vesting duration in milliseconds
}

// DailyPercentFromDuration derives the per-day unlock percentage that
// releases the non-TGE remainder evenly over the given duration.
// Returns zero for a zero duration (the TGE share is the whole unlock).
func DailyPercentFromDuration(tgePercent, duration uint64) uint64 {
	if duration == 0 || tgePercent >= 100 {
		return 0
	}
	days := duration / Day
	if days == 0 {
		days = 1
	}
	return (100 - tgePercent) / days
}

// Claimable returns how much of total is unlocked at the given time.
// Pure, non-decreasing in now, and capped at total.
func (s Schedule) Claimable(now uint64, total *uint256.Int) *uint256.Int {
	if now < s.TGETime {
		return uint256.NewInt(0)
	}

	tge := percentOf(total, s.TGEPercent)
	if tge.Gt(total) {
		tge = total.Clone()
	}
	if now < s.CliffTime {
		return tge
	}

	days := (now - s.CliffTime) / Day
	linearPct := s.DailyPercent * days
	if remainder := 100 - min(100, s.TGEPercent); linearPct > remainder {
		linearPct = remainder
	}

	out := tge.Add(tge, percentOf(total, linearPct))
	if out.Gt(total) {
		return total.Clone()
	}
	return out
}

// percentOf returns total*pct/100, truncating.
func percentOf(total *uint256.Int, pct uint64) *uint256.Int {
	out := new(uint256.Int).Mul(total, uint256.NewInt(pct))
	return out.Div(out, uint256.NewInt(100))
}
