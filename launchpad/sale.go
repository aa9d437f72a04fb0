package launchpad

import (
	"github.com/holiman/uint256"

	"github.com/statera-xyz/go-launchpad/access"
	"github.com/statera-xyz/go-launchpad/asset"
	"github.com/statera-xyz/go-launchpad/vesting"
)

// SaleID identifies a sale. Ids are assigned sequentially starting at 1.
type SaleID uint64

// SaleType distinguishes open sales from allow-list-gated ones.
type SaleType uint8

const (
	Public SaleType = iota
	Private
)

func (t SaleType) String() string {
	if t == Private {
		return "private"
	}
	return "public"
}

// Phase is the explicit lifecycle state of a sale. Active sales may move to
// Cancelled (admin/organizer action) or Ended (observed lazily from the end
// time, made explicit at organizer withdrawal); both are terminal.
type Phase uint8

const (
	Active Phase = iota
	Cancelled
	Ended
)

func (p Phase) String() string {
	switch p {
	case Cancelled:
		return "cancelled"
	case Ended:
		return "ended"
	default:
		return "active"
	}
}

// SaleParams are the admin-supplied, immutable-once-created sale settings.
type SaleParams struct {
	// Organizer is the sale beneficiary. Zero means the creating admin.
	Organizer access.Identity

	Type SaleType

	// StartTime and EndTime bound the funding window (ms). A zero StartTime
	// means the sale opens immediately.
	StartTime uint64
	EndTime   uint64

	// ExchangeRatio is the base token price; Slope is the price increase per
	// token already sold (zero for fixed-price sales).
	ExchangeRatio *uint256.Int
	Slope         *uint256.Int

	// Min and Max bound each participant's cumulative contribution.
	Min *uint256.Int
	Max *uint256.Int

	// TotalTokenAmount is the inventory escrowed for this sale at creation.
	TotalTokenAmount *uint256.Int

	// AcceptableExchangeToken is the coin color accepted for funding.
	AcceptableExchangeToken asset.TokenType

	// Target is the fundraising goal. Informational.
	Target *uint256.Int

	// InfoCID is an opaque off-chain metadata pointer.
	InfoCID [32]byte

	Vesting vesting.Schedule
}

// SaleInfo is the public per-sale record.
type SaleInfo struct {
	ID        SaleID
	Organizer access.Identity
	Type      SaleType
	Phase     Phase

	StartTime uint64
	EndTime   uint64

	ExchangeRatio *uint256.Int
	Slope         *uint256.Int
	Min           *uint256.Int
	Max           *uint256.Int

	TotalTokenAmount *uint256.Int
	TotalTokenSold   *uint256.Int
	AmountRaised     *uint256.Int
	Participants     uint64

	AcceptableExchangeToken asset.TokenType
	HasWithdrawn            bool
	Target                  *uint256.Int
	InfoCID                 [32]byte

	Vesting vesting.Schedule
}

// clone returns a deep copy safe to hand to callers.
func (s *SaleInfo) clone() SaleInfo {
	out := *s
	out.ExchangeRatio = s.ExchangeRatio.Clone()
	out.Slope = s.Slope.Clone()
	out.Min = s.Min.Clone()
	out.Max = s.Max.Clone()
	out.TotalTokenAmount = s.TotalTokenAmount.Clone()
	out.TotalTokenSold = s.TotalTokenSold.Clone()
	out.AmountRaised = s.AmountRaised.Clone()
	out.Target = s.Target.Clone()
	return out
}

// endedAt reports whether the sale has passed its funding window or been
// explicitly ended. Cancelled sales are not "ended" in this sense.
func (s *SaleInfo) endedAt(now uint64) bool {
	return s.Phase == Ended || (s.Phase == Active && now >= s.EndTime)
}

// openAt reports whether the sale accepts funding at the given time.
func (s *SaleInfo) openAt(now uint64) bool {
	return s.Phase == Active && now >= s.StartTime && now < s.EndTime
}
