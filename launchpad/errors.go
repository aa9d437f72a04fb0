package launchpad

import "errors"

// Operation failure taxonomy. Every public operation fails with exactly one
// of these (or an access/pricing sentinel) and leaves no partial mutation.
var (
	ErrSaleNotFound            = errors.New("launchpad: sale not found")
	ErrSaleClosed              = errors.New("launchpad: sale is not open for funding")
	ErrInvalidTransition       = errors.New("launchpad: invalid sale state transition")
	ErrInsufficientInventory   = errors.New("launchpad: insufficient token inventory")
	ErrContributionOutOfBounds = errors.New("launchpad: cumulative contribution outside sale bounds")
	ErrAllocationTooSmall      = errors.New("launchpad: contribution buys zero tokens")
	ErrAssetMismatch           = errors.New("launchpad: coin color not accepted by sale")
	ErrRecordMismatch          = errors.New("launchpad: private state and on-chain state disagree")
	ErrNothingToClaim          = errors.New("launchpad: nothing to claim yet")
	ErrAlreadyWithdrawn        = errors.New("launchpad: sale funds already withdrawn")
	ErrInvalidSaleParams       = errors.New("launchpad: invalid sale parameters")
)
