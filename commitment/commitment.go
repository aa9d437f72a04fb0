// Package commitment maintains the public funding-commitment registry and
// the one-way derivation that links a participant's private sale record to
// it without revealing identity or amounts.
//
// A participant's private state hash is derived from their secret key and
// the sale id; the published commitment is a second hash of that state.
// The registry stores only commitments and a claimed flag, so the public
// ledger can gate double-claims and double-refunds while learning nothing
// about who contributed or how much.
package commitment

import (
	"encoding/hex"
	"errors"
	"math/big"
	"sync"
)

// ErrUnknownCommitment is returned when a commitment is absent from the registry.
var ErrUnknownCommitment = errors.New("commitment: unknown commitment")

// Hasher is the pluggable commitment hash. Implementations must be
// deterministic one-way functions over field-encoded inputs.
type Hasher interface {
	Sum(inputs ...*big.Int) [32]byte
}

// Commitment is the public key of a funding record.
type Commitment [32]byte

// String returns the hex encoding of the commitment.
func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// Derive computes the private state hash and public commitment for a
// participant secret and sale id:
//
//	state      = H(secret, saleID)
//	commitment = H(state)
//
// Only the commitment ever crosses the public boundary.
func Derive(h Hasher, secret [32]byte, saleID uint64) (state [32]byte, cm Commitment) {
	state = h.Sum(
		new(big.Int).SetBytes(secret[:]),
		new(big.Int).SetUint64(saleID),
	)
	cm = Commitment(h.Sum(new(big.Int).SetBytes(state[:])))
	return state, cm
}

// FundingInfo is the public per-commitment record.
type FundingInfo struct {
	Claimed bool
}

// Registry is the public map of funding commitments.
type Registry struct {
	mu      sync.RWMutex
	entries map[Commitment]*FundingInfo
}

// NewRegistry creates an empty commitment registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Commitment]*FundingInfo)}
}

// Publish inserts a commitment. Idempotent: republishing an existing
// commitment does not clear its claimed flag.
func (r *Registry) Publish(c Commitment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[c]; !ok {
		r.entries[c] = &FundingInfo{}
	}
}

// Lookup returns the funding info for a commitment.
func (r *Registry) Lookup(c Commitment) (FundingInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.entries[c]
	if !ok {
		return FundingInfo{}, false
	}
	return *info, true
}

// MarkClaimed flags a commitment as fully claimed.
func (r *Registry) MarkClaimed(c Commitment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.entries[c]
	if !ok {
		return ErrUnknownCommitment
	}
	info.Claimed = true
	return nil
}

// Remove deletes a commitment, used when a contribution is refunded.
func (r *Registry) Remove(c Commitment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[c]; !ok {
		return ErrUnknownCommitment
	}
	delete(r.entries, c)
	return nil
}

// Len returns the number of published commitments.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
