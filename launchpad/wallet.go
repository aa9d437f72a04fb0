package launchpad

import (
	"crypto/rand"
	"sync"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/holiman/uint256"

	"github.com/statera-xyz/go-launchpad/commitment"
)

// PrivateRecord is a participant's own record of one sale: what they put in,
// what they were allocated, and what they have claimed so far. It never
// appears on the public ledger; only commitments derived from the wallet
// secret cross the public/private boundary.
type PrivateRecord struct {
	SaleID            SaleID
	Contribution      *uint256.Int
	TotalAllocation   *uint256.Int
	ClaimedAllocation *uint256.Int
}

func (r *PrivateRecord) clone() PrivateRecord {
	return PrivateRecord{
		SaleID:            r.SaleID,
		Contribution:      r.Contribution.Clone(),
		TotalAllocation:   r.TotalAllocation.Clone(),
		ClaimedAllocation: r.ClaimedAllocation.Clone(),
	}
}

// Wallet is a participant's off-ledger private state: a secret key and the
// sale records it owns. Only the owning participant's transactions mutate it.
type Wallet struct {
	secret [32]byte

	mu      sync.Mutex
	records map[SaleID]*PrivateRecord
}

// NewWallet creates a wallet with the given secret key.
func NewWallet(secret [32]byte) *Wallet {
	return &Wallet{secret: secret, records: make(map[SaleID]*PrivateRecord)}
}

// RandomWallet creates a wallet with a freshly generated secret key.
func RandomWallet() *Wallet {
	var secret [32]byte
	rand.Read(secret[:])
	return NewWallet(secret)
}

// Commitment derives the public commitment for this wallet and sale.
func (w *Wallet) Commitment(h commitment.Hasher, id SaleID) commitment.Commitment {
	_, cm := commitment.Derive(h, w.secret, uint64(id))
	return cm
}

// ProveOwnership produces a proof of knowledge of the commitment preimage,
// suitable for handing to a verifier alongside the public commitment.
func (w *Wallet) ProveOwnership(p *commitment.Prover, id SaleID, cm commitment.Commitment) (groth16.Proof, error) {
	return p.Prove(w.secret, uint64(id), cm)
}

// Record returns a copy of the record for a sale, if any.
func (w *Wallet) Record(id SaleID) (PrivateRecord, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.records[id]
	if !ok {
		return PrivateRecord{}, false
	}
	return r.clone(), true
}

// Records returns copies of all records held by the wallet.
func (w *Wallet) Records() []PrivateRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]PrivateRecord, 0, len(w.records))
	for _, r := range w.records {
		out = append(out, r.clone())
	}
	return out
}

// upsert accumulates a funding call into the sale record.
func (w *Wallet) upsert(id SaleID, contribution, tokens *uint256.Int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	r, ok := w.records[id]
	if !ok {
		r = &PrivateRecord{
			SaleID:            id,
			Contribution:      uint256.NewInt(0),
			TotalAllocation:   uint256.NewInt(0),
			ClaimedAllocation: uint256.NewInt(0),
		}
		w.records[id] = r
	}
	r.Contribution.Add(r.Contribution, contribution)
	r.TotalAllocation.Add(r.TotalAllocation, tokens)
}

// setClaimed records the new claimed allocation after a successful claim.
func (w *Wallet) setClaimed(id SaleID, claimed *uint256.Int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if r, ok := w.records[id]; ok {
		r.ClaimedAllocation = claimed.Clone()
	}
}

// remove deletes the sale record entirely, after a successful refund.
func (w *Wallet) remove(id SaleID) {
	w.mu.Lock()
	delete(w.records, id)
	w.mu.Unlock()
}
