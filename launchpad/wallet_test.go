package launchpad

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/statera-xyz/go-launchpad/commitment"
)

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestWalletCommitmentDeterministic(t *testing.T) {
	var secret [32]byte
	copy(secret[:], []byte("vera"))
	w := NewWallet(secret)
	h := commitment.MiMC{}

	if w.Commitment(h, 1) != w.Commitment(h, 1) {
		t.Error("commitment must be deterministic per sale")
	}
	if w.Commitment(h, 1) == w.Commitment(h, 2) {
		t.Error("commitments must differ across sales")
	}

	other := RandomWallet()
	if w.Commitment(h, 1) == other.Commitment(h, 1) {
		t.Error("commitments must differ across wallets")
	}
}

func TestWalletRecordsAreCopies(t *testing.T) {
	w := RandomWallet()
	w.upsert(3, u(100), u(10))

	rec, ok := w.Record(3)
	if !ok {
		t.Fatal("missing record")
	}
	rec.Contribution.SetUint64(9999)

	rec2, _ := w.Record(3)
	if rec2.Contribution.Uint64() != 100 {
		t.Error("Record leaked internal state")
	}

	w.upsert(3, u(50), u(5))
	rec3, _ := w.Record(3)
	if rec3.Contribution.Uint64() != 150 || rec3.TotalAllocation.Uint64() != 15 {
		t.Errorf("upsert did not accumulate: contribution=%s allocation=%s",
			rec3.Contribution.Dec(), rec3.TotalAllocation.Dec())
	}

	w.remove(3)
	if _, ok := w.Record(3); ok {
		t.Error("record survived removal")
	}
	if len(w.Records()) != 0 {
		t.Errorf("expected no records, got %d", len(w.Records()))
	}
}
