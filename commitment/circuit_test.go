package commitment

import (
	"testing"
)

// TestOwnershipProof runs the full compile/setup/prove/verify cycle:
// a participant proves knowledge of the secret behind a published
// commitment without revealing it.
func TestOwnershipProof(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	prover, err := NewProver()
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	var secret [32]byte
	copy(secret[:], []byte("vera-secret-key"))
	const saleID = 2

	_, cm := Derive(MiMC{}, secret, saleID)

	proof, err := prover.Prove(secret, saleID, cm)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if err := prover.Verify(proof, saleID, cm); err != nil {
		t.Errorf("valid proof rejected: %v", err)
	}

	t.Run("wrong sale id", func(t *testing.T) {
		if err := prover.Verify(proof, saleID+1, cm); err == nil {
			t.Error("proof verified against the wrong sale")
		}
	})

	t.Run("wrong commitment", func(t *testing.T) {
		_, other := Derive(MiMC{}, secret, saleID+1)
		if err := prover.Verify(proof, saleID, other); err == nil {
			t.Error("proof verified against a foreign commitment")
		}
	})

	t.Run("wrong secret cannot prove", func(t *testing.T) {
		var bad [32]byte
		copy(bad[:], []byte("mallory"))
		if _, err := prover.Prove(bad, saleID, cm); err == nil {
			t.Error("proving with the wrong secret should fail witness solving")
		}
	})
}
