package commitment

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// MiMC is the default commitment hasher: MiMC over the BN254 scalar field,
// the same construction the ownership circuit verifies in-circuit, so native
// and in-circuit derivations agree.
type MiMC struct{}

// Sum hashes the inputs as BN254 field elements.
// Inputs larger than the field modulus are reduced.
func (MiMC) Sum(inputs ...*big.Int) [32]byte {
	h := mimc.NewMiMC()
	for _, in := range inputs {
		var e fr.Element
		e.SetBigInt(in)
		b := e.Bytes()
		h.Write(b[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
