package commitment

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/consensys/gnark/std/hash/mimc"
)

// OwnershipCircuit proves knowledge of the secret behind a published
// funding commitment for a given sale:
//
//	commitment == MiMC(MiMC(secret, saleID))
//
// SaleID and Commitment are public; the secret never leaves the prover.
type OwnershipCircuit struct {
	SaleID     frontend.Variable `gnark:",public"`
	Commitment frontend.Variable `gnark:",public"`
	Secret     frontend.Variable
}

// Define declares the circuit constraints.
func (c *OwnershipCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Secret, c.SaleID)
	state := h.Sum()

	h.Reset()
	h.Write(state)
	api.AssertIsEqual(h.Sum(), c.Commitment)
	return nil
}

// Prover compiles the ownership circuit once and produces/verifies
// groth16 proofs of commitment ownership.
type Prover struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// NewProver compiles the circuit and runs the groth16 setup.
func NewProver() (*Prover, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &OwnershipCircuit{})
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, err
	}
	return &Prover{ccs: ccs, pk: pk, vk: vk}, nil
}

// Prove produces a proof that the caller knows the secret behind cm for saleID.
func (p *Prover) Prove(secret [32]byte, saleID uint64, cm Commitment) (groth16.Proof, error) {
	var sk fr.Element
	sk.SetBytes(secret[:])

	assignment := &OwnershipCircuit{
		SaleID:     saleID,
		Commitment: new(big.Int).SetBytes(cm[:]),
		Secret:     sk.BigInt(new(big.Int)),
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	return groth16.Prove(p.ccs, p.pk, w)
}

// Verify checks a proof against the public sale id and commitment.
func (p *Prover) Verify(proof groth16.Proof, saleID uint64, cm Commitment) error {
	assignment := &OwnershipCircuit{
		SaleID:     saleID,
		Commitment: new(big.Int).SetBytes(cm[:]),
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	return groth16.Verify(proof, p.vk, w)
}
