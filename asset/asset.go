// Package asset models the opaque value-transfer primitive the ledger core
// moves around: coins with a color (token type), a value, and a nonce the
// core never inspects, plus escrow pools that hold coins in custody.
//
// The package deliberately knows nothing about sales, identities, or pricing;
// it only enforces color discipline and balance arithmetic.
package asset

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/holiman/uint256"
)

var (
	ErrColorMismatch       = errors.New("asset: coin color does not match pool")
	ErrInsufficientBalance = errors.New("asset: insufficient pool balance")
	ErrZeroValue           = errors.New("asset: coin has zero value")
)

// TokenType identifies a fungible asset class (the coin "color").
type TokenType [32]byte

// TokenTypeFromBytes builds a TokenType from up to 32 bytes.
func TokenTypeFromBytes(b []byte) TokenType {
	var t TokenType
	copy(t[:], b)
	return t
}

// String returns the hex encoding of the token type.
func (t TokenType) String() string {
	return hex.EncodeToString(t[:])
}

// Coin is an opaque asset handle. The nonce exists so every coin instance is
// distinguishable; the core treats it as payload and never interprets it.
type Coin struct {
	Nonce [32]byte
	Color TokenType
	Value *uint256.Int
}

// NewCoin creates a coin of the given color and value with a fresh nonce.
func NewCoin(color TokenType, value *uint256.Int) Coin {
	var nonce [32]byte
	rand.Read(nonce[:])
	return Coin{Nonce: nonce, Color: color, Value: value.Clone()}
}

// Pool is an escrow account holding coins of a single color.
type Pool struct {
	color   TokenType
	balance *uint256.Int
}

// NewPool creates an empty pool accepting coins of the given color.
func NewPool(color TokenType) *Pool {
	return &Pool{color: color, balance: uint256.NewInt(0)}
}

// Color returns the token type the pool accepts.
func (p *Pool) Color() TokenType {
	return p.color
}

// Balance returns a copy of the pool balance.
func (p *Pool) Balance() *uint256.Int {
	return p.balance.Clone()
}

// Deposit merges a coin into the pool.
// Fails if the coin color differs from the pool's or the value is zero.
func (p *Pool) Deposit(c Coin) error {
	if c.Color != p.color {
		return ErrColorMismatch
	}
	if c.Value == nil || c.Value.IsZero() {
		return ErrZeroValue
	}
	p.balance.Add(p.balance, c.Value)
	return nil
}

// Withdraw removes amount from the pool and returns it as a fresh coin.
func (p *Pool) Withdraw(amount *uint256.Int) (Coin, error) {
	if amount.Gt(p.balance) {
		return Coin{}, ErrInsufficientBalance
	}
	p.balance.Sub(p.balance, amount)
	return NewCoin(p.color, amount), nil
}

// Reserve removes amount from the pool without producing a coin.
// Used when custody moves between pools inside the same ledger.
func (p *Pool) Reserve(amount *uint256.Int) error {
	if amount.Gt(p.balance) {
		return ErrInsufficientBalance
	}
	p.balance.Sub(p.balance, amount)
	return nil
}

// Credit adds amount to the pool without consuming a coin.
func (p *Pool) Credit(amount *uint256.Int) {
	p.balance.Add(p.balance, amount)
}
