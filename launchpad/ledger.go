// Package launchpad implements the token-launchpad ledger core: sale
// creation and escrow accounting, bonding-curve funding, allow-list gating,
// cancellation and refunds, and vesting-based claims, reconciled against
// identity-hiding funding commitments.
//
// The ledger is a sequentially-applied transaction log. Every public
// operation is atomic: it re-validates phase, time, and ownership at entry,
// then either mutates fully or fails with a typed error and no state change.
package launchpad

import (
	"sync"

	"github.com/holiman/uint256"

	"github.com/statera-xyz/go-launchpad/access"
	"github.com/statera-xyz/go-launchpad/asset"
	"github.com/statera-xyz/go-launchpad/commitment"
	"github.com/statera-xyz/go-launchpad/pricing"
	"github.com/statera-xyz/go-launchpad/vesting"
)

// Entry describes one applied operation, handed to the Recorder after the
// state change commits. Amounts are decimal strings for stable encoding.
type Entry struct {
	Op           string `json:"op"`
	SaleID       uint64 `json:"sale_id,omitempty"`
	Amount       string `json:"amount,omitempty"`
	Tokens       string `json:"tokens,omitempty"`
	Commitment   string `json:"commitment,omitempty"`
	Participants uint64 `json:"participants,omitempty"`
}

// Recorder receives entries for applied operations. Recording happens after
// the mutation commits; a recorder cannot veto an operation.
type Recorder interface {
	Record(e Entry)
}

// Ledger is the process-wide launchpad state, constructed once at genesis
// and passed explicitly to every operation. It owns the sale map, the escrow
// pools, the allow-list, and the public commitment registry.
type Ledger struct {
	mu sync.RWMutex

	clock  Clock
	hasher commitment.Hasher
	roles  *access.Roles

	saleToken asset.TokenType // color of the token being sold
	minted    *uint256.Int    // supply authorized via CreateToken
	tvl       *asset.Pool     // unreserved sale-token custody

	sales       map[SaleID]*SaleInfo
	tokenPools  map[SaleID]*asset.Pool // reserved inventory awaiting claims
	raisedPools map[SaleID]*asset.Pool // exchange-asset custody per sale
	funding     *commitment.Registry

	nextSale SaleID
	recorder Recorder
}

// Option configures a Ledger at genesis.
type Option func(*Ledger)

// WithHasher swaps the commitment scheme. Default is MiMC over BN254.
func WithHasher(h commitment.Hasher) Option {
	return func(l *Ledger) { l.hasher = h }
}

// WithRecorder attaches an operation recorder.
func WithRecorder(r Recorder) Option {
	return func(l *Ledger) { l.recorder = r }
}

// NewLedger creates the genesis ledger state. superAdmin is immutable;
// saleToken is the color of the token offered across all sales.
func NewLedger(superAdmin access.Identity, saleToken asset.TokenType, clock Clock, opts ...Option) *Ledger {
	l := &Ledger{
		clock:       clock,
		hasher:      commitment.MiMC{},
		roles:       access.NewRoles(superAdmin),
		saleToken:   saleToken,
		minted:      uint256.NewInt(0),
		tvl:         asset.NewPool(saleToken),
		sales:       make(map[SaleID]*SaleInfo),
		tokenPools:  make(map[SaleID]*asset.Pool),
		raisedPools: make(map[SaleID]*asset.Pool),
		funding:     commitment.NewRegistry(),
		nextSale:    1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Roles exposes the authorization state, e.g. for allow-list management.
func (l *Ledger) Roles() *access.Roles {
	return l.roles
}

// Hasher returns the commitment scheme in use.
func (l *Ledger) Hasher() commitment.Hasher {
	return l.hasher
}

// CreateToken mints new supply of the sale token. Admin-only. The minted
// coin enters TVL only when deposited via ReceiveToken.
func (l *Ledger) CreateToken(caller access.Identity, amount *uint256.Int) (asset.Coin, error) {
	if err := l.roles.RequireSuperAdmin(caller); err != nil {
		return asset.Coin{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	l.minted.Add(l.minted, amount)
	coin := asset.NewCoin(l.saleToken, amount)
	l.record(Entry{Op: "create_token", Amount: amount.Dec()})
	return coin, nil
}

// ReceiveToken deposits a sale-token coin into TVL custody.
func (l *Ledger) ReceiveToken(coin asset.Coin) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if coin.Color != l.saleToken {
		return ErrAssetMismatch
	}
	if err := l.tvl.Deposit(coin); err != nil {
		return err
	}
	l.record(Entry{Op: "receive_token", Amount: coin.Value.Dec()})
	return nil
}

// CreateSale validates params, reserves inventory from TVL, and registers a
// new Active sale. Admin-only. Returns the fresh sale id.
func (l *Ledger) CreateSale(caller access.Identity, p SaleParams) (SaleID, error) {
	if err := l.roles.RequireSuperAdmin(caller); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	start := p.StartTime
	if start == 0 {
		start = now
	}
	if start >= p.EndTime {
		return 0, ErrInvalidSaleParams
	}
	if p.Min == nil || p.Max == nil || p.Min.Gt(p.Max) {
		return 0, ErrInvalidSaleParams
	}
	if p.ExchangeRatio == nil || p.Slope == nil || p.TotalTokenAmount == nil || p.TotalTokenAmount.IsZero() {
		return 0, ErrInvalidSaleParams
	}
	if p.TotalTokenAmount.Gt(l.tvl.Balance()) {
		return 0, ErrInsufficientInventory
	}

	organizer := p.Organizer
	if organizer.IsZero() {
		organizer = caller
	}
	sched := p.Vesting
	if sched.DailyPercent == 0 {
		sched.DailyPercent = vesting.DailyPercentFromDuration(sched.TGEPercent, sched.Duration)
	}
	target := p.Target
	if target == nil {
		target = uint256.NewInt(0)
	}

	// Reserve inventory: TVL decreases by the full sale amount at creation.
	if err := l.tvl.Reserve(p.TotalTokenAmount); err != nil {
		return 0, ErrInsufficientInventory
	}

	id := l.nextSale
	l.nextSale++

	pool := asset.NewPool(l.saleToken)
	pool.Credit(p.TotalTokenAmount)
	l.tokenPools[id] = pool
	l.raisedPools[id] = asset.NewPool(p.AcceptableExchangeToken)

	l.sales[id] = &SaleInfo{
		ID:                      id,
		Organizer:               organizer,
		Type:                    p.Type,
		Phase:                   Active,
		StartTime:               start,
		EndTime:                 p.EndTime,
		ExchangeRatio:           p.ExchangeRatio.Clone(),
		Slope:                   p.Slope.Clone(),
		Min:                     p.Min.Clone(),
		Max:                     p.Max.Clone(),
		TotalTokenAmount:        p.TotalTokenAmount.Clone(),
		TotalTokenSold:          uint256.NewInt(0),
		AmountRaised:            uint256.NewInt(0),
		AcceptableExchangeToken: p.AcceptableExchangeToken,
		Target:                  target.Clone(),
		InfoCID:                 p.InfoCID,
		Vesting:                 sched,
	}

	l.record(Entry{Op: "create_sale", SaleID: uint64(id), Tokens: p.TotalTokenAmount.Dec()})
	return id, nil
}

// FundSale exchanges a coin for a token allocation on the sale's bonding
// curve. The public counters, the caller's private record, and the funding
// commitment are updated together. Returns the tokens allocated.
func (l *Ledger) FundSale(caller access.Identity, w *Wallet, id SaleID, coin asset.Coin) (*uint256.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale, ok := l.sales[id]
	if !ok {
		return nil, ErrSaleNotFound
	}
	now := l.clock.Now()
	if !sale.openAt(now) {
		return nil, ErrSaleClosed
	}
	if err := l.roles.RequireAllowed(caller, sale.Type == Private); err != nil {
		return nil, err
	}
	if coin.Color != sale.AcceptableExchangeToken {
		return nil, ErrAssetMismatch
	}

	// Price against the pre-update sold amount: strictly a function of
	// cumulative demand observed at call time.
	tokens, err := pricing.Quote(sale.TotalTokenSold, sale.ExchangeRatio, sale.Slope, coin.Value)
	if err != nil {
		return nil, err
	}
	if tokens.IsZero() {
		return nil, ErrAllocationTooSmall
	}

	cumulative := new(uint256.Int).Set(coin.Value)
	if rec, ok := w.Record(id); ok {
		cumulative.Add(cumulative, rec.Contribution)
	}
	if cumulative.Lt(sale.Min) || cumulative.Gt(sale.Max) {
		return nil, ErrContributionOutOfBounds
	}

	soldAfter := new(uint256.Int).Add(sale.TotalTokenSold, tokens)
	if soldAfter.Gt(sale.TotalTokenAmount) {
		return nil, ErrInsufficientInventory
	}

	cm := w.Commitment(l.hasher, id)
	_, contributed := l.funding.Lookup(cm)

	if err := l.raisedPools[id].Deposit(coin); err != nil {
		return nil, err
	}
	sale.TotalTokenSold.Set(soldAfter)
	sale.AmountRaised.Add(sale.AmountRaised, coin.Value)
	if !contributed {
		sale.Participants++
	}
	w.upsert(id, coin.Value, tokens)
	l.funding.Publish(cm)

	l.record(Entry{
		Op:           "fund_sale",
		SaleID:       uint64(id),
		Amount:       coin.Value.Dec(),
		Tokens:       tokens.Dec(),
		Commitment:   cm.String(),
		Participants: sale.Participants,
	})
	return tokens, nil
}

// CancelSale moves an Active sale to Cancelled. Super-admin or organizer
// only. Sales past their funding window can no longer be cancelled.
func (l *Ledger) CancelSale(caller access.Identity, id SaleID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale, ok := l.sales[id]
	if !ok {
		return ErrSaleNotFound
	}
	if l.roles.RequireSuperAdmin(caller) != nil && access.RequireOrganizer(caller, sale.Organizer) != nil {
		return access.ErrUnauthorized
	}
	now := l.clock.Now()
	if sale.Phase != Active || sale.endedAt(now) {
		return ErrInvalidTransition
	}

	sale.Phase = Cancelled
	l.record(Entry{Op: "cancel_sale", SaleID: uint64(id)})
	return nil
}

// Refund returns a participant's full contribution from a cancelled sale.
// The private record is removed and the funding commitment retired, so the
// released allocation becomes sellable inventory again.
//
// Policy: refunds require Phase == Cancelled. A sale that can still end
// successfully keeps its raised funds.
func (l *Ledger) Refund(caller access.Identity, w *Wallet, id SaleID) (asset.Coin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale, ok := l.sales[id]
	if !ok {
		return asset.Coin{}, ErrSaleNotFound
	}
	rec, ok := w.Record(id)
	if !ok {
		return asset.Coin{}, ErrRecordMismatch
	}
	cm := w.Commitment(l.hasher, id)
	info, ok := l.funding.Lookup(cm)
	if !ok || info.Claimed {
		return asset.Coin{}, ErrRecordMismatch
	}
	if sale.Phase != Cancelled {
		return asset.Coin{}, ErrInvalidTransition
	}

	coin, err := l.raisedPools[id].Withdraw(rec.Contribution)
	if err != nil {
		return asset.Coin{}, err
	}
	sale.AmountRaised.Sub(sale.AmountRaised, rec.Contribution)
	sale.TotalTokenSold.Sub(sale.TotalTokenSold, rec.TotalAllocation)
	if sale.Participants > 0 {
		sale.Participants--
	}
	w.remove(id)
	l.funding.Remove(cm)

	l.record(Entry{
		Op:         "refund",
		SaleID:     uint64(id),
		Amount:     rec.Contribution.Dec(),
		Tokens:     rec.TotalAllocation.Dec(),
		Commitment: cm.String(),
	})
	return coin, nil
}

// ClaimTokens withdraws the portion of the caller's allocation unlocked by
// the vesting schedule. The commitment is marked claimed once the full
// allocation has been withdrawn.
func (l *Ledger) ClaimTokens(w *Wallet, id SaleID) (asset.Coin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale, ok := l.sales[id]
	if !ok {
		return asset.Coin{}, ErrSaleNotFound
	}
	if sale.Phase == Cancelled {
		return asset.Coin{}, ErrInvalidTransition
	}
	rec, ok := w.Record(id)
	if !ok {
		return asset.Coin{}, ErrRecordMismatch
	}
	cm := w.Commitment(l.hasher, id)
	info, ok := l.funding.Lookup(cm)
	if !ok || info.Claimed {
		return asset.Coin{}, ErrRecordMismatch
	}

	now := l.clock.Now()
	claimable := sale.Vesting.Claimable(now, rec.TotalAllocation)
	if !claimable.Gt(rec.ClaimedAllocation) {
		return asset.Coin{}, ErrNothingToClaim
	}

	delta := new(uint256.Int).Sub(claimable, rec.ClaimedAllocation)
	coin, err := l.tokenPools[id].Withdraw(delta)
	if err != nil {
		return asset.Coin{}, err
	}
	w.setClaimed(id, claimable)
	if claimable.Eq(rec.TotalAllocation) {
		l.funding.MarkClaimed(cm)
	}

	l.record(Entry{
		Op:         "claim_tokens",
		SaleID:     uint64(id),
		Tokens:     delta.Dec(),
		Commitment: cm.String(),
	})
	return coin, nil
}

// ReceiveFundsByOrganizer pays out the raised pool to the organizer once the
// sale has ended. At most once per sale; makes the Ended phase explicit.
func (l *Ledger) ReceiveFundsByOrganizer(caller access.Identity, id SaleID) (asset.Coin, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sale, ok := l.sales[id]
	if !ok {
		return asset.Coin{}, ErrSaleNotFound
	}
	if err := access.RequireOrganizer(caller, sale.Organizer); err != nil {
		return asset.Coin{}, err
	}
	now := l.clock.Now()
	if !sale.endedAt(now) {
		return asset.Coin{}, ErrInvalidTransition
	}
	if sale.HasWithdrawn {
		return asset.Coin{}, ErrAlreadyWithdrawn
	}

	pool := l.raisedPools[id]
	coin, err := pool.Withdraw(pool.Balance())
	if err != nil {
		return asset.Coin{}, err
	}
	sale.HasWithdrawn = true
	sale.Phase = Ended

	l.record(Entry{Op: "withdraw_funds", SaleID: uint64(id), Amount: coin.Value.Dec()})
	return coin, nil
}

// Sale returns a copy of the public sale record.
func (l *Ledger) Sale(id SaleID) (SaleInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.sales[id]
	if !ok {
		return SaleInfo{}, false
	}
	return s.clone(), true
}

// SaleCount returns the number of sales ever created.
func (l *Ledger) SaleCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}

// TVL returns the unreserved sale-token custody balance.
func (l *Ledger) TVL() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tvl.Balance()
}

// Minted returns the supply authorized via CreateToken.
func (l *Ledger) Minted() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minted.Clone()
}

// RaisedBalance returns the exchange-asset custody held for a sale.
func (l *Ledger) RaisedBalance(id SaleID) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pool, ok := l.raisedPools[id]
	if !ok {
		return uint256.NewInt(0)
	}
	return pool.Balance()
}

// TokenBalance returns the reserved sale-token inventory still in escrow.
func (l *Ledger) TokenBalance(id SaleID) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	pool, ok := l.tokenPools[id]
	if !ok {
		return uint256.NewInt(0)
	}
	return pool.Balance()
}

// FundingInfo returns the public record for a commitment.
func (l *Ledger) FundingInfo(cm commitment.Commitment) (commitment.FundingInfo, bool) {
	return l.funding.Lookup(cm)
}

// record hands an entry to the recorder, if one is attached.
func (l *Ledger) record(e Entry) {
	if l.recorder != nil {
		l.recorder.Record(e)
	}
}
