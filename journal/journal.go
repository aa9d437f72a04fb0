// Package journal records applied ledger operations into an append-only
// event stream and rebuilds public accounting summaries from it. The journal
// is an audit log: it observes operations after they commit and can replay
// the public counters, but it never holds private records.
package journal

import (
	"context"
	"sync"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/statera-xyz/go-launchpad/eventsource"
	"github.com/statera-xyz/go-launchpad/launchpad"
)

// Log records ledger entries into a single event stream.
type Log struct {
	store  eventsource.Store
	stream string
	logger zerolog.Logger

	mu      sync.Mutex
	version int
}

// NewLog creates a journal writing to the given stream of a store.
func NewLog(store eventsource.Store, stream string, logger zerolog.Logger) *Log {
	return &Log{store: store, stream: stream, logger: logger, version: -1}
}

// Open creates a journal and positions it at the stream head, so recording
// can resume on an existing stream.
func Open(ctx context.Context, store eventsource.Store, stream string, logger zerolog.Logger) (*Log, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	l := NewLog(store, stream, logger)
	if n := len(events); n > 0 {
		l.version = events[n-1].Version
	}
	return l, nil
}

// Record implements launchpad.Recorder. Append failures are logged, not
// surfaced: the ledger mutation has already committed and a recorder cannot
// veto it.
func (l *Log) Record(e launchpad.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	event, err := eventsource.NewEvent(l.stream, e.Op, e)
	if err != nil {
		l.logger.Error().Err(err).Str("op", e.Op).Msg("encode journal entry")
		return
	}
	version, err := l.store.Append(context.Background(), l.stream, l.version, []*eventsource.Event{event})
	if err != nil {
		l.logger.Error().Err(err).Str("op", e.Op).Msg("append journal entry")
		return
	}
	l.version = version

	l.logger.Info().
		Str("op", e.Op).
		Uint64("sale_id", e.SaleID).
		Str("amount", e.Amount).
		Str("tokens", e.Tokens).
		Msg("ledger operation")
}

var _ launchpad.Recorder = (*Log)(nil)

// SaleSummary is the per-sale accounting rebuilt from the journal.
type SaleSummary struct {
	SaleID       uint64
	Inventory    *uint256.Int // tokens escrowed at creation
	Raised       *uint256.Int // contributions net of refunds
	Sold         *uint256.Int // allocations net of refunds
	Claimed      *uint256.Int // tokens withdrawn by participants
	Withdrawn    *uint256.Int // payout to the organizer
	Refunded     *uint256.Int // contributions returned
	Participants uint64
	Cancelled    bool
}

// Summary is the ledger-wide accounting rebuilt from the journal.
type Summary struct {
	Minted   *uint256.Int // supply authorized via create_token
	Deposits *uint256.Int // sale tokens received into TVL
	Sales    map[uint64]*SaleSummary
}

// Reduce folds a journal stream into a Summary. Unknown event types are
// skipped so the reducer stays compatible with newer streams.
func Reduce(ctx context.Context, store eventsource.Store, stream string) (*Summary, error) {
	events, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Minted:   uint256.NewInt(0),
		Deposits: uint256.NewInt(0),
		Sales:    make(map[uint64]*SaleSummary),
	}
	for _, event := range events {
		var e launchpad.Entry
		if err := event.Decode(&e); err != nil {
			return nil, err
		}
		sum.apply(e)
	}
	return sum, nil
}

func (s *Summary) apply(e launchpad.Entry) {
	switch e.Op {
	case "create_token":
		s.Minted.Add(s.Minted, dec(e.Amount))
	case "receive_token":
		s.Deposits.Add(s.Deposits, dec(e.Amount))
	case "create_sale":
		s.Sales[e.SaleID] = &SaleSummary{
			SaleID:    e.SaleID,
			Inventory: dec(e.Tokens),
			Raised:    uint256.NewInt(0),
			Sold:      uint256.NewInt(0),
			Claimed:   uint256.NewInt(0),
			Withdrawn: uint256.NewInt(0),
			Refunded:  uint256.NewInt(0),
		}
	case "fund_sale":
		if sale := s.Sales[e.SaleID]; sale != nil {
			sale.Raised.Add(sale.Raised, dec(e.Amount))
			sale.Sold.Add(sale.Sold, dec(e.Tokens))
			sale.Participants = e.Participants
		}
	case "cancel_sale":
		if sale := s.Sales[e.SaleID]; sale != nil {
			sale.Cancelled = true
		}
	case "refund":
		if sale := s.Sales[e.SaleID]; sale != nil {
			sale.Raised.Sub(sale.Raised, dec(e.Amount))
			sale.Sold.Sub(sale.Sold, dec(e.Tokens))
			sale.Refunded.Add(sale.Refunded, dec(e.Amount))
			if sale.Participants > 0 {
				sale.Participants--
			}
		}
	case "claim_tokens":
		if sale := s.Sales[e.SaleID]; sale != nil {
			sale.Claimed.Add(sale.Claimed, dec(e.Tokens))
		}
	case "withdraw_funds":
		if sale := s.Sales[e.SaleID]; sale != nil {
			sale.Withdrawn.Add(sale.Withdrawn, dec(e.Amount))
		}
	}
}

// dec parses a decimal amount, treating the empty string as zero.
func dec(s string) *uint256.Int {
	if s == "" {
		return uint256.NewInt(0)
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return uint256.NewInt(0)
	}
	return v
}
