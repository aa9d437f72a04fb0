package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/statera-xyz/go-launchpad/access"
	"github.com/statera-xyz/go-launchpad/asset"
	"github.com/statera-xyz/go-launchpad/eventsource"
	"github.com/statera-xyz/go-launchpad/journal"
	"github.com/statera-xyz/go-launchpad/launchpad"
	"github.com/statera-xyz/go-launchpad/vesting"
)

// demo walks a complete sale lifecycle: mint and deposit inventory, run a
// public bonding-curve sale and a private fixed-price sale, fund both, end
// the window, claim vested tokens, and pay out the organizer.
func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	dbPath := fs.String("db", ":memory:", "SQLite database for the operation journal")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	store, err := eventsource.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	log, err := journal.Open(context.Background(), store, "launchpad", logger)
	if err != nil {
		return err
	}

	admin := access.IdentityFromString("super-admin")
	organizer := access.IdentityFromString("peter")
	alice := access.IdentityFromString("alice")
	mary := access.IdentityFromString("mary")

	saleToken := asset.TokenTypeFromBytes([]byte("demo-sale-token"))
	exchangeToken := asset.TokenTypeFromBytes([]byte("demo-exchange-token"))

	clock := launchpad.NewManualClock(1_700_000_000_000)
	ledger := launchpad.NewLedger(admin, saleToken, clock, launchpad.WithRecorder(log))

	// Mint inventory and move it into TVL custody.
	minted, err := ledger.CreateToken(admin, uint256.NewInt(20000))
	if err != nil {
		return err
	}
	if err := ledger.ReceiveToken(minted); err != nil {
		return err
	}

	now := clock.Now()
	saleID, err := ledger.CreateSale(admin, launchpad.SaleParams{
		Organizer:               organizer,
		Type:                    launchpad.Public,
		EndTime:                 now + vesting.Day,
		ExchangeRatio:           uint256.NewInt(10),
		Slope:                   uint256.NewInt(1),
		Min:                     uint256.NewInt(10),
		Max:                     uint256.NewInt(1000),
		TotalTokenAmount:        uint256.NewInt(5000),
		AcceptableExchangeToken: exchangeToken,
		Vesting: vesting.Schedule{
			TGETime:    now + 2*vesting.Day,
			CliffTime:  now + 3*vesting.Day,
			TGEPercent: 100,
		},
	})
	if err != nil {
		return err
	}

	// Alice is allow-listed for the private sale; mary is not.
	if err := ledger.Roles().AddAllowed(admin, alice); err != nil {
		return err
	}
	privateID, err := ledger.CreateSale(admin, launchpad.SaleParams{
		Organizer:               organizer,
		Type:                    launchpad.Private,
		EndTime:                 now + vesting.Day,
		ExchangeRatio:           uint256.NewInt(10),
		Slope:                   uint256.NewInt(0),
		Min:                     uint256.NewInt(10),
		Max:                     uint256.NewInt(2000),
		TotalTokenAmount:        uint256.NewInt(5000),
		AcceptableExchangeToken: exchangeToken,
		Vesting: vesting.Schedule{
			TGETime:    now + 2*vesting.Day,
			CliffTime:  now + 3*vesting.Day,
			TGEPercent: 10,
			Duration:   4 * vesting.Day,
		},
	})
	if err != nil {
		return err
	}

	aliceWallet := launchpad.RandomWallet()
	maryWallet := launchpad.RandomWallet()

	if _, err := ledger.FundSale(alice, aliceWallet, saleID,
		asset.NewCoin(exchangeToken, uint256.NewInt(500))); err != nil {
		return err
	}
	if _, err := ledger.FundSale(mary, maryWallet, saleID,
		asset.NewCoin(exchangeToken, uint256.NewInt(500))); err != nil {
		return err
	}
	if _, err := ledger.FundSale(alice, aliceWallet, privateID,
		asset.NewCoin(exchangeToken, uint256.NewInt(1000))); err != nil {
		return err
	}
	if _, err := ledger.FundSale(mary, maryWallet, privateID,
		asset.NewCoin(exchangeToken, uint256.NewInt(1000))); err != nil {
		logger.Info().Err(err).Msg("private sale rejected non-allow-listed funder (expected)")
	}

	// Past the end of the funding window and the TGE.
	clock.Advance(2*vesting.Day + 1)

	claimed, err := ledger.ClaimTokens(aliceWallet, saleID)
	if err != nil {
		return err
	}
	logger.Info().Str("tokens", claimed.Value.Dec()).Msg("alice claimed public sale allocation")

	payout, err := ledger.ReceiveFundsByOrganizer(organizer, saleID)
	if err != nil {
		return err
	}
	logger.Info().Str("amount", payout.Value.Dec()).Msg("organizer withdrew raised funds")

	sum, err := journal.Reduce(context.Background(), store, "launchpad")
	if err != nil {
		return err
	}
	fmt.Printf("minted=%s deposits=%s\n", sum.Minted.Dec(), sum.Deposits.Dec())
	for id, sale := range sum.Sales {
		fmt.Printf("sale %d: raised=%s sold=%s claimed=%s withdrawn=%s participants=%d\n",
			id, sale.Raised.Dec(), sale.Sold.Dec(), sale.Claimed.Dec(), sale.Withdrawn.Dec(), sale.Participants)
	}
	return nil
}

// dumpJournal prints the recorded operation stream from a journal database.
func dumpJournal(args []string) error {
	fs := flag.NewFlagSet("journal", flag.ExitOnError)
	dbPath := fs.String("db", "launchpad.db", "SQLite database holding the journal")
	stream := fs.String("stream", "launchpad", "journal stream name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := eventsource.NewSQLiteStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.Read(context.Background(), *stream, 0)
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Printf("%4d %-16s %s %s\n", e.Version, e.Type, e.Timestamp.Format("2006-01-02T15:04:05Z"), string(e.Data))
	}
	return nil
}
