package eventsource_test

import (
	"context"
	"errors"
	"testing"

	"github.com/statera-xyz/go-launchpad/eventsource"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		return eventsource.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventsource.Store {
		store, err := eventsource.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventsource.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventsource.NewEvent("sale-1", "fund_sale", map[string]string{"amount": "500"})
		event2, _ := eventsource.NewEvent("sale-1", "claim_tokens", map[string]string{"tokens": "50"})

		version, err := store.Append(ctx, "sale-1", -1, []*eventsource.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "sale-1", 0, []*eventsource.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "sale-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Type != "fund_sale" || events[1].Type != "claim_tokens" {
			t.Errorf("unexpected order: %s, %s", events[0].Type, events[1].Type)
		}
		if events[0].Version != 0 || events[1].Version != 1 {
			t.Errorf("unexpected versions: %d, %d", events[0].Version, events[1].Version)
		}
	})

	t.Run("VersionConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventsource.NewEvent("sale-1", "fund_sale", nil)
		if _, err := store.Append(ctx, "sale-1", -1, []*eventsource.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		stale, _ := eventsource.NewEvent("sale-1", "fund_sale", nil)
		if _, err := store.Append(ctx, "sale-1", -1, []*eventsource.Event{stale}); !errors.Is(err, eventsource.ErrVersionConflict) {
			t.Errorf("expected ErrVersionConflict, got %v", err)
		}
	})

	t.Run("ReadFromVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		var batch []*eventsource.Event
		for i := 0; i < 5; i++ {
			e, _ := eventsource.NewEvent("sale-1", "fund_sale", map[string]int{"seq": i})
			batch = append(batch, e)
		}
		if _, err := store.Append(ctx, "sale-1", -1, batch); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "sale-1", 3)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 events from version 3, got %d", len(events))
		}
	})

	t.Run("StreamsAreIsolated", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		e1, _ := eventsource.NewEvent("sale-1", "fund_sale", nil)
		e2, _ := eventsource.NewEvent("sale-2", "fund_sale", nil)
		if _, err := store.Append(ctx, "sale-1", -1, []*eventsource.Event{e1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := store.Append(ctx, "sale-2", -1, []*eventsource.Event{e2}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "sale-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 1 {
			t.Errorf("expected 1 event in sale-1, got %d", len(events))
		}
	})

	t.Run("DecodePayload", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		e, _ := eventsource.NewEvent("sale-1", "fund_sale", map[string]string{"amount": "500"})
		if _, err := store.Append(ctx, "sale-1", -1, []*eventsource.Event{e}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.Read(ctx, "sale-1", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		var payload map[string]string
		if err := events[0].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["amount"] != "500" {
			t.Errorf("expected amount 500, got %q", payload["amount"])
		}
	})
}
