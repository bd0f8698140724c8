package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/tradenly/poopee-crush/internal/session"
)

func TestStartingCredits(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		grant int
		want  int
		rows  int
	}{
		{"default", -1, DefaultStartingCredits, 1},
		{"custom", 250, 250, 1},
		{"none", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTest(t)
			if tt.grant >= 0 {
				store.SetStartingCredits(tt.grant)
			}
			got, err := store.Balance(ctx, "alice")
			if err != nil {
				t.Fatalf("Balance() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Balance = %d, want %d", got, tt.want)
			}
			// The grant is made once.
			if again, _ := store.Balance(ctx, "alice"); again != tt.want {
				t.Errorf("second Balance = %d, want %d", again, tt.want)
			}
			entries, err := store.Ledger(ctx, "alice", 10)
			if err != nil {
				t.Fatalf("Ledger() failed: %v", err)
			}
			if len(entries) != tt.rows {
				t.Errorf("ledger has %d rows, want %d", len(entries), tt.rows)
			}
		})
	}
}

func TestSpendAndEarn(t *testing.T) {
	ctx := context.Background()
	store := openTest(t)

	if err := store.Spend(ctx, "bob", 30, "entry fee: crush"); err != nil {
		t.Fatalf("Spend() failed: %v", err)
	}
	if err := store.Earn(ctx, "bob", 15, "game reward", "sess-1"); err != nil {
		t.Fatalf("Earn() failed: %v", err)
	}

	balance, _ := store.Balance(ctx, "bob")
	if balance != DefaultStartingCredits-30+15 {
		t.Errorf("balance = %d, want %d", balance, DefaultStartingCredits-15)
	}

	entries, err := store.Ledger(ctx, "bob", 10)
	if err != nil {
		t.Fatalf("Ledger() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ledger has %d rows, want 3", len(entries))
	}
	newest := entries[0]
	if newest.Delta != 15 || newest.SessionRef != "sess-1" || newest.Balance != balance {
		t.Errorf("newest entry = %+v", newest)
	}
	if entries[1].Delta != -30 || entries[1].Reason != "entry fee: crush" {
		t.Errorf("spend entry = %+v", entries[1])
	}
}

func TestSpendNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	store := openTest(t)
	store.SetStartingCredits(20)

	err := store.Spend(ctx, "carol", 25, "booster: hammer")
	if !errors.Is(err, session.ErrInsufficientFunds) {
		t.Fatalf("Spend() error = %v, want ErrInsufficientFunds", err)
	}
	if balance, _ := store.Balance(ctx, "carol"); balance != 20 {
		t.Errorf("balance after refused spend = %d, want 20", balance)
	}

	if err := store.Spend(ctx, "carol", 20, "booster: hammer"); err != nil {
		t.Fatalf("Spend() of the whole balance failed: %v", err)
	}
	if balance, _ := store.Balance(ctx, "carol"); balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestNonPositiveAmounts(t *testing.T) {
	ctx := context.Background()
	store := openTest(t)

	if err := store.Spend(ctx, "dave", 0, "x"); err == nil {
		t.Error("Spend(0) succeeded")
	}
	if err := store.Earn(ctx, "dave", -5, "x", ""); err == nil {
		t.Error("Earn(-5) succeeded")
	}
}
