package keyring

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStateBridge(t *testing.T) {
	b := NewStateBridge()
	ctx := context.Background()

	b.SetState(
		[]Group{
			{Kind: KindHD, Addresses: []string{"0xaaa", "0xbbb"}},
			{Kind: KindSnap, Addresses: []string{"0xccc"}},
		},
		[]SnapAccount{
			{Address: "0xccc", Name: "My Snap Wallet", SnapID: "npm:wallet-snap", Enabled: true},
		},
	)

	t.Run("flattens addresses in group order", func(t *testing.T) {
		got, err := b.GetAccounts(ctx)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"0xaaa", "0xbbb", "0xccc"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("addresses mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("classifies addresses", func(t *testing.T) {
		kind, err := b.GetKeyringForAccount(ctx, "0xccc")
		if err != nil {
			t.Fatal(err)
		}
		if kind != KindSnap {
			t.Errorf("expected snap kind, got %s", kind)
		}

		if _, err := b.GetKeyringForAccount(ctx, "0xzzz"); err == nil {
			t.Error("expected an error for an unknown address")
		}
	})

	t.Run("serves snap lookups", func(t *testing.T) {
		kk, err := b.GetKeyringsByType(ctx, KindSnap)
		if err != nil {
			t.Fatal(err)
		}
		if len(kk) != 1 {
			t.Fatalf("expected one snap keyring, got %d", len(kk))
		}

		rec, err := kk[0].GetAccountByAddress(ctx, "0xccc")
		if err != nil {
			t.Fatal(err)
		}
		if rec == nil || rec.Name != "My Snap Wallet" {
			t.Errorf("unexpected snap record: %+v", rec)
		}

		absent, err := kk[0].GetAccountByAddress(ctx, "0xaaa")
		if err != nil {
			t.Fatal(err)
		}
		if absent != nil {
			t.Errorf("expected nil for a non-snap address, got %+v", absent)
		}
	})

	t.Run("non-snap kinds have no snap keyrings", func(t *testing.T) {
		kk, err := b.GetKeyringsByType(ctx, KindHD)
		if err != nil {
			t.Fatal(err)
		}
		if kk != nil {
			t.Errorf("expected nil, got %v", kk)
		}
	})
}
