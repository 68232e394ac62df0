package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/MajorLift/metamask-core/errors"
	"github.com/MajorLift/metamask-core/keyring"
	"github.com/google/go-cmp/cmp"
	"github.com/lightningnetwork/lnd/clock"
)

type fakeSnapLookup map[string]*keyring.SnapAccount

func (f fakeSnapLookup) GetAccountByAddress(_ context.Context, address string) (*keyring.SnapAccount, error) {
	return f[address], nil
}

var testTime = time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)

func newTestReconciler(snaps SnapLookup) *Reconciler {
	return NewReconciler(snaps, clock.NewTestClock(testTime))
}

func hdGroup(addresses ...string) keyring.Group {
	return keyring.Group{Kind: keyring.KindHD, Addresses: addresses}
}

func TestReconcileRetainsAndCreates(t *testing.T) {
	a := hdAccount("id-a", "0xAAA", "Account 1")
	prev := newTestRegistry(a)
	prev.Select("id-a")

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xAAA", "0xBBB")})
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(got))
	}

	// A retained unchanged.
	if diff := cmp.Diff(*a, got[0]); diff != "" {
		t.Errorf("retained account changed (-want +got):\n%s", diff)
	}

	// B created with the next default name, appended after A.
	if got[1].Address != "0xBBB" || got[1].DisplayName != "Account 2" {
		t.Errorf("unexpected new account: %+v", got[1])
	}
	if got[1].ID == "" || got[1].ID == a.ID {
		t.Errorf("expected a fresh stable id, got %q", got[1].ID)
	}
	if got[1].LastSelectedAt != nil {
		t.Error("new account should not carry a LastSelectedAt stamp")
	}

	// Retained selection wins.
	if next.SelectedID() != "id-a" {
		t.Errorf("expected selection to stay on id-a, got %q", next.SelectedID())
	}
}

func TestReconcileDropsStaleAndReselects(t *testing.T) {
	a := hdAccount("id-a", "0xAAA", "Account 1")
	b := hdAccount("id-b", "0xBBB", "Account 2")
	prev := newTestRegistry(a, b)
	prev.Select("id-a")

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xBBB")})
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 1 || got[0].ID != "id-b" {
		t.Fatalf("expected only id-b to remain, got %v", got)
	}

	// Selection moves to the only remaining account.
	if next.SelectedID() != "id-b" {
		t.Errorf("expected selection to move to id-b, got %q", next.SelectedID())
	}
}

func TestReconcileSnapVanishedIsSilentlySkipped(t *testing.T) {
	prev := newTestRegistry()

	groups := []keyring.Group{{Kind: keyring.KindSnap, Addresses: []string{"0xCCC"}}}
	next, err := newTestReconciler(fakeSnapLookup{}).Reconcile(context.Background(), prev, groups)
	if err != nil {
		t.Fatalf("vanished snap account must not be an error, got %v", err)
	}

	if next.Len() != 0 {
		t.Errorf("expected no account for the vanished address, got %v", next.List())
	}
}

func TestReconcileSnapAccounts(t *testing.T) {
	lookup := fakeSnapLookup{
		"0xC01": {Address: "0xC01", Name: "My Snap Wallet", SnapID: "npm:keyring-snap", SnapName: "Keyring Snap", Enabled: true},
		"0xC02": {Address: "0xC02", SnapID: "npm:keyring-snap", SnapName: "Keyring Snap", Enabled: true},
	}

	groups := []keyring.Group{{Kind: keyring.KindSnap, Addresses: []string{"0xC01", "0xC02"}}}
	next, err := newTestReconciler(lookup).Reconcile(context.Background(), newTestRegistry(), groups)
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(got))
	}

	// Snap-provided name used verbatim; missing names numbered from the
	// snap account count.
	if got[0].DisplayName != "My Snap Wallet" {
		t.Errorf("expected verbatim snap name, got %q", got[0].DisplayName)
	}
	if got[1].DisplayName != "Snap Account 2" {
		t.Errorf("expected synthesized name, got %q", got[1].DisplayName)
	}

	for _, a := range got {
		if a.Snap == nil || a.Snap.ID != "npm:keyring-snap" || !a.Snap.Enabled {
			t.Errorf("snap metadata not mirrored: %+v", a.Snap)
		}
	}
}

func TestReconcileSnapNameCollisionIsSuffixed(t *testing.T) {
	// The snap reports a name an existing account already holds. The
	// reported name gets a suffix instead of duplicating the display name.
	a := hdAccount("id-a", "0xAAA", "My Wallet")
	prev := newTestRegistry(a)

	lookup := fakeSnapLookup{
		"0xC01": {Address: "0xC01", Name: "My Wallet", SnapID: "npm:keyring-snap", Enabled: true},
		"0xC02": {Address: "0xC02", Name: "My Wallet", SnapID: "npm:keyring-snap", Enabled: true},
	}

	groups := []keyring.Group{
		hdGroup("0xAAA"),
		{Kind: keyring.KindSnap, Addresses: []string{"0xC01", "0xC02"}},
	}
	next, err := newTestReconciler(lookup).Reconcile(context.Background(), prev, groups)
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(got))
	}
	if got[1].DisplayName != "My Wallet 2" || got[2].DisplayName != "My Wallet 3" {
		t.Errorf("expected suffixed snap names, got %q and %q", got[1].DisplayName, got[2].DisplayName)
	}

	assertUniqueNames(t, got)
}

func TestReconcileUnknownKindAbortsPass(t *testing.T) {
	a := hdAccount("id-a", "0xAAA", "Account 1")
	prev := newTestRegistry(a)
	prev.Select("id-a")

	groups := []keyring.Group{
		hdGroup("0xAAA"),
		{Kind: keyring.Kind("floppy"), Addresses: []string{"0xDDD"}},
	}

	_, err := newTestReconciler(nil).Reconcile(context.Background(), prev, groups)
	if !errors.IsUnknownKeyringKind(err) {
		t.Fatalf("expected UnknownKeyringKindError, got %v", err)
	}

	// The caller keeps the previous registry; nothing was mutated.
	if prev.Len() != 1 || prev.SelectedID() != "id-a" {
		t.Error("previous registry mutated by a failed pass")
	}
}

func TestReconcileDuplicateAddressFirstGroupWins(t *testing.T) {
	lookup := fakeSnapLookup{
		"0xEEE": {Address: "0xEEE", Name: "Snapped", SnapID: "npm:keyring-snap"},
	}

	// The same address reported as snap first and as hd second, as happens
	// transiently during a snap migration.
	groups := []keyring.Group{
		{Kind: keyring.KindSnap, Addresses: []string{"0xEEE"}},
		hdGroup("0xEEE", "0xFFF"),
	}

	next, err := newTestReconciler(lookup).Reconcile(context.Background(), newTestRegistry(), groups)
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 accounts, got %v", got)
	}
	if got[0].Kind != keyring.KindSnap || got[0].Address != "0xEEE" {
		t.Errorf("expected the snap group to win for 0xEEE, got %+v", got[0])
	}
	if got[1].Kind != keyring.KindHD || got[1].DisplayName != "Account 1" {
		t.Errorf("unexpected hd account: %+v", got[1])
	}
}

func TestReconcileAutoSelectsSingleNewAccount(t *testing.T) {
	// Previous selection points at an account that is gone from the report.
	a := hdAccount("id-a", "0xAAA", "Account 1")
	prev := newTestRegistry(a)
	prev.Select("id-a")

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xBBB")})
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if len(got) != 1 {
		t.Fatalf("expected 1 account, got %d", len(got))
	}
	if next.SelectedID() != got[0].ID {
		t.Errorf("expected the single new account to be selected, got %q", next.SelectedID())
	}
	if got[0].LastSelectedAt == nil || !got[0].LastSelectedAt.Equal(testTime) {
		t.Errorf("expected auto-selection to stamp LastSelectedAt, got %v", got[0].LastSelectedAt)
	}
}

func TestReconcileReselectsByLastSelected(t *testing.T) {
	early := testTime.Add(-time.Hour)
	late := testTime.Add(-time.Minute)

	a := hdAccount("id-a", "0xAAA", "Account 1")
	a.LastSelectedAt = &late
	b := hdAccount("id-b", "0xBBB", "Account 2")
	b.LastSelectedAt = &early
	c := hdAccount("id-c", "0xCCC", "Account 3")
	prev := newTestRegistry(a, b, c)
	prev.Select("id-c")

	// id-c disappears along with the selection; two accounts are dropped and
	// none created, so the freshest LastSelectedAt wins.
	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xAAA", "0xBBB")})
	if err != nil {
		t.Fatal(err)
	}

	if next.SelectedID() != "id-a" {
		t.Errorf("expected id-a (latest selection), got %q", next.SelectedID())
	}
}

func TestReconcileReselectTieGoesToLaterPosition(t *testing.T) {
	at := testTime.Add(-time.Hour)

	a := hdAccount("id-a", "0xAAA", "Account 1")
	a.LastSelectedAt = &at
	b := hdAccount("id-b", "0xBBB", "Account 2")
	b.LastSelectedAt = &at
	prev := newTestRegistry(a, b)
	prev.Select("gone")

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xAAA", "0xBBB")})
	if err != nil {
		t.Fatal(err)
	}

	if next.SelectedID() != "id-b" {
		t.Errorf("expected the later position to win the tie, got %q", next.SelectedID())
	}
}

func TestReconcileEmptyReportClearsEverything(t *testing.T) {
	a := hdAccount("id-a", "0xAAA", "Account 1")
	prev := newTestRegistry(a)
	prev.Select("id-a")

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, nil)
	if err != nil {
		t.Fatal(err)
	}

	if next.Len() != 0 {
		t.Errorf("expected empty registry, got %v", next.List())
	}
	if next.SelectedID() != "" {
		t.Errorf("expected selection to be unset, got %q", next.SelectedID())
	}
}

func TestReconcileNamingSkipsTakenNames(t *testing.T) {
	// "Account 1" was dropped earlier; "Account 2" survives. A new account
	// must not reuse the surviving name.
	b := hdAccount("id-b", "0xBBB", "Account 2")
	prev := newTestRegistry(b)

	next, err := newTestReconciler(nil).Reconcile(context.Background(), prev, []keyring.Group{hdGroup("0xBBB", "0xCCC")})
	if err != nil {
		t.Fatal(err)
	}

	got := next.List()
	if got[1].DisplayName != "Account 3" {
		t.Errorf("expected the numbering to bump past the taken name, got %q", got[1].DisplayName)
	}

	assertUniqueNames(t, got)
}

func TestReconcileNumberingIsPerKind(t *testing.T) {
	groups := []keyring.Group{
		hdGroup("0xA1", "0xA2"),
		{Kind: keyring.KindLedger, Addresses: []string{"0xL1"}},
		{Kind: keyring.KindTrezor, Addresses: []string{"0xT1", "0xT2"}},
	}

	next, err := newTestReconciler(nil).Reconcile(context.Background(), newTestRegistry(), groups)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Account 1", "Account 2", "Ledger 1", "Trezor 1", "Trezor 2"}
	got := next.List()
	names := make([]string, len(got))
	for i, a := range got {
		names[i] = a.DisplayName
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("default names mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	lookup := fakeSnapLookup{
		"0xC01": {Address: "0xC01", Name: "My Snap Wallet", SnapID: "npm:keyring-snap", Enabled: true},
	}

	groups := []keyring.Group{
		hdGroup("0xAAA", "0xBBB"),
		{Kind: keyring.KindLedger, Addresses: []string{"0xL1"}},
		{Kind: keyring.KindSnap, Addresses: []string{"0xC01"}},
	}

	r := newTestReconciler(lookup)

	first, err := r.Reconcile(context.Background(), newTestRegistry(), groups)
	if err != nil {
		t.Fatal(err)
	}

	second, err := r.Reconcile(context.Background(), first, groups)
	if err != nil {
		t.Fatal(err)
	}

	// No new ids, no renumbering, no selection change.
	if diff := cmp.Diff(first.List(), second.List()); diff != "" {
		t.Errorf("second pass changed accounts (-first +second):\n%s", diff)
	}
	if first.SelectedID() != second.SelectedID() {
		t.Errorf("second pass changed selection: %q -> %q", first.SelectedID(), second.SelectedID())
	}

	assertUniqueNames(t, second.List())
}

func assertUniqueNames(t *testing.T, accounts []Account) {
	t.Helper()
	seen := make(map[string]bool)
	for _, a := range accounts {
		if seen[a.DisplayName] {
			t.Errorf("duplicate display name %q", a.DisplayName)
		}
		seen[a.DisplayName] = true
	}
}
