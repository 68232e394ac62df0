package transactions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MajorLift/metamask-core/datastore"
)

type memoryStore struct {
	mu       sync.Mutex
	txs      map[string]Transaction
	statuses map[string]SyncStatus
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		txs:      make(map[string]Transaction),
		statuses: make(map[string]SyncStatus),
	}
}

func (m *memoryStore) Transactions(address string, o datastore.ListOptions) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tt := make([]Transaction, 0)
	for _, t := range m.txs {
		if t.AccountAddress == address {
			tt = append(tt, t)
		}
	}
	sort.Slice(tt, func(i, j int) bool { return tt[i].BlockNumber > tt[j].BlockNumber })
	if o.Offset < len(tt) {
		tt = tt[o.Offset:]
	} else {
		tt = nil
	}
	if o.Limit >= 0 && o.Limit < len(tt) {
		tt = tt[:o.Limit]
	}
	return tt, nil
}

func (m *memoryStore) Transaction(hash string) (Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txs[hash]
	if !ok {
		return Transaction{}, fmt.Errorf("transaction not found")
	}
	return t, nil
}

func (m *memoryStore) InsertTransactions(tt []Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tt {
		if _, exists := m.txs[t.Hash]; !exists {
			m.txs[t.Hash] = t
		}
	}
	return nil
}

func (m *memoryStore) SyncStatus(address string) (SyncStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[address]
	if !ok {
		return SyncStatus{AccountAddress: address}, nil
	}
	return s, nil
}

func (m *memoryStore) UpdateSyncStatus(s *SyncStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[s.AccountAddress] = *s
	return nil
}

// fakeExplorer answers eth_blockNumber and txlist the way etherscan does.
type fakeExplorer struct {
	head     uint64
	txlist   string
	requests int64
}

func (f *fakeExplorer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.requests, 1)
		switch r.URL.Query().Get("action") {
		case "eth_blockNumber":
			fmt.Fprintf(w, `{"result":"0x%x"}`, f.head)
		case "txlist":
			fmt.Fprint(w, f.txlist)
		default:
			http.Error(w, "unknown action", http.StatusBadRequest)
		}
	}
}

const testAddress = "0x9b23dc45ad38b07c4d0c0d6f3f42b702d9cee45a"

func newTestService(t *testing.T, explorer *fakeExplorer, store Store) *Service {
	t.Helper()
	srv := httptest.NewServer(explorer.handler())
	t.Cleanup(srv.Close)

	client := NewExplorerClient(srv.URL, "", 100)
	cfg := &Config{MaxBlocksPerFetch: 100000}
	return NewService(store, client, nil, cfg)
}

func TestSyncStoresNewTransactions(t *testing.T) {
	explorer := &fakeExplorer{
		head: 120,
		txlist: `{"status":"1","message":"OK","result":[
			{"hash":"0xaa","blockNumber":"100","timeStamp":"1700000000","from":"0x01","to":"` + testAddress + `","value":"1000000000000000000","gasUsed":"21000","isError":"0"},
			{"hash":"0xbb","blockNumber":"110","timeStamp":"1700000600","from":"` + testAddress + `","to":"0x02","value":"0","gasUsed":"52000","isError":"1"}
		]}`,
	}
	store := newMemoryStore()
	svc := newTestService(t, explorer, store)

	n, err := svc.Sync(context.Background(), testAddress)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 transactions, got %d", n)
	}

	tt, err := svc.List(testAddress, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(tt) != 2 {
		t.Fatalf("expected 2 stored transactions, got %d", len(tt))
	}
	// Newest block first.
	if tt[0].Hash != "0xbb" || tt[1].Hash != "0xaa" {
		t.Errorf("unexpected order: %s, %s", tt[0].Hash, tt[1].Hash)
	}
	if !tt[0].Failed {
		t.Error("expected 0xbb to be marked failed")
	}
	if tt[1].Value.String() != "1000000000000000000" {
		t.Errorf("unexpected value: %s", tt[1].Value)
	}

	status, err := store.SyncStatus(testAddress)
	if err != nil {
		t.Fatal(err)
	}
	if status.LastSyncedBlock != 120 {
		t.Errorf("expected cursor at head 120, got %d", status.LastSyncedBlock)
	}
}

func TestSyncIsIncremental(t *testing.T) {
	explorer := &fakeExplorer{
		head:   120,
		txlist: `{"status":"1","message":"OK","result":[{"hash":"0xaa","blockNumber":"100","timeStamp":"1700000000","from":"0x01","to":"` + testAddress + `","value":"5","gasUsed":"21000","isError":"0"}]}`,
	}
	store := newMemoryStore()
	svc := newTestService(t, explorer, store)

	if _, err := svc.Sync(context.Background(), testAddress); err != nil {
		t.Fatal(err)
	}

	// Head unchanged: the second pass should not hit the txlist endpoint.
	before := atomic.LoadInt64(&explorer.requests)
	n, err := svc.Sync(context.Background(), testAddress)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected no new transactions, got %d", n)
	}
	if got := atomic.LoadInt64(&explorer.requests); got != before+1 {
		t.Errorf("expected only the block number request, got %d extra", got-before)
	}
}

func TestSyncEmptyRangeAdvancesCursor(t *testing.T) {
	explorer := &fakeExplorer{
		head:   50,
		txlist: `{"status":"0","message":"No transactions found","result":[]}`,
	}
	store := newMemoryStore()
	svc := newTestService(t, explorer, store)

	n, err := svc.Sync(context.Background(), testAddress)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0 transactions, got %d", n)
	}

	status, _ := store.SyncStatus(testAddress)
	if status.LastSyncedBlock != 50 {
		t.Errorf("expected cursor at 50, got %d", status.LastSyncedBlock)
	}
}

func TestExplorerBreakerOpensOnRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewExplorerClient(srv.URL, "", 1000)

	var lastErr error
	for i := 0; i < 20; i++ {
		_, lastErr = client.LatestBlock(context.Background())
	}
	if lastErr == nil {
		t.Fatal("expected an error from a failing explorer")
	}
	if state := client.breaker.State(); state.String() != "open" {
		t.Errorf("expected breaker to be open, got %s", state)
	}
}
