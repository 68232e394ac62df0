package transactions

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/MajorLift/metamask-core/datastore"
	"github.com/MajorLift/metamask-core/jobs"
)

// Service syncs transaction history for account addresses from the explorer
// and serves the stored records.
type Service struct {
	store  Store
	client *ExplorerClient
	wp     *jobs.WorkerPool
	cfg    *Config
}

func NewService(store Store, client *ExplorerClient, wp *jobs.WorkerPool, cfg *Config) *Service {
	return &Service{store, client, wp, cfg}
}

// List returns stored transactions for an address, newest block first.
func (svc *Service) List(address string, limit, offset int) ([]Transaction, error) {
	o := datastore.ParseListOptions(limit, offset)
	return svc.store.Transactions(address, o)
}

// Details returns one stored transaction by hash.
func (svc *Service) Details(hash string) (Transaction, error) {
	return svc.store.Transaction(hash)
}

// Sync scans the next block range for an address and stores any new
// transactions. Returns the number of transactions stored.
func (svc *Service) Sync(ctx context.Context, address string) (int, error) {
	status, err := svc.store.SyncStatus(address)
	if err != nil {
		return 0, err
	}

	head, err := svc.client.LatestBlock(ctx)
	if err != nil {
		return 0, err
	}

	if head <= status.LastSyncedBlock {
		return 0, nil
	}

	start := status.LastSyncedBlock + 1 // last synced block has already been scanned
	end := min(head, start+svc.cfg.MaxBlocksPerFetch)

	tt, err := svc.client.AccountTransactions(ctx, address, start, end)
	if err != nil {
		return 0, err
	}

	if err := svc.store.InsertTransactions(tt); err != nil {
		return 0, err
	}

	status.LastSyncedBlock = end
	if err := svc.store.UpdateSyncStatus(&status); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"address":      address,
		"blocks":       fmt.Sprintf("%d-%d", start, end),
		"transactions": len(tt),
	}).Debug("Synced transaction history")

	return len(tt), nil
}

// SyncAsync queues a history sync on the worker pool.
func (svc *Service) SyncAsync(address string) (*jobs.Job, error) {
	return svc.wp.AddJob("transaction_sync", func() (string, error) {
		n, err := svc.Sync(context.Background(), address)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("synced %d transactions for %s", n, address), nil
	})
}

func min(x, y uint64) uint64 {
	if x > y {
		return y
	}
	return x
}
