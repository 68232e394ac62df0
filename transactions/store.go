package transactions

import (
	"github.com/MajorLift/metamask-core/datastore"
)

// Store manages data regarding transactions.
type Store interface {
	Transactions(address string, opts datastore.ListOptions) ([]Transaction, error)
	Transaction(hash string) (Transaction, error)
	InsertTransactions([]Transaction) error
	SyncStatus(address string) (SyncStatus, error)
	UpdateSyncStatus(*SyncStatus) error
}
