package accounts

// Store persists account registry snapshots between runs. The registry
// itself lives in memory; the store only sees whole snapshots, never partial
// mutations.
type Store interface {
	// LoadSnapshot returns the saved accounts in insertion order plus the
	// selected id. ok is false when nothing has been saved yet.
	LoadSnapshot() (accounts []Account, selectedID string, ok bool, err error)

	// SaveSnapshot replaces the saved snapshot.
	SaveSnapshot(accounts []Account, selectedID string) error
}
