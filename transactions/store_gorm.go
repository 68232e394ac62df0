package transactions

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MajorLift/metamask-core/datastore"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Transactions(address string, o datastore.ListOptions) (tt []Transaction, err error) {
	err = s.db.
		Where("account_address = ?", address).
		Order("block_number desc").
		Limit(o.Limit).
		Offset(o.Offset).
		Find(&tt).Error
	return
}

func (s *GormStore) Transaction(hash string) (t Transaction, err error) {
	err = s.db.First(&t, "hash = ?", hash).Error
	return
}

func (s *GormStore) InsertTransactions(tt []Transaction) error {
	if len(tt) == 0 {
		return nil
	}
	// Re-fetched ranges may overlap; existing rows win.
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tt).Error
}

func (s *GormStore) SyncStatus(address string) (SyncStatus, error) {
	var status SyncStatus
	err := s.db.First(&status, "account_address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SyncStatus{AccountAddress: address}, nil
	}
	return status, err
}

func (s *GormStore) UpdateSyncStatus(status *SyncStatus) error {
	return s.db.Save(status).Error
}
