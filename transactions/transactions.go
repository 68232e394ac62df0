// Package transactions aggregates on-chain transaction history per account
// address from a block-explorer API, keeping an incremental fetch cursor per
// address so only new blocks are scanned.
package transactions

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a normalized explorer record for a single transaction that
// touched a tracked account address.
type Transaction struct {
	Hash           string          `json:"hash" gorm:"column:hash;primaryKey"`
	AccountAddress string          `json:"-" gorm:"index"`
	BlockNumber    uint64          `json:"blockNumber"`
	Sender         string          `json:"from"`
	Recipient      string          `json:"to"`
	Value          decimal.Decimal `json:"value" gorm:"type:string"`
	GasUsed        uint64          `json:"gasUsed"`
	Failed         bool            `json:"failed"`
	Timestamp      time.Time       `json:"timestamp"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// SyncStatus tracks the last block already scanned for an address.
type SyncStatus struct {
	gorm.Model
	AccountAddress  string `gorm:"uniqueIndex"`
	LastSyncedBlock uint64
}

func (SyncStatus) TableName() string {
	return "transaction_sync_status"
}
