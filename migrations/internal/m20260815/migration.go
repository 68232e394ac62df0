package m20260815

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//
// This is the first migration that initializes the whole DB. All types are
// snapshot here so that the structure and schema state for given point in
// time is preserved and can be rolled back to from later migrations, in case
// there's a need.
//

const ID = "20260815"

type Account struct {
	ID             string         `gorm:"column:id;primaryKey"`
	Position       int            `gorm:"column:position"`
	Address        string         `gorm:"column:address;index"`
	Kind           string         `gorm:"column:kind"`
	DisplayName    string         `gorm:"column:display_name"`
	LastSelectedAt sql.NullTime   `gorm:"column:last_selected_at"`
	Snap           datatypes.JSON `gorm:"column:snap"`
	Methods        datatypes.JSON `gorm:"column:methods"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

type RegistryState struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	SelectedID string `gorm:"column:selected_id"`
}

func (RegistryState) TableName() string {
	return "account_registry_state"
}

type Rate struct {
	gorm.Model
	Symbol string `gorm:"column:symbol;uniqueIndex"`
	Price  string `gorm:"column:price"`
}

func (Rate) TableName() string {
	return "rates"
}

type Transaction struct {
	Hash           string         `gorm:"column:hash;primaryKey"`
	AccountAddress string         `gorm:"column:account_address;index"`
	BlockNumber    uint64         `gorm:"column:block_number"`
	Sender         string         `gorm:"column:sender"`
	Recipient      string         `gorm:"column:recipient"`
	Value          string         `gorm:"column:value"`
	GasUsed        uint64         `gorm:"column:gas_used"`
	Failed         bool           `gorm:"column:failed"`
	Timestamp      time.Time      `gorm:"column:timestamp"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type SyncStatus struct {
	gorm.Model
	AccountAddress  string `gorm:"column:account_address;uniqueIndex"`
	LastSyncedBlock uint64 `gorm:"column:last_synced_block"`
}

func (SyncStatus) TableName() string {
	return "transaction_sync_status"
}

type Job struct {
	ID        uuid.UUID      `gorm:"column:id;primary_key;type:uuid;"`
	Type      string         `gorm:"column:type"`
	Status    int            `gorm:"column:status"`
	Error     string         `gorm:"column:error"`
	Result    string         `gorm:"column:result"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Job) TableName() string {
	return "jobs"
}

type Settings struct {
	gorm.Model
	MaintenanceMode bool         `gorm:"column:maintenance_mode;default:false"`
	PausedSince     sql.NullTime `gorm:"column:paused_since"`
}

func (Settings) TableName() string {
	return "system_settings"
}

type IdempotencyKey struct {
	Key        string    `gorm:"column:key;primary_key"`
	ExpiryDate time.Time `gorm:"column:expiry_date"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&Account{},
		&RegistryState{},
		&Rate{},
		&Transaction{},
		&SyncStatus{},
		&Job{},
		&Settings{},
		&IdempotencyKey{},
	)
}

func Rollback(tx *gorm.DB) error {
	return tx.Migrator().DropTable(
		&Account{},
		&RegistryState{},
		&Rate{},
		&Transaction{},
		&SyncStatus{},
		&Job{},
		&Settings{},
		&IdempotencyKey{},
	)
}
