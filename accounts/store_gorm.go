package accounts

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/MajorLift/metamask-core/datastore/lib"
	"github.com/MajorLift/metamask-core/keyring"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	db.AutoMigrate(&StorableAccount{}, &registryState{})
	return &GormStore{db}
}

// StorableAccount is the database row for one account.
type StorableAccount struct {
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

func (StorableAccount) TableName() string {
	return "accounts"
}

// registryState is a single row table holding the selected account id.
type registryState struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	SelectedID string `gorm:"column:selected_id"`
}

func (registryState) TableName() string {
	return "account_registry_state"
}

func (s *GormStore) LoadSnapshot() ([]Account, string, bool, error) {
	var rows []StorableAccount
	if err := s.db.Order("position asc").Find(&rows).Error; err != nil {
		return nil, "", false, err
	}

	state := registryState{}
	err := s.db.First(&state, "id = ?", 1).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", false, err
	}
	if err == gorm.ErrRecordNotFound && len(rows) == 0 {
		return nil, "", false, nil
	}

	accounts := make([]Account, 0, len(rows))
	for _, row := range rows {
		a, err := row.toAccount()
		if err != nil {
			return nil, "", false, err
		}
		accounts = append(accounts, a)
	}

	return accounts, state.SelectedID, true, nil
}

func (s *GormStore) SaveSnapshot(accounts []Account, selectedID string) error {
	return lib.GormTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&StorableAccount{}).Error; err != nil {
			return err
		}

		for i := range accounts {
			row, err := toStorable(&accounts[i], i)
			if err != nil {
				return err
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		state := registryState{ID: 1, SelectedID: selectedID}
		return tx.Save(&state).Error
	})
}

func toStorable(a *Account, position int) (*StorableAccount, error) {
	row := &StorableAccount{
		ID:          a.ID,
		Position:    position,
		Address:     a.Address,
		Kind:        string(a.Kind),
		DisplayName: a.DisplayName,
	}

	if a.LastSelectedAt != nil {
		row.LastSelectedAt = sql.NullTime{Time: *a.LastSelectedAt, Valid: true}
	}

	if a.Snap != nil {
		b, err := json.Marshal(a.Snap)
		if err != nil {
			return nil, err
		}
		row.Snap = datatypes.JSON(b)
	}

	if a.Methods != nil {
		b, err := json.Marshal(a.Methods)
		if err != nil {
			return nil, err
		}
		row.Methods = datatypes.JSON(b)
	}

	return row, nil
}

func (row *StorableAccount) toAccount() (Account, error) {
	a := Account{
		ID:          row.ID,
		Address:     row.Address,
		Kind:        keyring.Kind(row.Kind),
		DisplayName: row.DisplayName,
	}

	if row.LastSelectedAt.Valid {
		at := row.LastSelectedAt.Time
		a.LastSelectedAt = &at
	}

	if len(row.Snap) > 0 {
		snap := SnapMetadata{}
		if err := json.Unmarshal(row.Snap, &snap); err != nil {
			return Account{}, err
		}
		a.Snap = &snap
	}

	if len(row.Methods) > 0 {
		if err := json.Unmarshal(row.Methods, &a.Methods); err != nil {
			return Account{}, err
		}
	}

	return a, nil
}
