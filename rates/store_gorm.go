package rates

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db}
}

func (s *GormStore) Rates() (rr []Rate, err error) {
	err = s.db.Order("symbol asc").Find(&rr).Error
	return
}

func (s *GormStore) Rate(symbol string) (r Rate, err error) {
	err = s.db.First(&r, "symbol = ?", symbol).Error
	return
}

func (s *GormStore) UpsertRate(r *Rate) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
	}).Create(r).Error
}
