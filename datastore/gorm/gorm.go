// Package gorm opens the application database and applies pending schema
// migrations.
package gorm

import (
	"github.com/MajorLift/metamask-core/migrations"
	"github.com/go-gormigrate/gormigrate/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	cfg, err := ParseConfig()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(cfg.Dialector, cfg.Options)
	if err != nil {
		return nil, err
	}

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations.List())
	if err := m.Migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn(err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn(err)
	}
}
