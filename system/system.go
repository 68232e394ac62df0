// Package system holds operator controlled runtime settings. The pollers
// consult these before doing work so that a paused or maintenance mode
// deployment stops hitting third-party APIs without a restart.
package system

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Settings struct {
	gorm.Model
	MaintenanceMode bool         `gorm:"column:maintenance_mode;default:false"`
	PausedSince     sql.NullTime `gorm:"column:paused_since"`
}

func (s *Settings) String() string {
	return fmt.Sprintf("MaintenanceMode: %t", s.MaintenanceMode)
}

func (Settings) TableName() string {
	return "system_settings"
}

func (s *Settings) IsMaintenanceMode() bool {
	return s.MaintenanceMode
}

// IsPaused reports whether a pause is still in effect; pauses expire on
// their own after pauseDuration.
func (s *Settings) IsPaused(pauseDuration time.Duration) bool {
	return s.PausedSince.Valid && s.PausedSince.Time.After(time.Now().Add(-pauseDuration))
}

// SettingsJSON is the HTTP representation of Settings.
type SettingsJSON struct {
	MaintenanceMode bool `json:"maintenanceMode"`
}

func (s *Settings) ToJSON() SettingsJSON {
	return SettingsJSON{
		MaintenanceMode: s.MaintenanceMode,
	}
}

func (s *Settings) FromJSON(j SettingsJSON) {
	s.MaintenanceMode = j.MaintenanceMode
}
