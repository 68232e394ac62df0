package system

import (
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Service struct {
	store         Store
	pauseDuration time.Duration
}

type ServiceOption func(*Service)

func WithPauseDuration(duration time.Duration) ServiceOption {
	return func(svc *Service) {
		svc.pauseDuration = duration
	}
}

func NewService(store Store, opts ...ServiceOption) *Service {
	svc := &Service{store: store, pauseDuration: 5 * time.Minute}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (svc *Service) GetSettings() (*Settings, error) {
	return svc.store.GetSettings()
}

func (svc *Service) SaveSettings(settings *Settings) error {
	if settings.ID == 0 {
		return fmt.Errorf("settings object has no ID, get an existing settings first and alter it")
	}
	log.WithFields(log.Fields{"settings": settings}).Trace("Save system settings")
	return svc.store.SaveSettings(settings)
}

// Pause suspends the pollers for the configured pause duration.
func (svc *Service) Pause() error {
	log.Trace("Pause system")
	settings, err := svc.GetSettings()
	if err != nil {
		return err
	}
	settings.PausedSince = sql.NullTime{Time: time.Now(), Valid: true}
	return svc.SaveSettings(settings)
}

// IsHalted reports whether background work should be skipped, either because
// an operator enabled maintenance mode or a pause is still in effect. Used
// by the pollers before every tick.
func (svc *Service) IsHalted() bool {
	settings, err := svc.GetSettings()
	if err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Failed to read system settings")
		return false
	}
	return settings.IsMaintenanceMode() || settings.IsPaused(svc.pauseDuration)
}
